/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package request

import (
	"fmt"

	liberr "github.com/gridgain/ignite-go-client/errors"
)

const pkgName = "ignite/request"

const (
	ErrorNotSupportedByCluster liberr.CodeError = iota + liberr.MinPkgIgniteRequest
	ErrorCacheError
	ErrorSQLError
	ErrorBinaryTypeError
	ErrorClusterError
)

func init() {
	if liberr.ExistInMapMessage(ErrorNotSupportedByCluster) {
		panic(fmt.Errorf("error code collision with package %s", pkgName))
	}
	liberr.RegisterIdFctMessage(ErrorNotSupportedByCluster, getMessage)
}

func getMessage(code liberr.CodeError) (message string) {
	switch code {
	case liberr.UnknownError:
		return liberr.NullMessage
	case ErrorNotSupportedByCluster:
		return "request: operation requires a capability the negotiated protocol context does not provide"
	case ErrorCacheError:
		return "request: cache operation returned a non-zero status"
	case ErrorSQLError:
		return "request: SQL operation returned a non-zero status"
	case ErrorBinaryTypeError:
		return "request: binary-type operation returned a non-zero status"
	case ErrorClusterError:
		return "request: cluster operation returned a non-zero status"
	}

	return liberr.NullMessage
}
