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

package conn

import (
	"fmt"

	liberr "github.com/gridgain/ignite-go-client/errors"
)

const pkgName = "ignite/conn"

const (
	ErrorSocketError liberr.CodeError = iota + liberr.MinPkgIgniteConn
	ErrorConnectionBroken
	ErrorHandshakeFailed
	ErrorAuthenticationFailed
	ErrorReconnectExhausted
	ErrorProtocolViolation
)

func init() {
	if liberr.ExistInMapMessage(ErrorSocketError) {
		panic(fmt.Errorf("error code collision with package %s", pkgName))
	}
	liberr.RegisterIdFctMessage(ErrorSocketError, getMessage)
}

func getMessage(code liberr.CodeError) (message string) {
	switch code {
	case liberr.UnknownError:
		return liberr.NullMessage
	case ErrorSocketError:
		return "conn: socket operation failed"
	case ErrorConnectionBroken:
		return "conn: connection marked failed, reconnect required"
	case ErrorHandshakeFailed:
		return "conn: handshake rejected by server with an unknown fallback version"
	case ErrorAuthenticationFailed:
		return "conn: authentication rejected by server"
	case ErrorReconnectExhausted:
		return "conn: could not reconnect to any seed node"
	case ErrorProtocolViolation:
		return "conn: response frame malformed or out of sync with request"
	}

	return liberr.NullMessage
}
