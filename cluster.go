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

package ignite

import (
	"github.com/gridgain/ignite-go-client/binary/ignval"
	"github.com/gridgain/ignite-go-client/request"
	liberr "github.com/gridgain/ignite-go-client/errors"
)

// ClusterState reads the cluster's active/read-only/inactive state.
func (c *Client) ClusterState() (request.ClusterState, liberr.Error) {
	return c.session().GetClusterState()
}

// SetClusterState transitions the cluster's active/read-only/inactive state.
func (c *Client) SetClusterState(state request.ClusterState) liberr.Error {
	return c.session().SetClusterState(state)
}

// RegisterBinaryType pushes local schema metadata for a complex object type
// to the server, so later puts of that type are accepted without a
// round-trip metadata fetch.
func (c *Client) RegisterBinaryType(obj *ignval.ComplexObject, fieldNames map[int32]string) liberr.Error {
	return c.session().PutBinaryType(obj, fieldNames)
}

// FetchBinaryType pulls a complex object type's schema metadata from the
// server into the local binary-type registry.
func (c *Client) FetchBinaryType(typeID int32) liberr.Error {
	return c.session().GetBinaryType(typeID)
}
