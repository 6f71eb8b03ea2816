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
	"github.com/gridgain/ignite-go-client/affinity"
	"github.com/gridgain/ignite-go-client/binary/ignstream"
	"github.com/gridgain/ignite-go-client/binregistry"
	"github.com/gridgain/ignite-go-client/conn"
	"github.com/gridgain/ignite-go-client/pool"
	"github.com/gridgain/ignite-go-client/protocol"
	liberr "github.com/gridgain/ignite-go-client/errors"
)

// topologyChangedFlag is set on the response when the server flags that the
// affinity topology for the accessed cache moved; bit 0 of a reserved i16
// directly following a zero status, ahead of the body (§4.4).
const topologyChangedFlag = 1 << 0

// Session bundles everything a request needs: where to send it, what the
// cluster can do, and the locally known binary-type schemas.
type Session struct {
	Pool     *pool.Pool
	Context  protocol.Context
	Registry *binregistry.Registry
}

// require fails locally without touching the network when the negotiated
// context lacks a capability an operation needs.
func (s *Session) require(ok bool) liberr.Error {
	if ok {
		return nil
	}
	return ErrorNotSupportedByCluster.Error(nil)
}

// body is a convenience wrapper a builder function fills in, op_code and
// query_id are prepended by send.
func (s *Session) send(c *conn.Connection, opCode OpCode, fill func(*ignstream.Stream) liberr.Error) ([]byte, liberr.Error) {
	payload := ignstream.New()
	payload.WriteI16(int16(opCode))
	payload.WriteI64(c.NextQueryID())
	if e := fill(payload); e != nil {
		return nil, e
	}
	if e := c.Send(payload.Bytes()); e != nil {
		return nil, e
	}
	return c.Recv()
}

// Do routes, sends, and parses the standard response envelope for a
// cache-scoped op, reporting a non-zero status as ErrorCacheError.
// cacheID/key/typeID drive affinity routing; pass cacheID==0 and key==nil for
// non-affinity ops (SQL-fields without a routing key, affinity refresh itself).
func (s *Session) Do(cacheID int32, key interface{}, typeID int32, opCode OpCode, fill func(*ignstream.Stream) liberr.Error) (*ignstream.Stream, liberr.Error) {
	return s.doAs(ErrorCacheError, cacheID, key, typeID, opCode, fill)
}

// DoSQL is Do for SQL/SQL-fields ops: a non-zero status reports ErrorSQLError.
func (s *Session) DoSQL(cacheID int32, opCode OpCode, fill func(*ignstream.Stream) liberr.Error) (*ignstream.Stream, liberr.Error) {
	return s.doAs(ErrorSQLError, cacheID, nil, 0, opCode, fill)
}

// DoCluster is Do for cluster ops: a non-zero status reports ErrorClusterError.
func (s *Session) DoCluster(opCode OpCode, fill func(*ignstream.Stream) liberr.Error) (*ignstream.Stream, liberr.Error) {
	return s.doAs(ErrorClusterError, 0, nil, 0, opCode, fill)
}

// DoBinaryType is Do for binary-type registry ops: a non-zero status reports
// ErrorBinaryTypeError.
func (s *Session) DoBinaryType(opCode OpCode, fill func(*ignstream.Stream) liberr.Error) (*ignstream.Stream, liberr.Error) {
	return s.doAs(ErrorBinaryTypeError, 0, nil, 0, opCode, fill)
}

// doAs is Do parameterized by which error category a non-zero status surfaces
// as, so SQL/cluster/binary-type failures don't all look like cache failures.
func (s *Session) doAs(errKind liberr.CodeError, cacheID int32, key interface{}, typeID int32, opCode OpCode, fill func(*ignstream.Stream) liberr.Error) (*ignstream.Stream, liberr.Error) {
	raw, e := s.Pool.Dispatch(cacheID, key, typeID, func(c *conn.Connection) ([]byte, liberr.Error) {
		return s.send(c, opCode, fill)
	})
	if e != nil {
		return nil, e
	}

	r := ignstream.Wrap(raw)
	if _, e := r.ReadI64(); e != nil { // query_id: skipped, not compared with the request's; responses pair with requests by receive order
		return nil, e
	}
	status, e := r.ReadI32()
	if e != nil {
		return nil, e
	}
	if status != 0 {
		msg, _ := r.ReadBytes(r.Remaining())
		return nil, errKind.Errorf("status %d: %s", status, string(msg))
	}

	if cacheID != 0 {
		flags, e := r.ReadI16()
		if e != nil {
			return nil, e
		}
		if flags&topologyChangedFlag != 0 {
			major, _ := r.ReadI64()
			minor, _ := r.ReadI32()
			_ = affinity.Version{Major: major, Minor: minor}
			s.Pool.Store.Invalidate(cacheID)
		}
	}
	return r, nil
}
