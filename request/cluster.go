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
	"github.com/gridgain/ignite-go-client/binary/ignstream"
	liberr "github.com/gridgain/ignite-go-client/errors"
)

// GetClusterState reads cluster_get_state() -> one of {0,1,2} (§4.6). Gated
// on the cluster-API capability (>= 1.6.0).
func (s *Session) GetClusterState() (ClusterState, liberr.Error) {
	if e := s.require(s.Context.SupportsClusterAPI()); e != nil {
		return 0, e
	}
	r, e := s.DoCluster(OpClusterGetState, func(b *ignstream.Stream) liberr.Error { return nil })
	if e != nil {
		return 0, e
	}
	v, e := r.ReadI32()
	if e != nil {
		return 0, e
	}
	return ClusterState(v), nil
}

// SetClusterState writes cluster_change_state(state).
func (s *Session) SetClusterState(state ClusterState) liberr.Error {
	if e := s.require(s.Context.SupportsClusterAPI()); e != nil {
		return e
	}
	_, e := s.DoCluster(OpClusterChangeState, func(b *ignstream.Stream) liberr.Error {
		b.WriteI32(int32(state))
		return nil
	})
	return e
}
