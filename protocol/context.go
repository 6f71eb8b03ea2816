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

package protocol

import liberr "github.com/gridgain/ignite-go-client/errors"

// Context is the negotiated (version, features) pair shared read-only by
// every Connection and request once the first handshake on a pool succeeds.
type Context struct {
	Version  Version
	Features FeatureSet
	NodeUUID [16]byte
}

// NewContext builds a context for a successful handshake at v, with the
// agreed feature set. The handshake passes the client's own offered set before
// 1.7.0, where there is nothing to intersect.
func NewContext(v Version, features FeatureSet) Context {
	return Context{Version: v, Features: features}
}

// SupportsFeatureFlags reports whether the handshake should carry a features
// byte-array at all (≥ 1.7.0); below that version FeatureSet is meaningless.
func (c Context) SupportsFeatureFlags() bool {
	return c.Version.AtLeast(MinFeatureFlags)
}

// SupportsUserAttributes reports whether the handshake may carry the
// user_attributes map segment (≥ 1.7.1).
func (c Context) SupportsUserAttributes() bool {
	return c.Version.AtLeast(MinUserAttributes)
}

// SupportsPartitionAwareness reports whether affinity-aware routing can be
// attempted against this cluster (≥ 1.4.0); below that every op must go to
// an arbitrary connection.
func (c Context) SupportsPartitionAwareness() bool {
	return c.Version.AtLeast(MinPartitionAwareness)
}

// SupportsExpiryPolicy reports whether cache-with-expiry operations are
// available (≥ 1.6.0).
func (c Context) SupportsExpiryPolicy() bool {
	return c.Version.AtLeast(MinExpiryPolicy)
}

// SupportsClusterAPI reports whether cluster state/WAL operations are
// available (≥ 1.6.0).
func (c Context) SupportsClusterAPI() bool {
	return c.Version.AtLeast(MinClusterAPI)
}

// Require fails locally, without touching the network, when ok is false —
// the shape every request-layer capability gate uses (§5.3).
func Require(ok bool) liberr.Error {
	if ok {
		return nil
	}
	return ErrorCapabilityNotNegotiated.Error(nil)
}
