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

import "github.com/gridgain/ignite-go-client/binary/ignstream"

// TTL sentinels (§4.6): -1 means unset (inherit cache default), -2 means
// eternal (never expires).
const (
	TTLUnset   int64 = -1
	TTLEternal int64 = -2
)

// ExpiryPolicy is the per-cache-handle create/update/access TTL triple,
// expressed in nanoseconds to match the wire prelude.
type ExpiryPolicy struct {
	CreateNanos int64
	UpdateNanos int64
	AccessNanos int64
}

// DefaultExpiryPolicy leaves all three TTLs unset.
func DefaultExpiryPolicy() ExpiryPolicy {
	return ExpiryPolicy{CreateNanos: TTLUnset, UpdateNanos: TTLUnset, AccessNanos: TTLUnset}
}

// writePrelude prepends the with_expiry_policy header ahead of an operation
// body when the cache handle carries a non-default policy.
func (e ExpiryPolicy) writePrelude(s *ignstream.Stream) {
	s.WriteI64(e.CreateNanos)
	s.WriteI64(e.UpdateNanos)
	s.WriteI64(e.AccessNanos)
}

func (e ExpiryPolicy) isDefault() bool {
	return e.CreateNanos == TTLUnset && e.UpdateNanos == TTLUnset && e.AccessNanos == TTLUnset
}
