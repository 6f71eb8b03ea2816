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

// Feature is one bit of the handshake feature byte-array.
type Feature uint

const (
	FeaturePartitionAwareness Feature = iota
	FeatureExpiryPolicy
	FeatureClusterAPI
	FeatureUserAttributes
	FeatureBinaryConfiguration
	featureCount
)

// FeatureSet is the bit-vector advertised in and parsed from the handshake
// features byte-array: byte i holds bits 8i..8i+7, LSB first.
type FeatureSet struct {
	bits []byte
}

// NewFeatureSet returns a set with every feature this client implements.
func NewFeatureSet() FeatureSet {
	fs := FeatureSet{bits: make([]byte, (featureCount+7)/8)}
	fs.Set(FeaturePartitionAwareness)
	fs.Set(FeatureExpiryPolicy)
	fs.Set(FeatureClusterAPI)
	fs.Set(FeatureUserAttributes)
	fs.Set(FeatureBinaryConfiguration)
	return fs
}

// ParseFeatureSet wraps a wire byte-array as received from the peer.
func ParseFeatureSet(raw []byte) FeatureSet {
	return FeatureSet{bits: append([]byte(nil), raw...)}
}

// Set raises bit f, growing the backing slice if needed.
func (fs *FeatureSet) Set(f Feature) {
	idx := int(f) / 8
	for len(fs.bits) <= idx {
		fs.bits = append(fs.bits, 0)
	}
	fs.bits[idx] |= 1 << (uint(f) % 8)
}

// Has reports whether bit f is present and raised.
func (fs FeatureSet) Has(f Feature) bool {
	idx := int(f) / 8
	if idx >= len(fs.bits) {
		return false
	}
	return fs.bits[idx]&(1<<(uint(f)%8)) != 0
}

// Bytes is the wire form written into the handshake features byte-array.
func (fs FeatureSet) Bytes() []byte {
	return append([]byte(nil), fs.bits...)
}

// Intersect keeps only the bits raised in both sets, representing what was
// actually agreed between client and server after the handshake reply.
func (fs FeatureSet) Intersect(o FeatureSet) FeatureSet {
	n := len(fs.bits)
	if len(o.bits) > n {
		n = len(o.bits)
	}
	out := make([]byte, n)
	for i := range out {
		var a, b byte
		if i < len(fs.bits) {
			a = fs.bits[i]
		}
		if i < len(o.bits) {
			b = o.bits[i]
		}
		out[i] = a & b
	}
	return FeatureSet{bits: out}
}
