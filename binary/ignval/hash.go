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

package ignval

import (
	"strings"
	"unicode/utf16"
)

// JavaStringHash reproduces java.lang.String#hashCode over the UTF-16 code
// units of s: h = 31*h + ch, seeded at 0, returning 0 for the empty string.
func JavaStringHash(s string) int32 {
	var h int32
	for _, u := range utf16.Encode([]rune(s)) {
		h = 31*h + int32(u)
	}
	return h
}

// EntityID is the case-insensitive Java-compatible string hash used as
// cache_id and the complex-object type_id. Folding is done on the lower-cased
// UTF-16 code unit, matching the server's entity-name hashing.
func EntityID(name string) int32 {
	if name == "" {
		return 0
	}
	var h int32
	for _, u := range utf16.Encode([]rune(strings.ToLower(name))) {
		h = 31*h + int32(u)
	}
	return h
}

// fnv1Seed and fnv1Prime are the FNV-1 constants used to fold a complex
// object's ordered field-id list into its schema_id.
const (
	fnv1Seed  uint32 = 0x811C9DC5
	fnv1Prime uint32 = 0x01000193
)

// SchemaID folds the ordered field_id list with FNV-1 over four
// little-endian bytes of each id, seeded at 0x811C9DC5.
func SchemaID(fieldIDs []int32) int32 {
	h := fnv1Seed
	for _, id := range fieldIDs {
		u := uint32(id)
		for i := 0; i < 4; i++ {
			h *= fnv1Prime
			h ^= (u >> (8 * uint(i))) & 0xFF
		}
	}
	return int32(h)
}

// ObjectHash is the 32-bit Java-style string-hash of the serialized field
// bodies of a complex object, used as the object's header "hash" field and
// as its rendezvous-affinity routing hash when the key is a complex object.
func ObjectHash(fieldBodies []byte) int32 {
	var h int32
	for _, b := range fieldBodies {
		h = 31*h + int32(b)
	}
	return h
}
