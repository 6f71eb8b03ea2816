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

import "time"

// UUID is the 16-byte big-endian node/key identifier.
type UUID [16]byte

// Date is milliseconds since epoch, signed 8 bytes.
type Date struct{ Millis int64 }

// Time is milliseconds of day, signed 8 bytes.
type Time struct{ Millis int64 }

// Timestamp is a Date plus a 4-byte nanosecond tail.
type Timestamp struct {
	Millis int64
	Nanos  int32
}

// ToTime converts a Timestamp to a wall-clock time.Time in UTC, preserving
// sub-millisecond precision carried in the nanosecond tail.
func (t Timestamp) ToTime() time.Time {
	return time.UnixMilli(t.Millis).UTC().Add(time.Duration(t.Nanos))
}

// TimestampFromTime builds the wire Timestamp for a UTC instant.
func TimestampFromTime(t time.Time) Timestamp {
	ms := t.UnixMilli()
	whole := time.UnixMilli(ms)
	return Timestamp{Millis: ms, Nanos: int32(t.Sub(whole))}
}

// Decimal is scale + sign-magnitude big-endian bytes, preserved losslessly.
type Decimal struct {
	Scale     int32
	Magnitude []byte // big-endian, without the sign bit; the sign is carried in Negative
	Negative  bool
}

// Enum is a (type_id, ordinal) pair.
type Enum struct {
	TypeID  int32
	Ordinal int32
}

// ObjectArray is a heterogeneous array: each element is fully type-tagged.
type ObjectArray struct {
	ElementTypeID int32
	Items         []interface{}
}

// Collection is a user-kind-tagged homogeneous sequence.
type Collection struct {
	Kind  uint8
	Items []interface{}
}

// MapEntry is one key/value pair of a Map value.
type MapEntry struct {
	Key   interface{}
	Value interface{}
}

// Map is a user-kind-tagged association list (alternating key, value on the
// wire; represented here as ordered entries since Ignite maps preserve
// insertion order for LINKED_HASH_MAP and are order-independent for
// HASH_MAP).
type Map struct {
	Kind    uint8
	Entries []MapEntry
}

// WrappedObject is an opaque, length-prefixed blob plus an offset into it,
// used when the client forwards an already-serialized object verbatim.
type WrappedObject struct {
	Data   []byte
	Offset int32
}

// Null is the typed nil sentinel; Decode returns this exact value (not a Go
// nil interface) so callers can type-switch on it explicitly if they need to
// distinguish "absent field" from "zero value".
type nullType struct{}

// Null is the single instance of the wire Null value.
var Null = nullType{}
