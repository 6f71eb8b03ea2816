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

// Package ignval implements the tagged-value wire codec of the thin-client
// protocol: encode, decode and hashcode for every primitive, temporal,
// collection and complex-object type the protocol defines.
package ignval

// TypeCode is the leading discriminator byte of every value on the wire.
type TypeCode int8

const (
	CodeByte      TypeCode = 1
	CodeShort     TypeCode = 2
	CodeInt       TypeCode = 3
	CodeLong      TypeCode = 4
	CodeFloat     TypeCode = 5
	CodeDouble    TypeCode = 6
	CodeChar      TypeCode = 7
	CodeBool      TypeCode = 8
	CodeString    TypeCode = 9
	CodeUUID      TypeCode = 10
	CodeDate      TypeCode = 11
	CodeByteArr   TypeCode = 12
	CodeShortArr  TypeCode = 13
	CodeIntArr    TypeCode = 14
	CodeLongArr   TypeCode = 15
	CodeFloatArr  TypeCode = 16
	CodeDoubleArr TypeCode = 17
	CodeCharArr   TypeCode = 18
	CodeBoolArr   TypeCode = 19
	CodeStringArr TypeCode = 20
	CodeUUIDArr   TypeCode = 21
	CodeDateArr   TypeCode = 22

	CodeObjectArr  TypeCode = 23 // 0x17 — element_type_id:i32 | len:i32 | values
	CodeCollection TypeCode = 24 // 0x18 — len:i32 | kind:u8 | values
	CodeEnum       TypeCode = 25
	CodeBinaryEnum TypeCode = 26
	CodeWrappedObj TypeCode = 27 // length-prefixed opaque blob + offset
	CodeDecimalArr TypeCode = 28

	CodeMap     TypeCode = 29 // 0x1D — len:i32 | kind:u8 | (key,value)*
	CodeDecimal TypeCode = 30 // 0x1E — scale:i32 | length:i32 | big-endian bytes

	CodeTimestamp    TypeCode = 31
	CodeTimestampArr TypeCode = 32
	CodeTime         TypeCode = 33
	CodeTimeArr      TypeCode = 34

	CodeComplexObj TypeCode = 103
	CodeNull       TypeCode = 101
)

// Collection "user kind" tags (§4.1, Collection).
const (
	CollUserSet       uint8 = 0
	CollUserCol       uint8 = 1
	CollArrList       uint8 = 2
	CollLinkedList    uint8 = 3
	CollHashSet       uint8 = 4
	CollLinkedHashSet uint8 = 5
	CollSingletonList uint8 = 6
)

// Map "kind" tags (§4.1, Map).
const (
	MapHashMap       uint8 = 1
	MapLinkedHashMap uint8 = 2
)

// NullByte is the single-byte encoding of a None/null value wherever the
// schema permits a nullable field.
const NullByte byte = byte(CodeNull)
