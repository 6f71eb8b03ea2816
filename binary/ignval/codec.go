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
	"github.com/gridgain/ignite-go-client/binary/ignstream"
	liberr "github.com/gridgain/ignite-go-client/errors"
)

// Encode writes v, fully type-tagged, to s. A nil interface or the Null
// sentinel both encode as the single byte 101.
func Encode(s *ignstream.Stream, v interface{}) liberr.Error {
	return EncodeHint(s, v, 0)
}

// EncodeHint writes v using an explicit type-code hint (key_hint /
// value_hint of §4.6) when the value's native Go type can legally narrow to
// it; a zero hint means "use the default wire type for v's Go type".
func EncodeHint(s *ignstream.Stream, v interface{}, hint TypeCode) liberr.Error {
	if v == nil {
		s.WriteByte(NullByte)
		return nil
	}

	switch t := v.(type) {
	case nullType:
		s.WriteByte(NullByte)
	case bool:
		s.WriteByte(byte(CodeBool))
		if t {
			s.WriteByte(1)
		} else {
			s.WriteByte(0)
		}
	case int8:
		s.WriteByte(byte(CodeByte))
		s.WriteI8(t)
	case int16:
		s.WriteByte(byte(CodeShort))
		s.WriteI16(t)
	case uint16: // UTF-16 char
		s.WriteByte(byte(CodeChar))
		s.WriteI16(int16(t))
	case int32:
		s.WriteByte(byte(CodeInt))
		s.WriteI32(t)
	case int64:
		encodeLong(s, t, hint)
	case int:
		encodeLong(s, int64(t), hint)
	case float32:
		s.WriteByte(byte(CodeFloat))
		s.WriteF32(t)
	case float64:
		s.WriteByte(byte(CodeDouble))
		s.WriteF64(t)
	case string:
		encodeString(s, t)
	case UUID:
		s.WriteByte(byte(CodeUUID))
		s.WriteBigEndian(t[:])
	case Date:
		s.WriteByte(byte(CodeDate))
		s.WriteI64(t.Millis)
	case Time:
		s.WriteByte(byte(CodeTime))
		s.WriteI64(t.Millis)
	case Timestamp:
		s.WriteByte(byte(CodeTimestamp))
		s.WriteI64(t.Millis)
		s.WriteI32(t.Nanos)
	case Decimal:
		encodeDecimal(s, t)
	case Enum:
		s.WriteByte(byte(CodeEnum))
		s.WriteI32(t.TypeID)
		s.WriteI32(t.Ordinal)
	case []byte:
		s.WriteByte(byte(CodeByteArr))
		s.WriteI32(int32(len(t)))
		s.WriteBytes(t)
	case []int16:
		s.WriteByte(byte(CodeShortArr))
		s.WriteI32(int32(len(t)))
		for _, e := range t {
			s.WriteI16(e)
		}
	case []int32:
		s.WriteByte(byte(CodeIntArr))
		s.WriteI32(int32(len(t)))
		for _, e := range t {
			s.WriteI32(e)
		}
	case []int64:
		s.WriteByte(byte(CodeLongArr))
		s.WriteI32(int32(len(t)))
		for _, e := range t {
			s.WriteI64(e)
		}
	case []float32:
		s.WriteByte(byte(CodeFloatArr))
		s.WriteI32(int32(len(t)))
		for _, e := range t {
			s.WriteF32(e)
		}
	case []float64:
		s.WriteByte(byte(CodeDoubleArr))
		s.WriteI32(int32(len(t)))
		for _, e := range t {
			s.WriteF64(e)
		}
	case []string:
		s.WriteByte(byte(CodeStringArr))
		s.WriteI32(int32(len(t)))
		for _, e := range t {
			if e := Encode(s, e); e != nil {
				return e
			}
		}
	case ObjectArray:
		s.WriteByte(byte(CodeObjectArr))
		s.WriteI32(t.ElementTypeID)
		s.WriteI32(int32(len(t.Items)))
		for _, it := range t.Items {
			if e := Encode(s, it); e != nil {
				return e
			}
		}
	case Collection:
		s.WriteByte(byte(CodeCollection))
		s.WriteI32(int32(len(t.Items)))
		s.WriteByte(t.Kind)
		for _, it := range t.Items {
			if e := Encode(s, it); e != nil {
				return e
			}
		}
	case Map:
		s.WriteByte(byte(CodeMap))
		s.WriteI32(int32(len(t.Entries)))
		s.WriteByte(t.Kind)
		for _, kv := range t.Entries {
			if e := Encode(s, kv.Key); e != nil {
				return e
			}
			if e := Encode(s, kv.Value); e != nil {
				return e
			}
		}
	case WrappedObject:
		s.WriteByte(byte(CodeWrappedObj))
		s.WriteI32(int32(len(t.Data)))
		s.WriteBytes(t.Data)
		s.WriteI32(t.Offset)
	case *ComplexObject:
		return EncodeComplexObject(s, t)
	default:
		return ErrorUnsupportedType.Errorf("%T", v)
	}

	return nil
}

// encodeLong applies the key_hint/value_hint economy of §4.6: an integer
// hinted as CodeShort or CodeInt is narrowed when it fits, else it falls
// back to the full-width Long encoding.
func encodeLong(s *ignstream.Stream, v int64, hint TypeCode) {
	switch hint {
	case CodeByte:
		if v >= -128 && v <= 127 {
			s.WriteByte(byte(CodeByte))
			s.WriteI8(int8(v))
			return
		}
	case CodeShort:
		if v >= -32768 && v <= 32767 {
			s.WriteByte(byte(CodeShort))
			s.WriteI16(int16(v))
			return
		}
	case CodeInt:
		if v >= -2147483648 && v <= 2147483647 {
			s.WriteByte(byte(CodeInt))
			s.WriteI32(int32(v))
			return
		}
	}
	s.WriteByte(byte(CodeLong))
	s.WriteI64(v)
}

func encodeString(s *ignstream.Stream, v string) {
	s.WriteByte(byte(CodeString))
	b := []byte(v)
	s.WriteI32(int32(len(b)))
	s.WriteBytes(b)
}

func encodeDecimal(s *ignstream.Stream, d Decimal) {
	s.WriteByte(byte(CodeDecimal))
	s.WriteI32(d.Scale)
	mag := make([]byte, len(d.Magnitude))
	copy(mag, d.Magnitude)
	if len(mag) == 0 {
		mag = []byte{0}
	}
	if d.Negative {
		mag[0] |= 0x80
	} else {
		mag[0] &^= 0x80
	}
	s.WriteI32(int32(len(mag)))
	s.WriteBytes(mag)
}

// Decode reads one fully type-tagged value from s.
func Decode(s *ignstream.Stream) (interface{}, liberr.Error) {
	code, e := s.ReadByte()
	if e != nil {
		return nil, e
	}
	return decodeBody(s, TypeCode(code))
}

func decodeBody(s *ignstream.Stream, code TypeCode) (interface{}, liberr.Error) {
	switch code {
	case CodeNull:
		return Null, nil
	case CodeBool:
		b, e := s.ReadByte()
		return b != 0, e
	case CodeByte:
		return s.ReadI8()
	case CodeShort:
		return s.ReadI16()
	case CodeChar:
		v, e := s.ReadI16()
		return uint16(v), e
	case CodeInt:
		return s.ReadI32()
	case CodeLong:
		return s.ReadI64()
	case CodeFloat:
		return s.ReadF32()
	case CodeDouble:
		return s.ReadF64()
	case CodeString:
		return decodeString(s)
	case CodeUUID:
		b, e := s.ReadBigEndian(16)
		if e != nil {
			return nil, e
		}
		var u UUID
		copy(u[:], b)
		return u, nil
	case CodeDate:
		v, e := s.ReadI64()
		return Date{Millis: v}, e
	case CodeTime:
		v, e := s.ReadI64()
		return Time{Millis: v}, e
	case CodeTimestamp:
		ms, e := s.ReadI64()
		if e != nil {
			return nil, e
		}
		ns, e := s.ReadI32()
		return Timestamp{Millis: ms, Nanos: ns}, e
	case CodeDecimal:
		return decodeDecimal(s)
	case CodeEnum:
		tid, e := s.ReadI32()
		if e != nil {
			return nil, e
		}
		ord, e := s.ReadI32()
		return Enum{TypeID: tid, Ordinal: ord}, e
	case CodeByteArr:
		n, e := s.ReadI32()
		if e != nil {
			return nil, e
		}
		return s.ReadBytes(int(n))
	case CodeShortArr:
		n, e := s.ReadI32()
		if e != nil {
			return nil, e
		}
		out := make([]int16, n)
		for i := range out {
			if out[i], e = s.ReadI16(); e != nil {
				return nil, e
			}
		}
		return out, nil
	case CodeIntArr:
		n, e := s.ReadI32()
		if e != nil {
			return nil, e
		}
		out := make([]int32, n)
		for i := range out {
			if out[i], e = s.ReadI32(); e != nil {
				return nil, e
			}
		}
		return out, nil
	case CodeLongArr:
		n, e := s.ReadI32()
		if e != nil {
			return nil, e
		}
		out := make([]int64, n)
		for i := range out {
			if out[i], e = s.ReadI64(); e != nil {
				return nil, e
			}
		}
		return out, nil
	case CodeFloatArr:
		n, e := s.ReadI32()
		if e != nil {
			return nil, e
		}
		out := make([]float32, n)
		for i := range out {
			if out[i], e = s.ReadF32(); e != nil {
				return nil, e
			}
		}
		return out, nil
	case CodeDoubleArr:
		n, e := s.ReadI32()
		if e != nil {
			return nil, e
		}
		out := make([]float64, n)
		for i := range out {
			if out[i], e = s.ReadF64(); e != nil {
				return nil, e
			}
		}
		return out, nil
	case CodeStringArr:
		n, e := s.ReadI32()
		if e != nil {
			return nil, e
		}
		out := make([]string, n)
		for i := range out {
			v, e := Decode(s)
			if e != nil {
				return nil, e
			}
			if str, ok := v.(string); ok {
				out[i] = str
			}
		}
		return out, nil
	case CodeObjectArr:
		etid, e := s.ReadI32()
		if e != nil {
			return nil, e
		}
		n, e := s.ReadI32()
		if e != nil {
			return nil, e
		}
		out := make([]interface{}, n)
		for i := range out {
			if out[i], e = Decode(s); e != nil {
				return nil, e
			}
		}
		return ObjectArray{ElementTypeID: etid, Items: out}, nil
	case CodeCollection:
		n, e := s.ReadI32()
		if e != nil {
			return nil, e
		}
		kind, e := s.ReadByte()
		if e != nil {
			return nil, e
		}
		out := make([]interface{}, n)
		for i := range out {
			if out[i], e = Decode(s); e != nil {
				return nil, e
			}
		}
		return Collection{Kind: kind, Items: out}, nil
	case CodeMap:
		n, e := s.ReadI32()
		if e != nil {
			return nil, e
		}
		kind, e := s.ReadByte()
		if e != nil {
			return nil, e
		}
		entries := make([]MapEntry, n)
		for i := range entries {
			k, e := Decode(s)
			if e != nil {
				return nil, e
			}
			v, e := Decode(s)
			if e != nil {
				return nil, e
			}
			entries[i] = MapEntry{Key: k, Value: v}
		}
		return Map{Kind: kind, Entries: entries}, nil
	case CodeWrappedObj:
		n, e := s.ReadI32()
		if e != nil {
			return nil, e
		}
		data, e := s.ReadBytes(int(n))
		if e != nil {
			return nil, e
		}
		off, e := s.ReadI32()
		return WrappedObject{Data: append([]byte{}, data...), Offset: off}, e
	case CodeComplexObj:
		return DecodeComplexObject(s)
	default:
		return nil, ErrorProtocolViolation.Errorf("unknown type code %d", code)
	}
}

func decodeString(s *ignstream.Stream) (string, liberr.Error) {
	n, e := s.ReadI32()
	if e != nil {
		return "", e
	}
	b, e := s.ReadBytes(int(n))
	if e != nil {
		return "", e
	}
	return string(b), nil
}

func decodeDecimal(s *ignstream.Stream) (Decimal, liberr.Error) {
	scale, e := s.ReadI32()
	if e != nil {
		return Decimal{}, e
	}
	n, e := s.ReadI32()
	if e != nil {
		return Decimal{}, e
	}
	raw, e := s.ReadBytes(int(n))
	if e != nil {
		return Decimal{}, e
	}
	mag := append([]byte{}, raw...)
	neg := len(mag) > 0 && mag[0]&0x80 != 0
	if len(mag) > 0 {
		mag[0] &^= 0x80
	}
	return Decimal{Scale: scale, Magnitude: mag, Negative: neg}, nil
}
