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

// Package ignstream provides a growable byte buffer with a read/write cursor
// used by the wire codec. It knows nothing about the typed value system,
// only position arithmetic and endianness.
package ignstream

import (
	"encoding/binary"
	"math"

	liberr "github.com/gridgain/ignite-go-client/errors"
)

// Stream is little-endian everywhere except where the protocol demands
// otherwise (UUID bodies are big-endian and are handled by the caller).
type Stream struct {
	buf []byte
	pos int
}

// New returns a Stream ready for encoding, empty and growable.
func New() *Stream {
	return &Stream{buf: make([]byte, 0, 128)}
}

// Wrap returns a Stream ready for decoding the given bytes from offset 0.
func Wrap(b []byte) *Stream {
	return &Stream{buf: b}
}

// Bytes returns the full underlying buffer, regardless of the read cursor.
func (s *Stream) Bytes() []byte {
	return s.buf
}

// Len returns the total buffer length.
func (s *Stream) Len() int {
	return len(s.buf)
}

// Pos returns the current cursor position.
func (s *Stream) Pos() int {
	return s.pos
}

// Seek repositions the cursor for decode-time look-ahead (e.g. complex-object
// schema footers, which are read before their preceding field bodies).
func (s *Stream) Seek(pos int) {
	s.pos = pos
}

// Remaining returns the number of unread bytes.
func (s *Stream) Remaining() int {
	return len(s.buf) - s.pos
}

func (s *Stream) ensure(n int) liberr.Error {
	if s.Remaining() < n {
		return ErrorTruncated.Errorf("need %d bytes, have %d", n, s.Remaining())
	}
	return nil
}

func (s *Stream) grow(n int) {
	if cap(s.buf)-len(s.buf) >= n {
		return
	}
	nb := make([]byte, len(s.buf), 2*(len(s.buf)+n))
	copy(nb, s.buf)
	s.buf = nb
}

// WriteByte appends a single byte, most often a type code.
func (s *Stream) WriteByte(b byte) {
	s.grow(1)
	s.buf = append(s.buf, b)
}

// ReadByte consumes and returns a single byte.
func (s *Stream) ReadByte() (byte, liberr.Error) {
	if e := s.ensure(1); e != nil {
		return 0, e
	}
	b := s.buf[s.pos]
	s.pos++
	return b, nil
}

// WriteBytes appends raw bytes verbatim (already in wire order).
func (s *Stream) WriteBytes(b []byte) {
	s.grow(len(b))
	s.buf = append(s.buf, b...)
}

// ReadBytes consumes and returns n raw bytes.
func (s *Stream) ReadBytes(n int) ([]byte, liberr.Error) {
	if e := s.ensure(n); e != nil {
		return nil, e
	}
	b := s.buf[s.pos : s.pos+n]
	s.pos += n
	return b, nil
}

// WriteI8 / ReadI8 : one signed byte.
func (s *Stream) WriteI8(v int8) { s.WriteByte(byte(v)) }

func (s *Stream) ReadI8() (int8, liberr.Error) {
	b, e := s.ReadByte()
	return int8(b), e
}

// WriteI16 / ReadI16 : little-endian 16-bit.
func (s *Stream) WriteI16(v int16) {
	s.grow(2)
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], uint16(v))
	s.buf = append(s.buf, b[:]...)
}

func (s *Stream) ReadI16() (int16, liberr.Error) {
	b, e := s.ReadBytes(2)
	if e != nil {
		return 0, e
	}
	return int16(binary.LittleEndian.Uint16(b)), nil
}

// WriteI32 / ReadI32 : little-endian 32-bit.
func (s *Stream) WriteI32(v int32) {
	s.grow(4)
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(v))
	s.buf = append(s.buf, b[:]...)
}

func (s *Stream) ReadI32() (int32, liberr.Error) {
	b, e := s.ReadBytes(4)
	if e != nil {
		return 0, e
	}
	return int32(binary.LittleEndian.Uint32(b)), nil
}

// WriteI64 / ReadI64 : little-endian 64-bit.
func (s *Stream) WriteI64(v int64) {
	s.grow(8)
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(v))
	s.buf = append(s.buf, b[:]...)
}

func (s *Stream) ReadI64() (int64, liberr.Error) {
	b, e := s.ReadBytes(8)
	if e != nil {
		return 0, e
	}
	return int64(binary.LittleEndian.Uint64(b)), nil
}

// WriteF32 / ReadF32 : IEEE-754 single precision, little-endian.
func (s *Stream) WriteF32(v float32) {
	s.WriteI32(int32(math.Float32bits(v)))
}

func (s *Stream) ReadF32() (float32, liberr.Error) {
	v, e := s.ReadI32()
	if e != nil {
		return 0, e
	}
	return math.Float32frombits(uint32(v)), nil
}

// WriteF64 / ReadF64 : IEEE-754 double precision, little-endian.
func (s *Stream) WriteF64(v float64) {
	s.WriteI64(int64(math.Float64bits(v)))
}

func (s *Stream) ReadF64() (float64, liberr.Error) {
	v, e := s.ReadI64()
	if e != nil {
		return 0, e
	}
	return math.Float64frombits(uint64(v)), nil
}

// WriteI32AtCursorForPatch overwrites the 4 bytes at the current cursor
// position with v, in place, without growing or shrinking the buffer. It is
// used to back-patch length/offset header fields once the body that follows
// them has been written (the complex-object header of §3).
func (s *Stream) WriteI32AtCursorForPatch(v int32) {
	binary.LittleEndian.PutUint32(s.buf[s.pos:s.pos+4], uint32(v))
}

// ReadBytesAt returns a random-access slice [start:end) of the underlying
// buffer without disturbing the read cursor. Used to resolve a complex
// object's schema footer and field bodies, which are addressed by absolute
// offset rather than by sequential read order.
func (s *Stream) ReadBytesAt(start, end int) ([]byte, liberr.Error) {
	if start < 0 || end > len(s.buf) || start > end {
		return nil, ErrorTruncated.Errorf("out-of-range slice [%d:%d) of %d bytes", start, end, len(s.buf))
	}
	return s.buf[start:end], nil
}

// WriteBigEndian / ReadBigEndian : used only by UUID bodies.
func (s *Stream) WriteBigEndian(b []byte) {
	s.WriteBytes(b)
}

func (s *Stream) ReadBigEndian(n int) ([]byte, liberr.Error) {
	return s.ReadBytes(n)
}
