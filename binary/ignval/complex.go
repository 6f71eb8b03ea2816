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

const complexObjectVersion = 1

// complexField is one named, typed field of a ComplexObject, in declaration
// order. Callers derive a field_id from a field name (normally with
// EntityID); ComplexObject itself only stores ids.
type complexField struct {
	id   int32
	body []byte
}

// ComplexObject is the dynamically-schema'd composite value of §3. It is
// built with Builder and read back by field id (FieldByID); there is no
// lookup by field name. It is never modeled as a native Go struct.
type ComplexObject struct {
	TypeName string
	TypeID   int32
	SchemaID int32
	Hash     int32
	fields   []complexField
}

// Builder incrementally assembles a ComplexObject field by field, in the
// order fields are set, which becomes the wire declaration order.
type Builder struct {
	typeName string
	fields   []complexField
	names    []int32
}

// NewBuilder starts a ComplexObject builder for the given type name.
func NewBuilder(typeName string) *Builder {
	return &Builder{typeName: typeName}
}

// SetField encodes value as a standalone tagged value and appends it as the
// field identified by fieldID (normally EntityID(fieldName)).
func (b *Builder) SetField(fieldID int32, value interface{}) liberr.Error {
	s := ignstream.New()
	if e := Encode(s, value); e != nil {
		return e
	}
	b.fields = append(b.fields, complexField{id: fieldID, body: s.Bytes()})
	b.names = append(b.names, fieldID)
	return nil
}

// Build finalizes the object, computing schema_id, type_id and the object
// hash over the concatenated field bodies.
func (b *Builder) Build() *ComplexObject {
	var bodies []byte
	for _, f := range b.fields {
		bodies = append(bodies, f.body...)
	}
	return &ComplexObject{
		TypeName: b.typeName,
		TypeID:   EntityID(b.typeName),
		SchemaID: SchemaID(b.names),
		Hash:     ObjectHash(bodies),
		fields:   append([]complexField{}, b.fields...),
	}
}

// FieldIDs returns the ordered list of field ids as they appear on the wire.
func (o *ComplexObject) FieldIDs() []int32 {
	out := make([]int32, len(o.fields))
	for i, f := range o.fields {
		out[i] = f.id
	}
	return out
}

// FieldByID decodes and returns the value stored under fieldID.
func (o *ComplexObject) FieldByID(fieldID int32) (interface{}, bool, liberr.Error) {
	for _, f := range o.fields {
		if f.id == fieldID {
			v, e := Decode(ignstream.Wrap(f.body))
			return v, true, e
		}
	}
	return nil, false, nil
}

// EncodeComplexObject writes the full wire layout of §3: header, field
// bodies in declaration order, then the schema footer of (field_id, offset)
// pairs. length and schema_offset are both relative to the object's leading
// type-code byte, matching how the header fields are defined in §3.
func EncodeComplexObject(s *ignstream.Stream, o *ComplexObject) liberr.Error {
	objStart := s.Len()

	s.WriteByte(byte(CodeComplexObj))
	s.WriteByte(complexObjectVersion)
	s.WriteI16(0) // flags: no compact footer / raw-data offset used here

	s.WriteI32(o.TypeID)
	s.WriteI32(o.Hash)

	lengthPos := s.Len()
	s.WriteI32(0) // length placeholder, patched below
	s.WriteI32(o.SchemaID)
	schemaOffsetPos := s.Len()
	s.WriteI32(0) // schema_offset placeholder, patched below

	fieldsStart := s.Len()
	offsets := make([]int32, len(o.fields))
	for i, f := range o.fields {
		offsets[i] = int32(s.Len() - fieldsStart)
		s.WriteBytes(f.body)
	}

	schemaOffset := int32(s.Len() - objStart)
	for i, f := range o.fields {
		s.WriteI32(f.id)
		s.WriteI32(offsets[i])
	}

	total := int32(s.Len() - objStart)
	patchI32(s, lengthPos, total)
	patchI32(s, schemaOffsetPos, schemaOffset)
	return nil
}

func patchI32(s *ignstream.Stream, at int, v int32) {
	saved := s.Pos()
	s.Seek(at)
	s.WriteI32AtCursorForPatch(v)
	s.Seek(saved)
}

// DecodeComplexObject reads the §3 layout back, tolerant of any declared
// field order via the schema footer.
func DecodeComplexObject(s *ignstream.Stream) (*ComplexObject, liberr.Error) {
	if _, e := s.ReadByte(); e != nil { // version
		return nil, e
	}
	if _, e := s.ReadI16(); e != nil { // flags
		return nil, e
	}
	typeID, e := s.ReadI32()
	if e != nil {
		return nil, e
	}
	hash, e := s.ReadI32()
	if e != nil {
		return nil, e
	}
	length, e := s.ReadI32()
	if e != nil {
		return nil, e
	}
	schemaID, e := s.ReadI32()
	if e != nil {
		return nil, e
	}
	schemaOffset, e := s.ReadI32()
	if e != nil {
		return nil, e
	}

	// Header consumed so far: type_code(1) + version(1) + flags(2) +
	// type_id(4) + hash(4) + length(4) + schema_id(4) + schema_offset(4) = 24.
	const headerBytes = 1 + 1 + 2 + 4 + 4 + 4 + 4 + 4
	objStart := s.Pos() - headerBytes
	fieldsStart := s.Pos()

	footer, e := s.ReadBytesAt(objStart+int(schemaOffset), objStart+int(length))
	if e != nil {
		return nil, e
	}

	var fieldIDs []int32
	var fields []complexField
	footerStream := ignstream.Wrap(footer)
	for footerStream.Remaining() >= 8 {
		fid, e := footerStream.ReadI32()
		if e != nil {
			return nil, e
		}
		off, e := footerStream.ReadI32()
		if e != nil {
			return nil, e
		}
		fieldIDs = append(fieldIDs, fid)
		fields = append(fields, complexField{id: fid, body: nil, /* resolved below */})
		_ = off
	}

	// Re-walk the footer a second time now that we know how many fields there
	// are, resolving each field's byte range from its offset to the next
	// field's offset (or to the schema footer for the last field).
	footerStream = ignstream.Wrap(footer)
	offs := make([]int32, len(fieldIDs))
	for i := range fieldIDs {
		if _, e := footerStream.ReadI32(); e != nil {
			return nil, e
		}
		o, e := footerStream.ReadI32()
		if e != nil {
			return nil, e
		}
		offs[i] = o
	}
	for i := range fields {
		start := fieldsStart + int(offs[i])
		var end int
		if i+1 < len(offs) {
			end = fieldsStart + int(offs[i+1])
		} else {
			end = objStart + int(schemaOffset)
		}
		body, e := s.ReadBytesAt(start, end)
		if e != nil {
			return nil, e
		}
		fields[i].body = body
	}

	s.Seek(objStart + int(length))

	return &ComplexObject{
		TypeID:   typeID,
		SchemaID: schemaID,
		Hash:     hash,
		fields:   fields,
	}, nil
}
