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
	"github.com/gridgain/ignite-go-client/binary/ignval"
	liberr "github.com/gridgain/ignite-go-client/errors"
)

// GetBinaryType fetches the server's canonical metadata for typeID and
// memoizes it in the local registry (§4.8).
func (s *Session) GetBinaryType(typeID int32) liberr.Error {
	r, e := s.DoBinaryType(OpGetBinaryType, func(b *ignstream.Stream) liberr.Error {
		b.WriteI32(typeID)
		return nil
	})
	if e != nil {
		return e
	}
	present, e := r.ReadByte()
	if e != nil {
		return e
	}
	if present == 0 {
		return nil
	}
	if _, e := r.ReadI32(); e != nil { // type_id, already known
		return e
	}
	name, e := ignval.Decode(r)
	if e != nil {
		return e
	}
	typeName, _ := name.(string)

	if _, e := r.ReadByte(); e != nil { // affinity key field name, presence byte; name itself ignored here
		return e
	}

	schemaCount, e := r.ReadI32()
	if e != nil {
		return e
	}
	for i := int32(0); i < schemaCount; i++ {
		schemaID, e := r.ReadI32()
		if e != nil {
			return e
		}
		n, e := r.ReadI32()
		if e != nil {
			return e
		}
		ids := make([]int32, n)
		for j := int32(0); j < n; j++ {
			if ids[j], e = r.ReadI32(); e != nil {
				return e
			}
		}
		if e := s.Registry.Put(typeID, typeName, schemaID, ids); e != nil {
			return e
		}
	}
	return nil
}

// PutBinaryType pushes a locally-built complex-object schema to the server
// (§4.8). It runs only when called explicitly (Client.RegisterBinaryType);
// a write rejected for an unknown schema is not registered and retried
// automatically.
func (s *Session) PutBinaryType(obj *ignval.ComplexObject, fieldNames map[int32]string) liberr.Error {
	_, e := s.DoBinaryType(OpPutBinaryType, func(b *ignstream.Stream) liberr.Error {
		b.WriteI32(obj.TypeID)
		if e := ignval.Encode(b, obj.TypeName); e != nil {
			return e
		}
		b.WriteByte(0) // no affinity key field declared from this path
		ids := obj.FieldIDs()
		b.WriteI32(int32(len(ids)))
		for _, id := range ids {
			b.WriteI32(id)
			name := fieldNames[id]
			if e := ignval.Encode(b, name); e != nil {
				return e
			}
			b.WriteI8(int8(ignval.CodeComplexObj)) // field type hint: opaque, resolved by schema
			b.WriteI32(-1)                         // no enum values
		}
		b.WriteByte(0) // no enum metadata
		return nil
	})
	return e
}

// GetBinaryTypeSchema fetches one schema_id's field layout for typeID and
// memoizes it (§4.8). It runs only when called explicitly; decoding a value
// with an unknown schema_id does not call it.
func (s *Session) GetBinaryTypeSchema(typeID, schemaID int32) liberr.Error {
	r, e := s.DoBinaryType(OpGetBinaryTypeSchema, func(b *ignstream.Stream) liberr.Error {
		b.WriteI32(typeID)
		b.WriteI32(schemaID)
		return nil
	})
	if e != nil {
		return e
	}
	n, e := r.ReadI32()
	if e != nil {
		return e
	}
	ids := make([]int32, n)
	for i := int32(0); i < n; i++ {
		if ids[i], e = r.ReadI32(); e != nil {
			return e
		}
	}
	entry, _ := s.Registry.Get(typeID)
	return s.Registry.Put(typeID, entry.TypeName, schemaID, ids)
}
