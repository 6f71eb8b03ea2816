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

// Package binregistry is the process-wide, read-mostly map from a complex
// object's type_id to its name and known field schemas, built up lazily as
// binary types are written or fetched from the cluster.
package binregistry

import (
	"sync/atomic"

	liberr "github.com/gridgain/ignite-go-client/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// TypeSchema is one declared field layout for a type_id.
type TypeSchema struct {
	SchemaID int32
	FieldIDs []int32
}

// TypeEntry is everything locally known about one type_id.
type TypeEntry struct {
	TypeName string
	Schemas  map[int32]TypeSchema // schema_id -> layout
}

func cloneEntry(e TypeEntry) TypeEntry {
	return TypeEntry{TypeName: e.TypeName, Schemas: maps.Clone(e.Schemas)}
}

// Registry is copy-on-write under a single writer path (Put*), read
// lock-free via an atomic pointer swap — the same snapshot discipline the
// affinity partition-map store uses.
type Registry struct {
	ptr atomic.Pointer[map[int32]TypeEntry]
}

// New returns an empty Registry.
func New() *Registry {
	r := &Registry{}
	empty := make(map[int32]TypeEntry)
	r.ptr.Store(&empty)
	return r
}

func (r *Registry) snapshot() map[int32]TypeEntry {
	return *r.ptr.Load()
}

// Get returns the known entry for typeID.
func (r *Registry) Get(typeID int32) (TypeEntry, bool) {
	e, ok := r.snapshot()[typeID]
	return e, ok
}

// GetSchema returns the field layout for (typeID, schemaID).
func (r *Registry) GetSchema(typeID, schemaID int32) (TypeSchema, liberr.Error) {
	e, ok := r.Get(typeID)
	if !ok {
		return TypeSchema{}, ErrorUnknownType.Errorf("type_id %d", typeID)
	}
	s, ok := e.Schemas[schemaID]
	if !ok {
		return TypeSchema{}, ErrorUnknownSchema.Errorf("type_id %d schema_id %d", typeID, schemaID)
	}
	return s, nil
}

// Put registers (or confirms) one type_name/schema combination. It is safe
// for concurrent callers; writers race on a compare-and-swap retry loop
// rather than a mutex, matching the cache package's copy-on-write snapshot
// update for its generic item store.
func (r *Registry) Put(typeID int32, typeName string, schemaID int32, fieldIDs []int32) liberr.Error {
	for {
		old := r.ptr.Load()
		cur := *old
		entry, ok := cur[typeID]
		if !ok {
			entry = TypeEntry{TypeName: typeName, Schemas: map[int32]TypeSchema{}}
		} else {
			entry = cloneEntry(entry)
		}
		if existing, ok := entry.Schemas[schemaID]; ok && !sameFields(existing.FieldIDs, fieldIDs) {
			return ErrorSchemaConflict.Errorf("type_id %d schema_id %d", typeID, schemaID)
		}
		entry.Schemas[schemaID] = TypeSchema{SchemaID: schemaID, FieldIDs: fieldIDs}

		next := maps.Clone(cur)
		if next == nil {
			next = make(map[int32]TypeEntry, 1)
		}
		next[typeID] = entry

		if r.ptr.CompareAndSwap(old, &next) {
			return nil
		}
	}
}

func sameFields(a, b []int32) bool {
	return slices.Equal(a, b)
}
