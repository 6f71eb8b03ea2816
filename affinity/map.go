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

package affinity

import (
	"sync"

	cacheitem "github.com/gridgain/ignite-go-client/cache/item"
	"golang.org/x/sync/singleflight"
)

// Version is the server-assigned partition-map version for one cache; a new
// value on a response header means the cached snapshot may be stale (§4.4).
type Version struct {
	Major int64
	Minor int32
}

// AffinityKeyField maps a complex object's type_id to the field_id that
// should be used as its routing key instead of its own hashcode.
type AffinityKeyField struct {
	TypeID  int32
	FieldID int32
}

// Snapshot is one immutable partition table for one cache, published
// atomically by the refresher and read without locking by dispatch (§5.2).
type Snapshot struct {
	Version        Version
	PartitionCount int32
	Partitions     [][16]byte      // index = partition id, value = node uuid
	KeyFields      map[int32]int32 // type_id -> affinity field_id
}

// PrimaryForPartition returns the node uuid owning partition p, or the zero
// uuid if out of range.
func (s *Snapshot) PrimaryForPartition(p int32) ([16]byte, bool) {
	if s == nil || p < 0 || int(p) >= len(s.Partitions) {
		return [16]byte{}, false
	}
	return s.Partitions[p], true
}

// AffinityField reports the routing field_id registered for typeID, if any.
func (s *Snapshot) AffinityField(typeID int32) (int32, bool) {
	if s == nil || s.KeyFields == nil {
		return 0, false
	}
	f, ok := s.KeyFields[typeID]
	return f, ok
}

// cacheEntry holds a cache's snapshot in a never-expiring cache item: Clean
// (called on topology-change invalidation) atomically clears it back to "no
// snapshot known" without a separate nil-pointer special case.
type cacheEntry struct {
	it cacheitem.CacheItem[*Snapshot]
}

func newCacheEntry() *cacheEntry {
	return &cacheEntry{it: cacheitem.New[*Snapshot](0, nil)}
}

// Store is the per-pool collection of per-cache partition snapshots. A
// single refresher goroutine swaps pointers; many dispatch goroutines read
// them lock-free by taking a snapshot reference at the start of a lookup.
type Store struct {
	mu      sync.RWMutex
	caches  map[int32]*cacheEntry
	group   singleflight.Group
	Refresh func(cacheID int32) (*Snapshot, error)
}

// NewStore builds an empty Store. Refresh must be set by the caller (the
// pool wires it to a cache_get_node_partitions request) before Lookup is
// used on a cache with no snapshot yet.
func NewStore() *Store {
	return &Store{caches: make(map[int32]*cacheEntry)}
}

func (st *Store) entry(cacheID int32) *cacheEntry {
	st.mu.RLock()
	e, ok := st.caches[cacheID]
	st.mu.RUnlock()
	if ok {
		return e
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	if e, ok = st.caches[cacheID]; ok {
		return e
	}
	e = newCacheEntry()
	st.caches[cacheID] = e
	return e
}

// Get returns the current snapshot for a cache, or nil if none is known yet.
func (st *Store) Get(cacheID int32) *Snapshot {
	snap, ok := st.entry(cacheID).it.Load()
	if !ok {
		return nil
	}
	return snap
}

// Set publishes a new snapshot for a cache, replacing the old one atomically.
func (st *Store) Set(cacheID int32, snap *Snapshot) {
	st.entry(cacheID).it.Store(snap)
}

// Invalidate forgets the current snapshot for a cache, forcing the next
// Lookup to go through RefreshNow (used when a response header signals a
// topology change for that cache, §4.4).
func (st *Store) Invalidate(cacheID int32) {
	st.entry(cacheID).it.Clean()
}

// RefreshNow fetches a fresh snapshot for cacheID, coalescing concurrent
// callers for the same cache into a single in-flight cache_get_node_partitions
// request via singleflight, then publishes and returns it.
func (st *Store) RefreshNow(cacheID int32) (*Snapshot, error) {
	if st.Refresh == nil {
		return nil, ErrorUnknownCache.Error(nil)
	}
	key := keyFor(cacheID)
	v, err, _ := st.group.Do(key, func() (interface{}, error) {
		snap, e := st.Refresh(cacheID)
		if e != nil {
			return nil, e
		}
		st.Set(cacheID, snap)
		return snap, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Snapshot), nil
}

func keyFor(cacheID int32) string {
	var b [4]byte
	b[0] = byte(cacheID)
	b[1] = byte(cacheID >> 8)
	b[2] = byte(cacheID >> 16)
	b[3] = byte(cacheID >> 24)
	return string(b[:])
}
