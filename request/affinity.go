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
	"github.com/gridgain/ignite-go-client/affinity"
	"github.com/gridgain/ignite-go-client/binary/ignstream"
	liberr "github.com/gridgain/ignite-go-client/errors"
)

// GetNodePartitions fetches and decodes cache_get_node_partitions for the
// given cache ids, building the affinity.Snapshot the Store.Refresh hook
// returns (§4.5).
func (s *Session) GetNodePartitions(cacheIDs []int32) (map[int32]*affinity.Snapshot, liberr.Error) {
	r, e := s.Do(0, nil, 0, OpCacheGetNodePartitions, func(b *ignstream.Stream) liberr.Error {
		b.WriteI32(int32(len(cacheIDs)))
		for _, id := range cacheIDs {
			b.WriteI32(id)
		}
		return nil
	})
	if e != nil {
		return nil, e
	}

	groupCount, e := r.ReadI32()
	if e != nil {
		return nil, e
	}

	byPartitions := make(map[int32][][16]byte)
	versions := make(map[int32]affinity.Version)
	caches := make(map[int32]bool)

	for g := int32(0); g < groupCount; g++ {
		major, e := r.ReadI64()
		if e != nil {
			return nil, e
		}
		minor, e := r.ReadI32()
		if e != nil {
			return nil, e
		}
		cacheCountInGroup, e := r.ReadI32()
		if e != nil {
			return nil, e
		}
		groupCacheIDs := make([]int32, cacheCountInGroup)
		for i := range groupCacheIDs {
			if groupCacheIDs[i], e = r.ReadI32(); e != nil {
				return nil, e
			}
		}
		partitionCount, e := r.ReadI32()
		if e != nil {
			return nil, e
		}
		nodeCount, e := r.ReadI32()
		if e != nil {
			return nil, e
		}
		partitions := make([][16]byte, partitionCount)
		for n := int32(0); n < nodeCount; n++ {
			uuidBytes, e := r.ReadBigEndian(16)
			if e != nil {
				return nil, e
			}
			var uuid [16]byte
			copy(uuid[:], uuidBytes)
			partCountForNode, e := r.ReadI32()
			if e != nil {
				return nil, e
			}
			for i := int32(0); i < partCountForNode; i++ {
				p, e := r.ReadI32()
				if e != nil {
					return nil, e
				}
				if int(p) < len(partitions) {
					partitions[p] = uuid
				}
			}
		}
		for _, id := range groupCacheIDs {
			byPartitions[id] = partitions
			versions[id] = affinity.Version{Major: major, Minor: minor}
			caches[id] = true
		}
	}

	keyFieldCacheCount, e := r.ReadI32()
	if e != nil {
		return nil, e
	}
	keyFields := make(map[int32]map[int32]int32) // cacheID -> type_id -> field_id
	for i := int32(0); i < keyFieldCacheCount; i++ {
		cacheID, e := r.ReadI32()
		if e != nil {
			return nil, e
		}
		n, e := r.ReadI32()
		if e != nil {
			return nil, e
		}
		m := make(map[int32]int32, n)
		for j := int32(0); j < n; j++ {
			typeID, e := r.ReadI32()
			if e != nil {
				return nil, e
			}
			fieldID, e := r.ReadI32()
			if e != nil {
				return nil, e
			}
			m[typeID] = fieldID
		}
		keyFields[cacheID] = m
	}

	out := make(map[int32]*affinity.Snapshot, len(caches))
	for id := range caches {
		out[id] = &affinity.Snapshot{
			Version:        versions[id],
			PartitionCount: int32(len(byPartitions[id])),
			Partitions:     byPartitions[id],
			KeyFields:      keyFields[id],
		}
	}
	return out, nil
}
