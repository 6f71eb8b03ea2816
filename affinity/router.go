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

// Route is the outcome of resolving a key to a primary node.
type Route struct {
	NodeUUID  [16]byte
	Partition int32
	Found     bool
}

// Resolve takes a snapshot reference up front (§5.2 ordering: a dispatch
// holds one snapshot for its whole call) and computes the primary node for
// key. It never mutates the Store; callers fall back to random-node mode
// when Found is false.
func Resolve(snap *Snapshot, key interface{}, typeID int32) (Route, error) {
	if snap == nil || snap.PartitionCount == 0 {
		return Route{}, nil
	}

	fieldID, hasField := snap.AffinityField(typeID)
	hc, err := KeyHashcode(key, fieldID, hasField)
	if err != nil {
		return Route{}, err
	}

	part := Partition(hc, snap.PartitionCount)
	uuid, ok := snap.PrimaryForPartition(part)
	if !ok {
		return Route{Partition: part}, nil
	}
	return Route{NodeUUID: uuid, Partition: part, Found: true}, nil
}

// Lookup resolves a route for key against cacheID, triggering a synchronous
// refresh when no snapshot is cached yet; a stale-but-present snapshot is
// used optimistically (the caller falls back to random-node mode on a miss
// at the chosen connection, per §4.4's "fall through to random-node").
func (st *Store) Lookup(cacheID int32, key interface{}, typeID int32) (Route, error) {
	snap := st.Get(cacheID)
	if snap == nil {
		var err error
		snap, err = st.RefreshNow(cacheID)
		if err != nil {
			return Route{}, err
		}
	}
	return Resolve(snap, key, typeID)
}
