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

// Package affinity replicates, client-side, the server's rendezvous-hash
// key -> partition -> primary-node mapping, so routable operations can reach
// the right node directly instead of bouncing through a proxy hop.
package affinity

import (
	"github.com/gridgain/ignite-go-client/binary/ignval"
)

// Partition computes the rendezvous-affinity partition for a key's hashcode
// against a cache with partitionCount partitions. The mixing constants are
// fixed by the wire contract and must be reproduced exactly (§4.5).
func Partition(hashcode int32, partitionCount int32) int32 {
	h := uint32(hashcode)
	mixed := int32((h ^ (h >> 16)) & 0x7fffffff)
	return mixed % partitionCount
}

// KeyHashcode resolves the routing hashcode for an arbitrary decoded key
// value. Complex objects route on their declared affinity key field when one
// is known for the type; everything else routes on its own hashcode.
func KeyHashcode(key interface{}, affinityFieldID int32, hasAffinityField bool) (int32, error) {
	if co, ok := key.(*ignval.ComplexObject); ok && hasAffinityField {
		v, present, e := co.FieldByID(affinityFieldID)
		if e != nil {
			return 0, e
		}
		if present {
			return Hashcode(v)
		}
	}
	return Hashcode(key)
}

// Hashcode computes the Java-compatible hashcode the server would compute
// for the same value, for the subset of types that can be affinity keys.
func Hashcode(v interface{}) (int32, error) {
	switch t := v.(type) {
	case int8:
		return int32(t), nil
	case int16:
		return int32(t), nil
	case int32:
		return t, nil
	case int64:
		return int32(t ^ (t >> 32)), nil
	case string:
		return ignval.JavaStringHash(t), nil
	case bool:
		if t {
			return 1231, nil
		}
		return 1237, nil
	case ignval.UUID:
		return uuidHashcode(t), nil
	case *ignval.ComplexObject:
		return t.Hash, nil
	default:
		return 0, errUnsupportedKeyType(v)
	}
}

func errUnsupportedKeyType(v interface{}) error {
	return ErrorMalformedPartitionMap.Errorf("key type %T cannot be used as an affinity key", v)
}

func uuidHashcode(u ignval.UUID) int32 {
	var msb, lsb int64
	for i := 0; i < 8; i++ {
		msb = msb<<8 | int64(u[i])
	}
	for i := 8; i < 16; i++ {
		lsb = lsb<<8 | int64(u[i])
	}
	hilo := msb ^ lsb
	return int32(hilo) ^ int32(hilo>>32)
}
