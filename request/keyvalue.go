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

// KeyValueOpts carries the per-call type hints and expiry policy §4.6
// describes for cache operations.
type KeyValueOpts struct {
	KeyHint   ignval.TypeCode
	ValueHint ignval.TypeCode
	Expiry    ExpiryPolicy
}

func writeCacheHeader(s *ignstream.Stream, cacheID int32, opts KeyValueOpts) {
	s.WriteI32(cacheID)
	if !opts.Expiry.isDefault() {
		s.WriteI8(1)
		opts.Expiry.writePrelude(s)
	} else {
		s.WriteI8(0)
	}
}

// Put writes cache_put(cache_id, key, value).
func (s *Session) Put(cacheID int32, key, value interface{}, opts KeyValueOpts) liberr.Error {
	_, e := s.Do(cacheID, key, typeIDOf(key), OpCachePut, func(b *ignstream.Stream) liberr.Error {
		writeCacheHeader(b, cacheID, opts)
		if e := ignval.EncodeHint(b, key, opts.KeyHint); e != nil {
			return e
		}
		return ignval.EncodeHint(b, value, opts.ValueHint)
	})
	return e
}

// Get reads cache_get(cache_id, key) -> value.
func (s *Session) Get(cacheID int32, key interface{}, opts KeyValueOpts) (interface{}, liberr.Error) {
	r, e := s.Do(cacheID, key, typeIDOf(key), OpCacheGet, func(b *ignstream.Stream) liberr.Error {
		writeCacheHeader(b, cacheID, opts)
		return ignval.EncodeHint(b, key, opts.KeyHint)
	})
	if e != nil {
		return nil, e
	}
	return ignval.Decode(r)
}

// ContainsKey reads cache_contains_key(cache_id, key) -> bool.
func (s *Session) ContainsKey(cacheID int32, key interface{}, opts KeyValueOpts) (bool, liberr.Error) {
	r, e := s.Do(cacheID, key, typeIDOf(key), OpCacheContainsKey, func(b *ignstream.Stream) liberr.Error {
		writeCacheHeader(b, cacheID, opts)
		return ignval.EncodeHint(b, key, opts.KeyHint)
	})
	if e != nil {
		return false, e
	}
	v, e := r.ReadByte()
	if e != nil {
		return false, e
	}
	return v != 0, nil
}

// GetAndPut reads cache_get_and_put(cache_id, key, value) -> previous value.
func (s *Session) GetAndPut(cacheID int32, key, value interface{}, opts KeyValueOpts) (interface{}, liberr.Error) {
	r, e := s.Do(cacheID, key, typeIDOf(key), OpCacheGetAndPut, func(b *ignstream.Stream) liberr.Error {
		writeCacheHeader(b, cacheID, opts)
		if e := ignval.EncodeHint(b, key, opts.KeyHint); e != nil {
			return e
		}
		return ignval.EncodeHint(b, value, opts.ValueHint)
	})
	if e != nil {
		return nil, e
	}
	return ignval.Decode(r)
}

// PutIfAbsent reads cache_put_if_absent(cache_id, key, value) -> bool.
func (s *Session) PutIfAbsent(cacheID int32, key, value interface{}, opts KeyValueOpts) (bool, liberr.Error) {
	r, e := s.Do(cacheID, key, typeIDOf(key), OpCachePutIfAbsent, func(b *ignstream.Stream) liberr.Error {
		writeCacheHeader(b, cacheID, opts)
		if e := ignval.EncodeHint(b, key, opts.KeyHint); e != nil {
			return e
		}
		return ignval.EncodeHint(b, value, opts.ValueHint)
	})
	if e != nil {
		return false, e
	}
	v, e := r.ReadByte()
	if e != nil {
		return false, e
	}
	return v != 0, nil
}

// RemoveKey reads cache_remove_key(cache_id, key) -> bool.
func (s *Session) RemoveKey(cacheID int32, key interface{}, opts KeyValueOpts) (bool, liberr.Error) {
	r, e := s.Do(cacheID, key, typeIDOf(key), OpCacheRemoveKey, func(b *ignstream.Stream) liberr.Error {
		writeCacheHeader(b, cacheID, opts)
		return ignval.EncodeHint(b, key, opts.KeyHint)
	})
	if e != nil {
		return false, e
	}
	v, e := r.ReadByte()
	if e != nil {
		return false, e
	}
	return v != 0, nil
}

// RemoveAll reads cache_remove_all(cache_id) -> clears every entry.
func (s *Session) RemoveAll(cacheID int32) liberr.Error {
	_, e := s.Do(cacheID, nil, 0, OpCacheRemoveAll, func(b *ignstream.Stream) liberr.Error {
		b.WriteI32(cacheID)
		return nil
	})
	return e
}

// GetSize reads cache_get_size(cache_id, peek_modes) -> count.
func (s *Session) GetSize(cacheID int32, peekModes []int8) (int64, liberr.Error) {
	r, e := s.Do(cacheID, nil, 0, OpCacheGetSize, func(b *ignstream.Stream) liberr.Error {
		b.WriteI32(cacheID)
		b.WriteI32(int32(len(peekModes)))
		for _, m := range peekModes {
			b.WriteI8(m)
		}
		return nil
	})
	if e != nil {
		return 0, e
	}
	return r.ReadI64()
}

// typeIDOf resolves the affinity type_id driving routing for a key: complex
// objects carry their own, everything else routes without one (type_id 0 is
// never matched by a registered affinity key field).
func typeIDOf(key interface{}) int32 {
	if co, ok := key.(*ignval.ComplexObject); ok {
		return co.TypeID
	}
	return 0
}
