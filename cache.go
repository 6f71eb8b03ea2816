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

package ignite

import (
	"github.com/gridgain/ignite-go-client/binary/ignval"
	"github.com/gridgain/ignite-go-client/cursor"
	"github.com/gridgain/ignite-go-client/request"
	liberr "github.com/gridgain/ignite-go-client/errors"
)

// Cache is a handle bound to one cache id (the case-insensitive Java string
// hash of its name, EntityID, §4.5), scoped
// to one Client and one expiry policy. Stateless beyond that — safe to keep
// and reuse across goroutines, since every call dispatches through the
// Client's pool.
type Cache struct {
	client  *Client
	cacheID int32
	expiry  request.ExpiryPolicy
}

func (c *Cache) opts(keyHint, valHint ignval.TypeCode) request.KeyValueOpts {
	return request.KeyValueOpts{KeyHint: keyHint, ValueHint: valHint, Expiry: c.expiry}
}

// Put writes key/value, letting the codec infer the wire type from the Go
// value (a zero TypeCode hint means "use the default").
func (c *Cache) Put(key, value interface{}) liberr.Error {
	return c.client.session().Put(c.cacheID, key, value, c.opts(0, 0))
}

// Get reads the value for key, or nil if absent.
func (c *Cache) Get(key interface{}) (interface{}, liberr.Error) {
	return c.client.session().Get(c.cacheID, key, c.opts(0, 0))
}

// PutHint writes key/value narrowed to the given wire type hints (e.g. a
// ShortObject value instead of the default LongObject for an int), for
// callers trading a larger Go type for a smaller wire footprint.
func (c *Cache) PutHint(key, value interface{}, keyHint, valueHint ignval.TypeCode) liberr.Error {
	return c.client.session().Put(c.cacheID, key, value, c.opts(keyHint, valueHint))
}

// GetHint reads the value for a key narrowed to keyHint — needed when the
// same Go key value was written under more than one wire type (§4.6).
func (c *Cache) GetHint(key interface{}, keyHint ignval.TypeCode) (interface{}, liberr.Error) {
	return c.client.session().Get(c.cacheID, key, c.opts(keyHint, 0))
}

// ContainsKey reports whether key is present.
func (c *Cache) ContainsKey(key interface{}) (bool, liberr.Error) {
	return c.client.session().ContainsKey(c.cacheID, key, c.opts(0, 0))
}

// GetAndPut writes value, returning the previous value.
func (c *Cache) GetAndPut(key, value interface{}) (interface{}, liberr.Error) {
	return c.client.session().GetAndPut(c.cacheID, key, value, c.opts(0, 0))
}

// PutIfAbsent writes value only if key is not already present.
func (c *Cache) PutIfAbsent(key, value interface{}) (bool, liberr.Error) {
	return c.client.session().PutIfAbsent(c.cacheID, key, value, c.opts(0, 0))
}

// RemoveKey removes key, reporting whether it was present.
func (c *Cache) RemoveKey(key interface{}) (bool, liberr.Error) {
	return c.client.session().RemoveKey(c.cacheID, key, c.opts(0, 0))
}

// RemoveAll clears every entry.
func (c *Cache) RemoveAll() liberr.Error {
	return c.client.session().RemoveAll(c.cacheID)
}

// Size reads the cache's current entry count across the given peek modes.
func (c *Cache) Size(peekModes []int8) (int64, liberr.Error) {
	return c.client.session().GetSize(c.cacheID, peekModes)
}

// Scan opens a whole-cache scan and returns a page-buffered cursor of
// (key, value) pairs, fetching further pages lazily on Next/Drain.
func (c *Cache) Scan(partition, pageSize int32, local bool) (*cursor.Cursor[cursor.Pair], liberr.Error) {
	return cursor.OpenScan(c.client.session(), c.cacheID, partition, pageSize, local)
}

// SQLFields issues a sql_fields query against this cache's schema and
// returns the header (if requested) plus a page-buffered row cursor.
func (c *Cache) SQLFields(q request.SQLFieldsQuery) (cursor.SQLFieldsResult, liberr.Error) {
	return cursor.OpenSQLFields(c.client.session(), c.cacheID, q)
}
