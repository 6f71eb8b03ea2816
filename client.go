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

// Package ignite is the public façade over the pool/request/cursor/
// binregistry layers: one Client per cluster, one Cache handle per named
// cache, built from an ignite/igconfig.Config.
package ignite

import (
	"github.com/gridgain/ignite-go-client/binary/ignval"
	"github.com/gridgain/ignite-go-client/igconfig"
	"github.com/gridgain/ignite-go-client/request"
	liberr "github.com/gridgain/ignite-go-client/errors"
)

// Client owns one cluster's connection pool and request session. One
// process typically holds one Client per cluster it talks to.
type Client struct {
	sess *igconfig.Session
}

// Connect builds and starts a Client from a validated Config: dials every
// seed, keeps whichever answer, and negotiates the protocol context.
func Connect(cfg *igconfig.Config) (*Client, liberr.Error) {
	if e := cfg.Validate(); e != nil {
		return nil, e
	}

	sess, e := cfg.New()
	if e != nil {
		return nil, e
	}

	return &Client{sess: sess}, nil
}

// Close releases every connection in the pool. Safe to call once; further
// use of any Cache handle obtained from this Client will fail at dispatch
// time once the pool reports no alive connections.
func (c *Client) Close() {
	c.sess.Pool.Close()
}

// Cache returns a handle bound to the given cache id, with the Client's
// default expiry policy.
func (c *Client) Cache(cacheID int32) *Cache {
	return &Cache{client: c, cacheID: cacheID, expiry: c.sess.Expiry}
}

// CacheByName returns a handle bound to the cache id derived from name the
// same way the server does (the case-insensitive Java string hash).
func (c *Client) CacheByName(name string) *Cache {
	return c.Cache(ignval.EntityID(name))
}

// WithExpiry returns a copy of the handle using the given TTL policy for
// every key-value operation it issues (Put, Get, ContainsKey, GetAndPut,
// PutIfAbsent, RemoveKey), instead of the Client's default.
func (c *Cache) WithExpiry(e request.ExpiryPolicy) *Cache {
	cp := *c
	cp.expiry = e
	return &cp
}

func (c *Client) session() *request.Session {
	return c.sess.Request
}
