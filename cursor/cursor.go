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

// Package cursor wraps server-side paged query results (scan, SQL,
// SQL-fields) in a single page-buffered, close-once iterator shape, adapted
// from the teacher's atomically-guarded cache item handle.
package cursor

import (
	"sync"

	liberr "github.com/gridgain/ignite-go-client/errors"
)

// PageFetcher fetches one more page of T given a cursor id, returning the
// items, whether another page follows, and any error.
type PageFetcher[T any] func(cursorID int64) ([]T, bool, liberr.Error)

// Closer releases server-side cursor resources (resource_close, §4.7).
type Closer func(cursorID int64) liberr.Error

// Cursor is a page-buffered iterator over one open server cursor. Next and
// Close are serialized by an internal mutex, so concurrent calls from
// multiple goroutines do not interleave.
type Cursor[T any] struct {
	mu      sync.Mutex
	id      int64
	buf     []T
	pos     int
	hasMore bool
	fetch   PageFetcher[T]
	closeFn Closer
	closed  bool
}

// New wraps the first page already fetched by the opening request (scan,
// sql, sql-fields) into a Cursor that transparently fetches subsequent pages.
func New[T any](cursorID int64, firstPage []T, hasMore bool, fetch PageFetcher[T], closeFn Closer) *Cursor[T] {
	return &Cursor[T]{id: cursorID, buf: firstPage, hasMore: hasMore, fetch: fetch, closeFn: closeFn}
}

// Next returns the next item, fetching a new page from the server when the
// buffered page is exhausted. ok is false once the cursor is drained.
func (c *Cursor[T]) Next() (T, bool, liberr.Error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	if c.closed {
		return zero, false, ErrorCursorClosed.Error(nil)
	}

	for c.pos >= len(c.buf) {
		if !c.hasMore {
			return zero, false, nil
		}
		page, more, e := c.fetch(c.id)
		if e != nil {
			return zero, false, e
		}
		c.buf = page
		c.pos = 0
		c.hasMore = more
		if len(page) == 0 && !more {
			return zero, false, nil
		}
	}

	v := c.buf[c.pos]
	c.pos++
	return v, true, nil
}

// Close releases the server-side cursor. Safe to call more than once. When
// the cursor has no more pages the server already released the resource on
// the last fetch, so this is a no-op (§4.7); otherwise it issues
// resource_close(cursor_id).
func (c *Cursor[T]) Close() liberr.Error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	if c.closeFn == nil || !c.hasMore {
		return nil
	}
	return c.closeFn(c.id)
}

// Drain consumes every remaining item via Next into a slice; for small
// result sets where the caller doesn't need true streaming.
func (c *Cursor[T]) Drain() ([]T, liberr.Error) {
	var out []T
	for {
		v, ok, e := c.Next()
		if e != nil {
			return out, e
		}
		if !ok {
			return out, nil
		}
		out = append(out, v)
	}
}
