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

package conn

import (
	"context"
	"time"
)

// Reconnector drives background reconnect attempts for one Connection with a
// bounded exponential backoff, until the Connection comes back alive or the
// context passed to Run is cancelled (pool shutdown).
type Reconnector struct {
	Conn       *Connection
	BaseDelay  time.Duration
	MaxDelay   time.Duration
	MaxRetries int
}

// NewReconnector applies the defaults the pool uses unless overridden.
func NewReconnector(c *Connection) *Reconnector {
	return &Reconnector{
		Conn:       c,
		BaseDelay:  250 * time.Millisecond,
		MaxDelay:   30 * time.Second,
		MaxRetries: 0, // 0 = unbounded, stopped only by ctx cancellation
	}
}

// Run blocks the calling goroutine, retrying Connect with backoff until it
// succeeds or ctx is done. Intended to be launched with `go`.
func (r *Reconnector) Run(ctx context.Context) {
	delay := r.BaseDelay
	attempt := 0
	for {
		if ctx.Err() != nil {
			return
		}
		if !r.Conn.Failed() && !r.Conn.Closed() {
			return
		}
		if e := r.Conn.Connect(ctx); e == nil {
			return
		} else if l := r.Conn.log(); l != nil {
			l.Debug("reconnect attempt failed", nil, r.Conn.Addr(), attempt, e.Error())
		}
		attempt++
		if r.MaxRetries > 0 && attempt >= r.MaxRetries {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
		delay *= 2
		if delay > r.MaxDelay {
			delay = r.MaxDelay
		}
	}
}
