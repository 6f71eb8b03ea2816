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

package pool

import (
	"github.com/gridgain/ignite-go-client/conn"
	liberr "github.com/gridgain/ignite-go-client/errors"
)

// Op is one request/response round-trip against a chosen Connection. It
// returns the response body (post length-prefix) or an error.
type Op func(c *conn.Connection) ([]byte, liberr.Error)

// Dispatch picks a connection for (cacheID, key, typeID) and runs op,
// retrying on a different alive node up to FailoverRetries times when the
// failure is a broken connection rather than a server-returned status
// (§4.4/§7 propagation policy: only socket-level failures are retried here).
func (p *Pool) Dispatch(cacheID int32, key interface{}, typeID int32, op Op) ([]byte, liberr.Error) {
	retries := p.FailoverRetries()
	tried := map[*conn.Connection]bool{}

	var lastErr liberr.Error
	for attempt := 0; attempt <= retries; attempt++ {
		c, e := p.Pick(cacheID, key, typeID)
		if e != nil {
			if lastErr != nil {
				return nil, lastErr
			}
			return nil, e
		}
		if tried[c] {
			if alt, e := p.RandomNode(); e == nil && !tried[alt] {
				c = alt
			} else {
				break
			}
		}
		tried[c] = true

		if !c.Acquire() {
			continue
		}
		body, e := op(c)
		c.Release()
		if e == nil {
			return body, nil
		}
		lastErr = e
		if !c.Failed() {
			// server-returned status, not a socket failure: never retried
			return nil, e
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, ErrorFailoverExhausted.Error(nil)
}
