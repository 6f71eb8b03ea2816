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

// ScanPage is one page of a cache-wide scan: decoded (key, value) pairs plus
// the cursor id to fetch more with, when HasMore is true (§4.7).
type ScanPage struct {
	CursorID int64
	Pairs    [][2]interface{}
	HasMore  bool
}

// Scan opens a scan query over cacheID and decodes the first page.
func (s *Session) Scan(cacheID int32, partition int32, pageSize int32, local bool) (ScanPage, liberr.Error) {
	r, e := s.Do(cacheID, nil, 0, OpQueryScan, func(b *ignstream.Stream) liberr.Error {
		b.WriteI32(cacheID)
		b.WriteByte(0) // no filter object
		b.WriteI32(pageSize)
		b.WriteI32(partition)
		b.WriteByte(boolByte(local))
		return nil
	})
	if e != nil {
		return ScanPage{}, e
	}
	return decodeScanPage(r)
}

// ScanCursorGetPage fetches the next page of an open scan cursor.
func (s *Session) ScanCursorGetPage(cursorID int64) (ScanPage, liberr.Error) {
	r, e := s.Do(0, nil, 0, OpQueryScanCursorGetPage, func(b *ignstream.Stream) liberr.Error {
		b.WriteI64(cursorID)
		return nil
	})
	if e != nil {
		return ScanPage{}, e
	}
	page, e := decodeScanPage(r)
	page.CursorID = cursorID
	return page, e
}

func decodeScanPage(r *ignstream.Stream) (ScanPage, liberr.Error) {
	var page ScanPage
	cursorID, e := r.ReadI64()
	if e != nil {
		return page, e
	}
	page.CursorID = cursorID

	rowCount, e := r.ReadI32()
	if e != nil {
		return page, e
	}
	page.Pairs = make([][2]interface{}, rowCount)
	for i := int32(0); i < rowCount; i++ {
		k, e := ignval.Decode(r)
		if e != nil {
			return page, e
		}
		v, e := ignval.Decode(r)
		if e != nil {
			return page, e
		}
		page.Pairs[i] = [2]interface{}{k, v}
	}

	more, e := r.ReadByte()
	if e != nil {
		return page, e
	}
	page.HasMore = more != 0
	return page, nil
}
