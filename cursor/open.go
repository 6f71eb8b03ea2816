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

package cursor

import (
	"github.com/gridgain/ignite-go-client/request"
	liberr "github.com/gridgain/ignite-go-client/errors"
)

// Pair is a decoded (key, value) scan result row.
type Pair = [2]interface{}

// Row is a decoded SQL-fields result row.
type Row = []interface{}

// OpenScan issues a scan query and wraps the result in a page-buffered
// Cursor that fetches subsequent pages with ScanCursorGetPage and releases
// the server-side resource with CloseResource.
func OpenScan(s *request.Session, cacheID, partition, pageSize int32, local bool) (*Cursor[Pair], liberr.Error) {
	page, e := s.Scan(cacheID, partition, pageSize, local)
	if e != nil {
		return nil, e
	}
	fetch := func(cursorID int64) ([]Pair, bool, liberr.Error) {
		p, e := s.ScanCursorGetPage(cursorID)
		if e != nil {
			return nil, false, e
		}
		return p.Pairs, p.HasMore, nil
	}
	return New[Pair](page.CursorID, page.Pairs, page.HasMore, fetch, s.CloseResource), nil
}

// SQLFieldsResult bundles the field-name header (read once, from the first
// page only) alongside the row cursor.
type SQLFieldsResult struct {
	FieldNames []string
	Cursor     *Cursor[Row]
}

// OpenSQLFields issues a sql_fields query and wraps the row stream in a
// page-buffered Cursor. FieldNames is populated only if q.IncludeFieldNames
// was set, matching the "header exactly once" wire behavior.
func OpenSQLFields(s *request.Session, cacheID int32, q request.SQLFieldsQuery) (SQLFieldsResult, liberr.Error) {
	page, e := s.SQLFields(cacheID, q)
	if e != nil {
		return SQLFieldsResult{}, e
	}
	fetch := func(cursorID int64) ([]Row, bool, liberr.Error) {
		p, e := s.SQLFieldsCursorGetPage(cursorID)
		if e != nil {
			return nil, false, e
		}
		return p.Rows, p.HasMore, nil
	}
	return SQLFieldsResult{
		FieldNames: page.FieldNames,
		Cursor:     New[Row](page.CursorID, page.Rows, page.HasMore, fetch, s.CloseResource),
	}, nil
}
