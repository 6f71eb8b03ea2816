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

// SQLFieldsQuery is a free-form SQL query (§4.6 sql-fields).
type SQLFieldsQuery struct {
	Schema             string
	Query              string
	Args               []interface{}
	PageSize           int32
	MaxRows            int32
	IncludeFieldNames  bool
	DistributedJoins    bool
	ReplicatedOnly      bool
	EnforceJoinOrder    bool
	Lazy                bool
	Timeout             int64
}

// SQLFieldsPage is one page of a sql_fields response: optionally a header of
// field names (once, on the first page, §8 scenario "include_field_names"),
// then rows of typed column values.
type SQLFieldsPage struct {
	CursorID    int64
	FieldNames  []string
	Rows        [][]interface{}
	HasMore     bool
}

// SQLFields issues sql_fields and decodes the first page.
func (s *Session) SQLFields(cacheID int32, q SQLFieldsQuery) (SQLFieldsPage, liberr.Error) {
	r, e := s.DoSQL(cacheID, OpQuerySQLFields, func(b *ignstream.Stream) liberr.Error {
		b.WriteI32(cacheID)
		if e := ignval.Encode(b, q.Schema); e != nil {
			return e
		}
		b.WriteI32(q.PageSize)
		b.WriteI32(q.MaxRows)
		if e := ignval.Encode(b, q.Query); e != nil {
			return e
		}
		b.WriteI32(int32(len(q.Args)))
		for _, a := range q.Args {
			if e := ignval.Encode(b, a); e != nil {
				return e
			}
		}
		b.WriteByte(boolByte(q.DistributedJoins))
		b.WriteByte(boolByte(q.ReplicatedOnly))
		b.WriteByte(boolByte(q.EnforceJoinOrder))
		b.WriteByte(boolByte(q.Lazy))
		b.WriteI64(q.Timeout)
		b.WriteByte(boolByte(q.IncludeFieldNames))
		return nil
	})
	if e != nil {
		return SQLFieldsPage{}, e
	}
	return decodeSQLFieldsPage(r, q.IncludeFieldNames)
}

// SQLFieldsCursorGetPage fetches the next page of an open sql_fields cursor.
func (s *Session) SQLFieldsCursorGetPage(cursorID int64) (SQLFieldsPage, liberr.Error) {
	r, e := s.DoSQL(0, OpQuerySQLFieldsCursorGetPage, func(b *ignstream.Stream) liberr.Error {
		b.WriteI64(cursorID)
		return nil
	})
	if e != nil {
		return SQLFieldsPage{}, e
	}
	page, e := decodeSQLFieldsPage(r, false)
	page.CursorID = cursorID
	return page, e
}

func decodeSQLFieldsPage(r *ignstream.Stream, includeFieldNames bool) (SQLFieldsPage, liberr.Error) {
	var page SQLFieldsPage

	cursorID, e := r.ReadI64()
	if e != nil {
		return page, e
	}
	page.CursorID = cursorID

	colCount, e := r.ReadI32()
	if e != nil {
		return page, e
	}

	if includeFieldNames {
		page.FieldNames = make([]string, colCount)
		for i := int32(0); i < colCount; i++ {
			v, e := ignval.Decode(r)
			if e != nil {
				return page, e
			}
			page.FieldNames[i], _ = v.(string)
		}
	}

	rowCount, e := r.ReadI32()
	if e != nil {
		return page, e
	}
	page.Rows = make([][]interface{}, rowCount)
	for i := int32(0); i < rowCount; i++ {
		row := make([]interface{}, colCount)
		for c := int32(0); c < colCount; c++ {
			v, e := ignval.Decode(r)
			if e != nil {
				return page, e
			}
			row[c] = v
		}
		page.Rows[i] = row
	}

	more, e := r.ReadByte()
	if e != nil {
		return page, e
	}
	page.HasMore = more != 0
	return page, nil
}

// CloseResource issues resource_close(cursor_id), used to release a cursor
// dropped before being fully drained (§4.7).
func (s *Session) CloseResource(cursorID int64) liberr.Error {
	_, e := s.Do(0, nil, 0, OpResourceClose, func(b *ignstream.Stream) liberr.Error {
		b.WriteI64(cursorID)
		return nil
	})
	return e
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
