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

// Package request implements one typed operation per wire op-code, grouped
// by concern exactly as spec.md §4.6 groups them: cache configuration,
// key-value, SQL, scan, binary type, cluster, affinity.
package request

// OpCode identifies a request's operation on the wire (§4.4 framing:
// length | op_code | query_id | body).
type OpCode int16

const (
	OpCacheGet                  OpCode = 1000
	OpCachePut                  OpCode = 1001
	OpCachePutIfAbsent          OpCode = 1002
	OpCacheGetAll               OpCode = 1003
	OpCachePutAll               OpCode = 1004
	OpCacheGetAndPut            OpCode = 1005
	OpCacheGetAndReplace        OpCode = 1006
	OpCacheGetAndRemove         OpCode = 1007
	OpCacheGetAndPutIfAbsent    OpCode = 1008
	OpCacheReplace              OpCode = 1009
	OpCacheReplaceIfEquals      OpCode = 1010
	OpCacheContainsKey          OpCode = 1011
	OpCacheContainsKeys         OpCode = 1012
	OpCacheClear                OpCode = 1013
	OpCacheClearKey             OpCode = 1014
	OpCacheClearKeys            OpCode = 1015
	OpCacheRemoveKey            OpCode = 1016
	OpCacheRemoveIfEquals       OpCode = 1017
	OpCacheRemoveKeys           OpCode = 1018
	OpCacheRemoveAll            OpCode = 1019
	OpCacheGetSize              OpCode = 1020

	OpCacheGetNames        OpCode = 1050
	OpCacheCreateWithName  OpCode = 1051
	OpCacheGetOrCreateWith OpCode = 1052
	OpCacheCreateWithConfig OpCode = 1053
	OpCacheGetOrCreateWithConfig OpCode = 1054
	OpCacheGetConfiguration      OpCode = 1055
	OpCacheDestroy               OpCode = 1056

	OpQuerySQL              OpCode = 2002
	OpQuerySQLCursorGetPage OpCode = 2003
	OpQuerySQLFields        OpCode = 2004
	OpQuerySQLFieldsCursorGetPage OpCode = 2005
	OpQueryScan             OpCode = 2000
	OpQueryScanCursorGetPage OpCode = 2001
	OpResourceClose         OpCode = 0

	OpGetBinaryType       OpCode = 3002
	OpPutBinaryType       OpCode = 3003
	OpGetBinaryTypeSchema OpCode = 3004

	OpClusterGetState    OpCode = 5000
	OpClusterChangeState OpCode = 5001

	OpCacheGetNodePartitions OpCode = 1101
)

// ClusterState mirrors the server's three-valued cluster activation state.
type ClusterState int32

const (
	ClusterInactive       ClusterState = 0
	ClusterActive         ClusterState = 1
	ClusterActiveReadOnly ClusterState = 2
)
