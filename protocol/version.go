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

// Package protocol holds the negotiated (major, minor, patch) version triple
// and feature-flag bitset of a thin-client session, exposed as capability
// predicates the rest of the module gates its behavior on.
package protocol

import "fmt"

// Version is a totally ordered protocol version triple.
type Version struct {
	Major int16
	Minor int16
	Patch int16
}

// String renders "major.minor.patch".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare returns -1, 0, 1 as v is less than, equal to, or greater than o.
func (v Version) Compare(o Version) int {
	switch {
	case v.Major != o.Major:
		return cmp(v.Major, o.Major)
	case v.Minor != o.Minor:
		return cmp(v.Minor, o.Minor)
	default:
		return cmp(v.Patch, o.Patch)
	}
}

func cmp(a, b int16) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// AtLeast reports whether v >= o.
func (v Version) AtLeast(o Version) bool {
	return v.Compare(o) >= 0
}

// KnownVersions is the descending list of versions this client can propose
// and fall back through during handshake (§4.2).
var KnownVersions = []Version{
	{1, 8, 0},
	{1, 7, 1},
	{1, 7, 0},
	{1, 6, 0},
	{1, 4, 0},
	{1, 2, 0},
	{1, 1, 0},
	{1, 0, 0},
}

// Highest is the first version this client proposes on connect.
func Highest() Version {
	return KnownVersions[0]
}

// IsKnown reports whether v appears in KnownVersions, used to decide whether
// a server-proposed fallback version is one this client can retry at.
func IsKnown(v Version) bool {
	for _, k := range KnownVersions {
		if k == v {
			return true
		}
	}
	return false
}

// Capability minimum-version table (§6).
var (
	MinPartitionAwareness = Version{1, 4, 0}
	MinFeatureFlags       = Version{1, 7, 0}
	MinUserAttributes     = Version{1, 7, 1}
	MinClusterAPI         = Version{1, 6, 0}
	MinExpiryPolicy       = Version{1, 6, 0}
	MinTimezoneAttribute  = Version{1, 8, 0}
)
