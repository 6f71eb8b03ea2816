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

package protocol

import (
	"github.com/gridgain/ignite-go-client/binary/ignstream"
	"github.com/gridgain/ignite-go-client/binary/ignval"
	liberr "github.com/gridgain/ignite-go-client/errors"
)

const (
	opHandshake = 1
	clientCode  = 2
)

// HandshakeRequest is the client->server handshake payload (§4.2). The
// feature, timezone and user-attribute segments are included or omitted
// depending on the proposed version; the credentials pair is included only
// when both username and password are set.
type HandshakeRequest struct {
	Proposed        Version
	Features        FeatureSet
	Timezone        string
	UserAttributes  map[string]interface{}
	Username        string
	Password        string
}

// hasCredentials reports whether both username and password were supplied;
// per §4.2 they are included as a pair or not at all.
func (h HandshakeRequest) hasCredentials() bool {
	return h.Username != "" && h.Password != ""
}

// Encode writes the full length-prefixed handshake frame to s.
func (h HandshakeRequest) Encode(s *ignstream.Stream) liberr.Error {
	body := ignstream.New()
	body.WriteI8(opHandshake)
	body.WriteI16(h.Proposed.Major)
	body.WriteI16(h.Proposed.Minor)
	body.WriteI16(h.Proposed.Patch)
	body.WriteI8(clientCode)

	if h.Proposed.AtLeast(MinFeatureFlags) {
		fb := h.Features.Bytes()
		body.WriteI32(int32(len(fb)))
		body.WriteBytes(fb)
	}
	if h.Proposed.AtLeast(Version{1, 8, 0}) {
		if e := ignval.Encode(body, h.Timezone); e != nil {
			return e
		}
	}
	if h.Proposed.AtLeast(MinUserAttributes) {
		attrs := h.UserAttributes
		if attrs == nil {
			attrs = map[string]interface{}{}
		}
		if h.Timezone != "" && !h.Proposed.AtLeast(Version{1, 8, 0}) {
			attrs = cloneWithTimezone(attrs, h.Timezone)
		}
		entries := make([]ignval.MapEntry, 0, len(attrs))
		for k, v := range attrs {
			entries = append(entries, ignval.MapEntry{Key: k, Value: v})
		}
		if e := ignval.Encode(body, ignval.Map{Kind: ignval.MapHashMap, Entries: entries}); e != nil {
			return e
		}
	}
	if h.hasCredentials() {
		if e := ignval.Encode(body, h.Username); e != nil {
			return e
		}
		if e := ignval.Encode(body, h.Password); e != nil {
			return e
		}
	}

	s.WriteI32(int32(body.Len()))
	s.WriteBytes(body.Bytes())
	return nil
}

func cloneWithTimezone(attrs map[string]interface{}, tz string) map[string]interface{} {
	out := make(map[string]interface{}, len(attrs)+1)
	for k, v := range attrs {
		out[k] = v
	}
	out["client.timezone"] = tz
	return out
}

// HandshakeResult is the outcome of a single handshake attempt.
type HandshakeResult struct {
	Accepted bool
	Context  Context
	// Fallback is the server-proposed version on rejection by version mismatch.
	Fallback Version
	// Fatal is true when the server returned an all-zero version, meaning
	// authentication or another non-retryable failure (§4.2).
	Fatal   bool
	Message string
}

// DecodeHandshakeResponse parses the handshake response body, starting at the
// status field (the length prefix is already consumed by the connection's
// framer).
func DecodeHandshakeResponse(s *ignstream.Stream, proposed Version, ours FeatureSet) (HandshakeResult, liberr.Error) {
	status, e := s.ReadI32()
	if e != nil {
		return HandshakeResult{}, e
	}

	if status == 0 {
		res := HandshakeResult{Accepted: true}
		var theirs FeatureSet
		if proposed.AtLeast(MinFeatureFlags) {
			n, e := s.ReadI32()
			if e != nil {
				return HandshakeResult{}, e
			}
			raw, e := s.ReadBytes(int(n))
			if e != nil {
				return HandshakeResult{}, e
			}
			theirs = ParseFeatureSet(raw)
		}
		var uuid [16]byte
		if proposed.AtLeast(Version{1, 4, 0}) {
			b, e := s.ReadBigEndian(16)
			if e != nil {
				return HandshakeResult{}, e
			}
			copy(uuid[:], b)
		}
		agreed := ours
		if proposed.AtLeast(MinFeatureFlags) {
			agreed = ours.Intersect(theirs)
		}
		res.Context = Context{Version: proposed, Features: agreed, NodeUUID: uuid}
		return res, nil
	}

	major, e := s.ReadI16()
	if e != nil {
		return HandshakeResult{}, e
	}
	minor, e := s.ReadI16()
	if e != nil {
		return HandshakeResult{}, e
	}
	patch, e := s.ReadI16()
	if e != nil {
		return HandshakeResult{}, e
	}
	msg, e := decodeHandshakeMessage(s)
	if e != nil {
		return HandshakeResult{}, e
	}
	// client_status trails the message; not surfaced beyond the message text.
	if _, e := s.ReadI32(); e != nil {
		return HandshakeResult{}, e
	}

	serverVersion := Version{major, minor, patch}
	if serverVersion == (Version{}) {
		return HandshakeResult{Accepted: false, Fatal: true, Message: msg}, nil
	}
	return HandshakeResult{Accepted: false, Fallback: serverVersion, Message: msg}, nil
}

func decodeHandshakeMessage(s *ignstream.Stream) (string, liberr.Error) {
	v, e := ignval.Decode(s)
	if e != nil {
		return "", e
	}
	if str, ok := v.(string); ok {
		return str, nil
	}
	return "", nil
}
