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

// Package conn owns a single TCP (or TLS) session to one cluster node:
// handshake, authenticated framing, blocking send/recv, failure marking, and
// background reconnect. A pool holds many of these; each Connection knows
// nothing about its siblings or about partition routing.
package conn

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/gridgain/ignite-go-client/binary/ignstream"
	"github.com/gridgain/ignite-go-client/protocol"
	"github.com/gridgain/ignite-go-client/certificates"
	liberr "github.com/gridgain/ignite-go-client/errors"
	"github.com/gridgain/ignite-go-client/logger"
)

// Options configures one Connection attempt.
type Options struct {
	Host     string
	Port     int
	Timeout  time.Duration
	Username string
	Password string
	Timezone string
	TLS      certificates.TLSConfig // nil disables TLS
	Features protocol.FeatureSet
	Log      logger.FuncLog
}

func (o Options) addr() string {
	return fmt.Sprintf("%s:%d", o.Host, o.Port)
}

// Connection wraps one socket and the protocol state negotiated on it.
// Safe for concurrent Send/Recv is NOT implied: callers serialize access to
// a single Connection (the pool hands out one at a time to blocking callers,
// or round-trips cooperatively in non-blocking mode).
type Connection struct {
	opt Options

	mu       sync.Mutex
	socket   net.Conn
	failed   bool
	inUse    bool
	uuid     [16]byte
	nextID   int64
	version  protocol.Version
	features protocol.FeatureSet
}

// New prepares a Connection without dialing yet.
func New(opt Options) *Connection {
	return &Connection{opt: opt}
}

func (c *Connection) log() logger.Logger {
	if c.opt.Log == nil {
		return nil
	}
	return c.opt.Log()
}

// Addr is the "host:port" this Connection dials.
func (c *Connection) Addr() string {
	return c.opt.addr()
}

// Closed reports whether the socket has never been opened or was closed.
func (c *Connection) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.socket == nil
}

// Failed reports whether the last I/O on this Connection errored.
func (c *Connection) Failed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.failed
}

// Alive reports whether the Connection can be handed to a caller right now.
func (c *Connection) Alive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.socket != nil && !c.failed
}

// NodeUUID is the 128-bit identity the server advertised in its handshake
// response (protocol >= 1.4.0); zero before a successful Connect.
func (c *Connection) NodeUUID() [16]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.uuid
}

// ProtocolVersion is the version this Connection settled on after Connect.
func (c *Connection) ProtocolVersion() protocol.Version {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version
}

// Features is the feature set recorded by the handshake
// (protocol.HandshakeResult.Context.Features): from 1.7.0 the intersection of
// what the client offered and what the server echoed back, below 1.7.0 the
// client's own offered set; zero before a successful Connect.
func (c *Connection) Features() protocol.FeatureSet {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.features
}

// Acquire marks the Connection in-use for the blocking execution mode, where
// the pool hands out exclusive ownership of one socket per in-flight op.
func (c *Connection) Acquire() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failed || c.socket == nil || c.inUse {
		return false
	}
	c.inUse = true
	return true
}

// Release returns the Connection to the pool's free list.
func (c *Connection) Release() {
	c.mu.Lock()
	c.inUse = false
	c.mu.Unlock()
}

// fail flips the failure flag; the dispatcher re-raises to the caller and the
// pool schedules a reconnect attempt in the background (§4.3/§4.1).
func (c *Connection) fail() {
	c.mu.Lock()
	c.failed = true
	c.inUse = false
	if c.socket != nil {
		_ = c.socket.Close()
		c.socket = nil
	}
	c.mu.Unlock()
	if l := c.log(); l != nil {
		l.Warning("connection marked failed", nil, c.Addr())
	}
}

// Connect dials the node, optionally wraps TLS, and runs the handshake
// fallback loop through protocol.KnownVersions, newest first.
func (c *Connection) Connect(ctx context.Context) liberr.Error {
	dialer := net.Dialer{Timeout: c.opt.Timeout}
	raw, err := dialer.DialContext(ctx, "tcp", c.opt.addr())
	if err != nil {
		return ErrorSocketError.Error(err)
	}

	sock := raw
	if c.opt.TLS != nil {
		cfg := c.opt.TLS.TLS(c.opt.Host)
		tlsConn := tls.Client(raw, cfg)
		if e := tlsConn.HandshakeContext(ctx); e != nil {
			_ = raw.Close()
			return ErrorSocketError.Error(e)
		}
		sock = tlsConn
	}

	candidates := append([]protocol.Version(nil), protocol.KnownVersions...)
	for i := 0; i < len(candidates); i++ {
		v := candidates[i]
		res, e := c.attemptHandshake(sock, v)
		if e != nil {
			_ = sock.Close()
			return e
		}
		if res.Accepted {
			c.mu.Lock()
			c.socket = sock
			c.failed = false
			c.uuid = res.Context.NodeUUID
			c.version = res.Context.Version
			c.features = res.Context.Features
			c.mu.Unlock()
			if l := c.log(); l != nil {
				l.Info("handshake accepted", nil, c.Addr(), res.Context.Version.String())
			}
			return nil
		}
		if res.Fatal {
			_ = sock.Close()
			return ErrorAuthenticationFailed.Error(fmt.Errorf("%s", res.Message))
		}
		if !protocol.IsKnown(res.Fallback) {
			_ = sock.Close()
			return ErrorHandshakeFailed.Errorf("server proposed unknown version %s", res.Fallback)
		}
		// jump the remaining attempts to start at the server's proposed version
		for j, k := range candidates {
			if k == res.Fallback {
				candidates = candidates[j:]
				i = -1
				break
			}
		}
	}
	_ = sock.Close()
	return ErrorHandshakeFailed.Errorf("exhausted known versions against %s", c.opt.addr())
}

func (c *Connection) attemptHandshake(sock net.Conn, v protocol.Version) (protocol.HandshakeResult, liberr.Error) {
	req := protocol.HandshakeRequest{
		Proposed: v,
		Features: c.opt.Features,
		Timezone: c.opt.Timezone,
		Username: c.opt.Username,
		Password: c.opt.Password,
	}
	s := ignstream.New()
	if e := req.Encode(s); e != nil {
		return protocol.HandshakeResult{}, e
	}
	if e := c.writeFrame(sock, s.Bytes()); e != nil {
		return protocol.HandshakeResult{}, e
	}

	body, e := c.readFrame(sock)
	if e != nil {
		return protocol.HandshakeResult{}, e
	}
	return protocol.DecodeHandshakeResponse(ignstream.Wrap(body), v, c.opt.Features)
}

func (c *Connection) writeFrame(sock net.Conn, b []byte) liberr.Error {
	if c.opt.Timeout > 0 {
		_ = sock.SetWriteDeadline(time.Now().Add(c.opt.Timeout))
	}
	if _, err := sock.Write(b); err != nil {
		return ErrorSocketError.Error(err)
	}
	return nil
}

// readFrame reads one length-prefixed frame and returns everything after the
// 4-byte length header.
func (c *Connection) readFrame(sock net.Conn) ([]byte, liberr.Error) {
	if c.opt.Timeout > 0 {
		_ = sock.SetReadDeadline(time.Now().Add(c.opt.Timeout))
	}
	var lenBuf [4]byte
	if _, err := ioReadFull(sock, lenBuf[:]); err != nil {
		return nil, ErrorSocketError.Error(err)
	}
	n := int32(lenBuf[0]) | int32(lenBuf[1])<<8 | int32(lenBuf[2])<<16 | int32(lenBuf[3])<<24
	if n < 0 {
		return nil, ErrorProtocolViolation.Errorf("negative frame length %d", n)
	}
	body := make([]byte, n)
	if _, err := ioReadFull(sock, body); err != nil {
		return nil, ErrorSocketError.Error(err)
	}
	return body, nil
}

func ioReadFull(sock net.Conn, buf []byte) (int, error) {
	read := 0
	for read < len(buf) {
		n, err := sock.Read(buf[read:])
		read += n
		if err != nil {
			return read, err
		}
	}
	return read, nil
}

// Send frames and writes a request body (already including op_code and
// query_id, per §4.4); it returns only the write error, if any.
func (c *Connection) Send(body []byte) liberr.Error {
	c.mu.Lock()
	sock := c.socket
	c.mu.Unlock()
	if sock == nil {
		return ErrorConnectionBroken.Error(nil)
	}
	s := ignstream.New()
	s.WriteI32(int32(len(body)))
	s.WriteBytes(body)
	if e := c.writeFrame(sock, s.Bytes()); e != nil {
		c.fail()
		return e
	}
	return nil
}

// Recv reads the next full response frame's body.
func (c *Connection) Recv() ([]byte, liberr.Error) {
	c.mu.Lock()
	sock := c.socket
	c.mu.Unlock()
	if sock == nil {
		return nil, ErrorConnectionBroken.Error(nil)
	}
	b, e := c.readFrame(sock)
	if e != nil {
		c.fail()
		return nil, e
	}
	return b, nil
}

// NextQueryID hands out a client-chosen, per-connection monotonic
// correlation id for request/response matching (§4.4).
func (c *Connection) NextQueryID() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	return c.nextID
}

// Close releases the socket without marking the Connection failed — used on
// deliberate pool shutdown rather than on error.
func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.socket == nil {
		return nil
	}
	err := c.socket.Close()
	c.socket = nil
	return err
}
