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

// Package pool holds the set of connections to a cluster's seed and
// discovered nodes, picks a connection per request (random or
// affinity-primary), detects topology changes, and drives failover across
// nodes for retryable operations.
package pool

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gridgain/ignite-go-client/affinity"
	"github.com/gridgain/ignite-go-client/conn"
	liberr "github.com/gridgain/ignite-go-client/errors"
	"github.com/gridgain/ignite-go-client/logger"
	"golang.org/x/sync/errgroup"
)

// watchInterval is how often a registered connection's Failed flag is
// polled to decide whether to arm a background Reconnector.
const watchInterval = time.Second

// Seed is one configured bootstrap endpoint.
type Seed struct {
	Host string
	Port int
}

// Options configures a Pool at construction time.
type Options struct {
	Seeds           []Seed
	PartitionAware  bool
	ConnectTemplate conn.Options // Host/Port are overwritten per node
	Log             logger.FuncLog
}

// Pool owns every live Connection to a cluster, keyed by node uuid once
// known (seed connections are keyed by address until their handshake
// resolves a uuid).
type Pool struct {
	opt    Options
	mu     sync.RWMutex
	byKey  map[string]*conn.Connection
	order  []string // stable iteration order for random-node selection
	Store  *affinity.Store
	bgCtx  context.Context
	bgStop context.CancelFunc
}

// New builds an unconnected Pool; call Start to dial the seeds.
func New(opt Options) *Pool {
	return &Pool{
		opt:   opt,
		byKey: make(map[string]*conn.Connection),
		Store: affinity.NewStore(),
	}
}

// Start dials every seed node concurrently, keeping whichever succeed; it
// fails only if none do. Every registered connection is watched for the
// rest of the Pool's life: once it fails, a conn.Reconnector takes over
// until the connection comes back or the Pool is closed (§4.1/§4.3).
func (p *Pool) Start(ctx context.Context) liberr.Error {
	if len(p.opt.Seeds) == 0 {
		return ErrorNoSeeds.Error(nil)
	}

	p.bgCtx, p.bgStop = context.WithCancel(context.Background())

	var connected atomic.Int64
	var g errgroup.Group
	for _, seed := range p.opt.Seeds {
		seed := seed
		g.Go(func() error {
			o := p.opt.ConnectTemplate
			o.Host = seed.Host
			o.Port = seed.Port
			c := conn.New(o)
			if e := c.Connect(ctx); e != nil {
				if l := p.log(); l != nil {
					l.Warning("seed connect failed", nil, seed.Host, seed.Port, e.Error())
				}
				return nil
			}
			p.register(c)
			connected.Add(1)
			return nil
		})
	}
	_ = g.Wait() // every goroutine returns nil; per-seed failures are logged, not fatal

	if connected.Load() == 0 {
		return ErrorAllSeedsExhausted.Error(nil)
	}
	return nil
}

// watch arms a conn.Reconnector against c whenever it's seen failed, and
// re-arms once that reconnect attempt ends (success or ctx cancellation).
func (p *Pool) watch(ctx context.Context, c *conn.Connection) {
	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if c.Failed() {
				conn.NewReconnector(c).Run(ctx)
			}
		}
	}
}

func (p *Pool) log() logger.Logger {
	if p.opt.Log == nil {
		return nil
	}
	return p.opt.Log()
}

func keyFor(c *conn.Connection) string {
	uuid := c.NodeUUID()
	if uuid != ([16]byte{}) {
		return string(uuid[:])
	}
	return c.Addr()
}

func (p *Pool) register(c *conn.Connection) {
	p.mu.Lock()
	k := keyFor(c)
	if _, exists := p.byKey[k]; !exists {
		p.order = append(p.order, k)
	}
	p.byKey[k] = c
	ctx := p.bgCtx
	p.mu.Unlock()

	if ctx != nil {
		go p.watch(ctx, c)
	}
}

// Alive returns every currently-usable connection.
func (p *Pool) Alive() []*conn.Connection {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]*conn.Connection, 0, len(p.order))
	for _, k := range p.order {
		if c := p.byKey[k]; c != nil && c.Alive() {
			out = append(out, c)
		}
	}
	return out
}

// ByNodeUUID returns the connection to a specific node, if known and alive.
func (p *Pool) ByNodeUUID(uuid [16]byte) (*conn.Connection, bool) {
	p.mu.RLock()
	c, ok := p.byKey[string(uuid[:])]
	p.mu.RUnlock()
	if !ok || !c.Alive() {
		return nil, false
	}
	return c, true
}

// RandomNode picks uniformly among alive connections (§4.4 random-node mode).
func (p *Pool) RandomNode() (*conn.Connection, liberr.Error) {
	alive := p.Alive()
	if len(alive) == 0 {
		return nil, ErrorFailoverExhausted.Error(nil)
	}
	return alive[rand.Intn(len(alive))], nil
}

// Pick selects a connection for an operation against cacheID/key: affinity
// primary when partition awareness is on and a route resolves, else
// random-node (§4.4).
func (p *Pool) Pick(cacheID int32, key interface{}, typeID int32) (*conn.Connection, liberr.Error) {
	if p.opt.PartitionAware && key != nil {
		route, err := p.Store.Lookup(cacheID, key, typeID)
		if err == nil && route.Found {
			if c, ok := p.ByNodeUUID(route.NodeUUID); ok {
				return c, nil
			}
		}
	}
	return p.RandomNode()
}

// FailoverRetries is min(3, |alive_nodes|), the retry budget for an
// idempotent operation whose first attempt failed on a broken connection
// (Open Question (b)).
func (p *Pool) FailoverRetries() int {
	n := len(p.Alive())
	if n > 3 {
		return 3
	}
	return n
}

// Close stops every background reconnect watcher and shuts down every
// connection in the pool.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bgStop != nil {
		p.bgStop()
	}
	for _, k := range p.order {
		if c := p.byKey[k]; c != nil {
			_ = c.Close()
		}
	}
}
