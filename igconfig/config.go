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

// Package igconfig is the caller-facing configuration surface: seed nodes,
// credentials, TLS, partition awareness, and default cache TTLs, validated
// with the same struct-tag validator the rest of the stack uses.
package igconfig

import (
	"context"
	"fmt"
	"time"

	"github.com/gridgain/ignite-go-client/affinity"
	"github.com/gridgain/ignite-go-client/binregistry"
	"github.com/gridgain/ignite-go-client/conn"
	"github.com/gridgain/ignite-go-client/pool"
	"github.com/gridgain/ignite-go-client/protocol"
	"github.com/gridgain/ignite-go-client/request"
	libval "github.com/go-playground/validator/v10"
	"github.com/gridgain/ignite-go-client/certificates"
	liberr "github.com/gridgain/ignite-go-client/errors"
	"github.com/gridgain/ignite-go-client/logger"
)

// Seed is one "host:port" bootstrap endpoint, split into its typed parts.
type Seed struct {
	Host string `mapstructure:"host" json:"host" yaml:"host" toml:"host" validate:"required,hostname|ip"`
	Port int    `mapstructure:"port" json:"port" yaml:"port" toml:"port" validate:"required,min=1,max=65535"`
}

// ExpiryPolicy is the caller-facing, duration-typed form of a cache handle's
// default TTL triple (wire form lives in request.ExpiryPolicy).
type ExpiryPolicy struct {
	Create time.Duration `mapstructure:"create" json:"create" yaml:"create" toml:"create"`
	Update time.Duration `mapstructure:"update" json:"update" yaml:"update" toml:"update"`
	Access time.Duration `mapstructure:"access" json:"access" yaml:"access" toml:"access"`
}

func (e ExpiryPolicy) toWire() request.ExpiryPolicy {
	w := request.DefaultExpiryPolicy()
	if e.Create > 0 {
		w.CreateNanos = e.Create.Nanoseconds()
	}
	if e.Update > 0 {
		w.UpdateNanos = e.Update.Nanoseconds()
	}
	if e.Access > 0 {
		w.AccessNanos = e.Access.Nanoseconds()
	}
	return w
}

// Config is the complete set of client-construction parameters, suitable
// for unmarshalling from viper/yaml/toml/env the way the rest of the stack
// is configured.
type Config struct {
	Seeds          []Seed            `mapstructure:"seeds" json:"seeds" yaml:"seeds" toml:"seeds" validate:"required,min=1,dive"`
	Timeout        time.Duration     `mapstructure:"timeout" json:"timeout" yaml:"timeout" toml:"timeout" validate:"omitempty,min=0"`
	Username       string            `mapstructure:"username" json:"username" yaml:"username" toml:"username"`
	Password       string            `mapstructure:"password" json:"password" yaml:"password" toml:"password"`
	Timezone       string            `mapstructure:"timezone" json:"timezone" yaml:"timezone" toml:"timezone"`
	UseSSL         bool              `mapstructure:"use-ssl" json:"use-ssl" yaml:"use-ssl" toml:"use-ssl"`
	TLS            certificates.Config `mapstructure:"tls" json:"tls" yaml:"tls" toml:"tls"`
	PartitionAware bool              `mapstructure:"partition-aware" json:"partition-aware" yaml:"partition-aware" toml:"partition-aware"`
	DefaultExpiry  ExpiryPolicy      `mapstructure:"default-expiry" json:"default-expiry" yaml:"default-expiry" toml:"default-expiry"`

	ctx context.Context
	log logger.FuncLog
}

// RegisterContext attaches the context used to dial and to bound the
// initial partition-map warm-up; defaults to context.Background.
func (c *Config) RegisterContext(ctx context.Context) {
	c.ctx = ctx
}

// RegisterLogger wires the ambient logger used by the connection pool and
// background reconnect loops.
func (c *Config) RegisterLogger(fct logger.FuncLog) {
	c.log = fct
}

// Validate checks struct tags the same way the certificates config in this
// stack does.
func (c *Config) Validate() liberr.Error {
	err := ErrorValidatorError.Error(nil)

	if er := libval.New().Struct(c); er != nil {
		if e, ok := er.(*libval.InvalidValidationError); ok {
			err.Add(e)
		}

		for _, e := range er.(libval.ValidationErrors) {
			//nolint #goerr113
			err.Add(fmt.Errorf("config field '%s' is not validated by constraint '%s'", e.Namespace(), e.ActualTag()))
		}
	}

	if err.HasParent() {
		return err
	}

	return nil
}

// Session bundles the live pool, request session, and binary-type registry
// a built Config produces — the handle a caller keeps for the connection's
// lifetime.
type Session struct {
	Pool    *pool.Pool
	Request *request.Session
	Expiry  request.ExpiryPolicy
}

// New dials every configured seed, negotiates the protocol context against
// the first one that answers, and wires the affinity store's refresh hook
// to cache_get_node_partitions. Returns once at least one seed is reachable.
func (c *Config) New() (*Session, liberr.Error) {
	if len(c.Seeds) == 0 {
		return nil, ErrorNoSeedsConfigured.Error(nil)
	}

	ctx := c.ctx
	if ctx == nil {
		ctx = context.Background()
	}

	var tlsCfg certificates.TLSConfig
	if c.UseSSL {
		tlsCfg = c.TLS.New()
	}

	template := conn.Options{
		Timeout:  c.Timeout,
		Username: c.Username,
		Password: c.Password,
		Timezone: c.Timezone,
		TLS:      tlsCfg,
		Features: protocol.NewFeatureSet(),
		Log:      c.log,
	}

	seeds := make([]pool.Seed, 0, len(c.Seeds))
	for _, s := range c.Seeds {
		seeds = append(seeds, pool.Seed{Host: s.Host, Port: s.Port})
	}

	p := pool.New(pool.Options{
		Seeds:           seeds,
		PartitionAware:  c.PartitionAware,
		ConnectTemplate: template,
		Log:             c.log,
	})

	if e := p.Start(ctx); e != nil {
		return nil, e
	}

	reg := binregistry.New()
	sess := &request.Session{
		Pool:     p,
		Registry: reg,
	}

	if nodes := p.Alive(); len(nodes) > 0 {
		sess.Context = protocol.NewContext(nodes[0].ProtocolVersion(), nodes[0].Features())
	}

	p.Store.Refresh = func(cacheID int32) (*affinity.Snapshot, error) {
		snaps, e := sess.GetNodePartitions([]int32{cacheID})
		if e != nil {
			return nil, e
		}
		if snap, ok := snaps[cacheID]; ok {
			return snap, nil
		}
		return nil, ErrorNoSeedsConfigured.Error(nil)
	}

	return &Session{Pool: p, Request: sess, Expiry: c.DefaultExpiry.toWire()}, nil
}
