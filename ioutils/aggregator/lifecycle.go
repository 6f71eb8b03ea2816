/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
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
 */

package aggregator

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"
)

// lifecycle is the Start/Stop/IsRunning contract the aggregator needs from its
// background goroutine. It replaces a prior dependency on an external
// start/stop runner package that shipped no usable implementation.
type lifecycle interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	IsRunning() bool
	Uptime() time.Duration
	ErrorsLast() error
	ErrorsList() []error
}

// lifecycleFn is a lifecycle backed by a pair of start/stop functions, with
// nil functions treated as no-ops.
type lifecycleFn struct {
	mu      sync.Mutex
	start   func(ctx context.Context) error
	stop    func(ctx context.Context) error
	running bool
	since   time.Time
	errs    []error
}

func newLifecycle(start, stop func(ctx context.Context) error) *lifecycleFn {
	return &lifecycleFn{start: start, stop: stop}
}

func (l *lifecycleFn) Start(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.running {
		return ErrStillRunning
	}

	var err error
	if l.start != nil {
		err = l.start(ctx)
	}
	if err != nil {
		l.errs = append(l.errs, err)
		return err
	}

	l.running = true
	l.since = time.Now()
	return nil
}

func (l *lifecycleFn) Stop(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.running {
		return nil
	}

	var err error
	if l.stop != nil {
		err = l.stop(ctx)
	}
	if err != nil {
		l.errs = append(l.errs, err)
	}

	l.running = false
	l.since = time.Time{}
	return err
}

func (l *lifecycleFn) IsRunning() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}

func (l *lifecycleFn) Uptime() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.running {
		return 0
	}
	return time.Since(l.since)
}

func (l *lifecycleFn) ErrorsLast() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.errs) == 0 {
		return nil
	}
	return l.errs[len(l.errs)-1]
}

func (l *lifecycleFn) ErrorsList() []error {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]error, len(l.errs))
	copy(out, l.errs)
	return out
}

// recoveryCaller logs a panic recovered from a deferred recover() without
// taking the process down; caller names the site so the message is traceable.
func recoveryCaller(caller string, recovered any) {
	if recovered == nil {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "recovered panic in %s: %v\n", caller, recovered)
}
