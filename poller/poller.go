// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poller

import (
	"context"
	"sync"
	"time"
)

// Poller calls fn on a fixed interval and on demand. Calls never overlap:
// they all happen on the goroutine running Run, in the order they were
// scheduled.
type Poller struct {
	interval time.Duration
	fn       func(ctx context.Context)
	trigger  chan struct{}

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func New(interval time.Duration, fn func(ctx context.Context)) *Poller {
	return &Poller{
		interval: interval,
		fn:       fn,
		trigger:  make(chan struct{}, 1),
	}
}

// Run calls fn immediately, then on every tick and Trigger, until ctx is
// done. fn receives ctx so an in-flight fetch is abandoned on cancel.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.fn(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-p.trigger:
			ticker.Reset(p.interval)
		}
		if ctx.Err() != nil {
			return
		}
		p.fn(ctx)
	}
}

// Start runs the poller on its own goroutine. Calling Start on a running
// poller does nothing.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	p.cancel = cancel
	p.done = done

	go func() {
		defer close(done)
		p.Run(ctx)
	}()
}

// Trigger asks for an immediate extra call. Triggers that arrive while one
// is already pending are merged.
func (p *Poller) Trigger() {
	select {
	case p.trigger <- struct{}{}:
	default:
	}
}

// Stop cancels a poller started with Start and waits for the current call
// to return. After Stop, fn is never called again.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}
