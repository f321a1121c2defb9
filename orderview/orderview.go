// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package orderview

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/danielhkuo/storefront/poller"
)

// Poll intervals
const (
	ChatInterval   = 5 * time.Second
	OrdersInterval = 10 * time.Second
	TrackInterval  = 5 * time.Second
)

// Phase of a view that looks up a single order
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseLoading  Phase = "loading"
	PhaseFound    Phase = "found"
	PhaseNotFound Phase = "not-found"
)

// Errors shown to the user. Transport details are logged, not displayed.
var (
	ErrUnavailable    = errors.New("could not reach the shop, please try again")
	ErrSendFailed     = errors.New("message was not sent, please try again")
	ErrNoOrderNumber  = errors.New("enter an order number")
	ErrOrderNotFound  = errors.New("order not found")
	ErrInvalidStatus  = errors.New("status must be new, processing or completed")
	ErrUpdateFailed   = errors.New("status was not changed, please try again")
	errViewNotStarted = errors.New("view not started")
)

// loop owns the poller of a view. Every fetch of the view runs through
// it, including the refresh after a user action.
type loop struct {
	mu      sync.Mutex
	poller  *poller.Poller
	running bool
}

func (l *loop) start(ctx context.Context, interval time.Duration, fn func(context.Context)) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.running {
		return
	}
	l.poller = poller.New(interval, fn)
	l.poller.Start(ctx)
	l.running = true
}

func (l *loop) stop() {
	l.mu.Lock()
	p := l.poller
	l.poller, l.running = nil, false
	l.mu.Unlock()

	if p != nil {
		p.Stop()
	}
}

// refresh asks the running poller for an immediate fetch. It reports
// errViewNotStarted when there is no poller, so the caller fetches inline.
func (l *loop) refresh() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.running {
		return errViewNotStarted
	}
	l.poller.Trigger()
	return nil
}

// listeners fan state changes out to subscribers
type listeners[S any] struct {
	mu  sync.Mutex
	fns []func(S)
}

func (l *listeners[S]) add(fn func(S)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.fns = append(l.fns, fn)
}

func (l *listeners[S]) emit(s S) {
	l.mu.Lock()
	fns := slices.Clone(l.fns)
	l.mu.Unlock()

	for _, fn := range fns {
		fn(s)
	}
}
