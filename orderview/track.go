// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package orderview

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/danielhkuo/storefront/ident"
	"github.com/danielhkuo/storefront/models"
	"github.com/danielhkuo/storefront/orderclient"
)

// Tracker looks up an order by number
type Tracker interface {
	Track(ctx context.Context, orderNumber string) (models.OrderSummary, error)
}

type TrackState struct {
	Phase       Phase
	OrderNumber string
	Order       models.OrderSummary
	Err         error
}

// StatusLabel is the human-readable order status
func StatusLabel(status string) string {
	switch status {
	case models.StatusNew:
		return "New"
	case models.StatusProcessing:
		return "Processing"
	case models.StatusCompleted:
		return "Completed"
	}
	return status
}

// TrackView is the order tracking page
type TrackView struct {
	src Tracker

	loop      loop
	listeners listeners[TrackState]

	mu    sync.Mutex
	state TrackState
}

func NewTrackView(src Tracker) *TrackView {
	return &TrackView{src: src, state: TrackState{Phase: PhaseIdle}}
}

func (v *TrackView) OnChange(fn func(TrackState)) {
	v.listeners.add(fn)
}

func (v *TrackView) State() TrackState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

func (v *TrackView) set(s TrackState) {
	v.mu.Lock()
	v.state = s
	v.mu.Unlock()
	v.listeners.emit(s)
}

// Lookup searches for orderNumber. A blank number is rejected without a
// request. The previous result is cleared before the search starts.
func (v *TrackView) Lookup(ctx context.Context, orderNumber string) error {
	number, err := ident.NormalizeOrderNumber(orderNumber)
	if err != nil {
		v.set(TrackState{Phase: PhaseIdle, Err: ErrNoOrderNumber})
		return ErrNoOrderNumber
	}

	v.set(TrackState{Phase: PhaseLoading, OrderNumber: number})
	return v.fetch(ctx, number, true)
}

// fetch loads number. fresh marks a new search, where a failure leaves
// nothing on screen; a repeat poll keeps the last result instead.
func (v *TrackView) fetch(ctx context.Context, number string, fresh bool) error {
	order, err := v.src.Track(ctx, number)
	if ctx.Err() != nil {
		return ctx.Err()
	}

	switch {
	case err == nil:
		v.set(TrackState{Phase: PhaseFound, OrderNumber: number, Order: order})
		return nil
	case errors.Is(err, orderclient.ErrNotFound):
		v.set(TrackState{Phase: PhaseNotFound, OrderNumber: number, Err: ErrOrderNotFound})
		return ErrOrderNotFound
	}

	slog.Warn("order lookup failed", "order_number", number, "error", err)
	if fresh {
		v.set(TrackState{Phase: PhaseIdle, OrderNumber: number, Err: ErrUnavailable})
	} else {
		s := v.State()
		s.Err = ErrUnavailable
		v.set(s)
	}
	return ErrUnavailable
}

// Watch looks orderNumber up now and every TrackInterval until Stop
func (v *TrackView) Watch(ctx context.Context, orderNumber string) error {
	number, err := ident.NormalizeOrderNumber(orderNumber)
	if err != nil {
		v.set(TrackState{Phase: PhaseIdle, Err: ErrNoOrderNumber})
		return ErrNoOrderNumber
	}

	v.Stop()
	v.set(TrackState{Phase: PhaseLoading, OrderNumber: number})

	first := true
	v.loop.start(ctx, TrackInterval, func(ctx context.Context) {
		v.fetch(ctx, number, first)
		first = false
	})
	return nil
}

func (v *TrackView) Stop() {
	v.loop.stop()
}
