// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package orderview

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/danielhkuo/storefront/models"
	"github.com/danielhkuo/storefront/orderclient"
)

// OrdersSource is the admin part of the order API
type OrdersSource interface {
	ListOrders(ctx context.Context) ([]models.OrderSummary, error)
	UpdateStatus(ctx context.Context, orderNumber, status string) error
}

type OrdersState struct {
	Loaded bool
	Orders []models.OrderSummary
	Err    error
}

// OrdersView is the shop's order list
type OrdersView struct {
	src OrdersSource

	loop      loop
	listeners listeners[OrdersState]

	mu    sync.Mutex
	state OrdersState
}

func NewOrdersView(src OrdersSource) *OrdersView {
	return &OrdersView{src: src}
}

func (v *OrdersView) OnChange(fn func(OrdersState)) {
	v.listeners.add(fn)
}

func (v *OrdersView) State() OrdersState {
	v.mu.Lock()
	defer v.mu.Unlock()
	s := v.state
	s.Orders = slices.Clone(s.Orders)
	return s
}

func (v *OrdersView) update(change func(*OrdersState)) {
	v.mu.Lock()
	change(&v.state)
	s := v.state
	s.Orders = slices.Clone(s.Orders)
	v.mu.Unlock()

	v.listeners.emit(s)
}

// Start polls the list every OrdersInterval until Stop or ctx is done
func (v *OrdersView) Start(ctx context.Context) {
	v.loop.start(ctx, OrdersInterval, v.Refresh)
}

func (v *OrdersView) Stop() {
	v.loop.stop()
}

// Refresh replaces the list with the backend's, or keeps it and records
// an error when the backend cannot be reached
func (v *OrdersView) Refresh(ctx context.Context) {
	orders, err := v.src.ListOrders(ctx)
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		slog.Warn("orders poll failed", "error", err)
		v.update(func(s *OrdersState) { s.Err = ErrUnavailable })
		return
	}

	v.update(func(s *OrdersState) {
		s.Loaded = true
		s.Orders = orders
		s.Err = nil
	})
}

// UpdateStatus changes an order's status and refreshes the list
func (v *OrdersView) UpdateStatus(ctx context.Context, orderNumber, status string) error {
	if !models.ValidStatus(status) {
		return ErrInvalidStatus
	}

	err := v.src.UpdateStatus(ctx, orderNumber, status)
	switch {
	case errors.Is(err, orderclient.ErrNotFound):
		return ErrOrderNotFound
	case err != nil:
		slog.Warn("status update failed", "order_number", orderNumber, "error", err)
		v.update(func(s *OrdersState) { s.Err = ErrUpdateFailed })
		return ErrUpdateFailed
	}

	if v.loop.refresh() != nil {
		v.Refresh(ctx)
	}
	return nil
}
