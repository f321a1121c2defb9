// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package orderview

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/danielhkuo/storefront/ident"
	"github.com/danielhkuo/storefront/models"
	"github.com/danielhkuo/storefront/orderclient"
)

// ChatSource is the part of the order API the chat needs
type ChatSource interface {
	Chat(ctx context.Context, orderNumber string) (models.ChatResponse, error)
	PostMessage(ctx context.Context, orderNumber, text, sender string) error
}

type ChatState struct {
	Phase    Phase
	Order    models.OrderInfo
	Messages []models.Message
	Draft    string
	Sending  bool
	Err      error
}

// Placeholder reports whether the empty-chat placeholder should be shown
func (s ChatState) Placeholder() bool {
	return s.Phase == PhaseFound && len(s.Messages) == 0
}

// ChatView is the chat page of one order, seen as the customer or as the
// shop (sender admin).
type ChatView struct {
	src         ChatSource
	orderNumber string
	sender      string
	interval    time.Duration

	loop      loop
	listeners listeners[ChatState]

	mu    sync.Mutex
	state ChatState
}

func NewChatView(src ChatSource, orderNumber, sender string) *ChatView {
	if sender == "" {
		sender = models.SenderCustomer
	}
	return &ChatView{
		src:         src,
		orderNumber: orderNumber,
		sender:      sender,
		interval:    ChatInterval,
		state:       ChatState{Phase: PhaseLoading},
	}
}

// OnChange registers fn to receive every new state
func (v *ChatView) OnChange(fn func(ChatState)) {
	v.listeners.add(fn)
}

func (v *ChatView) State() ChatState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.copyLocked()
}

func (v *ChatView) copyLocked() ChatState {
	s := v.state
	s.Messages = slices.Clone(s.Messages)
	return s
}

func (v *ChatView) update(change func(*ChatState)) {
	v.mu.Lock()
	change(&v.state)
	s := v.copyLocked()
	v.mu.Unlock()

	v.listeners.emit(s)
}

// Start polls the chat every ChatInterval until Stop or ctx is done
func (v *ChatView) Start(ctx context.Context) {
	v.loop.start(ctx, v.interval, v.Refresh)
}

func (v *ChatView) Stop() {
	v.loop.stop()
}

// Refresh fetches the chat once. A successful fetch replaces the order
// and messages wholesale; a failed one keeps them and records an error.
// A first fetch that fails in transport leaves the loading phase for idle.
func (v *ChatView) Refresh(ctx context.Context) {
	number, err := ident.NormalizeOrderNumber(v.orderNumber)
	if err != nil {
		v.update(func(s *ChatState) {
			s.Phase, s.Err = PhaseNotFound, ErrNoOrderNumber
		})
		return
	}

	resp, err := v.src.Chat(ctx, number)
	if ctx.Err() != nil {
		return
	}

	switch {
	case err == nil:
		v.update(func(s *ChatState) {
			s.Phase = PhaseFound
			s.Order = resp.Order
			s.Messages = resp.Messages
			s.Err = nil
		})
	case errors.Is(err, orderclient.ErrNotFound):
		v.update(func(s *ChatState) {
			if s.Phase != PhaseFound {
				s.Phase = PhaseNotFound
			}
			s.Err = ErrOrderNotFound
		})
	default:
		slog.Warn("chat poll failed", "order_number", number, "error", err)
		v.update(func(s *ChatState) {
			// Nothing loaded yet: show the error instead of the spinner
			if s.Phase == PhaseLoading {
				s.Phase = PhaseIdle
			}
			s.Err = ErrUnavailable
		})
	}
}

// Send posts text and then refreshes. Blank text and sends while another
// is in flight are ignored. If posting fails the text goes back into the
// draft so nothing typed is lost.
func (v *ChatView) Send(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	v.mu.Lock()
	if v.state.Sending {
		v.mu.Unlock()
		return nil
	}
	v.state.Sending = true
	v.state.Draft = ""
	s := v.copyLocked()
	v.mu.Unlock()
	v.listeners.emit(s)

	number, _ := ident.NormalizeOrderNumber(v.orderNumber)
	err := v.src.PostMessage(ctx, number, text, v.sender)
	if err != nil {
		slog.Warn("chat send failed", "order_number", number, "error", err)
		v.update(func(s *ChatState) {
			s.Sending = false
			s.Draft = text
			s.Err = ErrSendFailed
		})
		return ErrSendFailed
	}

	v.update(func(s *ChatState) { s.Sending = false })

	if v.loop.refresh() != nil {
		v.Refresh(ctx)
	}
	return nil
}

// SetDraft records text typed but not yet sent
func (v *ChatView) SetDraft(text string) {
	v.update(func(s *ChatState) { s.Draft = text })
}
