// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/danielhkuo/storefront/cliparse"
	"github.com/danielhkuo/storefront/models"
)

// Notifier delivers out-of-band notifications about orders and chats.
// Delivery is best effort: callers log failures and carry on.
type Notifier interface {
	// OrderCreated tells the shop about a new order
	OrderCreated(ctx context.Context, o models.Order) error
	// AdminReplied tells the customer the shop answered in the order chat
	AdminReplied(ctx context.Context, o models.Order, text string) error
	// SiteMessage forwards a message typed into the site chat widget
	SiteMessage(ctx context.Context, text string) error
}

// ErrNotConfigured is returned by SiteMessage when no channel can carry
// site messages
var ErrNotConfigured = errors.New("notifications not configured")

// Nop drops every notification
type Nop struct{}

func (Nop) OrderCreated(context.Context, models.Order) error         { return nil }
func (Nop) AdminReplied(context.Context, models.Order, string) error { return nil }
func (Nop) SiteMessage(context.Context, string) error                { return ErrNotConfigured }

// Multi fans a notification out to every notifier and joins the errors
type Multi []Notifier

func (m Multi) OrderCreated(ctx context.Context, o models.Order) error {
	var errs []error
	for _, n := range m {
		errs = append(errs, n.OrderCreated(ctx, o))
	}
	return errors.Join(errs...)
}

func (m Multi) AdminReplied(ctx context.Context, o models.Order, text string) error {
	var errs []error
	for _, n := range m {
		errs = append(errs, n.AdminReplied(ctx, o, text))
	}
	return errors.Join(errs...)
}

// SiteMessage succeeds if at least one notifier delivered the message
func (m Multi) SiteMessage(ctx context.Context, text string) error {
	var errs []error
	delivered := false
	for _, n := range m {
		err := n.SiteMessage(ctx, text)
		if err == nil {
			delivered = true
			continue
		}
		if !errors.Is(err, ErrNotConfigured) {
			errs = append(errs, err)
		}
	}
	if delivered {
		return nil
	}
	if len(errs) == 0 {
		return ErrNotConfigured
	}
	return errors.Join(errs...)
}

// New builds the notifier chain from configuration. The returned close
// function releases broker connections.
func New(cfg cliparse.Config) (Notifier, func() error, error) {
	var chain Multi
	closeFn := func() error { return nil }

	if cfg.TelegramBotToken != "" && cfg.TelegramChatID != "" {
		chain = append(chain, NewTelegram(cfg.TelegramBotToken, cfg.TelegramChatID, nil))
		slog.Info("telegram notifications enabled")
	}

	if cfg.SMTPHost != "" && cfg.SMTPUser != "" && cfg.SMTPPassword != "" {
		chain = append(chain, NewEmail(EmailConfig{
			Host:      cfg.SMTPHost,
			Port:      cfg.SMTPPort,
			User:      cfg.SMTPUser,
			Password:  cfg.SMTPPassword,
			ShopEmail: cfg.ShopEmail,
		}))
		slog.Info("email notifications enabled", "host", cfg.SMTPHost)
	}

	if cfg.RabbitMQURL != "" {
		conn, err := amqp.Dial(cfg.RabbitMQURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to RabbitMQ: %w", err)
		}
		pub, err := NewAMQP(conn)
		if err != nil {
			conn.Close()
			return nil, nil, err
		}
		chain = append(chain, pub)
		closeFn = func() error {
			return errors.Join(pub.Close(), conn.Close())
		}
		slog.Info("amqp notifications enabled")
	}

	if len(chain) == 0 {
		slog.Warn("no notification channel configured")
		return Nop{}, closeFn, nil
	}
	return chain, closeFn, nil
}
