// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/danielhkuo/storefront/models"
)

const (
	OrderCreatedQueue = "storefront.order.created"
	AdminRepliedQueue = "storefront.chat.admin_replied"
	SiteMessageQueue  = "storefront.chat.site_message"
)

type OrderCreatedEvent struct {
	EventType   string    `json:"eventType"`
	OrderNumber string    `json:"orderNumber"`
	ProductID   int64     `json:"productId"`
	ProductName string    `json:"productName"`
	TotalPrice  int64     `json:"totalPrice"`
	Customer    string    `json:"customerName"`
	Phone       string    `json:"customerPhone"`
	Email       string    `json:"customerEmail,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

type ChatEvent struct {
	EventType   string    `json:"eventType"`
	OrderNumber string    `json:"orderNumber,omitempty"`
	Email       string    `json:"customerEmail,omitempty"`
	Phone       string    `json:"customerPhone,omitempty"`
	Text        string    `json:"text"`
	Timestamp   time.Time `json:"timestamp"`
}

// channel is the subset of *amqp.Channel the publisher needs
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQP publishes notification events to durable RabbitMQ queues so other
// workers (SMS gateways, CRMs) can pick them up
type AMQP struct {
	ch channel
}

func NewAMQP(conn *amqp.Connection) (*AMQP, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	// Declare queues so publish never fails due to missing infra
	for _, q := range []string{OrderCreatedQueue, AdminRepliedQueue, SiteMessageQueue} {
		if _, err := ch.QueueDeclare(q, true, false, false, false, nil); err != nil {
			ch.Close()
			return nil, fmt.Errorf("declare %s: %w", q, err)
		}
	}

	return &AMQP{ch: ch}, nil
}

func (p *AMQP) Close() error {
	return p.ch.Close()
}

func (p *AMQP) OrderCreated(ctx context.Context, o models.Order) error {
	return p.publishJSON(ctx, OrderCreatedQueue, OrderCreatedEvent{
		EventType:   "OrderCreated",
		OrderNumber: o.OrderNumber,
		ProductID:   o.Product.ID,
		ProductName: o.Product.Name,
		TotalPrice:  o.TotalPrice,
		Customer:    o.Customer.Name,
		Phone:       o.Customer.Phone,
		Email:       o.Customer.Email,
		Timestamp:   time.Now().UTC(),
	})
}

func (p *AMQP) AdminReplied(ctx context.Context, o models.Order, text string) error {
	return p.publishJSON(ctx, AdminRepliedQueue, ChatEvent{
		EventType:   "AdminReplied",
		OrderNumber: o.OrderNumber,
		Email:       o.Customer.Email,
		Phone:       o.Customer.Phone,
		Text:        text,
		Timestamp:   time.Now().UTC(),
	})
}

func (p *AMQP) SiteMessage(ctx context.Context, text string) error {
	return p.publishJSON(ctx, SiteMessageQueue, ChatEvent{
		EventType: "SiteMessage",
		Text:      text,
		Timestamp: time.Now().UTC(),
	})
}

func (p *AMQP) publishJSON(ctx context.Context, queue string, ev any) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", queue, err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	err = p.ch.PublishWithContext(pubCtx,
		"",    // default exchange
		queue, // queue name as routing key
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", queue, err)
	}
	return nil
}
