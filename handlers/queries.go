// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/danielhkuo/storefront/models"
)

var errOrderNotFound = errors.New("order not found")

const summaryColumns = `
	o.id, o.order_number, o.product_name, o.customer_name, o.customer_phone,
	o.customer_email, o.delivery_method, o.delivery_company, o.delivery_address,
	o.total_price, o.status, o.created_at, COUNT(m.id)`

const summaryFrom = `
	FROM orders o
	LEFT JOIN order_messages m ON m.order_id = o.id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSummary(row rowScanner) (models.OrderSummary, error) {
	var s models.OrderSummary
	err := row.Scan(
		&s.ID, &s.OrderNumber, &s.ProductName, &s.CustomerName, &s.CustomerPhone,
		&s.CustomerEmail, &s.DeliveryMethod, &s.DeliveryCompany, &s.DeliveryAddress,
		&s.TotalPrice, &s.Status, &s.CreatedAt, &s.MessageCount,
	)
	return s, err
}

// loadOrder fetches the full order row by its customer-facing number
func loadOrder(ctx context.Context, db *sql.DB, orderNumber string) (models.Order, error) {
	var o models.Order
	err := db.QueryRowContext(ctx, `
		SELECT id, order_number, product_id, product_name, product_price,
		       customer_name, customer_phone, customer_email, delivery_method,
		       delivery_company, delivery_address, payment_method, total_price,
		       comment, status, created_at
		FROM orders
		WHERE order_number = $1
	`, orderNumber).Scan(
		&o.ID, &o.OrderNumber, &o.Product.ID, &o.Product.Name, &o.Product.Price,
		&o.Customer.Name, &o.Customer.Phone, &o.Customer.Email, &o.Customer.DeliveryMethod,
		&o.Customer.DeliveryCompany, &o.Customer.Address, &o.Customer.PaymentMethod, &o.TotalPrice,
		&o.Customer.Comment, &o.Status, &o.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Order{}, errOrderNotFound
	}
	return o, err
}

// notifyTimeout bounds background notification delivery
const notifyTimeout = 30 * time.Second

// dispatch runs a best-effort notification off the request path
func dispatch(kind string, send func(ctx context.Context) error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := send(ctx); err != nil {
			slog.Warn("notification failed", "kind", kind, "error", err)
		}
	}()
}
