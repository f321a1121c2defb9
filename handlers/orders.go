// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/storefront/ident"
	"github.com/danielhkuo/storefront/middleware"
	"github.com/danielhkuo/storefront/models"
	"github.com/danielhkuo/storefront/notify"
)

type OrderHandler struct {
	db       *sql.DB
	notifier notify.Notifier
}

func NewOrderHandler(db *sql.DB, notifier notify.Notifier) *OrderHandler {
	return &OrderHandler{db: db, notifier: notifier}
}

// validateOrder fills defaults and returns a client-facing message for the
// first problem found
func validateOrder(req *models.CreateOrderRequest) string {
	c := &req.Customer
	c.Name = strings.TrimSpace(c.Name)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Email = strings.TrimSpace(c.Email)
	c.Address = strings.TrimSpace(c.Address)

	if c.DeliveryMethod == "" {
		c.DeliveryMethod = models.DeliveryPickup
	}
	if c.PaymentMethod == "" {
		c.PaymentMethod = models.PaymentCash
	}
	if c.DeliveryCompany == "" {
		c.DeliveryCompany = models.DeliveryCompanyNone
	}

	switch {
	case strings.TrimSpace(req.Product.Name) == "":
		return "product name is required"
	case req.Product.Price < 0:
		return "product price must not be negative"
	case c.Name == "":
		return "customer name is required"
	case c.Phone == "":
		return "customer phone is required"
	case !models.ValidDeliveryMethod(c.DeliveryMethod):
		return "deliveryMethod must be one of: pickup, delivery"
	case c.DeliveryMethod == models.DeliveryDelivery && c.Address == "":
		return "address is required for delivery"
	case !models.ValidPaymentMethod(c.PaymentMethod):
		return "paymentMethod must be one of: cash, card, online"
	case req.TotalPrice < 0:
		return "totalPrice must not be negative"
	}
	return ""
}

// CreateOrder handles POST /create-order
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.CreateOrderRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if msg := validateOrder(&req); msg != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	orderNumber, err := ident.GenerateOrderNumber()
	if err != nil {
		slog.Error("failed to generate order number", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create order")
		return
	}

	order := models.Order{
		ID:          ident.NewRowID(),
		OrderNumber: orderNumber,
		Product:     req.Product,
		Customer:    req.Customer,
		TotalPrice:  req.TotalPrice,
		Status:      models.StatusNew,
		CreatedAt:   time.Now().UTC(),
	}

	_, err = h.db.ExecContext(r.Context(), `
		INSERT INTO orders (
			id, order_number, product_id, product_name, product_price,
			customer_name, customer_phone, customer_email, delivery_method,
			delivery_company, delivery_address, payment_method, total_price,
			comment, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`, order.ID, order.OrderNumber, order.Product.ID, order.Product.Name, order.Product.Price,
		order.Customer.Name, order.Customer.Phone, order.Customer.Email, order.Customer.DeliveryMethod,
		order.Customer.DeliveryCompany, order.Customer.Address, order.Customer.PaymentMethod, order.TotalPrice,
		order.Customer.Comment, order.Status, order.CreatedAt)

	if err != nil {
		slog.Error("failed to insert order", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create order")
		return
	}

	slog.Info("order created", "order_number", orderNumber, "product", order.Product.Name, "total", order.TotalPrice)

	dispatch("order_created", func(ctx context.Context) error {
		return h.notifier.OrderCreated(ctx, order)
	})

	middleware.JSONResponse(w, http.StatusOK, models.CreateOrderResponse{
		Success:     true,
		OrderNumber: orderNumber,
	})
}

// ListOrders handles GET /orders-list
// Newest first, each with its chat message count
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.QueryContext(r.Context(), `SELECT`+summaryColumns+summaryFrom+`
		GROUP BY o.id
		ORDER BY o.created_at DESC
	`)
	if err != nil {
		slog.Error("failed to query orders", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	orders := []models.OrderSummary{}
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			slog.Error("failed to scan order", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		orders = append(orders, s)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate orders", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.OrdersResponse{Orders: orders})
}

// UpdateStatus handles POST /order-status
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateStatusRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.OrderID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "orderId is required")
		return
	}
	if !models.ValidStatus(req.Status) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "status must be one of: new, processing, completed")
		return
	}

	res, err := h.db.ExecContext(r.Context(), `
		UPDATE orders SET status = $1 WHERE order_number = $2
	`, req.Status, req.OrderID)
	if err != nil {
		slog.Error("failed to update order status", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update status")
		return
	}

	n, err := res.RowsAffected()
	if err != nil {
		slog.Error("failed to read affected rows", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update status")
		return
	}
	if n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Order not found")
		return
	}

	slog.Info("order status updated", "order_number", req.OrderID, "status", req.Status)

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// TrackOrder handles GET /track-order?orderNumber=
func (h *OrderHandler) TrackOrder(w http.ResponseWriter, r *http.Request) {
	orderNumber, err := ident.NormalizeOrderNumber(r.URL.Query().Get("orderNumber"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Order number required")
		return
	}

	row := h.db.QueryRowContext(r.Context(), `SELECT`+summaryColumns+summaryFrom+`
		WHERE o.order_number = $1
		GROUP BY o.id
	`, orderNumber)

	summary, err := scanSummary(row)
	if errors.Is(err, sql.ErrNoRows) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		slog.Error("failed to query order", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.TrackResponse{Order: summary})
}
