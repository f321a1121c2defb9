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

type ChatHandler struct {
	db       *sql.DB
	notifier notify.Notifier
}

func NewChatHandler(db *sql.DB, notifier notify.Notifier) *ChatHandler {
	return &ChatHandler{db: db, notifier: notifier}
}

// GetChat handles GET /order-chat?orderNumber=
func (h *ChatHandler) GetChat(w http.ResponseWriter, r *http.Request) {
	orderNumber, err := ident.NormalizeOrderNumber(r.URL.Query().Get("orderNumber"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Order number required")
		return
	}

	order, err := loadOrder(r.Context(), h.db, orderNumber)
	if errors.Is(err, errOrderNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		slog.Error("failed to load order", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	messages, err := h.messages(r.Context(), order.ID)
	if err != nil {
		slog.Error("failed to load messages", "order_number", orderNumber, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ChatResponse{
		Order: models.OrderInfo{
			Number:       order.OrderNumber,
			ProductName:  order.Product.Name,
			CustomerName: order.Customer.Name,
			Status:       order.Status,
		},
		Messages: messages,
	})
}

// messages returns the order's chat, oldest first
func (h *ChatHandler) messages(ctx context.Context, orderID string) ([]models.Message, error) {
	rows, err := h.db.QueryContext(ctx, `
		SELECT sender_type, message_text, created_at
		FROM order_messages
		WHERE order_id = $1
		ORDER BY created_at ASC, id ASC
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []models.Message{}
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.Sender, &m.Text, &m.Timestamp); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// PostMessage handles POST /order-chat
// Admin replies are forwarded to the customer in the background
func (h *ChatHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	var req models.PostMessageRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	text := strings.TrimSpace(req.Message)
	orderNumber, err := ident.NormalizeOrderNumber(req.OrderNumber)
	if err != nil || text == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Order number and message required")
		return
	}

	sender := req.Sender
	if sender == "" {
		sender = models.SenderCustomer
	}
	if sender != models.SenderCustomer && sender != models.SenderAdmin {
		middleware.ErrorResponse(w, http.StatusBadRequest, "sender must be one of: customer, admin")
		return
	}

	order, err := loadOrder(r.Context(), h.db, orderNumber)
	if errors.Is(err, errOrderNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		slog.Error("failed to load order", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	_, err = h.db.ExecContext(r.Context(), `
		INSERT INTO order_messages (id, order_id, sender_type, message_text, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, ident.NewRowID(), order.ID, sender, text, time.Now().UTC())
	if err != nil {
		slog.Error("failed to insert message", "order_number", orderNumber, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to send message")
		return
	}

	slog.Info("chat message stored", "order_number", orderNumber, "sender", sender)

	if sender == models.SenderAdmin {
		dispatch("admin_replied", func(ctx context.Context) error {
			return h.notifier.AdminReplied(ctx, order, text)
		})
	}

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}
