// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/storefront/handlers"
	"github.com/danielhkuo/storefront/middleware"
	"github.com/danielhkuo/storefront/notify"
)

func NewRouter(db *sql.DB, notifier notify.Notifier) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	orderHandler := handlers.NewOrderHandler(db, notifier)
	chatHandler := handlers.NewChatHandler(db, notifier)
	contactHandler := handlers.NewContactHandler(notifier)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Checkout and tracking (public)
	mux.HandleFunc("POST /create-order", middleware.WithLogging(orderHandler.CreateOrder))
	mux.HandleFunc("GET /track-order", middleware.WithLogging(orderHandler.TrackOrder))

	// Shop administration
	mux.HandleFunc("GET /orders-list", middleware.WithLogging(orderHandler.ListOrders))
	mux.HandleFunc("POST /order-status", middleware.WithLogging(orderHandler.UpdateStatus))

	// Order chat
	mux.HandleFunc("GET /order-chat", middleware.WithLogging(chatHandler.GetChat))
	mux.HandleFunc("POST /order-chat", middleware.WithLogging(chatHandler.PostMessage))

	// Site contact form
	mux.HandleFunc("POST /chat-notify", middleware.WithLogging(contactHandler.ChatNotify))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("storefront API v1"))
	})

	return middleware.Recover(middleware.CORS(mux))
}
