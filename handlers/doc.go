// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the storefront order API.

# Handler Types

Each handler is a struct with its dependencies injected:

  - OrderHandler: order creation, admin listing, status changes, tracking
  - ChatHandler: per-order chat between customer and shop
  - ContactHandler: free-form site messages forwarded to the shop

Handlers are created via constructor functions:

	orders := handlers.NewOrderHandler(db, notifier)
	chat := handlers.NewChatHandler(db, notifier)
	contact := handlers.NewContactHandler(notifier)

# Orders

	POST /create-order  → CreateOrder (returns orderNumber)
	GET  /orders-list   → ListOrders (newest first, with messageCount)
	POST /order-status  → UpdateStatus (orderId is the order number)
	GET  /track-order   → TrackOrder (?orderNumber=)

Order numbers are "ORD-" followed by 12 upper-case hex digits. Lookups
trim and upper-case the supplied number first.

Status is a closed set: new → processing → completed. Any value outside
the set is rejected with 400; an unknown order with 404.

# Chat

	GET  /order-chat?orderNumber= → GetChat (order header + messages, oldest first)
	POST /order-chat              → PostMessage

Sender defaults to "customer". A message from "admin" is also forwarded
to the customer's email when one is on file.

# Notifications

Order and admin-reply notifications are best effort. They run on a
background goroutine with their own timeout and never change the HTTP
response. POST /chat-notify is the exception: it waits for delivery and
reports 500 when no channel is configured or every channel failed.

# Error Responses

All errors use a consistent JSON format:

	{"error": "Bad Request", "message": "address is required for delivery"}

The error field is the HTTP status text. Database failures are logged
and reported as 500 without details.

# Files

  - orders.go: OrderHandler
  - chat.go: ChatHandler
  - contact.go: ContactHandler
  - queries.go: shared row scanning, order lookup, notification dispatch
*/
package handlers
