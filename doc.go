// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the storefront order API server.

The server stores orders placed by the storefront, hosts the per-order
chat between customer and shop, and forwards notifications to the shop
(Telegram, email, RabbitMQ). The customer-facing client lives in
cmd/storefront.

# Starting the Server

With no configuration the server uses a local SQLite file:

	go run .

Or with PostgreSQL:

	DATABASE_TYPE=postgres DATABASE_URL=postgres://... go run .
	go run . -p 3318 -t postgres -d "postgres://..."

A .env file in the working directory is loaded first. Variables already
in the environment take precedence over it.

# Configuration

  - PORT (-p): server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - DATABASE_URL (-d): connection string, required for postgres

Notification channels, each enabled only when fully configured:

  - TELEGRAM_BOT_TOKEN (--telegram-token), TELEGRAM_CHAT_ID
  - SMTP_HOST, SMTP_PORT (default 465), SMTP_USER,
    SMTP_PASSWORD (--smtp-password), SHOP_EMAIL (default SMTP_USER)
  - RABBITMQ_URL: publish order and chat events to queues

# Architecture

  - handlers: HTTP request handlers (orders, chat, contact)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, recovery, logging, JSON helpers
  - models: Wire and domain types
  - notify: Telegram, email, and AMQP notifiers
  - ident: Order numbers and row ids
  - db: Connection and schema
  - cliparse: Configuration parsing

Client-side packages used by cmd/storefront:

  - localstore: durable key/value storage for client state
  - keyset: persistent cart and wishlist
  - catalog: product provider and catalog view
  - checkout: order form, totals, submission
  - orderclient: HTTP client for the API above
  - poller: serialized periodic refresh
  - orderview: chat, tracking, and admin order views

See package documentation for each component.
*/
package main
