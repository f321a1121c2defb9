// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the order database and creates its schema.

# Connecting

Open picks the driver from the configured type and pings the server:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

SQLite (modernc.org/sqlite, pure Go) is the default. PostgreSQL uses
github.com/lib/pq.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The same DDL runs on both databases.

# Tables

  - orders: one row per checkout, with the product snapshot, customer
    contact and delivery fields, total and status
  - order_messages: chat lines between customer and admin

# Relationships

	orders 1──* order_messages

# Indexes

  - orders.order_number (unique)
  - orders.created_at (admin listing, newest first)
  - order_messages.(order_id, created_at)
*/
package db
