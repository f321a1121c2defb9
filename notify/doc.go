// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package notify delivers order and chat notifications outside the storefront.

# Channels

  - Telegram: new orders and site chat messages go to the shop's chat
    through the Bot API
  - Email: new orders go to the shop mailbox; admin chat replies go to
    the customer when they gave an address. HTML bodies use html/template
    and go-humanize for prices
  - AMQP: every event is published as JSON to a durable RabbitMQ queue

New builds a Multi from whatever is configured, or Nop when nothing is:

	n, closeFn, err := notify.New(cfg)
	defer closeFn()

# Delivery Semantics

Notifications are best effort. Handlers send them after the order or
message is stored, log failures and never fail the request because of
them. The one exception is the site chat widget (POST /chat-notify),
whose only purpose is delivery: SiteMessage errors turn into a 500.
*/
package notify
