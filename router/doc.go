// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the storefront order API.

# Route Registration

NewRouter returns the complete handler, with panic recovery and CORS
applied around the mux:

	h := router.NewRouter(db, notifier)

# Endpoints

Health:

	GET /health

Checkout and tracking:

	POST /create-order - Place an order, returns orderNumber
	GET  /track-order  - Order status by ?orderNumber=

Shop administration:

	GET  /orders-list  - All orders, newest first
	POST /order-status - Change status (new, processing, completed)

Order chat:

	GET  /order-chat - Order header and messages by ?orderNumber=
	POST /order-chat - Append a customer or admin message

Contact:

	POST /chat-notify - Forward a site message to the shop

Any path can also be hit with OPTIONS; preflight is answered by the CORS
middleware before routing.
*/
package router
