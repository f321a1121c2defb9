// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types shared by the
order backend and the storefront client.

All JSON field names are camelCase to match the storefront wire contract.

# Request Types

  - CreateOrderRequest: product, customer, totalPrice
  - UpdateStatusRequest: orderId (the order number), status
  - PostMessageRequest: orderNumber, message, sender
  - NotifyRequest: message

# Response Types

  - CreateOrderResponse: success, orderNumber
  - OrdersResponse: orders
  - ChatResponse: order, messages
  - TrackResponse: order
  - SuccessResponse: success
  - ErrorResponse: error, message

# Domain Types

  - Order: full stored order with product snapshot and customer
  - OrderSummary: listing and tracking view, with messageCount
  - OrderInfo: compact chat header
  - Message: one chat line (sender, text, timestamp)

# Constants

Order status (closed set, see ValidStatus):

	StatusNew        = "new"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"

Delivery methods:

	DeliveryPickup   = "pickup"
	DeliveryDelivery = "delivery"

Payment methods (labels only, nothing is charged):

	PaymentCash   = "cash"
	PaymentCard   = "card"
	PaymentOnline = "online"

Chat senders:

	SenderCustomer = "customer"
	SenderAdmin    = "admin"
*/
package models
