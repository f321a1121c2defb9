package models

import "time"

// Order status constants
const (
	StatusNew        = "new"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
)

// Delivery method constants
const (
	DeliveryPickup   = "pickup"
	DeliveryDelivery = "delivery"
)

// Payment method constants (recorded labels only)
const (
	PaymentCash   = "cash"
	PaymentCard   = "card"
	PaymentOnline = "online"
)

// Chat sender constants
const (
	SenderCustomer = "customer"
	SenderAdmin    = "admin"
)

// DeliveryCompanyNone means the shop's own courier (or pickup)
const DeliveryCompanyNone = "none"

// ValidStatus reports whether s is one of the closed set of order statuses
func ValidStatus(s string) bool {
	switch s {
	case StatusNew, StatusProcessing, StatusCompleted:
		return true
	}
	return false
}

// ValidDeliveryMethod reports whether m is pickup or delivery
func ValidDeliveryMethod(m string) bool {
	return m == DeliveryPickup || m == DeliveryDelivery
}

// ValidPaymentMethod reports whether m is a known payment label
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentOnline:
		return true
	}
	return false
}

// Request types

// ProductRef is the product snapshot carried by an order
type ProductRef struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Image string `json:"image,omitempty"`
}

type Customer struct {
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	Address         string `json:"address"`
	DeliveryMethod  string `json:"deliveryMethod"`
	DeliveryCompany string `json:"deliveryCompany"`
	PaymentMethod   string `json:"paymentMethod"`
	Comment         string `json:"comment"`
}

type CreateOrderRequest struct {
	Product    ProductRef `json:"product"`
	Customer   Customer   `json:"customer"`
	TotalPrice int64      `json:"totalPrice"`
}

// orderId carries the order number
type UpdateStatusRequest struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

type PostMessageRequest struct {
	OrderNumber string `json:"orderNumber"`
	Message     string `json:"message"`
	Sender      string `json:"sender"`
}

type NotifyRequest struct {
	Message string `json:"message"`
}

// Response types

type CreateOrderResponse struct {
	Success     bool   `json:"success"`
	OrderNumber string `json:"orderNumber"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type OrdersResponse struct {
	Orders []OrderSummary `json:"orders"`
}

type ChatResponse struct {
	Order    OrderInfo `json:"order"`
	Messages []Message `json:"messages"`
}

type TrackResponse struct {
	Order OrderSummary `json:"order"`
}

// Domain types

// Order is the full stored order row
type Order struct {
	ID          string     `json:"id"`
	OrderNumber string     `json:"orderNumber"`
	Product     ProductRef `json:"product"`
	Customer    Customer   `json:"customer"`
	TotalPrice  int64      `json:"totalPrice"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// OrderSummary is the listing/tracking view of an order
type OrderSummary struct {
	ID              string    `json:"id"`
	OrderNumber     string    `json:"orderNumber"`
	ProductName     string    `json:"productName"`
	CustomerName    string    `json:"customerName"`
	CustomerPhone   string    `json:"customerPhone"`
	CustomerEmail   string    `json:"customerEmail"`
	DeliveryMethod  string    `json:"deliveryMethod"`
	DeliveryCompany string    `json:"deliveryCompany"`
	DeliveryAddress string    `json:"deliveryAddress"`
	TotalPrice      int64     `json:"totalPrice"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	MessageCount    int       `json:"messageCount"`
}

// OrderInfo is the compact header shown above a chat
type OrderInfo struct {
	Number       string `json:"number"`
	ProductName  string `json:"productName"`
	CustomerName string `json:"customerName"`
	Status       string `json:"status"`
}

type Message struct {
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
