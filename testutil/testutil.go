// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/storefront/db"
	"github.com/danielhkuo/storefront/ident"
	"github.com/danielhkuo/storefront/models"
)

// SetupTestDB opens a fresh SQLite database under t.TempDir with the full
// schema. It is closed automatically when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	url := "file:" + filepath.Join(t.TempDir(), "test.db")
	conn, err := db.Open("sqlite", url)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// CreateTestOrder inserts an order with status "new" and returns it.
// createdAt controls ordering in listings.
func CreateTestOrder(t *testing.T, conn *sql.DB, customerName string, createdAt time.Time) models.Order {
	t.Helper()

	number, err := ident.GenerateOrderNumber()
	if err != nil {
		t.Fatalf("Failed to generate order number: %v", err)
	}

	o := models.Order{
		ID:          ident.NewRowID(),
		OrderNumber: number,
		Product:     models.ProductRef{ID: 1, Name: "Test Jacket", Price: 8990},
		Customer: models.Customer{
			Name:            customerName,
			Phone:           "+10000000000",
			Email:           "customer@example.com",
			DeliveryMethod:  models.DeliveryPickup,
			DeliveryCompany: models.DeliveryCompanyNone,
			PaymentMethod:   models.PaymentCash,
		},
		TotalPrice: 8990,
		Status:     models.StatusNew,
		CreatedAt:  createdAt.UTC(),
	}

	_, err = conn.Exec(`
		INSERT INTO orders (
			id, order_number, product_id, product_name, product_price,
			customer_name, customer_phone, customer_email, delivery_method,
			delivery_company, delivery_address, payment_method, total_price,
			comment, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`, o.ID, o.OrderNumber, o.Product.ID, o.Product.Name, o.Product.Price,
		o.Customer.Name, o.Customer.Phone, o.Customer.Email, o.Customer.DeliveryMethod,
		o.Customer.DeliveryCompany, o.Customer.Address, o.Customer.PaymentMethod, o.TotalPrice,
		o.Customer.Comment, o.Status, o.CreatedAt)
	if err != nil {
		t.Fatalf("Failed to create test order: %v", err)
	}

	return o
}

// AddTestMessage appends a chat message to an order
func AddTestMessage(t *testing.T, conn *sql.DB, orderID, sender, text string, at time.Time) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO order_messages (id, order_id, sender_type, message_text, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, ident.NewRowID(), orderID, sender, text, at.UTC())
	if err != nil {
		t.Fatalf("Failed to create test message: %v", err)
	}
}

// Notification is one call recorded by RecordingNotifier
type Notification struct {
	Kind  string
	Order models.Order
	Text  string
}

// RecordingNotifier captures notifications on a buffered channel so tests
// can wait for ones sent from background goroutines.
type RecordingNotifier struct {
	Calls   chan Notification
	SiteErr error

	mu sync.Mutex
}

func NewRecordingNotifier() *RecordingNotifier {
	return &RecordingNotifier{Calls: make(chan Notification, 16)}
}

func (n *RecordingNotifier) OrderCreated(_ context.Context, o models.Order) error {
	n.Calls <- Notification{Kind: "order_created", Order: o}
	return nil
}

func (n *RecordingNotifier) AdminReplied(_ context.Context, o models.Order, text string) error {
	n.Calls <- Notification{Kind: "admin_replied", Order: o, Text: text}
	return nil
}

func (n *RecordingNotifier) SiteMessage(_ context.Context, text string) error {
	n.mu.Lock()
	err := n.SiteErr
	n.mu.Unlock()
	if err != nil {
		return err
	}
	n.Calls <- Notification{Kind: "site_message", Text: text}
	return nil
}

// Wait returns the next notification or fails the test after a second
func (n *RecordingNotifier) Wait(t *testing.T) Notification {
	t.Helper()
	select {
	case c := <-n.Calls:
		return c
	case <-time.After(time.Second):
		t.Fatal("Timed out waiting for notification")
		return Notification{}
	}
}

// AssertNoNotification fails if a notification arrives within a short window
func (n *RecordingNotifier) AssertNoNotification(t *testing.T) {
	t.Helper()
	select {
	case c := <-n.Calls:
		t.Errorf("Unexpected notification: %+v", c)
	case <-time.After(50 * time.Millisecond):
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body any, headers map[string]string) *http.Request {
	var req *http.Request
	if s, ok := body.(string); ok {
		req = httptest.NewRequest(method, path, bytes.NewReader([]byte(s)))
		req.Header.Set("Content-Type", "application/json")
	} else if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
