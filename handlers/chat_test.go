// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/storefront/models"
	"github.com/danielhkuo/storefront/testutil"
)

func TestGetChat(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewChatHandler(db, testutil.NewRecordingNotifier())

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	order := testutil.CreateTestOrder(t, db, "Alice", base)
	empty := testutil.CreateTestOrder(t, db, "Bob", base)

	// Inserted out of order to check the sort
	testutil.AddTestMessage(t, db, order.ID, models.SenderAdmin, "second", base.Add(2*time.Minute))
	testutil.AddTestMessage(t, db, order.ID, models.SenderCustomer, "first", base.Add(time.Minute))

	t.Run("messages ascending", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.GetChat(w, testutil.MakeRequest("GET", "/order-chat?orderNumber="+order.OrderNumber, nil, nil))
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.ChatResponse
		testutil.AssertJSON(t, w, &resp)
		assert.Equal(t, order.OrderNumber, resp.Order.Number)
		assert.Equal(t, "Alice", resp.Order.CustomerName)
		assert.Equal(t, "Test Jacket", resp.Order.ProductName)
		require.Len(t, resp.Messages, 2)
		assert.Equal(t, "first", resp.Messages[0].Text)
		assert.Equal(t, models.SenderCustomer, resp.Messages[0].Sender)
		assert.Equal(t, "second", resp.Messages[1].Text)
		assert.Equal(t, models.SenderAdmin, resp.Messages[1].Sender)
	})

	t.Run("order without messages", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.GetChat(w, testutil.MakeRequest("GET", "/order-chat?orderNumber="+empty.OrderNumber, nil, nil))
		testutil.AssertStatus(t, w, http.StatusOK)
		assert.Contains(t, w.Body.String(), `"messages":[]`)
	})

	t.Run("unknown order", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.GetChat(w, testutil.MakeRequest("GET", "/order-chat?orderNumber=ORD-000000000000", nil, nil))
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	t.Run("missing order number", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.GetChat(w, testutil.MakeRequest("GET", "/order-chat", nil, nil))
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})
}

func TestPostMessage(t *testing.T) {
	db := testutil.SetupTestDB(t)
	notifier := testutil.NewRecordingNotifier()
	handler := NewChatHandler(db, notifier)
	order := testutil.CreateTestOrder(t, db, "Alice", time.Now())

	count := func(t *testing.T, sender string) int {
		t.Helper()
		var n int
		err := db.QueryRow(
			"SELECT COUNT(*) FROM order_messages WHERE order_id = $1 AND sender_type = $2",
			order.ID, sender,
		).Scan(&n)
		require.NoError(t, err)
		return n
	}

	t.Run("customer message defaults sender", func(t *testing.T) {
		body := models.PostMessageRequest{OrderNumber: order.OrderNumber, Message: "Where is my order?"}
		w := httptest.NewRecorder()
		handler.PostMessage(w, testutil.MakeRequest("POST", "/order-chat", body, nil))

		testutil.AssertStatus(t, w, http.StatusOK)
		assert.Equal(t, 1, count(t, models.SenderCustomer))
		notifier.AssertNoNotification(t)
	})

	t.Run("admin reply notifies customer", func(t *testing.T) {
		body := models.PostMessageRequest{OrderNumber: order.OrderNumber, Message: " Shipped today ", Sender: models.SenderAdmin}
		w := httptest.NewRecorder()
		handler.PostMessage(w, testutil.MakeRequest("POST", "/order-chat", body, nil))

		testutil.AssertStatus(t, w, http.StatusOK)
		assert.Equal(t, 1, count(t, models.SenderAdmin))

		n := notifier.Wait(t)
		assert.Equal(t, "admin_replied", n.Kind)
		assert.Equal(t, "Shipped today", n.Text)
		assert.Equal(t, "customer@example.com", n.Order.Customer.Email)
	})

	errorCases := []struct {
		name           string
		body           any
		expectedStatus int
	}{
		{"blank message", models.PostMessageRequest{OrderNumber: order.OrderNumber, Message: "  "}, http.StatusBadRequest},
		{"missing order number", models.PostMessageRequest{Message: "hi"}, http.StatusBadRequest},
		{"unknown sender", models.PostMessageRequest{OrderNumber: order.OrderNumber, Message: "hi", Sender: "bot"}, http.StatusBadRequest},
		{"unknown order", models.PostMessageRequest{OrderNumber: "ORD-000000000000", Message: "hi"}, http.StatusNotFound},
		{"invalid JSON", "nope", http.StatusBadRequest},
	}

	for _, tt := range errorCases {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.PostMessage(w, testutil.MakeRequest("POST", "/order-chat", tt.body, nil))
			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}
}
