// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/storefront/models"
	"github.com/danielhkuo/storefront/testutil"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err, "Failed to create sqlmock")
	t.Cleanup(func() { mockDB.Close() })
	return mockDB, mock
}

var errDBDown = errors.New("connection refused")

func TestCreateOrderInsertFailure(t *testing.T) {
	db, mock := newMockDB(t)
	notifier := testutil.NewRecordingNotifier()
	handler := NewOrderHandler(db, notifier)

	mock.ExpectExec("INSERT INTO orders").WillReturnError(errDBDown)

	w := httptest.NewRecorder()
	handler.CreateOrder(w, testutil.MakeRequest("POST", "/create-order", validOrderRequest(), nil))

	testutil.AssertStatus(t, w, http.StatusInternalServerError)
	notifier.AssertNoNotification(t)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListOrdersQueryFailure(t *testing.T) {
	db, mock := newMockDB(t)
	handler := NewOrderHandler(db, testutil.NewRecordingNotifier())

	mock.ExpectQuery("SELECT").WillReturnError(errDBDown)

	w := httptest.NewRecorder()
	handler.ListOrders(w, testutil.MakeRequest("GET", "/orders-list", nil, nil))

	testutil.AssertStatus(t, w, http.StatusInternalServerError)
	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	assert.Equal(t, "Database error", resp.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusExecFailure(t *testing.T) {
	db, mock := newMockDB(t)
	handler := NewOrderHandler(db, testutil.NewRecordingNotifier())

	mock.ExpectExec("UPDATE orders SET status").
		WithArgs(models.StatusCompleted, "ORD-ABCDEF123456").
		WillReturnError(errDBDown)

	body := models.UpdateStatusRequest{OrderID: "ORD-ABCDEF123456", Status: models.StatusCompleted}
	w := httptest.NewRecorder()
	handler.UpdateStatus(w, testutil.MakeRequest("POST", "/order-status", body, nil))

	testutil.AssertStatus(t, w, http.StatusInternalServerError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetChatMessagesFailure(t *testing.T) {
	db, mock := newMockDB(t)
	handler := NewChatHandler(db, testutil.NewRecordingNotifier())

	order := sqlmock.NewRows([]string{
		"id", "order_number", "product_id", "product_name", "product_price",
		"customer_name", "customer_phone", "customer_email", "delivery_method",
		"delivery_company", "delivery_address", "payment_method", "total_price",
		"comment", "status", "created_at",
	}).AddRow(
		"row-1", "ORD-ABCDEF123456", 1, "Jacket", 8990,
		"Alice", "+1555", "", "pickup",
		"none", "", "cash", 8990,
		"", "new", time.Now(),
	)

	mock.ExpectQuery("FROM orders").WithArgs("ORD-ABCDEF123456").WillReturnRows(order)
	mock.ExpectQuery("FROM order_messages").WithArgs("row-1").WillReturnError(errDBDown)

	w := httptest.NewRecorder()
	handler.GetChat(w, testutil.MakeRequest("GET", "/order-chat?orderNumber=ORD-ABCDEF123456", nil, nil))

	testutil.AssertStatus(t, w, http.StatusInternalServerError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetChatNoRows(t *testing.T) {
	db, mock := newMockDB(t)
	handler := NewChatHandler(db, testutil.NewRecordingNotifier())

	mock.ExpectQuery("FROM orders").
		WithArgs("ORD-ABCDEF123456").
		WillReturnError(sql.ErrNoRows)

	w := httptest.NewRecorder()
	handler.GetChat(w, testutil.MakeRequest("GET", "/order-chat?orderNumber=ORD-ABCDEF123456", nil, nil))

	testutil.AssertStatus(t, w, http.StatusNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostMessageLookupFailure(t *testing.T) {
	db, mock := newMockDB(t)
	handler := NewChatHandler(db, testutil.NewRecordingNotifier())

	mock.ExpectQuery("FROM orders").WillReturnError(errDBDown)

	body := models.PostMessageRequest{OrderNumber: "ORD-ABCDEF123456", Message: "hi"}
	w := httptest.NewRecorder()
	handler.PostMessage(w, testutil.MakeRequest("POST", "/order-chat", body, nil))

	testutil.AssertStatus(t, w, http.StatusInternalServerError)
	assert.NoError(t, mock.ExpectationsWereMet())
}
