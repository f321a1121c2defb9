// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package orderclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/danielhkuo/storefront/models"
)

// ErrNotFound matches any 404 from the backend
var ErrNotFound = errors.New("not found")

// APIError is a non-2xx backend response
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned %d", e.Status)
	}
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}

func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// Endpoints are resolved against the base URL, so each may also be an
// absolute URL pointing at a separately hosted function.
type Endpoints struct {
	OrdersList  string
	OrderStatus string
	CreateOrder string
	OrderChat   string
	TrackOrder  string
	ChatNotify  string
}

func DefaultEndpoints() Endpoints {
	return Endpoints{
		OrdersList:  "orders-list",
		OrderStatus: "order-status",
		CreateOrder: "create-order",
		OrderChat:   "order-chat",
		TrackOrder:  "track-order",
		ChatNotify:  "chat-notify",
	}
}

type Client struct {
	BaseURL   *url.URL
	HTTP      *http.Client
	Endpoints Endpoints
}

// New builds a client for the backend at baseURL. With a nil httpClient
// a client without a timeout is used; deadlines come from the context.
func New(baseURL string, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid api url %q: scheme and host required", baseURL)
	}
	// Endpoints resolve below the base path
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{BaseURL: u, HTTP: httpClient, Endpoints: DefaultEndpoints()}, nil
}

// do sends in as JSON (when non-nil) and decodes a 2xx body into out
func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, in, out any) error {
	ref, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	u := c.BaseURL.ResolveReference(ref)
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, u.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", u.Path, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	var body models.ErrorResponse
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if json.Unmarshal(data, &body) == nil {
		apiErr.Message = body.Message
		if apiErr.Message == "" {
			apiErr.Message = body.Error
		}
	}
	return apiErr
}

// CreateOrder places an order and returns its number
func (c *Client) CreateOrder(ctx context.Context, req models.CreateOrderRequest) (string, error) {
	var resp models.CreateOrderResponse
	if err := c.do(ctx, http.MethodPost, c.Endpoints.CreateOrder, nil, req, &resp); err != nil {
		return "", err
	}
	if resp.OrderNumber == "" {
		return "", errors.New("create order: response has no order number")
	}
	return resp.OrderNumber, nil
}

// ListOrders returns every order, newest first
func (c *Client) ListOrders(ctx context.Context) ([]models.OrderSummary, error) {
	var resp models.OrdersResponse
	if err := c.do(ctx, http.MethodGet, c.Endpoints.OrdersList, nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

func (c *Client) UpdateStatus(ctx context.Context, orderNumber, status string) error {
	req := models.UpdateStatusRequest{OrderID: orderNumber, Status: status}
	return c.do(ctx, http.MethodPost, c.Endpoints.OrderStatus, nil, req, nil)
}

// Chat returns the order header and its messages, oldest first
func (c *Client) Chat(ctx context.Context, orderNumber string) (models.ChatResponse, error) {
	var resp models.ChatResponse
	q := url.Values{"orderNumber": {orderNumber}}
	err := c.do(ctx, http.MethodGet, c.Endpoints.OrderChat, q, nil, &resp)
	return resp, err
}

func (c *Client) PostMessage(ctx context.Context, orderNumber, text, sender string) error {
	req := models.PostMessageRequest{OrderNumber: orderNumber, Message: text, Sender: sender}
	return c.do(ctx, http.MethodPost, c.Endpoints.OrderChat, nil, req, nil)
}

func (c *Client) Track(ctx context.Context, orderNumber string) (models.OrderSummary, error) {
	var resp models.TrackResponse
	q := url.Values{"orderNumber": {orderNumber}}
	err := c.do(ctx, http.MethodGet, c.Endpoints.TrackOrder, q, nil, &resp)
	return resp.Order, err
}

// Notify forwards a free-form site message to the shop
func (c *Client) Notify(ctx context.Context, text string) error {
	return c.do(ctx, http.MethodPost, c.Endpoints.ChatNotify, nil, models.NotifyRequest{Message: text}, nil)
}
