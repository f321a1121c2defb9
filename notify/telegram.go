// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/storefront/models"
)

const telegramAPI = "https://api.telegram.org"

// Telegram posts to a shop chat through the Bot API
type Telegram struct {
	BaseURL string
	token   string
	chatID  string
	http    *http.Client
}

func NewTelegram(token, chatID string, httpClient *http.Client) *Telegram {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Telegram{BaseURL: telegramAPI, token: token, chatID: chatID, http: httpClient}
}

func (t *Telegram) OrderCreated(ctx context.Context, o models.Order) error {
	text := fmt.Sprintf("🎉 New order #%s\n%s, %s\n%s, %s\nTotal: %s",
		o.OrderNumber, html.EscapeString(o.Product.Name), humanize.Comma(o.Product.Price),
		html.EscapeString(o.Customer.Name), html.EscapeString(o.Customer.Phone), humanize.Comma(o.TotalPrice))
	return t.send(ctx, text)
}

// The shop chat already sees admin replies
func (t *Telegram) AdminReplied(context.Context, models.Order, string) error {
	return nil
}

func (t *Telegram) SiteMessage(ctx context.Context, text string) error {
	return t.send(ctx, "💬 New message from the site:\n\n"+html.EscapeString(text))
}

func (t *Telegram) send(ctx context.Context, text string) error {
	form := url.Values{
		"chat_id":    {t.chatID},
		"text":       {text},
		"parse_mode": {"HTML"},
	}
	endpoint := t.BaseURL + "/bot" + t.token + "/sendMessage"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.http.Do(req)
	if err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	defer resp.Body.Close()

	var result struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("telegram response: %w", err)
	}
	if !result.OK {
		return fmt.Errorf("telegram rejected message: %s", result.Description)
	}
	return nil
}
