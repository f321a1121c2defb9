// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package orderview

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/storefront/models"
)

// PlaceholderText is shown for a chat with no messages
const PlaceholderText = "No messages yet"

// Price formats an amount with thousands separators
func Price(amount int64) string {
	return humanize.Comma(amount)
}

func ago(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// RenderChat writes the chat page as plain text
func RenderChat(w io.Writer, s ChatState, now time.Time) {
	switch s.Phase {
	case PhaseLoading:
		fmt.Fprintln(w, "Loading chat...")
	case PhaseNotFound:
		fmt.Fprintln(w, "Order not found.")
	case PhaseFound:
		fmt.Fprintf(w, "Order %s  %s  [%s]\n", s.Order.Number, s.Order.ProductName, StatusLabel(s.Order.Status))
		fmt.Fprintln(w, strings.Repeat("-", 40))
		if s.Placeholder() {
			fmt.Fprintln(w, PlaceholderText)
		}
		for _, m := range s.Messages {
			who := "You"
			if m.Sender == models.SenderAdmin {
				who = "Shop"
			}
			fmt.Fprintf(w, "%s (%s): %s\n", who, ago(m.Timestamp, now), m.Text)
		}
	}

	if s.Err != nil {
		fmt.Fprintf(w, "! %v\n", s.Err)
	}
	if s.Draft != "" {
		fmt.Fprintf(w, "Unsent: %s\n", s.Draft)
	}
}

// RenderTrack writes the tracking result as plain text
func RenderTrack(w io.Writer, s TrackState, now time.Time) {
	switch s.Phase {
	case PhaseLoading:
		fmt.Fprintf(w, "Looking up %s...\n", s.OrderNumber)
	case PhaseFound:
		o := s.Order
		fmt.Fprintf(w, "Order %s\n", o.OrderNumber)
		fmt.Fprintf(w, "  Status:   %s\n", StatusLabel(o.Status))
		fmt.Fprintf(w, "  Product:  %s\n", o.ProductName)
		fmt.Fprintf(w, "  Total:    %s\n", Price(o.TotalPrice))
		fmt.Fprintf(w, "  Delivery: %s\n", o.DeliveryMethod)
		if o.DeliveryAddress != "" {
			fmt.Fprintf(w, "  Address:  %s\n", o.DeliveryAddress)
		}
		fmt.Fprintf(w, "  Placed:   %s\n", ago(o.CreatedAt, now))
		fmt.Fprintf(w, "  Messages: %d\n", o.MessageCount)
	}

	if s.Err != nil {
		fmt.Fprintf(w, "! %v\n", s.Err)
	}
}

// RenderOrders writes the admin order list as plain text
func RenderOrders(w io.Writer, s OrdersState, now time.Time) {
	if !s.Loaded && s.Err == nil {
		fmt.Fprintln(w, "Loading orders...")
	}
	if s.Loaded && len(s.Orders) == 0 {
		fmt.Fprintln(w, "No orders yet")
	}
	for _, o := range s.Orders {
		fmt.Fprintf(w, "%s  %-10s  %-28s  %10s  %s  %s  (%d msgs, %s)\n",
			o.OrderNumber, StatusLabel(o.Status), o.ProductName, Price(o.TotalPrice),
			o.CustomerName, o.CustomerPhone, o.MessageCount, ago(o.CreatedAt, now))
	}
	if s.Err != nil {
		fmt.Fprintf(w, "! %v\n", s.Err)
	}
}
