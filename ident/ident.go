// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ident

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// OrderNumberPrefix starts every order number handed to customers
const OrderNumberPrefix = "ORD-"

var ErrInvalidOrderNumber = errors.New("invalid order number")

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateOrderNumber creates a customer-facing order number: ORD- followed
// by 12 upper-case hex characters
func GenerateOrderNumber() (string, error) {
	id, err := GenerateID(6)
	if err != nil {
		return "", fmt.Errorf("failed to generate order number: %w", err)
	}
	return OrderNumberPrefix + strings.ToUpper(id), nil
}

// NewRowID returns a primary key for order and message rows
func NewRowID() string {
	return uuid.NewString()
}

// NormalizeOrderNumber trims whitespace and upper-cases what a customer typed
// into the tracking box
func NormalizeOrderNumber(s string) (string, error) {
	n := strings.ToUpper(strings.TrimSpace(s))
	if n == "" {
		return "", ErrInvalidOrderNumber
	}
	return n, nil
}
