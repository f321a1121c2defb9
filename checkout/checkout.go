// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"github.com/danielhkuo/storefront/catalog"
	"github.com/danielhkuo/storefront/models"
)

// DeliverySurcharge is added to the price when the order is delivered
const DeliverySurcharge int64 = 300

var (
	ErrValidation       = errors.New("checkout: invalid form")
	ErrAlreadySubmitted = errors.New("checkout: order already placed")
)

// ProductSnapshot is the product as it was when checkout opened
type ProductSnapshot struct {
	ID    int64
	Name  string
	Price int64
	Image string
}

func Snapshot(p catalog.Product) ProductSnapshot {
	return ProductSnapshot{ID: p.ID, Name: p.Name, Price: p.Price, Image: p.Image}
}

// Total is price plus the surcharge for delivery
func Total(price int64, deliveryMethod string) int64 {
	if deliveryMethod == models.DeliveryDelivery {
		return price + DeliverySurcharge
	}
	return price
}

type Form struct {
	Name            string
	Phone           string
	Email           string
	Address         string
	DeliveryMethod  string
	DeliveryCompany string
	PaymentMethod   string
	Comment         string
}

// NewForm returns a form with pickup, cash and the shop's own courier
func NewForm() Form {
	return Form{
		DeliveryMethod:  models.DeliveryPickup,
		DeliveryCompany: models.DeliveryCompanyNone,
		PaymentMethod:   models.PaymentCash,
	}
}

func (f Form) Validate() error {
	switch {
	case strings.TrimSpace(f.Name) == "":
		return fmt.Errorf("%w: name is required", ErrValidation)
	case strings.TrimSpace(f.Phone) == "":
		return fmt.Errorf("%w: phone is required", ErrValidation)
	case !models.ValidDeliveryMethod(f.DeliveryMethod):
		return fmt.Errorf("%w: delivery method must be pickup or delivery", ErrValidation)
	case f.DeliveryMethod == models.DeliveryDelivery && strings.TrimSpace(f.Address) == "":
		return fmt.Errorf("%w: address is required for delivery", ErrValidation)
	case !models.ValidPaymentMethod(f.PaymentMethod):
		return fmt.Errorf("%w: payment method must be cash, card or online", ErrValidation)
	}
	return nil
}

func (f Form) customer() models.Customer {
	company := f.DeliveryCompany
	if company == "" {
		company = models.DeliveryCompanyNone
	}
	return models.Customer{
		Name:            strings.TrimSpace(f.Name),
		Phone:           strings.TrimSpace(f.Phone),
		Email:           strings.TrimSpace(f.Email),
		Address:         strings.TrimSpace(f.Address),
		DeliveryMethod:  f.DeliveryMethod,
		DeliveryCompany: company,
		PaymentMethod:   f.PaymentMethod,
		Comment:         f.Comment,
	}
}

// Status of a Flow
type Status string

const (
	StatusEditing    Status = "editing"
	StatusSubmitting Status = "submitting"
	StatusSuccess    Status = "success"
	StatusError      Status = "error"
)

// OrderCreator places orders; *orderclient.Client satisfies it
type OrderCreator interface {
	CreateOrder(ctx context.Context, req models.CreateOrderRequest) (string, error)
}

// Flow is one checkout of one product
type Flow struct {
	product ProductSnapshot
	orders  OrderCreator

	mu          sync.Mutex
	form        Form
	status      Status
	orderNumber string
	err         error
}

func NewFlow(product ProductSnapshot, orders OrderCreator) *Flow {
	return &Flow{
		product: product,
		orders:  orders,
		form:    NewForm(),
		status:  StatusEditing,
	}
}

func (f *Flow) Product() ProductSnapshot { return f.product }

func (f *Flow) Form() Form {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.form
}

func (f *Flow) SetForm(form Form) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.form = form
}

// Total for the current delivery method
func (f *Flow) Total() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Total(f.product.Price, f.form.DeliveryMethod)
}

// Submit validates the form and places the order. On any failure the
// form is kept so the user can fix it and submit again.
func (f *Flow) Submit(ctx context.Context) (string, error) {
	f.mu.Lock()
	if f.status == StatusSuccess {
		f.mu.Unlock()
		return f.orderNumber, ErrAlreadySubmitted
	}
	if f.status == StatusSubmitting {
		f.mu.Unlock()
		return "", errors.New("checkout: submission in progress")
	}
	form := f.form
	if err := form.Validate(); err != nil {
		f.status, f.err = StatusError, err
		f.mu.Unlock()
		return "", err
	}
	f.status, f.err = StatusSubmitting, nil
	f.mu.Unlock()

	req := models.CreateOrderRequest{
		Product: models.ProductRef{
			ID:    f.product.ID,
			Name:  f.product.Name,
			Price: f.product.Price,
			Image: f.product.Image,
		},
		Customer:   form.customer(),
		TotalPrice: Total(f.product.Price, form.DeliveryMethod),
	}

	number, err := f.orders.CreateOrder(ctx, req)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		slog.Warn("order submission failed", "product_id", f.product.ID, "error", err)
		f.status, f.err = StatusError, err
		return "", err
	}

	f.status, f.orderNumber = StatusSuccess, number
	return number, nil
}

func (f *Flow) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// Err is the last submission error, nil unless Status is StatusError
func (f *Flow) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

func (f *Flow) OrderNumber() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.orderNumber
}

// ChatLink is the deep link to an order's chat page
func ChatLink(orderNumber string) string {
	return "/order-chat?order=" + url.QueryEscape(orderNumber)
}
