// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/storefront/models"
)

type EmailConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	ShopEmail string
}

// SendFunc delivers one message; swapped out in tests
type SendFunc func(ctx context.Context, cfg EmailConfig, to string, msg []byte) error

// Email sends HTML mail over SMTP: new orders to the shop, admin replies to
// the customer
type Email struct {
	cfg  EmailConfig
	Send SendFunc
}

func NewEmail(cfg EmailConfig) *Email {
	return &Email{cfg: cfg, Send: sendSMTP}
}

var deliveryLabels = map[string]string{
	models.DeliveryPickup:   "Pickup",
	models.DeliveryDelivery: "Delivery",
}

var companyLabels = map[string]string{
	"cdek":     "CDEK",
	"boxberry": "Boxberry",
	"pochta":   "Russian Post",
	"dpd":      "DPD",
	"yandex":   "Yandex Delivery",
	"none":     "Shop courier",
}

var paymentLabels = map[string]string{
	models.PaymentCash:   "Cash on receipt",
	models.PaymentCard:   "Card on receipt",
	models.PaymentOnline: "Online payment",
}

func label(labels map[string]string, key string) string {
	if l, ok := labels[key]; ok {
		return l
	}
	return key
}

var templateFuncs = template.FuncMap{
	"price":    func(v int64) string { return humanize.Comma(v) },
	"delivery": func(k string) string { return label(deliveryLabels, k) },
	"company":  func(k string) string { return label(companyLabels, k) },
	"payment":  func(k string) string { return label(paymentLabels, k) },
	"ago":      humanize.Time,
}

var orderCreatedTmpl = template.Must(template.New("order").Funcs(templateFuncs).Parse(`<html>
  <body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <h2>New order #{{.OrderNumber}}</h2>
    <h3>Product</h3>
    <p><strong>{{.Product.Name}}</strong><br>Price: <strong>{{price .Product.Price}}</strong></p>
    <h3>Customer</h3>
    <p>Name: <strong>{{.Customer.Name}}</strong><br>Phone: <strong>{{.Customer.Phone}}</strong><br>Email: {{if .Customer.Email}}{{.Customer.Email}}{{else}}not given{{end}}</p>
    <h3>Delivery</h3>
    <p><strong>{{delivery .Customer.DeliveryMethod}}</strong></p>
    {{- if eq .Customer.DeliveryMethod "delivery"}}
    <p>Carrier: <strong>{{company .Customer.DeliveryCompany}}</strong></p>
    {{- end}}
    {{- if .Customer.Address}}
    <p>Address: {{.Customer.Address}}</p>
    {{- end}}
    <h3>Payment</h3>
    <p><strong>{{payment .Customer.PaymentMethod}}</strong></p>
    {{- if .Customer.Comment}}
    <h3>Comment</h3><p>{{.Customer.Comment}}</p>
    {{- end}}
    <hr>
    <h3>Total: {{price .TotalPrice}}</h3>
    <p style="color: #999;">Placed {{ago .CreatedAt}}</p>
  </body>
</html>`))

var adminReplyTmpl = template.Must(template.New("reply").Parse(`<html>
  <body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <h2>New message about order #{{.Order.OrderNumber}}</h2>
    <p>Hello, {{.Order.Customer.Name}}!</p>
    <p>You have a new message about your order <strong>{{.Order.Product.Name}}</strong>:</p>
    <blockquote style="background: #f5f5f5; padding: 15px; border-left: 4px solid #4F46E5;">{{.Text}}</blockquote>
  </body>
</html>`))

func (e *Email) OrderCreated(ctx context.Context, o models.Order) error {
	if e.cfg.ShopEmail == "" {
		return nil
	}
	var body bytes.Buffer
	if err := orderCreatedTmpl.Execute(&body, o); err != nil {
		return fmt.Errorf("render order email: %w", err)
	}
	subject := fmt.Sprintf("New order #%s: %s", o.OrderNumber, o.Product.Name)
	return e.Send(ctx, e.cfg, e.cfg.ShopEmail, e.message(e.cfg.ShopEmail, subject, body.Bytes()))
}

// AdminReplied mails the customer when they left an email address
func (e *Email) AdminReplied(ctx context.Context, o models.Order, text string) error {
	if o.Customer.Email == "" {
		return nil
	}
	var body bytes.Buffer
	err := adminReplyTmpl.Execute(&body, struct {
		Order models.Order
		Text  string
	}{o, text})
	if err != nil {
		return fmt.Errorf("render reply email: %w", err)
	}
	subject := fmt.Sprintf("New message about order #%s", o.OrderNumber)
	return e.Send(ctx, e.cfg, o.Customer.Email, e.message(o.Customer.Email, subject, body.Bytes()))
}

// Site chat messages go to Telegram only
func (e *Email) SiteMessage(context.Context, string) error {
	return ErrNotConfigured
}

func (e *Email) message(to, subject string, html []byte) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "From: %s\r\n", e.cfg.User)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	b.Write(html)
	return b.Bytes()
}

// sendSMTP uses implicit TLS on port 465 and STARTTLS otherwise
func sendSMTP(ctx context.Context, cfg EmailConfig, to string, msg []byte) error {
	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	auth := smtp.PlainAuth("", cfg.User, cfg.Password, cfg.Host)

	if cfg.Port != 465 {
		return smtp.SendMail(addr, auth, cfg.User, []string{to}, msg)
	}

	dialer := &tls.Dialer{Config: &tls.Config{ServerName: cfg.Host}}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("smtp dial: %w", err)
	}

	c, err := smtp.NewClient(conn, cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp client: %w", err)
	}
	defer c.Close()

	if err := c.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}
	if err := c.Mail(cfg.User); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := c.Rcpt(to); err != nil {
		return fmt.Errorf("smtp rcpt to: %w", err)
	}
	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close data: %w", err)
	}
	return c.Quit()
}
