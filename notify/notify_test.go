// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/storefront/cliparse"
	"github.com/danielhkuo/storefront/models"
)

func testOrder() models.Order {
	return models.Order{
		ID:          "row-1",
		OrderNumber: "ORD-ABCDEF123456",
		Product:     models.ProductRef{ID: 1, Name: "ProSound X9 headphones", Price: 8990},
		Customer: models.Customer{
			Name:            "Ivan",
			Phone:           "+7 900 000-00-00",
			Email:           "ivan@example.com",
			DeliveryMethod:  models.DeliveryDelivery,
			DeliveryCompany: "cdek",
			Address:         "Lenina 1",
			PaymentMethod:   models.PaymentCard,
		},
		TotalPrice: 9290,
		Status:     models.StatusNew,
		CreatedAt:  time.Now(),
	}
}

func TestTelegram_SiteMessage(t *testing.T) {
	var gotPath, gotText, gotChat string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		gotPath = r.URL.Path
		gotText = r.PostForm.Get("text")
		gotChat = r.PostForm.Get("chat_id")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	tg := NewTelegram("TOKEN", "123", srv.Client())
	tg.BaseURL = srv.URL

	require.NoError(t, tg.SiteMessage(context.Background(), "hello shop"))
	assert.Equal(t, "/botTOKEN/sendMessage", gotPath)
	assert.Equal(t, "123", gotChat)
	assert.Equal(t, "💬 New message from the site:\n\nhello shop", gotText)
}

func TestTelegram_OrderCreatedFormatsPrices(t *testing.T) {
	var gotText string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		gotText = r.PostForm.Get("text")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	tg := NewTelegram("T", "1", srv.Client())
	tg.BaseURL = srv.URL

	require.NoError(t, tg.OrderCreated(context.Background(), testOrder()))
	assert.Contains(t, gotText, "#ORD-ABCDEF123456")
	assert.Contains(t, gotText, "8,990")
	assert.Contains(t, gotText, "9,290")
}

func TestTelegram_EscapesUserText(t *testing.T) {
	var texts []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		texts = append(texts, r.PostForm.Get("text"))
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	tg := NewTelegram("T", "1", srv.Client())
	tg.BaseURL = srv.URL

	o := testOrder()
	o.Customer.Name = "Tom & <Jerry>"
	require.NoError(t, tg.OrderCreated(context.Background(), o))
	require.NoError(t, tg.SiteMessage(context.Background(), "is 2 < 3 & 4 > 1?"))

	require.Len(t, texts, 2)
	assert.Contains(t, texts[0], "Tom &amp; &lt;Jerry&gt;")
	assert.Contains(t, texts[1], "is 2 &lt; 3 &amp; 4 &gt; 1?")
}

func TestTelegram_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":false,"description":"chat not found"}`))
	}))
	defer srv.Close()

	tg := NewTelegram("T", "1", srv.Client())
	tg.BaseURL = srv.URL

	err := tg.SiteMessage(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
}

type sentMail struct {
	to  string
	msg string
}

func fakeEmail(cfg EmailConfig) (*Email, *[]sentMail) {
	var sent []sentMail
	e := NewEmail(cfg)
	e.Send = func(_ context.Context, _ EmailConfig, to string, msg []byte) error {
		sent = append(sent, sentMail{to: to, msg: string(msg)})
		return nil
	}
	return e, &sent
}

func TestEmail_OrderCreated(t *testing.T) {
	e, sent := fakeEmail(EmailConfig{User: "shop@example.com", ShopEmail: "owner@example.com"})

	require.NoError(t, e.OrderCreated(context.Background(), testOrder()))
	require.Len(t, *sent, 1)

	m := (*sent)[0]
	assert.Equal(t, "owner@example.com", m.to)
	assert.Contains(t, m.msg, "Content-Type: text/html; charset=UTF-8")
	assert.Contains(t, m.msg, "ProSound X9 headphones")
	assert.Contains(t, m.msg, "Total: 9,290")
	assert.Contains(t, m.msg, "Carrier: <strong>CDEK</strong>")
	assert.Contains(t, m.msg, "Card on receipt")
}

func TestEmail_OrderCreatedPickupOmitsCarrier(t *testing.T) {
	e, sent := fakeEmail(EmailConfig{User: "shop@example.com", ShopEmail: "owner@example.com"})

	o := testOrder()
	o.Customer.DeliveryMethod = models.DeliveryPickup
	o.Customer.Address = ""
	require.NoError(t, e.OrderCreated(context.Background(), o))

	require.Len(t, *sent, 1)
	assert.NotContains(t, (*sent)[0].msg, "Carrier:")
	assert.NotContains(t, (*sent)[0].msg, "Address:")
}

func TestEmail_AdminReplied(t *testing.T) {
	e, sent := fakeEmail(EmailConfig{User: "shop@example.com"})

	require.NoError(t, e.AdminReplied(context.Background(), testOrder(), "<b>ready</b> for pickup"))
	require.Len(t, *sent, 1)
	assert.Equal(t, "ivan@example.com", (*sent)[0].to)
	// html/template escapes customer-visible text
	assert.Contains(t, (*sent)[0].msg, "&lt;b&gt;ready&lt;/b&gt;")

	o := testOrder()
	o.Customer.Email = ""
	require.NoError(t, e.AdminReplied(context.Background(), o, "hi"))
	assert.Len(t, *sent, 1, "no email address means no mail")
}

type fakeChannel struct {
	published map[string][]amqp.Publishing
	err       error
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	if f.published == nil {
		f.published = map[string][]amqp.Publishing{}
	}
	f.published[key] = append(f.published[key], msg)
	return nil
}

func (f *fakeChannel) Close() error { return nil }

func TestAMQP_Publishes(t *testing.T) {
	ch := &fakeChannel{}
	p := &AMQP{ch: ch}
	ctx := context.Background()

	require.NoError(t, p.OrderCreated(ctx, testOrder()))
	require.NoError(t, p.AdminReplied(ctx, testOrder(), "shipped"))
	require.NoError(t, p.SiteMessage(ctx, "question"))

	require.Len(t, ch.published[OrderCreatedQueue], 1)
	msg := ch.published[OrderCreatedQueue][0]
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, uint8(amqp.Persistent), msg.DeliveryMode)

	var ev OrderCreatedEvent
	require.NoError(t, json.Unmarshal(msg.Body, &ev))
	assert.Equal(t, "OrderCreated", ev.EventType)
	assert.Equal(t, "ORD-ABCDEF123456", ev.OrderNumber)
	assert.Equal(t, int64(9290), ev.TotalPrice)

	require.Len(t, ch.published[AdminRepliedQueue], 1)
	require.Len(t, ch.published[SiteMessageQueue], 1)
}

func TestAMQP_PublishError(t *testing.T) {
	p := &AMQP{ch: &fakeChannel{err: errors.New("channel closed")}}

	err := p.SiteMessage(context.Background(), "x")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), SiteMessageQueue))
}

type recordingNotifier struct {
	site error
	hits int
}

func (r *recordingNotifier) OrderCreated(context.Context, models.Order) error { r.hits++; return nil }
func (r *recordingNotifier) AdminReplied(context.Context, models.Order, string) error {
	r.hits++
	return nil
}
func (r *recordingNotifier) SiteMessage(context.Context, string) error { r.hits++; return r.site }

func TestMulti(t *testing.T) {
	ctx := context.Background()

	t.Run("fans out", func(t *testing.T) {
		a, b := &recordingNotifier{}, &recordingNotifier{}
		m := Multi{a, b}
		require.NoError(t, m.OrderCreated(ctx, testOrder()))
		require.NoError(t, m.AdminReplied(ctx, testOrder(), "x"))
		assert.Equal(t, 2, a.hits)
		assert.Equal(t, 2, b.hits)
	})

	t.Run("site message needs one delivery", func(t *testing.T) {
		m := Multi{&recordingNotifier{site: ErrNotConfigured}, &recordingNotifier{}}
		assert.NoError(t, m.SiteMessage(ctx, "x"))
	})

	t.Run("site message with no capable channel", func(t *testing.T) {
		m := Multi{&recordingNotifier{site: ErrNotConfigured}}
		assert.ErrorIs(t, m.SiteMessage(ctx, "x"), ErrNotConfigured)
	})

	t.Run("site message failure surfaces", func(t *testing.T) {
		boom := errors.New("boom")
		m := Multi{&recordingNotifier{site: boom}, &recordingNotifier{site: ErrNotConfigured}}
		assert.ErrorIs(t, m.SiteMessage(ctx, "x"), boom)
	})
}

func TestNew_NothingConfigured(t *testing.T) {
	n, closeFn, err := New(cliparse.Config{})
	require.NoError(t, err)
	assert.IsType(t, Nop{}, n)
	assert.NoError(t, closeFn())
	assert.ErrorIs(t, n.SiteMessage(context.Background(), "x"), ErrNotConfigured)
}

func TestNew_TelegramAndEmail(t *testing.T) {
	n, _, err := New(cliparse.Config{
		TelegramBotToken: "t",
		TelegramChatID:   "1",
		SMTPHost:         "smtp.example.com",
		SMTPPort:         465,
		SMTPUser:         "shop@example.com",
		SMTPPassword:     "pw",
	})
	require.NoError(t, err)

	chain, ok := n.(Multi)
	require.True(t, ok)
	assert.Len(t, chain, 2)
}
