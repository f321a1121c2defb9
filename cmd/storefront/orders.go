// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/danielhkuo/storefront/checkout"
	"github.com/danielhkuo/storefront/models"
	"github.com/danielhkuo/storefront/orderview"
)

func (a *app) checkoutCmd(ctx context.Context, args []string) error {
	form := checkout.NewForm()
	fs := newFlagSet("checkout", a.out)
	fs.StringVar(&form.Name, "name", "", "Your name")
	fs.StringVar(&form.Phone, "phone", "", "Phone number")
	fs.StringVar(&form.Email, "email", "", "Email (optional)")
	fs.StringVar(&form.DeliveryMethod, "delivery", form.DeliveryMethod, "pickup or delivery")
	fs.StringVar(&form.Address, "address", "", "Delivery address")
	fs.StringVar(&form.DeliveryCompany, "company", form.DeliveryCompany, "Delivery company")
	fs.StringVar(&form.PaymentMethod, "payment", form.PaymentMethod, "cash, card or online")
	fs.StringVar(&form.Comment, "comment", "", "Comment for the shop")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errUsage
	}
	id, err := parseID(fs.Arg(0))
	if err != nil {
		return err
	}

	product, ok := a.catalog.Product(id)
	if !ok {
		return fmt.Errorf("no product %d in the catalog", id)
	}
	if !product.InStock {
		return fmt.Errorf("%s is sold out", product.Name)
	}

	flow := checkout.NewFlow(checkout.Snapshot(product), a.client)
	flow.SetForm(form)

	fmt.Fprintf(a.out, "Ordering %s, total %s\n", product.Name, orderview.Price(flow.Total()))

	number, err := flow.Submit(ctx)
	if errors.Is(err, checkout.ErrValidation) {
		return err
	}
	if err != nil {
		return fmt.Errorf("order was not placed, please try again: %w", err)
	}

	fmt.Fprintf(a.out, "Order placed: %s\n", number)
	fmt.Fprintf(a.out, "Chat with the shop: %s\n", checkout.ChatLink(number))
	return nil
}

func (a *app) trackCmd(ctx context.Context, args []string) error {
	fs := newFlagSet("track", a.out)
	watch := fs.Bool("watch", false, "Keep polling for status changes")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errUsage
	}

	v := orderview.NewTrackView(a.client)

	if !*watch {
		err := v.Lookup(ctx, fs.Arg(0))
		orderview.RenderTrack(a.out, v.State(), time.Now())
		return quiet(err)
	}

	var last string
	v.OnChange(func(s orderview.TrackState) {
		key := fmt.Sprint(s.Phase, s.Order.Status, s.Order.MessageCount, s.Err)
		if key == last || s.Phase == orderview.PhaseLoading {
			return
		}
		last = key
		orderview.RenderTrack(a.out, s, time.Now())
	})

	if err := v.Watch(ctx, fs.Arg(0)); err != nil {
		return err
	}
	<-ctx.Done()
	v.Stop()
	return nil
}

// quiet drops errors that the rendered view already shows
func quiet(err error) error {
	switch {
	case errors.Is(err, orderview.ErrOrderNotFound), errors.Is(err, orderview.ErrUnavailable):
		return nil
	}
	return err
}

func (a *app) chatCmd(ctx context.Context, args []string) error {
	if len(args) > 0 && args[0] == "send" {
		return a.chatSend(ctx, args[1:])
	}

	fs := newFlagSet("chat", a.out)
	admin := fs.Bool("admin", false, "Write as the shop")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errUsage
	}

	v := orderview.NewChatView(a.client, fs.Arg(0), sender(*admin))

	// Called from the poll loop and from Send
	var mu sync.Mutex
	var last string
	v.OnChange(func(s orderview.ChatState) {
		if s.Sending {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		key := fmt.Sprint(s.Phase, len(s.Messages), s.Order.Status, s.Err, s.Draft)
		if key == last {
			return
		}
		last = key
		orderview.RenderChat(a.out, s, time.Now())
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	v.Start(ctx)
	defer v.Stop()

	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(a.in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			// An empty line resends what did not go through
			if strings.TrimSpace(line) == "" {
				line = v.State().Draft
			}
			if err := v.Send(ctx, line); err != nil {
				mu.Lock()
				fmt.Fprintln(a.out, "Press Enter to resend")
				mu.Unlock()
			}
		}
	}
}

func (a *app) chatSend(ctx context.Context, args []string) error {
	fs := newFlagSet("chat send", a.out)
	admin := fs.Bool("admin", false, "Write as the shop")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return errUsage
	}

	v := orderview.NewChatView(a.client, fs.Arg(0), sender(*admin))
	v.Refresh(ctx)
	if s := v.State(); s.Phase != orderview.PhaseFound {
		orderview.RenderChat(a.out, s, time.Now())
		return quiet(s.Err)
	}

	if err := v.Send(ctx, strings.Join(fs.Args()[1:], " ")); err != nil {
		return err
	}
	orderview.RenderChat(a.out, v.State(), time.Now())
	return nil
}

func sender(admin bool) string {
	if admin {
		return models.SenderAdmin
	}
	return models.SenderCustomer
}

func (a *app) ordersCmd(ctx context.Context, args []string) error {
	if len(args) > 0 && args[0] == "status" {
		if len(args) != 3 {
			return errUsage
		}
		v := orderview.NewOrdersView(a.client)
		if err := v.UpdateStatus(ctx, args[1], args[2]); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Order %s is now %s\n", args[1], orderview.StatusLabel(args[2]))
		return nil
	}

	fs := newFlagSet("orders", a.out)
	watch := fs.Bool("watch", false, "Keep polling for new orders")
	if err := fs.Parse(args); err != nil {
		return err
	}

	v := orderview.NewOrdersView(a.client)
	if !*watch {
		v.Refresh(ctx)
		orderview.RenderOrders(a.out, v.State(), time.Now())
		return nil
	}

	v.OnChange(func(s orderview.OrdersState) {
		fmt.Fprintf(a.out, "--- %s\n", time.Now().Format(time.TimeOnly))
		orderview.RenderOrders(a.out, s, time.Now())
	})
	v.Start(ctx)
	<-ctx.Done()
	v.Stop()
	return nil
}

func (a *app) contactCmd(ctx context.Context, args []string) error {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return errUsage
	}
	if err := a.client.Notify(ctx, text); err != nil {
		return fmt.Errorf("message was not delivered: %w", err)
	}
	fmt.Fprintln(a.out, "Message sent to the shop")
	return nil
}
