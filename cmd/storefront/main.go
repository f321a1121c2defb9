// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/danielhkuo/storefront/catalog"
	"github.com/danielhkuo/storefront/cliparse"
	"github.com/danielhkuo/storefront/keyset"
	"github.com/danielhkuo/storefront/localstore"
	"github.com/danielhkuo/storefront/orderclient"
)

const usage = `usage: storefront [-api URL] [-data PATH] [-timeout D] <command> [args]

commands:
  catalog list [-search S] [-category C] [-sort price-asc|price-desc|name]
  catalog categories
  catalog add -name N -price P [-category C] [-image URL] [-in-stock]
  catalog update [-name N] [-price P] [-category C] [-image URL] [-in-stock=BOOL] <id>
  catalog delete <id>
  catalog seed
  cart list | add <id> | remove <id> | toggle <id> | clear
  wishlist list | add <id> | remove <id> | toggle <id> | clear
  checkout -name N -phone P [-email E] [-delivery pickup|delivery] [-address A]
           [-company C] [-payment cash|card|online] [-comment C] <product-id>
  track [-watch] <order-number>
  chat [-admin] <order-number>          interactive; one line per message,
                                        an empty line resends an unsent one
  chat send [-admin] <order-number> <text...>
  orders [-watch]
  orders status <order-number> <new|processing|completed>
  contact <text...>
`

var errUsage = errors.New("invalid usage")

func main() {
	if err := cliparse.LoadEnvFiles(".env"); err != nil {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout)
	if errors.Is(err, errUsage) || errors.Is(err, flag.ErrHelp) {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// app is the client side wired together: local stores, the catalog view
// and the order API client
type app struct {
	in  io.Reader
	out io.Writer

	store   *localstore.SQLite
	keys    *keyset.Store
	catalog *catalog.Provider
	view    *catalog.View
	client  *orderclient.Client
}

func newApp(ctx context.Context, cfg cliparse.ClientConfig, in io.Reader, out io.Writer) (*app, error) {
	store, err := localstore.OpenSQLite(cfg.DataPath)
	if err != nil {
		return nil, err
	}

	keys, err := keyset.Open(ctx, store)
	if err != nil {
		store.Close()
		return nil, err
	}

	provider, err := catalog.Open(ctx, store)
	if err != nil {
		store.Close()
		return nil, err
	}

	httpClient := &http.Client{Timeout: cfg.Timeout}
	client, err := orderclient.New(cfg.APIURL, httpClient)
	if err != nil {
		store.Close()
		return nil, err
	}

	return &app{
		in:      in,
		out:     out,
		store:   store,
		keys:    keys,
		catalog: provider,
		view:    catalog.NewView(provider, keys),
		client:  client,
	}, nil
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		slog.Warn("closing local store", "error", err)
	}
}

func run(ctx context.Context, args []string, in io.Reader, out io.Writer) error {
	cfg, rest, err := cliparse.ParseClientFlags(args)
	if err != nil {
		return err
	}
	if len(rest) == 0 {
		return errUsage
	}

	a, err := newApp(ctx, cfg, in, out)
	if err != nil {
		return err
	}
	defer a.close()

	cmd, args := rest[0], rest[1:]
	switch cmd {
	case "catalog":
		return a.catalogCmd(ctx, args)
	case "cart", "wishlist":
		set, _ := keyset.ParseSet(cmd)
		return a.setCmd(ctx, set, args)
	case "checkout":
		return a.checkoutCmd(ctx, args)
	case "track":
		return a.trackCmd(ctx, args)
	case "chat":
		return a.chatCmd(ctx, args)
	case "orders":
		return a.ordersCmd(ctx, args)
	case "contact":
		return a.contactCmd(ctx, args)
	}
	return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
}

func newFlagSet(name string, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}
