// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/danielhkuo/storefront/catalog"
	"github.com/danielhkuo/storefront/keyset"
	"github.com/danielhkuo/storefront/orderview"
)

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid product id %q", errUsage, s)
	}
	return id, nil
}

func (a *app) catalogCmd(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	switch args[0] {
	case "list":
		return a.catalogList(args[1:])
	case "categories":
		for _, c := range catalog.Categories(a.catalog.Products()) {
			fmt.Fprintln(a.out, c)
		}
		return nil
	case "add":
		return a.catalogAdd(ctx, args[1:])
	case "update":
		return a.catalogUpdate(ctx, args[1:])
	case "delete":
		if len(args) != 2 {
			return errUsage
		}
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		if err := a.catalog.DeleteProduct(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Deleted product %d\n", id)
		return nil
	case "seed":
		seeded, err := a.catalog.Seed(ctx, catalog.DefaultProducts())
		if err != nil {
			return err
		}
		if !seeded {
			fmt.Fprintln(a.out, "Catalog already has products, nothing seeded")
			return nil
		}
		fmt.Fprintf(a.out, "Seeded %d demo products\n", len(catalog.DefaultProducts()))
		return nil
	}
	return fmt.Errorf("%w: unknown catalog command %q", errUsage, args[0])
}

func (a *app) catalogList(args []string) error {
	var q catalog.Query
	fs := newFlagSet("catalog list", a.out)
	fs.StringVar(&q.Search, "search", "", "Name contains")
	fs.StringVar(&q.Category, "category", "", "Category (all = any)")
	fs.StringVar(&q.Sort, "sort", "", "price-asc, price-desc or name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if _, err := catalog.ParseSort(q.Sort); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	if len(a.catalog.Products()) == 0 {
		fmt.Fprintln(a.out, "Catalog is empty. Run 'storefront catalog seed' for demo products.")
		return nil
	}

	cards := a.view.Cards(q)
	if len(cards) == 0 {
		fmt.Fprintln(a.out, "No products match")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE\tSTOCK\tCART\tWISHLIST")
	for _, c := range cards {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			c.ID, c.Name, c.Category, orderview.Price(c.Price),
			mark(c.InStock, "in stock", "sold out"), mark(c.InCart, "yes", ""), mark(c.InWishlist, "yes", ""))
	}
	return tw.Flush()
}

func mark(b bool, yes, no string) string {
	if b {
		return yes
	}
	return no
}

func (a *app) catalogAdd(ctx context.Context, args []string) error {
	var in catalog.ProductInput
	fs := newFlagSet("catalog add", a.out)
	fs.StringVar(&in.Name, "name", "", "Product name")
	fs.Int64Var(&in.Price, "price", 0, "Price")
	fs.StringVar(&in.Category, "category", "", "Category")
	fs.StringVar(&in.Image, "image", "", "Image URL")
	fs.BoolVar(&in.InStock, "in-stock", false, "Available to order")
	if err := fs.Parse(args); err != nil {
		return err
	}

	p, err := a.catalog.AddProduct(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added product %d: %s\n", p.ID, p.Name)
	return nil
}

// catalogUpdate only patches the flags that were given
func (a *app) catalogUpdate(ctx context.Context, args []string) error {
	fs := newFlagSet("catalog update", a.out)
	name := fs.String("name", "", "Product name")
	price := fs.Int64("price", 0, "Price")
	category := fs.String("category", "", "Category")
	image := fs.String("image", "", "Image URL")
	inStock := fs.Bool("in-stock", false, "Available to order")
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

	var patch catalog.ProductPatch
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			patch.Name = name
		case "price":
			patch.Price = price
		case "category":
			patch.Category = category
		case "image":
			patch.Image = image
		case "in-stock":
			patch.InStock = inStock
		}
	})

	if _, ok := a.catalog.Product(id); !ok {
		fmt.Fprintf(a.out, "No product %d, nothing changed\n", id)
		return nil
	}
	if err := a.catalog.UpdateProduct(ctx, id, patch); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated product %d\n", id)
	return nil
}

func (a *app) setCmd(ctx context.Context, set keyset.Set, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	switch args[0] {
	case "list":
		return a.setList(set)
	case "clear":
		if err := a.keys.Clear(ctx, set); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Cleared %s\n", set)
		return nil
	case "add", "remove", "toggle":
		if len(args) != 2 {
			return errUsage
		}
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		return a.setChange(ctx, set, args[0], id)
	}
	return fmt.Errorf("%w: unknown %s command %q", errUsage, set, args[0])
}

func (a *app) setChange(ctx context.Context, set keyset.Set, op string, id int64) error {
	var err error
	switch op {
	case "add":
		err = a.keys.Add(ctx, set, id)
	case "remove":
		err = a.keys.Remove(ctx, set, id)
	case "toggle":
		if set == keyset.Cart {
			_, err = a.view.ToggleCart(ctx, id)
		} else {
			_, err = a.view.ToggleWishlist(ctx, id)
		}
	}
	if err != nil {
		return err
	}

	if a.keys.Contains(set, id) {
		fmt.Fprintf(a.out, "Product %d is in your %s\n", id, set)
	} else {
		fmt.Fprintf(a.out, "Product %d is not in your %s\n", id, set)
	}
	return nil
}

func (a *app) setList(set keyset.Set) error {
	items := a.view.CartItems()
	if set == keyset.Wishlist {
		items = a.view.WishlistItems()
	}
	if len(items) == 0 {
		fmt.Fprintf(a.out, "Your %s is empty\n", set)
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	for _, p := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", p.ID, p.Name, orderview.Price(p.Price))
	}
	if set == keyset.Cart {
		fmt.Fprintf(tw, "\tTotal\t%s\n", orderview.Price(a.view.CartTotal()))
	}
	return tw.Flush()
}
