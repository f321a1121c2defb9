// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/danielhkuo/storefront/keyset"
)

// Sort orders for Query
const (
	SortDefault   = ""
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortName      = "name"
)

// CategoryAll disables category filtering
const CategoryAll = "all"

// ParseSort validates a user-supplied sort order
func ParseSort(s string) (string, error) {
	switch s {
	case SortDefault, SortPriceAsc, SortPriceDesc, SortName:
		return s, nil
	}
	return "", fmt.Errorf("unknown sort %q (want price-asc, price-desc or name)", s)
}

// Query is the transient filter/sort selection of the catalog page
type Query struct {
	Search   string
	Category string
	Sort     string
}

// Apply filters and sorts products. Sorting is stable, so equal keys keep
// catalog order.
func Apply(products []Product, q Query) []Product {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	filterCategory := q.Category != "" && q.Category != CategoryAll

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		if filterCategory && p.Category != q.Category {
			continue
		}
		out = append(out, p)
	}

	switch q.Sort {
	case SortPriceAsc:
		slices.SortStableFunc(out, func(a, b Product) int { return cmp.Compare(a.Price, b.Price) })
	case SortPriceDesc:
		slices.SortStableFunc(out, func(a, b Product) int { return cmp.Compare(b.Price, a.Price) })
	case SortName:
		slices.SortStableFunc(out, func(a, b Product) int {
			return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		})
	}

	return out
}

// Categories returns the distinct categories in first-seen order
func Categories(products []Product) []string {
	var out []string
	for _, p := range products {
		if p.Category != "" && !slices.Contains(out, p.Category) {
			out = append(out, p.Category)
		}
	}
	return out
}

// Card is a product with its cart/wishlist state
type Card struct {
	Product
	InCart     bool
	InWishlist bool
}

// Source is the read side of the catalog
type Source interface {
	Products() []Product
	Product(id int64) (Product, bool)
}

// Keys is the cart/wishlist store the view reads and mutates
type Keys interface {
	Contains(set keyset.Set, id int64) bool
	Items(set keyset.Set) []int64
	Add(ctx context.Context, set keyset.Set, id int64) error
	Remove(ctx context.Context, set keyset.Set, id int64) error
}

// View cross-references the catalog with the cart and wishlist
type View struct {
	source Source
	keys   Keys
}

func NewView(source Source, keys Keys) *View {
	return &View{source: source, keys: keys}
}

func (v *View) Cards(q Query) []Card {
	products := Apply(v.source.Products(), q)
	cards := make([]Card, len(products))
	for i, p := range products {
		cards[i] = Card{
			Product:    p,
			InCart:     v.keys.Contains(keyset.Cart, p.ID),
			InWishlist: v.keys.Contains(keyset.Wishlist, p.ID),
		}
	}
	return cards
}

// CartItems resolves cart ids to products, skipping ids with no product
func (v *View) CartItems() []Product {
	return v.resolve(keyset.Cart)
}

// WishlistItems resolves wishlist ids to products, skipping ids with no product
func (v *View) WishlistItems() []Product {
	return v.resolve(keyset.Wishlist)
}

func (v *View) resolve(set keyset.Set) []Product {
	ids := v.keys.Items(set)
	out := make([]Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := v.source.Product(id); ok {
			out = append(out, p)
		}
	}
	return out
}

// CartTotal sums the prices of resolvable cart items
func (v *View) CartTotal() int64 {
	var total int64
	for _, p := range v.CartItems() {
		total += p.Price
	}
	return total
}

// ToggleCart adds or removes id and reports whether it is now in the cart
func (v *View) ToggleCart(ctx context.Context, id int64) (bool, error) {
	return v.toggle(ctx, keyset.Cart, id)
}

// ToggleWishlist adds or removes id and reports whether it is now in the wishlist
func (v *View) ToggleWishlist(ctx context.Context, id int64) (bool, error) {
	return v.toggle(ctx, keyset.Wishlist, id)
}

func (v *View) toggle(ctx context.Context, set keyset.Set, id int64) (bool, error) {
	if v.keys.Contains(set, id) {
		if err := v.keys.Remove(ctx, set, id); err != nil {
			return true, err
		}
		return false, nil
	}
	if err := v.keys.Add(ctx, set, id); err != nil {
		return false, err
	}
	return true, nil
}
