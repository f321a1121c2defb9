// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/danielhkuo/storefront/localstore"
)

// StorageKey is the localstore key holding the product list
const StorageKey = "products-storage"

var ErrInvalidProduct = errors.New("catalog: invalid product")

type Product struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Category string `json:"category"`
	Image    string `json:"image"`
	InStock  bool   `json:"inStock"`
}

// ProductInput is a product before an id is assigned
type ProductInput struct {
	Name     string
	Price    int64
	Category string
	Image    string
	InStock  bool
}

// ProductPatch carries the fields to change; nil fields are left alone
type ProductPatch struct {
	Name     *string
	Price    *int64
	Category *string
	Image    *string
	InStock  *bool
}

type persisted struct {
	Products []Product `json:"products"`
}

// Provider owns the product list. Writes are saved before they become
// visible; a failed save leaves the list unchanged.
type Provider struct {
	kv  localstore.Store
	now func() time.Time

	mu       sync.Mutex
	products []Product
	lastID   int64
}

// Open loads the persisted catalog. A missing blob is an empty catalog.
func Open(ctx context.Context, kv localstore.Store) (*Provider, error) {
	p := &Provider{kv: kv, now: time.Now, products: []Product{}}

	data, err := kv.Load(ctx, StorageKey)
	switch {
	case errors.Is(err, localstore.ErrNotFound):
		return p, nil
	case err != nil:
		return nil, err
	}

	var blob persisted
	if err := json.Unmarshal(data, &blob); err != nil {
		return nil, fmt.Errorf("decode %s: %w", StorageKey, err)
	}
	if blob.Products != nil {
		p.products = blob.Products
	}
	for _, prod := range p.products {
		p.lastID = max(p.lastID, prod.ID)
	}

	return p, nil
}

func validate(name string, price int64) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidProduct)
	}
	if price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidProduct)
	}
	return nil
}

// nextID is creation time in unix millis, bumped past the last assigned
// id so two products created in the same millisecond stay distinct
func (p *Provider) nextID() int64 {
	return max(p.now().UnixMilli(), p.lastID+1)
}

// AddProduct appends a product with a freshly assigned id
func (p *Provider) AddProduct(ctx context.Context, in ProductInput) (Product, error) {
	if err := validate(in.Name, in.Price); err != nil {
		return Product{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	prod := Product{
		ID:       p.nextID(),
		Name:     strings.TrimSpace(in.Name),
		Price:    in.Price,
		Category: in.Category,
		Image:    in.Image,
		InStock:  in.InStock,
	}

	next := append(slices.Clone(p.products), prod)
	if err := p.commit(ctx, next); err != nil {
		return Product{}, err
	}
	p.lastID = prod.ID
	return prod, nil
}

// UpdateProduct merges patch into the product with the given id. An
// unknown id is a no-op.
func (p *Provider) UpdateProduct(ctx context.Context, id int64, patch ProductPatch) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	i := slices.IndexFunc(p.products, func(prod Product) bool { return prod.ID == id })
	if i < 0 {
		return nil
	}

	prod := p.products[i]
	if patch.Name != nil {
		prod.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Price != nil {
		prod.Price = *patch.Price
	}
	if patch.Category != nil {
		prod.Category = *patch.Category
	}
	if patch.Image != nil {
		prod.Image = *patch.Image
	}
	if patch.InStock != nil {
		prod.InStock = *patch.InStock
	}
	if err := validate(prod.Name, prod.Price); err != nil {
		return err
	}

	next := slices.Clone(p.products)
	next[i] = prod
	return p.commit(ctx, next)
}

// DeleteProduct removes the product. Cart and wishlist entries that point
// at it are left in place.
func (p *Provider) DeleteProduct(ctx context.Context, id int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !slices.ContainsFunc(p.products, func(prod Product) bool { return prod.ID == id }) {
		return nil
	}

	next := slices.DeleteFunc(slices.Clone(p.products), func(prod Product) bool { return prod.ID == id })
	return p.commit(ctx, next)
}

// Seed stores products as the catalog when it is empty. It reports
// whether anything was written.
func (p *Provider) Seed(ctx context.Context, products []Product) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.products) > 0 {
		return false, nil
	}

	next := slices.Clone(products)
	if err := p.commit(ctx, next); err != nil {
		return false, err
	}
	for _, prod := range next {
		p.lastID = max(p.lastID, prod.ID)
	}
	return true, nil
}

// commit must be called with mu held
func (p *Provider) commit(ctx context.Context, next []Product) error {
	data, err := json.Marshal(persisted{Products: next})
	if err != nil {
		return fmt.Errorf("encode %s: %w", StorageKey, err)
	}
	if err := p.kv.Save(ctx, StorageKey, data); err != nil {
		return fmt.Errorf("persist catalog: %w", err)
	}
	p.products = next
	return nil
}

// Products returns the catalog in insertion order
func (p *Provider) Products() []Product {
	p.mu.Lock()
	defer p.mu.Unlock()

	return slices.Clone(p.products)
}

func (p *Provider) Product(id int64) (Product, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	i := slices.IndexFunc(p.products, func(prod Product) bool { return prod.ID == id })
	if i < 0 {
		return Product{}, false
	}
	return p.products[i], true
}
