// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/storefront/localstore"
)

type failingStore struct {
	*localstore.Memory
	fail bool
}

var errWrite = errors.New("write failed")

func (f *failingStore) Save(ctx context.Context, key string, value []byte) error {
	if f.fail {
		return errWrite
	}
	return f.Memory.Save(ctx, key, value)
}

// openAt returns a provider whose clock is frozen at ms
func openAt(t *testing.T, kv localstore.Store, ms int64) *Provider {
	t.Helper()
	p, err := Open(context.Background(), kv)
	require.NoError(t, err)
	p.now = func() time.Time { return time.UnixMilli(ms) }
	return p
}

func ptr[T any](v T) *T { return &v }

func TestAddProductAssignsIncreasingIDs(t *testing.T) {
	ctx := context.Background()
	p := openAt(t, localstore.NewMemory(), 1_700_000_000_000)

	a, err := p.AddProduct(ctx, ProductInput{Name: "Lamp", Price: 1500, Category: "Home"})
	require.NoError(t, err)
	b, err := p.AddProduct(ctx, ProductInput{Name: "Rug", Price: 2500, Category: "Home"})
	require.NoError(t, err)

	assert.Equal(t, int64(1_700_000_000_000), a.ID)
	assert.Equal(t, a.ID+1, b.ID, "same millisecond must still give distinct ids")
	assert.Len(t, p.Products(), 2)
}

func TestAddProductValidation(t *testing.T) {
	p := openAt(t, localstore.NewMemory(), 1)

	_, err := p.AddProduct(context.Background(), ProductInput{Name: " ", Price: 10})
	assert.ErrorIs(t, err, ErrInvalidProduct)

	_, err = p.AddProduct(context.Background(), ProductInput{Name: "Free sample", Price: -1})
	assert.ErrorIs(t, err, ErrInvalidProduct)

	prod, err := p.AddProduct(context.Background(), ProductInput{Name: "Free sample", Price: 0})
	require.NoError(t, err)
	assert.Zero(t, prod.Price)
}

func TestUpdateProduct(t *testing.T) {
	ctx := context.Background()
	p := openAt(t, localstore.NewMemory(), 100)
	prod, err := p.AddProduct(ctx, ProductInput{Name: "Lamp", Price: 1500, Category: "Home", InStock: true})
	require.NoError(t, err)

	require.NoError(t, p.UpdateProduct(ctx, prod.ID, ProductPatch{Price: ptr[int64](1200), InStock: ptr(false)}))

	got, ok := p.Product(prod.ID)
	require.True(t, ok)
	assert.Equal(t, "Lamp", got.Name)
	assert.Equal(t, int64(1200), got.Price)
	assert.Equal(t, "Home", got.Category)
	assert.False(t, got.InStock)

	t.Run("unknown id is a no-op", func(t *testing.T) {
		require.NoError(t, p.UpdateProduct(ctx, 999, ProductPatch{Name: ptr("Ghost")}))
		assert.Len(t, p.Products(), 1)
	})

	t.Run("negative price rejected", func(t *testing.T) {
		err := p.UpdateProduct(ctx, prod.ID, ProductPatch{Price: ptr[int64](-5)})
		assert.ErrorIs(t, err, ErrInvalidProduct)
		got, _ := p.Product(prod.ID)
		assert.Equal(t, int64(1200), got.Price)
	})
}

func TestDeleteProduct(t *testing.T) {
	ctx := context.Background()
	p := openAt(t, localstore.NewMemory(), 100)
	a, _ := p.AddProduct(ctx, ProductInput{Name: "A", Price: 1})
	b, _ := p.AddProduct(ctx, ProductInput{Name: "B", Price: 2})

	require.NoError(t, p.DeleteProduct(ctx, a.ID))
	require.NoError(t, p.DeleteProduct(ctx, a.ID))

	_, ok := p.Product(a.ID)
	assert.False(t, ok)
	assert.Equal(t, []Product{b}, p.Products())
}

func TestPersistReload(t *testing.T) {
	ctx := context.Background()
	kv := localstore.NewMemory()
	p := openAt(t, kv, 500)
	a, _ := p.AddProduct(ctx, ProductInput{Name: "A", Price: 1, Category: "X"})
	_, _ = p.AddProduct(ctx, ProductInput{Name: "B", Price: 2, Category: "Y"})

	reloaded := openAt(t, kv, 0)
	assert.Equal(t, p.Products(), reloaded.Products())

	// Clock behind the stored ids: new ids continue past the highest one
	c, err := reloaded.AddProduct(ctx, ProductInput{Name: "C", Price: 3})
	require.NoError(t, err)
	assert.Equal(t, a.ID+2, c.ID)
}

func TestWriteFailureLeavesCatalogUnchanged(t *testing.T) {
	ctx := context.Background()
	kv := &failingStore{Memory: localstore.NewMemory()}
	p := openAt(t, kv, 100)
	a, err := p.AddProduct(ctx, ProductInput{Name: "A", Price: 1})
	require.NoError(t, err)

	kv.fail = true
	_, err = p.AddProduct(ctx, ProductInput{Name: "B", Price: 2})
	assert.ErrorIs(t, err, errWrite)
	assert.ErrorIs(t, p.UpdateProduct(ctx, a.ID, ProductPatch{Name: ptr("Z")}), errWrite)
	assert.ErrorIs(t, p.DeleteProduct(ctx, a.ID), errWrite)

	assert.Equal(t, []Product{a}, p.Products())

	// The failed add did not consume an id
	kv.fail = false
	b, err := p.AddProduct(ctx, ProductInput{Name: "B", Price: 2})
	require.NoError(t, err)
	assert.Equal(t, a.ID+1, b.ID)
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	p := openAt(t, localstore.NewMemory(), 0)

	seeded, err := p.Seed(ctx, DefaultProducts())
	require.NoError(t, err)
	assert.True(t, seeded)
	assert.Len(t, p.Products(), 6)

	seeded, err = p.Seed(ctx, DefaultProducts())
	require.NoError(t, err)
	assert.False(t, seeded, "non-empty catalog is not reseeded")

	prod, err := p.AddProduct(ctx, ProductInput{Name: "Extra", Price: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(7), prod.ID)
}
