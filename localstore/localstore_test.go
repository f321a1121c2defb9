// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package localstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Load(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Save(ctx, "cart-storage", []byte(`{"cart":[1]}`)))
	got, err := s.Load(ctx, "cart-storage")
	require.NoError(t, err)
	assert.Equal(t, `{"cart":[1]}`, string(got))

	// Overwrite
	require.NoError(t, s.Save(ctx, "cart-storage", []byte(`{"cart":[]}`)))
	got, err = s.Load(ctx, "cart-storage")
	require.NoError(t, err)
	assert.Equal(t, `{"cart":[]}`, string(got))

	// Keys are independent
	require.NoError(t, s.Save(ctx, "products-storage", []byte(`{}`)))
	got, err = s.Load(ctx, "cart-storage")
	require.NoError(t, err)
	assert.Equal(t, `{"cart":[]}`, string(got))
}

func TestMemory(t *testing.T) {
	testStore(t, NewMemory())
}

func TestMemoryCopiesValues(t *testing.T) {
	m := NewMemory()
	buf := []byte("abc")
	require.NoError(t, m.Save(context.Background(), "k", buf))
	buf[0] = 'x'

	got, err := m.Load(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestSQLite(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	defer s.Close()

	testStore(t, s)
}

func TestSQLiteSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.db")
	ctx := context.Background()

	s, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, "cart-storage", []byte(`{"cart":[5]}`)))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Load(ctx, "cart-storage")
	require.NoError(t, err)
	assert.Equal(t, `{"cart":[5]}`, string(got))
}
