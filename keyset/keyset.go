// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package keyset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/danielhkuo/storefront/localstore"
)

// StorageKey is the localstore key holding both sets
const StorageKey = "cart-storage"

// Set names one of the two product-id sets
type Set string

const (
	Cart     Set = "cart"
	Wishlist Set = "wishlist"
)

var ErrUnknownSet = errors.New("keyset: unknown set")

// ParseSet maps user input to a Set
func ParseSet(s string) (Set, error) {
	switch Set(s) {
	case Cart, Wishlist:
		return Set(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSet, s)
}

// Snapshot is the persisted form and what listeners receive
type Snapshot struct {
	Cart     []int64 `json:"cart"`
	Wishlist []int64 `json:"wishlist"`
}

func (s Snapshot) members(set Set) []int64 {
	if set == Wishlist {
		return s.Wishlist
	}
	return s.Cart
}

func (s Snapshot) with(set Set, ids []int64) Snapshot {
	if set == Wishlist {
		s.Wishlist = ids
	} else {
		s.Cart = ids
	}
	return s
}

// Store is the persistent cart/wishlist. Mutations are write-through: the
// new state is saved before it becomes visible, so a failed save leaves
// the store exactly as it was.
type Store struct {
	kv localstore.Store

	mu    sync.Mutex
	state Snapshot
	index map[Set]map[int64]struct{}

	lmu       sync.Mutex
	listeners map[int]func(Snapshot)
	nextID    int
}

// Open loads the persisted sets. A missing blob is an empty store;
// duplicate ids in the blob are collapsed.
func Open(ctx context.Context, kv localstore.Store) (*Store, error) {
	s := &Store{
		kv:        kv,
		state:     Snapshot{Cart: []int64{}, Wishlist: []int64{}},
		listeners: make(map[int]func(Snapshot)),
	}

	data, err := kv.Load(ctx, StorageKey)
	switch {
	case errors.Is(err, localstore.ErrNotFound):
	case err != nil:
		return nil, err
	default:
		var persisted Snapshot
		if err := json.Unmarshal(data, &persisted); err != nil {
			return nil, fmt.Errorf("decode %s: %w", StorageKey, err)
		}
		s.state.Cart = dedupe(persisted.Cart)
		s.state.Wishlist = dedupe(persisted.Wishlist)
	}

	s.reindex()
	return s, nil
}

func dedupe(ids []int64) []int64 {
	out := make([]int64, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func (s *Store) reindex() {
	s.index = make(map[Set]map[int64]struct{}, 2)
	for _, set := range []Set{Cart, Wishlist} {
		m := make(map[int64]struct{})
		for _, id := range s.state.members(set) {
			m[id] = struct{}{}
		}
		s.index[set] = m
	}
}

func checkSet(set Set) error {
	if set != Cart && set != Wishlist {
		return fmt.Errorf("%w: %q", ErrUnknownSet, set)
	}
	return nil
}

// Add inserts id into set. Adding a present id is a no-op.
func (s *Store) Add(ctx context.Context, set Set, id int64) error {
	if err := checkSet(set); err != nil {
		return err
	}
	return s.mutate(ctx, set, func(ids []int64) ([]int64, bool) {
		if _, ok := s.index[set][id]; ok {
			return ids, false
		}
		return append(slices.Clone(ids), id), true
	})
}

// Remove deletes id from set. Removing an absent id is a no-op.
func (s *Store) Remove(ctx context.Context, set Set, id int64) error {
	if err := checkSet(set); err != nil {
		return err
	}
	return s.mutate(ctx, set, func(ids []int64) ([]int64, bool) {
		if _, ok := s.index[set][id]; !ok {
			return ids, false
		}
		return slices.DeleteFunc(slices.Clone(ids), func(v int64) bool { return v == id }), true
	})
}

// Clear empties set
func (s *Store) Clear(ctx context.Context, set Set) error {
	if err := checkSet(set); err != nil {
		return err
	}
	return s.mutate(ctx, set, func(ids []int64) ([]int64, bool) {
		return []int64{}, true
	})
}

// mutate saves the changed state, then commits it and notifies listeners.
// change reports false when nothing needs to be written.
func (s *Store) mutate(ctx context.Context, set Set, change func([]int64) ([]int64, bool)) error {
	s.mu.Lock()

	next, changed := change(s.state.members(set))
	if !changed {
		s.mu.Unlock()
		return nil
	}

	candidate := s.state.with(set, next)
	data, err := json.Marshal(candidate)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("encode %s: %w", StorageKey, err)
	}
	if err := s.kv.Save(ctx, StorageKey, data); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("persist %s: %w", set, err)
	}

	s.state = candidate
	s.reindex()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	return nil
}

// Contains reports whether id is in set
func (s *Store) Contains(set Set, id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.index[set][id]
	return ok
}

// Items returns the members of set in insertion order
func (s *Store) Items(set Set) []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.state.members(set))
}

// Snapshot returns a copy of both sets
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		Cart:     slices.Clone(s.state.Cart),
		Wishlist: slices.Clone(s.state.Wishlist),
	}
}

// Subscribe registers fn to run after every committed mutation. The
// returned function removes it.
func (s *Store) Subscribe(fn func(Snapshot)) (cancel func()) {
	s.lmu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.lmu.Unlock()

	return func() {
		s.lmu.Lock()
		delete(s.listeners, id)
		s.lmu.Unlock()
	}
}

func (s *Store) notify(snap Snapshot) {
	s.lmu.Lock()
	fns := make([]func(Snapshot), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.lmu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}
