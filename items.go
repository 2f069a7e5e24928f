package vogen

import (
	"sync"

	"github.com/cockroachdb/errors"
)

// ItemStore is the item space of a keyed enumeration. Items are indexed by
// the canonical form of their key under the store comparer and are kept in
// registration order.
//
// Extensible enumerations share the base store: derived types register
// their items into it at initialization, so lookups through the base find
// items the base never declared.
type ItemStore[K, T any] struct {
	comparer Comparer[K]
	key      func(T) K

	mu    sync.RWMutex
	items []T
	index map[any]T
}

// NewItemStore returns a store holding the given items. It panics if two
// items share a key, since the declared items of a type are fixed at
// generation time.
func NewItemStore[K, T any](c Comparer[K], key func(T) K, items ...T) *ItemStore[K, T] {
	s := &ItemStore[K, T]{
		comparer: c,
		key:      key,
		items:    make([]T, 0, len(items)),
		index:    make(map[any]T, len(items)),
	}
	for _, item := range items {
		if err := s.Register(item); err != nil {
			panic(err)
		}
	}
	return s
}

// Register adds an item to the store.
// It fails with ErrDuplicateKey if an item with an equal key exists.
func (s *ItemStore[K, T]) Register(item T) error {
	k := s.key(item)
	ck := s.comparer.Canonical(k)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.index[ck]; ok {
		return errors.Wrapf(ErrDuplicateKey, "register %v", k)
	}
	s.index[ck] = item
	s.items = append(s.items, item)
	return nil
}

// Get returns the item with the given key.
func (s *ItemStore[K, T]) Get(key K) (T, bool) {
	ck := s.comparer.Canonical(key)
	s.mu.RLock()
	item, ok := s.index[ck]
	s.mu.RUnlock()
	return item, ok
}

// Items returns a snapshot of the items in registration order.
func (s *ItemStore[K, T]) Items() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]T(nil), s.items...)
}

// Len returns the number of items.
func (s *ItemStore[K, T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Comparer returns the key comparer of the store.
func (s *ItemStore[K, T]) Comparer() Comparer[K] {
	return s.comparer
}

// AnySlice converts a typed slice for use in Metadata.
func AnySlice[T any](s []T) []any {
	out := make([]any, len(s))
	for i := range s {
		out[i] = s[i]
	}
	return out
}

// Ptr returns a pointer to a copy of v. Generated item declarations use it
// for values of nullable members.
func Ptr[T any](v T) *T {
	return &v
}

// Deref returns the value p points to, or nil. Generated String methods
// use it to print nullable members.
func Deref[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
