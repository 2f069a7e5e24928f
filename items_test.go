package vogen_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/vogen"
)

// category mirrors the shape of a generated keyed enumeration.
type category struct {
	key   string
	valid bool
}

func (c *category) Key() string { return c.key }

func newStore(c vogen.Comparer[string]) (*vogen.ItemStore[string, *category], *category, *category) {
	fruits := &category{key: "Fruits", valid: true}
	dairy := &category{key: "Dairy", valid: true}
	return vogen.NewItemStore(c, (*category).Key, fruits, dairy), fruits, dairy
}

func TestItemStore_Get(t *testing.T) {
	store, fruits, dairy := newStore(vogen.Ordinal)
	item, ok := store.Get("Dairy")
	require.True(t, ok)
	assert.Same(t, dairy, item)

	_, ok = store.Get("fruits")
	assert.False(t, ok)
	_, ok = store.Get("Meat")
	assert.False(t, ok)

	assert.Equal(t, []*category{fruits, dairy}, store.Items())
	assert.Equal(t, 2, store.Len())
}

func TestItemStore_IgnoreCase(t *testing.T) {
	store, fruits, _ := newStore(vogen.OrdinalIgnoreCase)
	item, ok := store.Get("fRuItS")
	require.True(t, ok)
	assert.Same(t, fruits, item)
	assert.Equal(t, vogen.OrdinalIgnoreCase, store.Comparer())
}

func TestItemStore_Register(t *testing.T) {
	store, _, _ := newStore(vogen.OrdinalIgnoreCase)
	meat := &category{key: "Meat", valid: true}
	require.NoError(t, store.Register(meat))

	item, ok := store.Get("meat")
	require.True(t, ok)
	assert.Same(t, meat, item)

	err := store.Register(&category{key: "MEAT"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, vogen.ErrDuplicateKey))
	assert.Equal(t, 3, store.Len())
}

func TestItemStore_DuplicateAtInit(t *testing.T) {
	assert.Panics(t, func() {
		vogen.NewItemStore(vogen.Ordinal, (*category).Key, &category{key: "A"}, &category{key: "A"})
	})
}

func TestItemStore_Snapshot(t *testing.T) {
	store, _, _ := newStore(vogen.Ordinal)
	items := store.Items()
	items[0] = nil
	assert.NotNil(t, store.Items()[0])
}

func TestItemStore_Concurrent(t *testing.T) {
	store, _, _ := newStore(vogen.Ordinal)
	const workers = 8
	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 50 {
				_ = store.Register(&category{key: fmt.Sprintf("w%d-%d", w, i)})
				_, _ = store.Get("Fruits")
				_ = store.Items()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 2+workers*50, store.Len())
}

func TestAnySlice(t *testing.T) {
	assert.Equal(t, []any{1, 2}, vogen.AnySlice([]int{1, 2}))
	assert.Empty(t, vogen.AnySlice[int](nil))
}

func TestPtr(t *testing.T) {
	v := 3
	p := vogen.Ptr(v)
	v = 4
	assert.Equal(t, 3, *p)
	assert.NotSame(t, vogen.Ptr(1), vogen.Ptr(1))
}

func TestDeref(t *testing.T) {
	assert.Nil(t, vogen.Deref[int](nil))
	assert.Equal(t, 3, vogen.Deref(vogen.Ptr(3)))
}
