package vogen_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/vogen"
)

type amount struct{ value int64 }

func TestRegistry(t *testing.T) {
	r := &vogen.Registry{}
	md := &vogen.Metadata{
		Kind:    vogen.KindKeyedEnumeration,
		Type:    reflect.TypeFor[*category](),
		KeyType: reflect.TypeFor[string](),
		ToKey: func(v any) (any, bool) {
			c, ok := v.(*category)
			if !ok {
				return nil, false
			}
			return c.key, true
		},
	}
	require.NoError(t, r.Register(md))
	require.NoError(t, r.Register(md), "idempotent")

	got, ok := r.Lookup(reflect.TypeFor[*category]())
	require.True(t, ok)
	key, ok := got.ToKey(&category{key: "Fruits"})
	require.True(t, ok)
	assert.Equal(t, "Fruits", key)

	_, ok = r.Lookup(reflect.TypeFor[amount]())
	assert.False(t, ok, "missing entry means not a generated type")
	_, ok = r.Lookup(nil)
	assert.False(t, ok)

	err := r.Register(&vogen.Metadata{Kind: vogen.KindValueObject, Type: reflect.TypeFor[*category]()})
	assert.Error(t, err)
	assert.Error(t, r.Register(&vogen.Metadata{}))

	require.NoError(t, r.Register(&vogen.Metadata{Kind: vogen.KindValueObject, Type: reflect.TypeFor[amount]()}))
	assert.Equal(t, 2, r.Count())
	entries := r.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, reflect.TypeFor[*category](), entries[0].Type)

	r.Reset()
	assert.Zero(t, r.Count())
}

func TestFindMetadata(t *testing.T) {
	t.Cleanup(vogen.DefaultRegistry.Reset)
	vogen.RegisterMetadata(&vogen.Metadata{
		Kind:    vogen.KindValueObject,
		Type:    reflect.TypeFor[amount](),
		KeyType: reflect.TypeFor[int64](),
		Members: []vogen.MemberMetadata{{Name: "value", Type: reflect.TypeFor[int64](), Key: true}},
	})
	md, ok := vogen.FindMetadata(reflect.TypeFor[amount]())
	require.True(t, ok)
	assert.Equal(t, vogen.KindValueObject, md.Kind)

	md, ok = vogen.FindMetadata(reflect.TypeFor[*amount]())
	require.True(t, ok, "pointer form resolves to the declared type")
	assert.Equal(t, "value", md.Members[0].Name)

	_, ok = vogen.MetadataOf(amount{value: 1})
	assert.True(t, ok)
	_, ok = vogen.MetadataOf("not generated")
	assert.False(t, ok)
	_, ok = vogen.FindMetadata(nil)
	assert.False(t, ok)

	assert.Panics(t, func() {
		vogen.RegisterMetadata(&vogen.Metadata{Kind: vogen.KindUnion, Type: reflect.TypeFor[amount]()})
	})
}

type (
	shape  interface{ isShape() }
	circle struct{ radius int64 }
	square struct{ side int64 }
)

func (circle) isShape() {}
func (square) isShape() {}

func TestRegistry_UnionCases(t *testing.T) {
	r := &vogen.Registry{}
	md := &vogen.Metadata{
		Kind:     vogen.KindUnion,
		Type:     reflect.TypeFor[shape](),
		Variants: []reflect.Type{reflect.TypeFor[circle](), reflect.TypeFor[square]()},
	}
	require.NoError(t, r.Register(md))
	require.NoError(t, r.Register(md))
	assert.Equal(t, 1, r.Count(), "case types are not entries")

	for _, typ := range md.Variants {
		got, ok := r.Lookup(typ)
		require.True(t, ok, typ.String())
		assert.Same(t, md, got)
	}
	_, ok := r.Lookup(reflect.TypeFor[amount]())
	assert.False(t, ok)

	err := r.Register(&vogen.Metadata{
		Kind:     vogen.KindUnion,
		Type:     reflect.TypeFor[*amount](),
		Variants: []reflect.Type{reflect.TypeFor[circle]()},
	})
	assert.Error(t, err, "a case type belongs to one union")

	r.Reset()
	_, ok = r.Lookup(reflect.TypeFor[circle]())
	assert.False(t, ok)
}

func TestMetadataOf_UnionCase(t *testing.T) {
	t.Cleanup(vogen.DefaultRegistry.Reset)
	vogen.RegisterMetadata(&vogen.Metadata{
		Kind:     vogen.KindUnion,
		Type:     reflect.TypeFor[shape](),
		Variants: []reflect.Type{reflect.TypeFor[circle](), reflect.TypeFor[square]()},
	})
	var s shape = square{side: 2}
	md, ok := vogen.MetadataOf(s)
	require.True(t, ok)
	assert.Equal(t, vogen.KindUnion, md.Kind)
	md, ok = vogen.MetadataOf(&circle{radius: 1})
	require.True(t, ok, "pointers to case types resolve too")
	assert.Equal(t, reflect.TypeFor[shape](), md.Type)
}
