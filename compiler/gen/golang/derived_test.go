package golang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenDerived(t *testing.T) {
	out := emit(t, "derived", "BrandColor")

	assert.Contains(t, out, "func AsBrandColor(v *Color) (*BrandColor, bool) { if v == nil { return nil, false } x, ok := brandColorItems.Get(v.key) if !ok || x.Color != v { return nil, false } return x, true }")
	assert.Contains(t, out, "func IsBrandColor(v *Color) bool { _, ok := AsBrandColor(v) return ok }")
}

func TestGenDerived_NoBase(t *testing.T) {
	g, h := newGenerator(t, shop)
	m, ok := g.Lookup("Color")
	require.True(t, ok)
	f, err := NewDialect().Emitter("derived")(h, m)
	require.NoError(t, err)
	assert.Nil(t, f)
}
