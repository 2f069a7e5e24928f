package golang

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/vogen/compiler/gen"
)

func TestDialect(t *testing.T) {
	d := NewDialect()
	assert.Equal(t, "go", d.Name())
	for _, f := range gen.AllFeatures {
		assert.NotNil(t, d.Emitter(f.Name), f.Name)
	}
	assert.Nil(t, d.Emitter("unknown"))
}

func TestGenerate(t *testing.T) {
	g, h := newGenerator(t, shop)
	res, err := h.Generate(context.Background(), g)
	require.NoError(t, err)
	require.False(t, res.Diagnostics.HasErrors(), "%v", res.Diagnostics)

	a, ok := res.Lookup("example.com/shop.ProductCategory", "definition")
	require.True(t, ok)
	assert.Equal(t, "product_category_definition.go", a.Filename)
	assert.Equal(t, "product_category_definition.go", a.Path())
	assert.Contains(t, string(a.Source), "// Code generated by vogen. DO NOT EDIT.")

	_, ok = res.Lookup("example.com/shop.BrandColor", "derived")
	assert.True(t, ok)
	_, ok = res.Lookup("example.com/shop.Color", "derived")
	assert.False(t, ok, "derived is emitted for enumerations with a base only")
	_, ok = res.Lookup("example.com/shop.Range", "arithmetic")
	assert.True(t, ok)
	_, ok = res.Lookup("example.com/shop.Result", "arithmetic")
	assert.False(t, ok)
	_, ok = res.Lookup("example.com/shop.Result", "ordering")
	assert.False(t, ok)

	dir := t.TempDir()
	m, err := res.Write(context.Background(), dir, 4)
	require.NoError(t, err)
	assert.Equal(t, len(res.Artifacts), m.FilesWritten)
	_, err = os.Stat(filepath.Join(dir, "brand_color_derived.go"))
	assert.NoError(t, err)
}

func TestGenerate_Incremental(t *testing.T) {
	g, h := newGenerator(t, shop)
	ctx := context.Background()
	first, err := h.Generate(ctx, g)
	require.NoError(t, err)
	emits := h.Config().Cache().Stats().Emits

	second, err := h.Generate(ctx, g)
	require.NoError(t, err)
	assert.Equal(t, emits, h.Config().Cache().Stats().Emits, "unchanged types are not emitted again")
	require.Len(t, second.Artifacts, len(first.Artifacts))
	for i, a := range first.Artifacts {
		assert.Equal(t, a.Source, second.Artifacts[i].Source, a.Path())
	}
}

func TestGenerate_ConcernFailure(t *testing.T) {
	src := `
package: flags
path: example.com/flags
types:
  - name: Flag
    members:
      - {name: value, type: bool}
    directives:
      - name: vogen
        options: {kind: value-object, operators: {ordering: default}}
`
	f, h := newGenerator(t, src)
	res, err := h.Generate(context.Background(), f)
	require.NoError(t, err)

	var found bool
	for _, d := range res.Diagnostics {
		if d.Code == gen.CodeConcernFailed && d.Concern == "ordering" {
			found = true
		}
	}
	assert.True(t, found, "%v", res.Diagnostics)
	_, ok := res.Lookup("example.com/flags.Flag", "ordering")
	assert.False(t, ok)
	_, ok = res.Lookup("example.com/flags.Flag", "equality")
	assert.True(t, ok, "other concerns still emit")
}
