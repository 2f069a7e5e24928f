package golang

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenMetadata_Enumeration(t *testing.T) {
	out := emit(t, "metadata", "ProductCategory")

	assert.Contains(t, out, "func init() { vogen.RegisterMetadata(&vogen.Metadata{")
	assert.Contains(t, out, "Kind: vogen.KindKeyedEnumeration,")
	assert.Contains(t, out, "Type: reflect.TypeFor[*ProductCategory](),")
	assert.Contains(t, out, "KeyType: reflect.TypeFor[string](),")
	assert.Contains(t, out, `{ Key: true, Name: "key", Type: reflect.TypeFor[string](), }`)
	assert.Contains(t, out, `{ Name: "displayName", Type: reflect.TypeFor[string](), }`)
	assert.Contains(t, out, "Items: func() []any { return vogen.AnySlice(productCategoryItems.Items()) },")
	assert.Contains(t, out, "v, ok := productCategoryItems.Get(k)")
}

func TestGenMetadata_Derived(t *testing.T) {
	out := emit(t, "metadata", "BrandColor")

	assert.Contains(t, out, "Base: reflect.TypeFor[*Color](),")
	assert.Contains(t, out, "Kind: vogen.KindExtensibleEnumeration,")
}

func TestGenMetadata_ValueObject(t *testing.T) {
	out := emit(t, "metadata", "Quantity")

	assert.Contains(t, out, "Kind: vogen.KindValueObject,")
	assert.Contains(t, out, "v, err := TryCreateQuantity(k)")
	assert.NotContains(t, out, "Items:")
}

func TestGenMetadata_Union(t *testing.T) {
	out := emit(t, "metadata", "Result")

	assert.Contains(t, out, "Kind: vogen.KindUnion,")
	assert.Contains(t, out, "Type: reflect.TypeFor[Result](),")
	assert.Contains(t, out, "Variants: []reflect.Type{ reflect.TypeFor[ResultSuccess](), reflect.TypeFor[ResultFailure](), reflect.TypeFor[ResultPending](), },")
	assert.NotContains(t, out, "KeyType")
}
