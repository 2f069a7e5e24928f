package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/vogen"
	"github.com/syssam/vogen/compiler/load"
	"github.com/syssam/vogen/schema/directive"
	"github.com/syssam/vogen/schema/member"
)

func lookup(t *testing.T, g *Graph, name string) *Type {
	t.Helper()
	typ, ok := g.Lookup(name)
	require.True(t, ok, "type %s", name)
	return typ
}

func TestType(t *testing.T) {
	g := graph(t, catalog)
	require.Empty(t, g.Diagnostics)

	typ := lookup(t, g, "ProductCategory")
	assert.Equal(t, vogen.KindKeyedEnumeration, typ.Kind)
	assert.Equal(t, "catalog", typ.Package)
	assert.Equal(t, "example.com/catalog.ProductCategory", typ.ID())
	assert.Equal(t, "pc", typ.Receiver())
	assert.Equal(t, "productCategoryItems", typ.StoreName())
	assert.Equal(t, "ProductCategories", typ.ItemsFuncName())
	assert.True(t, typ.Pointer())
	assert.True(t, typ.Keyed())
	require.NotNil(t, typ.Key)
	assert.Equal(t, "key", typ.Key.Name)
	assert.Equal(t, RoleKey, typ.Key.Role)
	assert.Equal(t, directive.ComparerDefault, typ.Comparer.Name)
	assert.Equal(t, directive.ComparerOrdinalIgnoreCase, typ.EqualityComparer.Name)
	assert.Equal(t, directive.ComparerOrdinalIgnoreCase, typ.Key.Equality.Name)
	assert.Equal(t, []string{"Fruits", "Dairy"}, typ.CaseNames())
	require.Len(t, typ.Items, 2)
	assert.Equal(t, "ProductCategoryFruits", typ.Items[0].GoName)
	assert.Equal(t, "Fruits", typ.Items[0].Key, "string keys default to the item name")
	assert.Equal(t, 1, typ.Items[1].Index)
}

func TestType_ValueObject(t *testing.T) {
	typ := lookup(t, graph(t, catalog), "Range")

	assert.Equal(t, vogen.KindValueObject, typ.Kind)
	assert.False(t, typ.Pointer())
	require.NotNil(t, typ.Key)
	assert.Equal(t, "value", typ.Key.Name, "the single member is the key")
	assert.Equal(t, member.TypeDecimal, typ.Key.Type.Type)
	assert.Equal(t, directive.ModeChecked, typ.Operators.Arithmetic)
}

func TestType_ComplexValueObject(t *testing.T) {
	g := graph(t, catalog)
	typ := lookup(t, g, "Product")

	assert.Equal(t, vogen.KindComplexValueObject, typ.Kind)
	assert.Nil(t, typ.Key)
	assert.False(t, typ.Keyed())
	category := typ.MemberByName("category")
	require.NotNil(t, category)
	assert.Same(t, lookup(t, g, "ProductCategory"), category.Ref)
	assert.False(t, category.Orderable(), "enumerations without ordering have no order")
}

func TestType_Derived(t *testing.T) {
	g := graph(t, catalog)
	base := lookup(t, g, "Color")
	typ := lookup(t, g, "BrandColor")

	assert.True(t, base.Extensible)
	assert.Equal(t, vogen.KindExtensibleEnumeration, base.Kind)
	assert.Equal(t, vogen.KindExtensibleEnumeration, typ.Kind)
	assert.False(t, typ.Extensible, "derived enumerations are closed unless declared extensible")
	assert.True(t, typ.Derived())
	assert.Same(t, base, typ.Base)
	assert.Same(t, base, typ.Root())
	require.NotNil(t, typ.Key)
	assert.Equal(t, "key", typ.Key.Name)
	assert.Equal(t, typ.Key, typ.Members[0], "the inherited key comes first")
	require.Len(t, typ.Ordinary(), 1)
	assert.Equal(t, "campaign", typ.Ordinary()[0].Name)
	assert.Same(t, base.Comparer, typ.Comparer)
	assert.Equal(t, "spring", typ.Items[0].Values["campaign"])
}

func TestType_Union(t *testing.T) {
	g := single(t, `
  - name: Result
    nested:
      - name: Success
        members:
          - {name: value, type: int64}
      - name: Pending
    directives:
      - name: vogen
        options: {kind: union}
`)
	require.Empty(t, g.Diagnostics)
	typ := lookup(t, g, "Result")

	assert.Equal(t, vogen.KindUnion, typ.Kind)
	assert.False(t, typ.Pointer())
	require.Len(t, typ.Variants, 2)
	assert.Equal(t, "ResultSuccess", typ.Variants[0].GoName)
	assert.Equal(t, 1, typ.Variants[1].Index)
	assert.True(t, typ.Variants[1].Marker())
	assert.Equal(t, []string{"Success", "Pending"}, typ.CaseNames())
	assert.Same(t, typ.Variants[0], typ.VariantByName("Success"))
}

func TestType_Literals(t *testing.T) {
	g := single(t, `
  - name: Priority
    members:
      - {name: key, type: int32}
      - {name: weight, type: decimal}
      - {name: id, type: uuid, nullable: true}
    items:
      - {name: Low, key: 1, values: {weight: 0.5}}
      - {name: High, key: 2, values: {weight: "1.50", id: 6ba7b810-9dad-11d1-80b4-00c04fd430c8}}
    directives:
      - name: vogen
        options: {kind: enum}
`)
	require.Empty(t, g.Diagnostics)
	typ := lookup(t, g, "Priority")

	assert.Equal(t, int64(1), typ.Items[0].Key)
	assert.Equal(t, "0.5", typ.Items[0].Values["weight"])
	assert.Equal(t, "1.5", typ.Items[1].Values["weight"])
	assert.Equal(t, "6ba7b810-9dad-11d1-80b4-00c04fd430c8", typ.Items[1].Values["id"])
}

func TestType_BuildErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code Code
	}{
		{
			name: "missing kind",
			body: `
  - name: T
    members: [{name: value, type: int}]
    directives: [{name: vogen, options: {}}]
`,
			code: CodeUnknownKind,
		},
		{
			name: "unknown kind",
			body: `
  - name: T
    directives: [{name: vogen, options: {kind: record}}]
`,
			code: CodeUnknownKind,
		},
		{
			name: "key member not found",
			body: `
  - name: T
    members: [{name: value, type: int}, {name: unit, type: string}]
    directives: [{name: vogen, options: {kind: value-object, keyMemberName: amount}}]
`,
			code: CodeKeyMemberNotFound,
		},
		{
			name: "duplicate member",
			body: `
  - name: T
    members: [{name: value, type: int}, {name: Value, type: int}]
    directives: [{name: vogen, options: {kind: complex-value-object}}]
`,
			code: CodeDuplicateMember,
		},
		{
			name: "unknown base",
			body: `
  - name: T
    members: [{name: key, type: string}]
    directives: [{name: vogen, options: {kind: enum, baseType: Nope}}]
`,
			code: CodeUnknownBase,
		},
		{
			name: "base not extensible",
			body: `
  - name: Base
    members: [{name: key, type: string}]
    directives: [{name: vogen, options: {kind: enum}}]
  - name: T
    directives: [{name: vogen, options: {kind: enum, baseType: Base}}]
`,
			code: CodeBaseNotExtensible,
		},
		{
			name: "nullable key",
			body: `
  - name: T
    members: [{name: value, type: int, nullable: true}]
    directives: [{name: vogen, options: {kind: value-object}}]
`,
			code: CodeNullableKey,
		},
		{
			name: "items on value object",
			body: `
  - name: T
    members: [{name: value, type: int}]
    items: [{name: One, key: 1}]
    directives: [{name: vogen, options: {kind: value-object}}]
`,
			code: CodeInvalidItem,
		},
		{
			name: "key overflow",
			body: `
  - name: T
    members: [{name: key, type: int8}]
    items: [{name: Big, key: 300}]
    directives: [{name: vogen, options: {kind: enum}}]
`,
			code: CodeInvalidItem,
		},
		{
			name: "union members",
			body: `
  - name: T
    members: [{name: value, type: int}]
    directives: [{name: vogen, options: {kind: union}}]
`,
			code: CodeInvalidMemberType,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := single(t, tt.body)
			assert.Contains(t, codes(g.Diagnostics), tt.code, "%v", g.Diagnostics)
			assert.True(t, g.Diagnostics.HasErrors())
		})
	}
}

func TestNewType_Direct(t *testing.T) {
	cand := &load.Candidate{
		Declaration: &load.Declaration{
			Name:    "Quantity",
			Members: []*load.Member{{Name: "value", Type: "int32"}},
		},
		Options: map[string]any{"kind": "value-object"},
	}
	cfg := MustNewConfig(WithPackage("example.com/stock"))

	typ, err := NewType(cfg, cand, nil)
	require.NoError(t, err)
	assert.Equal(t, "example.com/stock", typ.PkgPath)
	assert.Equal(t, "stock", typ.Package)
	assert.Equal(t, "Quantity", typ.GoName)

	_, err = NewType(&Config{}, cand, nil)
	require.Error(t, err)
	assert.True(t, IsBuildError(err))
}
