package golang

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/syssam/vogen/compiler/gen"
	"github.com/syssam/vogen/compiler/load"
)

const shop = `
package: shop
path: example.com/shop
types:
  - name: ProductCategory
    members:
      - {name: key, type: string}
      - {name: displayName, type: string}
    items:
      - {name: Fruits, values: {displayName: Fresh fruits}}
      - {name: Dairy, values: {displayName: Dairy products}}
    directives:
      - name: vogen
        options:
          kind: enum
          equalityComparer: ordinal-ignore-case
          operators: {ordering: default}
          switchMapGeneration: partial-overloads

  - name: Range
    members:
      - {name: value, type: decimal}
    directives:
      - name: vogen
        options: {kind: value-object, operators: checked}

  - name: Quantity
    members:
      - {name: value, type: int32}
    directives:
      - name: vogen
        options: {kind: value-object, operators: all}

  - name: Money
    members:
      - {name: amount, type: decimal}
      - {name: currency, type: string, nullable: true}
    directives:
      - name: vogen
        options: {kind: complex-value-object, operators: {ordering: default}}

  - name: Result
    nested:
      - name: Success
        members:
          - {name: value, type: string}
      - name: Failure
        members:
          - {name: reason, type: string}
      - name: Pending
    directives:
      - name: vogen
        options: {kind: union}

  - name: Color
    members:
      - {name: key, type: string}
      - {name: hex, type: string}
    items:
      - {name: Red, key: red, values: {hex: "#f00"}}
    directives:
      - name: vogen
        options: {kind: enum, isExtensible: true}

  - name: BrandColor
    members:
      - {name: campaign, type: string}
    items:
      - {name: Teal, key: teal, values: {hex: "#008080", campaign: spring}}
    directives:
      - name: vogen
        options: {kind: enum, baseType: Color}
`

// newGenerator builds the graph of the declaration source and a generator
// using the Go dialect.
func newGenerator(t *testing.T, src string, opts ...gen.Option) (*gen.Graph, *gen.JenniferGenerator) {
	t.Helper()
	f, err := load.Parse([]byte(src), "shop.yaml")
	require.NoError(t, err)
	cfg, err := gen.NewConfig(opts...)
	require.NoError(t, err)
	g, err := gen.NewGraph(context.Background(), cfg, f.Types...)
	require.NoError(t, err)
	require.False(t, g.Diagnostics.HasErrors(), "unexpected diagnostics: %v", g.Diagnostics)
	return g, gen.NewJenniferGenerator(cfg).WithDialect(NewDialect())
}

// emit runs one concern on one type of the shop declarations and returns
// the rendered source with whitespace runs collapsed.
func emit(t *testing.T, concern, typ string) string {
	t.Helper()
	g, h := newGenerator(t, shop)
	m, ok := g.Lookup(typ)
	require.True(t, ok, "type %s", typ)
	f, err := NewDialect().Emitter(concern)(h, m)
	require.NoError(t, err)
	require.NotNil(t, f)
	return squash(f.GoString())
}

func squash(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
