package gen

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/syssam/vogen/compiler/load"
)

const catalog = `
package: catalog
path: example.com/catalog
types:
  - name: ProductCategory
    members:
      - {name: key, type: string}
      - {name: displayName, type: string}
    items:
      - {name: Fruits}
      - {name: Dairy}
    directives:
      - name: vogen
        options: {kind: enum, equalityComparer: ordinal-ignore-case}

  - name: Range
    members:
      - {name: value, type: decimal}
    directives:
      - name: vogen
        options: {kind: value-object, operators: checked}

  - name: Product
    members:
      - {name: name, type: string}
      - {name: category, type: ProductCategory}
    directives:
      - name: vogen
        options: {kind: complex-value-object}

  - name: Color
    members:
      - {name: key, type: string}
    items:
      - {name: Red, key: red}
    directives:
      - name: vogen
        options: {kind: enum, isExtensible: true}

  - name: BrandColor
    members:
      - {name: campaign, type: string}
    items:
      - {name: Teal, key: teal, values: {campaign: spring}}
    directives:
      - name: vogen
        options: {kind: enum, baseType: Color}
`

// decls parses a declaration file.
func decls(t testing.TB, src string) []*load.Declaration {
	t.Helper()
	f, err := load.Parse([]byte(src), "catalog.yaml")
	require.NoError(t, err)
	return f.Types
}

// graph builds the graph of a declaration file.
func graph(t testing.TB, src string, opts ...Option) *Graph {
	t.Helper()
	cfg, err := NewConfig(opts...)
	require.NoError(t, err)
	g, err := NewGraph(context.Background(), cfg, decls(t, src)...)
	require.NoError(t, err)
	return g
}

// codes returns the codes of the diagnostics.
func codes(ds Diagnostics) []Code {
	cs := make([]Code, len(ds))
	for i, d := range ds {
		cs[i] = d.Code
	}
	return cs
}

// single builds one vogen-annotated type declared with the given options,
// members and items.
func single(t testing.TB, body string) *Graph {
	t.Helper()
	return graph(t, "package: p\npath: example.com/p\ntypes:\n"+body)
}

// replace returns src with the first occurrence of old replaced by new.
func replace(src, old, new string) string {
	return strings.Replace(src, old, new, 1)
}
