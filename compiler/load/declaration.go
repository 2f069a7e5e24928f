// Package load reads type declarations and collects the candidates of the
// vogen compiler.
//
// Declarations are supplied by the hosting toolchain as a ready-made tree. On
// disk they are YAML or JSON documents:
//
//	package: shop
//	path: example.com/shop
//	types:
//	  - name: ProductCategory
//	    members:
//	      - {name: key, type: string}
//	    items:
//	      - {name: Fruits, key: Fruits}
//	      - {name: Dairy, key: Dairy}
//	    directives:
//	      - name: vogen
//	        options: {kind: enum}
package load

import (
	"fmt"
	"go/token"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Position describes a position in a declaration file.
type Position struct {
	File   string
	Line   int
	Column int
}

// String implements the fmt.Stringer interface.
func (p Position) String() string {
	switch {
	case p.File == "" && p.Line == 0:
		return "-"
	case p.Line == 0:
		return p.File
	default:
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
}

// Dir returns the directory of the declaration file, or "" if unknown.
func (p Position) Dir() string {
	if p.File == "" {
		return ""
	}
	return filepath.Dir(p.File)
}

// Declaration is a type declaration of the host package.
type Declaration struct {
	Name string `yaml:"name" json:"name"`
	// Reference selects pointer semantics for value objects.
	Reference  bool           `yaml:"reference,omitempty" json:"reference,omitempty"`
	Members    []*Member      `yaml:"members,omitempty" json:"members,omitempty"`
	Items      []*Item        `yaml:"items,omitempty" json:"items,omitempty"`
	Nested     []*Declaration `yaml:"nested,omitempty" json:"nested,omitempty"`
	Directives []*Directive   `yaml:"directives,omitempty" json:"directives,omitempty"`

	// Set by the loader. Positions are excluded from fingerprints.
	Package   string   `yaml:"-" json:"-"`
	PkgPath   string   `yaml:"-" json:"-"`
	Exported  bool     `yaml:"-" json:"-"`
	Enclosing []string `yaml:"-" json:"-"`
	Pos       Position `yaml:"-" json:"-" msgpack:"-"`
}

// Member is a data member of a declaration.
type Member struct {
	Name string `yaml:"name" json:"name"`
	Type string `yaml:"type" json:"type"`
	// Access is "public" (default) or "private". Private members get no
	// accessor method.
	Access   string `yaml:"access,omitempty" json:"access,omitempty"`
	Nullable bool   `yaml:"nullable,omitempty" json:"nullable,omitempty"`
	// Comparer overrides the equality and ordering of the member.
	Comparer string `yaml:"comparer,omitempty" json:"comparer,omitempty"`
}

// Item is a declared enumeration item.
type Item struct {
	Name string `yaml:"name" json:"name"`
	Key  any    `yaml:"key,omitempty" json:"key,omitempty"`
	// Values holds the values of the ordinary members of the item.
	Values map[string]any `yaml:"values,omitempty" json:"values,omitempty"`
}

// Directive is a configuration directive attached to a declaration.
type Directive struct {
	Name    string   `yaml:"name" json:"name"`
	Options any      `yaml:"options,omitempty" json:"options,omitempty"`
	Pos     Position `yaml:"-" json:"-" msgpack:"-"`
}

// UnmarshalYAML implements yaml.Unmarshaler to record positions.
func (d *Declaration) UnmarshalYAML(n *yaml.Node) error {
	type plain Declaration
	if err := n.Decode((*plain)(d)); err != nil {
		return err
	}
	d.Pos = Position{Line: n.Line, Column: n.Column}
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler to record positions.
func (d *Directive) UnmarshalYAML(n *yaml.Node) error {
	type plain Directive
	if err := n.Decode((*plain)(d)); err != nil {
		return err
	}
	d.Pos = Position{Line: n.Line, Column: n.Column}
	return nil
}

// QualifiedName returns the name of the declaration prefixed with its
// enclosing declarations, separated by dots.
func (d *Declaration) QualifiedName() string {
	if len(d.Enclosing) == 0 {
		return d.Name
	}
	return strings.Join(d.Enclosing, ".") + "." + d.Name
}

// LookupDirective returns the directive with the given name.
func (d *Declaration) LookupDirective(name string) *Directive {
	for _, dir := range d.Directives {
		if dir.Name == name {
			return dir
		}
	}
	return nil
}

// Private reports whether the member has no accessor.
func (m *Member) Private() bool {
	return strings.EqualFold(m.Access, "private")
}

// bind sets the loader fields of d and its nested declarations.
func bind(d *Declaration, file, pkg, path string, enclosing []string) {
	d.Package, d.PkgPath = pkg, path
	d.Enclosing = enclosing
	d.Exported = token.IsExported(d.Name)
	d.Pos.File = file
	for _, dir := range d.Directives {
		dir.Pos.File = file
	}
	inner := append(append([]string(nil), enclosing...), d.Name)
	for _, n := range d.Nested {
		bind(n, file, pkg, path, inner)
	}
}
