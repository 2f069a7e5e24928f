package gen

import "github.com/dave/jennifer/jen"

// EmitFunc emits the code of one concern for one type. A nil file with a
// nil error means the concern has nothing to emit for the type.
type EmitFunc func(h GeneratorHelper, t *Type) (*jen.File, error)

// Dialect provides the emitters of the concerns of a target language
// rendition.
//
// Architecture:
//
//	┌────────────────────────────────────────────────┐
//	│               JenniferGenerator                │
//	│ (Orchestration: fan-out, cache, rendering)     │
//	└───────────────────────┬────────────────────────┘
//	                        │ uses
//	                        ▼
//	┌────────────────────────────────────────────────┐
//	│                    Dialect                     │
//	│ (One EmitFunc per concern, pure functions)     │
//	└───────────────────────┬────────────────────────┘
//	                        │ implemented by
//	                        ▼
//	                 ┌─────────────┐
//	                 │ gen/golang  │
//	                 └─────────────┘
//
// Emitters must be pure: the same model gives the same file. Their output
// is cached by model fingerprint.
//
// Usage:
//
//	import "github.com/syssam/vogen/compiler/gen/golang"
//
//	generator := gen.NewJenniferGenerator(cfg).
//	    WithDialect(golang.NewDialect())
type Dialect interface {
	// Name returns the dialect name (e.g., "go").
	Name() string
	// Emitter returns the emitter of the concern, or nil if the dialect
	// does not implement it.
	Emitter(concern string) EmitFunc
}

// DialectFunc is a Dialect backed by a concern table.
type DialectFunc struct {
	DialectName string
	Emitters    map[string]EmitFunc
}

// Name implements Dialect.
func (d *DialectFunc) Name() string { return d.DialectName }

// Emitter implements Dialect.
func (d *DialectFunc) Emitter(concern string) EmitFunc { return d.Emitters[concern] }

// GeneratorHelper provides helper methods for dialect implementations.
// JenniferGenerator implements this interface, allowing dialect packages
// to use helper methods without importing the full generator.
type GeneratorHelper interface {
	// NewFile creates a new Jennifer file in the package of t with the
	// standard header comment.
	NewFile(t *Type) *jen.File

	// RuntimePkg returns the import path of the runtime library.
	RuntimePkg() string

	// GoType returns the Jennifer code for a member's Go type.
	GoType(m *Member) jen.Code

	// BaseType returns the Jennifer code for a member's base type (without pointer).
	BaseType(m *Member) jen.Code

	// KeyType returns the Jennifer code for the key type of a keyed type.
	KeyType(t *Type) jen.Code

	// TypeRef returns the Jennifer code naming the generated type.
	TypeRef(t *Type) jen.Code

	// SelfType returns the Jennifer code for values of the generated type:
	// a pointer for enumerations and reference value objects.
	SelfType(t *Type) jen.Code

	// ComparerExpr returns an expression of type vogen.Comparer[K] applying
	// the comparer to the base type K of the member. It returns nil for
	// members referring to generated types.
	ComparerExpr(m *Member, c *Comparer) jen.Code

	// ValidationErrorType returns the validation error type of a factory.
	ValidationErrorType(t *Type) jen.Code

	// Literal returns the Jennifer code of a normalized literal of a member.
	Literal(m *Member, v any) jen.Code

	// FeatureEnabled reports if the given concern is enabled.
	FeatureEnabled(name string) bool

	// Config returns the codegen configuration.
	Config() *Config
}
