// Package golang provides the Go rendition of the vogen emission concerns
// for the Jennifer generator.
//
// Usage:
//
//	import (
//	    "github.com/syssam/vogen/compiler/gen"
//	    "github.com/syssam/vogen/compiler/gen/golang"
//	)
//
//	generator := gen.NewJenniferGenerator(cfg).WithDialect(golang.NewDialect())
//	res, err := generator.Generate(ctx, graph)
//
// Generated code structure, next to each declaration file:
//
//	{type}_definition.go  # Struct or sealed interface, accessors, items, item store
//	{type}_equality.go    # Equal and HashCode
//	{type}_ordering.go    # Compare, Less, LessOrEqual, Greater, GreaterOrEqual
//	{type}_arithmetic.go  # Add, Sub, Mul, Div and their checked forms
//	{type}_factory.go     # TryCreate, MustCreate; Get, TryGet and the item list
//	{type}_dispatch.go    # Switch and Map, and their partial forms
//	{type}_string.go      # String
//	{type}_derived.go     # As and Is lookups of derived enumerations
//	{type}_metadata.go    # init registering the runtime metadata
package golang

import (
	"github.com/syssam/vogen/compiler/gen"
)

// Dialect implements gen.Dialect for Go.
//
// Supported concerns:
//   - Keyed and extensible enumerations backed by a shared item store
//   - Keyed and complex value objects, by value or by reference
//   - Sealed unions with discriminant-aware equality
//   - Exhaustive and partial dispatch
//   - Runtime metadata registration
type Dialect struct {
	emitters map[string]gen.EmitFunc
}

// NewDialect creates a new Go dialect.
func NewDialect() *Dialect {
	return &Dialect{
		emitters: map[string]gen.EmitFunc{
			gen.FeatureDefinition.Name: genDefinition,
			gen.FeatureEquality.Name:   genEquality,
			gen.FeatureOrdering.Name:   genOrdering,
			gen.FeatureArithmetic.Name: genArithmetic,
			gen.FeatureFactory.Name:    genFactory,
			gen.FeatureDispatch.Name:   genDispatch,
			gen.FeatureString.Name:     genString,
			gen.FeatureDerived.Name:    genDerived,
			gen.FeatureMetadata.Name:   genMetadata,
		},
	}
}

// Name returns the dialect name.
func (d *Dialect) Name() string {
	return "go"
}

// Emitter returns the emitter of the concern.
func (d *Dialect) Emitter(concern string) gen.EmitFunc {
	return d.emitters[concern]
}

// Verify Dialect implements gen.Dialect at compile time.
var _ gen.Dialect = (*Dialect)(nil)
