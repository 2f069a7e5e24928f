package gen

import (
	"github.com/syssam/vogen"
	"github.com/syssam/vogen/schema/directive"
)

var (
	// FeatureDefinition emits the type itself: the struct, its accessors and,
	// for enumerations, the declared items and their store.
	FeatureDefinition = Feature{
		Name:        "definition",
		Stage:       Stable,
		Default:     true,
		Description: "Struct, accessors, enumeration items and item store",
		cond:        func(*Type) bool { return true },
	}

	// FeatureEquality emits key-based or member-wise equality and hashing.
	FeatureEquality = Feature{
		Name:        "equality",
		Stage:       Stable,
		Default:     true,
		Description: "Equal and HashCode, discriminant-aware for unions",
		cond:        func(t *Type) bool { return t.Operators.Equality.Enabled() },
	}

	// FeatureOrdering emits comparison methods.
	FeatureOrdering = Feature{
		Name:        "ordering",
		Stage:       Beta,
		Default:     true,
		Description: "Compare, Less, LessOrEqual, Greater and GreaterOrEqual",
		cond: func(t *Type) bool {
			return t.Operators.Ordering.Enabled() && t.Kind != vogen.KindUnion && !t.orderingSkipped()
		},
	}

	// FeatureArithmetic emits arithmetic on numeric keys.
	FeatureArithmetic = Feature{
		Name:        "arithmetic",
		Stage:       Alpha,
		Default:     true,
		Description: "Add, Sub, Mul and Div on value objects with numeric keys, overflow-checked forms under checked/all",
		cond: func(t *Type) bool {
			return t.Operators.Arithmetic.Enabled() && t.Kind == vogen.KindValueObject
		},
	}

	// FeatureFactory emits validated construction.
	FeatureFactory = Feature{
		Name:        "factory",
		Stage:       Stable,
		Default:     true,
		Description: "TryCreate and MustCreate; Get, TryGet and the item collection for enumerations",
		cond:        func(*Type) bool { return true },
	}

	// FeatureDispatch emits exhaustive switch and map dispatch.
	FeatureDispatch = Feature{
		Name:        "dispatch",
		Stage:       Beta,
		Default:     true,
		Description: "Exhaustive Switch and Map over items or variants, with optional partial forms",
		cond: func(t *Type) bool {
			return t.Dispatch.Mode != directive.DispatchNone && (t.Kind.Enumeration() || t.Kind == vogen.KindUnion)
		},
	}

	// FeatureString emits string conversion.
	FeatureString = Feature{
		Name:        "string",
		Stage:       Stable,
		Default:     true,
		Description: "String from the key or Type(member=value, ...)",
		cond:        func(t *Type) bool { return !t.SkipString },
	}

	// FeatureDerived emits the bridge from an extensible base to the
	// enumerations deriving from it.
	FeatureDerived = Feature{
		Name:        "derived",
		Stage:       Beta,
		Default:     true,
		Description: "As lookup from base items and the Is check on derived enumerations",
		cond:        func(t *Type) bool { return t.Base != nil },
	}

	// FeatureMetadata emits the registration of the type in the runtime
	// metadata registry.
	FeatureMetadata = Feature{
		Name:        "metadata",
		Stage:       Stable,
		Default:     true,
		Description: "init registering structural metadata for persistence, serialization and schema adapters",
		cond:        func(*Type) bool { return true },
	}

	// AllFeatures holds the emission concerns, in emission order.
	AllFeatures = []Feature{
		FeatureDefinition,
		FeatureEquality,
		FeatureOrdering,
		FeatureArithmetic,
		FeatureFactory,
		FeatureDispatch,
		FeatureString,
		FeatureDerived,
		FeatureMetadata,
	}
)

// FeatureStage describes the stage of the codegen feature.
type FeatureStage int

const (
	_ FeatureStage = iota

	// Experimental features are in development, and actively being tested.
	Experimental

	// Alpha features are features whose initial development was finished,
	// but we expect breaking-changes to their generated APIs.
	Alpha

	// Beta features are Alpha features with a documented generated API, and
	// no breaking-changes are expected for them.
	Beta

	// Stable features are Beta features that were running for a while.
	Stable
)

// A Feature is an emission concern of the vogen codegen.
type Feature struct {
	// Name of the feature. It is also the artifact suffix.
	Name string

	// Stage of the feature.
	Stage FeatureStage

	// Default values indicates if this feature is enabled by default.
	Default bool

	// A Description of this feature.
	Description string

	// cond reports whether the concern applies to a type.
	cond func(*Type) bool
}

// Applies reports whether the concern applies to t.
func (f Feature) Applies(t *Type) bool {
	return f.cond != nil && f.cond(t)
}

func defaultFeatures() []Feature {
	var fs []Feature
	for _, f := range AllFeatures {
		if f.Default {
			fs = append(fs, f)
		}
	}
	return fs
}

func featureByName(name string) (Feature, bool) {
	for _, f := range AllFeatures {
		if f.Name == name {
			return f, true
		}
	}
	return Feature{}, false
}

// features returns the enabled concerns in emission order.
func (c *Config) features() []Feature {
	var fs []Feature
	for _, f := range AllFeatures {
		if ok, _ := c.FeatureEnabled(f.Name); ok {
			fs = append(fs, f)
		}
	}
	return fs
}
