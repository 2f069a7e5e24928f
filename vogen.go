// Package vogen is the runtime library for code generated by the vogen compiler.
//
// Generated types depend on this package for three things:
//
//   - Comparers, hashing and the shared ItemStore backing keyed and
//     extensible enumerations.
//   - ValidationError and the helpers used by generated factories.
//   - The metadata registry populated by generated init functions and
//     queried by serialization, persistence and API-documentation adapters.
//
// Adapters should look types up with FindMetadata and treat a missing entry
// as "not a generated type":
//
//	md, ok := vogen.FindMetadata(reflect.TypeOf(v))
//	if !ok {
//	    return fallback(v)
//	}
//	key, _ := md.ToKey(v)
package vogen

// Kind is the kind of value abstraction a generated type represents.
type Kind uint8

// Kinds of generated types.
const (
	KindInvalid Kind = iota
	KindKeyedEnumeration
	KindExtensibleEnumeration
	KindValueObject
	KindComplexValueObject
	KindUnion
)

var kindNames = [...]string{
	KindInvalid:               "invalid",
	KindKeyedEnumeration:      "enum",
	KindExtensibleEnumeration: "extensible-enum",
	KindValueObject:           "value-object",
	KindComplexValueObject:    "complex-value-object",
	KindUnion:                 "union",
}

// String returns the directive spelling of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

// Enumeration reports whether the kind is a keyed or extensible enumeration.
func (k Kind) Enumeration() bool {
	return k == KindKeyedEnumeration || k == KindExtensibleEnumeration
}

// Keyed reports whether values of the kind are identified by a single key member.
func (k Kind) Keyed() bool {
	return k.Enumeration() || k == KindValueObject
}

// ParseKind returns the kind with the given directive spelling.
func ParseKind(s string) (Kind, bool) {
	for k := KindKeyedEnumeration; int(k) < len(kindNames); k++ {
		if kindNames[k] == s {
			return k, true
		}
	}
	return KindInvalid, false
}
