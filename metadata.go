package vogen

import (
	"reflect"
	"sort"
	"sync"

	"github.com/cockroachdb/errors"
)

// Metadata describes the structure of a generated type. It is the contract
// between generated code and framework adapters (persistence value
// converters, parameter binders, serializers, schema generators).
type Metadata struct {
	Kind Kind
	// Type is the generated type, as held by users (e.g. *ProductCategory).
	Type reflect.Type
	// KeyType is the key type of keyed enumerations and value objects.
	KeyType reflect.Type
	// Base is the base enumeration of a derived extensible enumeration.
	Base reflect.Type
	// Members lists the members in declaration order.
	Members []MemberMetadata
	// Variants lists the variant types of a union in declaration order.
	Variants []reflect.Type
	// Items returns the current items of an enumeration.
	Items func() []any
	// FromKey converts a key to a value through the generated factory.
	FromKey func(key any) (any, error)
	// ToKey returns the key of a value.
	ToKey func(v any) (any, bool)
}

// MemberMetadata describes a single member.
type MemberMetadata struct {
	Name string
	Type reflect.Type
	Key  bool
}

// Registry maps generated types to their metadata. The case types of a
// union resolve to the metadata of the union.
type Registry struct {
	entries  sync.Map // reflect.Type => *Metadata
	variants sync.Map // reflect.Type => reflect.Type of the union
}

// Register adds the metadata of a type. Registering the same structure
// twice is a no-op; a conflicting registration fails.
func (r *Registry) Register(md *Metadata) error {
	if md == nil || md.Type == nil {
		return errors.New("vogen: metadata without type")
	}
	prev, loaded := r.entries.LoadOrStore(md.Type, md)
	if loaded {
		if p := prev.(*Metadata); p.Kind != md.Kind || p.KeyType != md.KeyType || p.Base != md.Base {
			return errors.Newf("vogen: conflicting metadata registration for %s", md.Type)
		}
		return nil
	}
	for _, v := range md.Variants {
		if u, loaded := r.variants.LoadOrStore(v, md.Type); loaded && u != md.Type {
			return errors.Newf("vogen: case type %s registered for unions %s and %s", v, u, md.Type)
		}
	}
	return nil
}

// Lookup returns the metadata of a type, or of the union a case type
// belongs to.
func (r *Registry) Lookup(t reflect.Type) (*Metadata, bool) {
	if t == nil {
		return nil, false
	}
	if v, ok := r.entries.Load(t); ok {
		return v.(*Metadata), true
	}
	u, ok := r.variants.Load(t)
	if !ok {
		return nil, false
	}
	v, ok := r.entries.Load(u)
	if !ok {
		return nil, false
	}
	return v.(*Metadata), true
}

// Entries returns a snapshot of the registry sorted by type name.
func (r *Registry) Entries() []*Metadata {
	var out []*Metadata
	r.entries.Range(func(_, v any) bool {
		out = append(out, v.(*Metadata))
		return true
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Type.String() < out[j].Type.String() })
	return out
}

// Count returns the number of registered types.
func (r *Registry) Count() int {
	n := 0
	r.entries.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Reset clears the registry.
func (r *Registry) Reset() {
	r.entries.Clear()
	r.variants.Clear()
}

// DefaultRegistry is the process-wide registry populated by generated code.
var DefaultRegistry = &Registry{}

// RegisterMetadata registers metadata in the default registry.
// It is called from generated init functions and panics on conflicts.
func RegisterMetadata(md *Metadata) {
	if err := DefaultRegistry.Register(md); err != nil {
		panic(err)
	}
}

// FindMetadata returns the metadata of a generated type. A missing entry
// means the type is not generated; adapters must not treat it as an error.
// Both the declared type and its pointer or element form are looked up.
func FindMetadata(t reflect.Type) (*Metadata, bool) {
	if md, ok := DefaultRegistry.Lookup(t); ok {
		return md, true
	}
	if t == nil {
		return nil, false
	}
	if t.Kind() == reflect.Pointer {
		return DefaultRegistry.Lookup(t.Elem())
	}
	return DefaultRegistry.Lookup(reflect.PointerTo(t))
}

// MetadataOf returns the metadata of the dynamic type of v.
func MetadataOf(v any) (*Metadata, bool) {
	return FindMetadata(reflect.TypeOf(v))
}
