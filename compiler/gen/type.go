package gen

import (
	"fmt"
	"go/token"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/syssam/vogen"
	"github.com/syssam/vogen/compiler/load"
	"github.com/syssam/vogen/schema/directive"
	"github.com/syssam/vogen/schema/member"
)

// runtimePkg is the import path of the runtime library of generated code.
const runtimePkg = "github.com/syssam/vogen"

// The following types and their exported methods are used by the emission
// concerns to generate the artifacts. A Type is never mutated after it was
// built; the cache shares it between runs.
type (
	// Type is the canonical model of one candidate.
	Type struct {
		// Name is the declared name, GoName the name of the generated type
		// (enclosing names and Name concatenated).
		Name   string
		GoName string
		// Package and PkgPath of the declaring (and generated) package.
		Package string
		PkgPath string
		// Exported reports if the generated type is exported.
		Exported bool
		// Reference selects pointer semantics for value objects.
		Reference bool
		// Enclosing holds the names of the enclosing declarations.
		Enclosing []string
		// Kind is the resolved kind. A keyed enumeration with a base type or
		// the isExtensible flag is resolved to an extensible enumeration.
		Kind vogen.Kind
		// Members holds the members in declaration order. For derived
		// enumerations, the key inherited from the base comes first.
		Members []*Member
		// Key is the key member of keyed types. Nil for complex value
		// objects, unions and types missing their key.
		Key *Member
		// Comparer orders keys; EqualityComparer defines key equality and
		// the item space of enumerations. Both are never nil.
		Comparer         *Comparer
		EqualityComparer *Comparer
		// Operators are the enabled operator families.
		Operators directive.Operators
		// Dispatch configures switch/map generation.
		Dispatch directive.SwitchMap
		// ValidationError is the error type reported by factories.
		ValidationError *ErrorType
		// BaseName is the declared base type, and Base the model it resolved
		// to. Base is a read-only reference, never owned.
		BaseName string
		Base     *Type
		// Extensible reports if other enumerations may derive from this one.
		Extensible bool
		// Items are the declared items of enumerations.
		Items []*Item
		// Variants are the cases of a union, in declaration order.
		Variants []*Variant
		// SkipString disables string conversion.
		SkipString bool
		// Fingerprint is the structural fingerprint the model was built from.
		Fingerprint Fingerprint
		// Pos is the position of the declaration.
		Pos load.Position
		// Issues are the directive options that could not be interpreted,
		// reported by the validator.
		Issues []directive.Issue
	}

	// Member is a data member of a type or a union case.
	Member struct {
		// Name is the declared name.
		Name string
		// Type holds the type information of the member.
		Type *member.TypeInfo
		// Private members get no accessor method.
		Private bool
		// Nullable members are held as pointers.
		Nullable bool
		// Role of the member.
		Role Role
		// Equality and Ordering are the comparers applied to the member.
		Equality *Comparer
		Ordering *Comparer
		// Ref is the model of the member type, if it is a generated type.
		Ref *Type
		// explicit comparer, from the declaration.
		comparer *Comparer
	}

	// Item is a declared enumeration item.
	Item struct {
		// Name of the item, and GoName of the variable holding it.
		Name   string
		GoName string
		// Key is the normalized key literal.
		Key any
		// Values holds the normalized values of ordinary members, by member name.
		Values map[string]any
		// Index of the item in declaration order.
		Index int
	}

	// Variant is a case of a union.
	Variant struct {
		// Name of the case, and GoName of the generated struct.
		Name   string
		GoName string
		// Members of the case. A case without members is a marker.
		Members []*Member
		// Index is the discriminant of the case.
		Index int
		Pos   load.Position
	}

	// Comparer is a comparer strategy: one of the builtin comparers or a
	// user-provided value implementing vogen.Comparer.
	Comparer struct {
		// Name is the directive spelling.
		Name string
		// PkgPath and Ident locate a user-provided comparer. PkgPath is empty
		// for comparers declared in the package of the type.
		PkgPath string
		Ident   string
	}

	// ErrorType is the validation error type of a factory.
	ErrorType struct {
		// Raw is the directive spelling. Empty for the default.
		Raw     string
		PkgPath string
		Name    string
	}

	// Resolver returns the already-built model of a candidate, by qualified
	// name, Go name or import-path-qualified name.
	Resolver func(name string) (*Type, bool)
)

// Role is the role of a member.
type Role uint8

// Member roles.
const (
	RoleOrdinary Role = iota
	RoleKey
)

// String implements the fmt.Stringer interface.
func (r Role) String() string {
	if r == RoleKey {
		return "key"
	}
	return "ordinary"
}

// NewType builds the model of a candidate. Models of the types the
// candidate depends on (its base type and the generated types its members
// refer to) are looked up with resolve and must be built first.
// Structural impossibilities are reported as a *BuildError.
func NewType(c *Config, cand *load.Candidate, resolve Resolver) (*Type, error) {
	if resolve == nil {
		resolve = func(string) (*Type, bool) { return nil, false }
	}
	opts, issues := directive.Parse(cand.Options)
	name := cand.QualifiedName()
	t := &Type{
		Name:       cand.Name,
		GoName:     strings.Join(cand.Enclosing, "") + cand.Name,
		Package:    cand.Package,
		PkgPath:    cand.PkgPath,
		Reference:  cand.Reference,
		Enclosing:  cand.Enclosing,
		Kind:       opts.Kind,
		Operators:  opts.Operators,
		Dispatch:   opts.SwitchMap,
		SkipString: opts.SkipStringConversion,
		BaseName:   opts.BaseType,
		Pos:        cand.Pos,
		Issues:     issues,
	}
	t.Exported = token.IsExported(t.GoName)
	if t.PkgPath == "" {
		t.PkgPath = c.Package
	}
	if t.Package == "" && t.PkgPath != "" {
		t.Package = t.PkgPath[strings.LastIndexByte(t.PkgPath, '/')+1:]
	}
	if t.Package == "" {
		return nil, NewBuildError(CodeInvalidDeclaration, name, "", "declaration has no package")
	}
	if t.Kind == vogen.KindInvalid {
		if opts.RawKind == "" {
			return nil, NewBuildError(CodeUnknownKind, name, "", "missing kind")
		}
		return nil, NewBuildError(CodeUnknownKind, name, "", fmt.Sprintf("unknown kind %q", opts.RawKind))
	}
	if t.Kind == vogen.KindKeyedEnumeration && (opts.IsExtensible || opts.BaseType != "") {
		t.Kind = vogen.KindExtensibleEnumeration
	}
	t.Extensible = t.Kind == vogen.KindExtensibleEnumeration && (opts.IsExtensible || opts.BaseType == "")
	if opts.IsSet(directive.KeyIsExtensible) && !t.Kind.Enumeration() {
		t.issue(directive.KeyIsExtensible, opts.IsExtensible, "only enumerations are extensible")
	}
	t.Comparer = newComparer(opts.Comparer)
	t.EqualityComparer = t.Comparer
	if opts.EqualityComparer != "" {
		t.EqualityComparer = newComparer(opts.EqualityComparer)
	}
	t.ValidationError = newErrorType(opts.ValidationErrorType)

	own, err := t.members(name, cand.Members, resolve)
	if err != nil {
		return nil, err
	}
	switch {
	case t.Kind.Enumeration() && opts.BaseType != "":
		if err := t.derive(name, opts, own, resolve); err != nil {
			return nil, err
		}
	case t.Kind.Enumeration():
		t.Members = own
		keyName := opts.KeyMemberName
		if keyName == "" {
			keyName = directive.DefaultKeyMemberName
		}
		t.Key = t.MemberByName(keyName)
		if t.Key == nil && opts.KeyMemberName != "" {
			return nil, NewBuildError(CodeKeyMemberNotFound, name, keyName, "key member not found")
		}
	case t.Kind == vogen.KindValueObject:
		t.Members = own
		switch {
		case opts.KeyMemberName != "":
			if t.Key = t.MemberByName(opts.KeyMemberName); t.Key == nil {
				return nil, NewBuildError(CodeKeyMemberNotFound, name, opts.KeyMemberName, "key member not found")
			}
		case len(own) == 1:
			t.Key = own[0]
		}
	case t.Kind == vogen.KindComplexValueObject:
		t.Members = own
		if opts.IsSet(directive.KeyKeyMemberName) {
			t.issue(directive.KeyKeyMemberName, opts.KeyMemberName, "complex value objects have no key member")
		}
	case t.Kind == vogen.KindUnion:
		if len(own) > 0 {
			return nil, NewBuildError(CodeInvalidMemberType, name, own[0].Name, "unions hold no members; declare them on the cases")
		}
		if opts.IsSet(directive.KeyKeyMemberName) {
			t.issue(directive.KeyKeyMemberName, opts.KeyMemberName, "unions have no key member")
		}
		if err := t.variants(c, name, cand.Nested, resolve); err != nil {
			return nil, err
		}
	}
	if t.Key != nil {
		if t.Key.Nullable {
			return nil, NewBuildError(CodeNullableKey, name, t.Key.Name, "key member cannot be nullable")
		}
		t.Key.Role = RoleKey
	}
	for _, m := range t.Members {
		m.resolveComparers(t)
	}
	if t.Operators.Scalar {
		if t.Kind != vogen.KindValueObject || t.Key == nil || !t.Key.Type.Type.Numeric() {
			t.Operators.Arithmetic = directive.ModeNone
		}
		if t.Kind == vogen.KindUnion {
			t.Operators.Ordering = directive.ModeNone
		}
	}
	if !t.Kind.Enumeration() && t.Kind != vogen.KindUnion && t.Dispatch.Mode != directive.DispatchNone {
		if opts.IsSet(directive.KeySwitchMapGeneration) {
			t.issue(directive.KeySwitchMapGeneration, t.Dispatch.Mode.String(), "switch/map dispatch applies to enumerations and unions")
		}
		t.Dispatch = directive.SwitchMap{Mode: directive.DispatchNone}
	}
	if err := t.items(name, cand.Items); err != nil {
		return nil, err
	}
	return t, nil
}

// members builds the declared members of a type or a union case.
func (t *Type) members(name string, decls []*load.Member, resolve Resolver) ([]*Member, error) {
	var (
		ms   = make([]*Member, 0, len(decls))
		seen = make(map[string]string, len(decls))
	)
	for _, d := range decls {
		if !token.IsIdentifier(d.Name) {
			return nil, NewBuildError(CodeInvalidMemberType, name, d.Name, "member name is not an identifier")
		}
		if prev, ok := seen[fieldName(d.Name)]; ok {
			return nil, NewBuildError(CodeDuplicateMember, name, d.Name, fmt.Sprintf("duplicate member (already declared as %q)", prev))
		}
		seen[fieldName(d.Name)] = d.Name
		info, err := member.ParseType(d.Type)
		if err != nil {
			return nil, &BuildError{Code: CodeInvalidMemberType, Type: name, Member: d.Name, Message: "invalid member type", Cause: err}
		}
		m := &Member{
			Name:     d.Name,
			Type:     info,
			Private:  d.Private(),
			Nullable: d.Nullable || info.Nillable,
		}
		m.Type.Nillable = m.Nullable
		if d.Comparer != "" {
			if m.comparer = parseComparer(d.Comparer); m.comparer == nil {
				return nil, NewBuildError(CodeInvalidMemberType, name, d.Name, fmt.Sprintf("invalid comparer %q", d.Comparer))
			}
		}
		if info.Type == member.TypeOther {
			ref := info.Ident
			if info.PkgPath != "" {
				ref = info.PkgPath + "." + info.Ident
			}
			if r, ok := resolve(ref); ok {
				m.Ref = r
			}
		}
		ms = append(ms, m)
	}
	return ms, nil
}

// derive resolves the base of a derived enumeration and inherits its key
// and configuration.
func (t *Type) derive(name string, opts *directive.Options, own []*Member, resolve Resolver) error {
	base, ok := resolve(opts.BaseType)
	switch {
	case !ok:
		return NewBuildError(CodeUnknownBase, name, "", fmt.Sprintf("unknown base type %q", opts.BaseType))
	case !base.Kind.Enumeration() || !base.Extensible:
		return NewBuildError(CodeBaseNotExtensible, name, "", fmt.Sprintf("base type %s is not an extensible enumeration", base.GoName))
	case base.Key == nil:
		return NewBuildError(CodeBaseNotExtensible, name, "", fmt.Sprintf("base type %s has no key member", base.GoName))
	case opts.KeyMemberName != "" && opts.KeyMemberName != base.Key.Name:
		return NewBuildError(CodeKeyRedefined, name, opts.KeyMemberName, fmt.Sprintf("derived enumerations keep the key member %q of %s", base.Key.Name, base.GoName))
	}
	t.Base = base
	for _, m := range base.Ordinary() {
		if slices.ContainsFunc(own, func(o *Member) bool { return fieldName(o.Name) == fieldName(m.Name) }) {
			return NewBuildError(CodeDuplicateMember, name, m.Name, fmt.Sprintf("member is declared by base type %s", base.GoName))
		}
	}
	// A redeclared key stays, so the validator can compare it with the
	// key of the base.
	key := t.memberIn(own, base.Key.Name)
	if key == nil {
		key = &Member{Name: base.Key.Name, Type: base.Key.Type, Private: base.Key.Private, comparer: base.Key.comparer}
		own = append([]*Member{key}, own...)
	}
	t.Members, t.Key = own, key
	if !opts.IsSet(directive.KeyComparer) {
		t.Comparer = base.Comparer
	}
	if !opts.IsSet(directive.KeyEqualityComparer) {
		t.EqualityComparer = base.EqualityComparer
		if opts.IsSet(directive.KeyComparer) {
			t.EqualityComparer = t.Comparer
		}
	}
	if !opts.IsSet(directive.KeyOperators) {
		t.Operators = base.Operators
	}
	if !opts.IsSet(directive.KeyValidationErrorType) {
		t.ValidationError = base.ValidationError
	}
	return nil
}

// variants builds the cases of a union from its nested declarations.
// Nested declarations carrying the directive are candidates of their own.
func (t *Type) variants(c *Config, name string, nested []*load.Declaration, resolve Resolver) error {
	seen := make(map[string]bool, len(nested))
	for _, n := range nested {
		if n.LookupDirective(c.directive()) != nil {
			continue
		}
		if !token.IsIdentifier(n.Name) {
			return NewBuildError(CodeInvalidDeclaration, name, n.Name, "case name is not an identifier")
		}
		if seen[n.Name] {
			return NewBuildError(CodeDuplicateMember, name, n.Name, "duplicate case")
		}
		seen[n.Name] = true
		ms, err := t.members(name+"."+n.Name, n.Members, resolve)
		if err != nil {
			return err
		}
		v := &Variant{Name: n.Name, GoName: t.GoName + n.Name, Members: ms, Index: len(t.Variants), Pos: n.Pos}
		for _, m := range ms {
			m.resolveComparers(t)
		}
		t.Variants = append(t.Variants, v)
	}
	return nil
}

// items builds the declared items of an enumeration.
func (t *Type) items(name string, decls []*load.Item) error {
	if len(decls) == 0 {
		return nil
	}
	if !t.Kind.Enumeration() {
		return NewBuildError(CodeInvalidItem, name, "", "items are only declared on enumerations")
	}
	if t.Key == nil {
		// Reported by the validator.
		return nil
	}
	seen := make(map[string]bool, len(decls))
	for i, d := range decls {
		if !token.IsIdentifier(d.Name) {
			return NewBuildError(CodeInvalidItem, name, d.Name, "item name is not an identifier")
		}
		if seen[d.Name] {
			return NewBuildError(CodeInvalidItem, name, d.Name, "duplicate item")
		}
		seen[d.Name] = true
		raw := d.Key
		if raw == nil && t.Key.Type.Type == member.TypeString {
			raw = d.Name
		}
		key, err := literal(t.Key, raw)
		if err != nil {
			return &BuildError{Code: CodeInvalidItem, Type: name, Member: d.Name, Message: "invalid item key", Cause: err}
		}
		item := &Item{
			Name:   d.Name,
			GoName: t.GoName + exported(d.Name),
			Key:    key,
			Values: make(map[string]any, len(d.Values)),
			Index:  i,
		}
		for mname, v := range d.Values {
			m := t.valueMember(mname)
			if m == nil {
				return NewBuildError(CodeInvalidItem, name, d.Name, fmt.Sprintf("unknown member %q", mname))
			}
			lit, err := literal(m, v)
			if err != nil {
				return &BuildError{Code: CodeInvalidItem, Type: name, Member: d.Name, Message: fmt.Sprintf("invalid value of %q", mname), Cause: err}
			}
			item.Values[m.Name] = lit
		}
		t.Items = append(t.Items, item)
	}
	return nil
}

func (t *Type) issue(option string, value any, msg string) {
	t.Issues = append(t.Issues, directive.Issue{Kind: directive.IssueInvalidValue, Option: option, Value: value, Message: msg})
}

// Receiver returns the receiver name of the type methods.
func (t *Type) Receiver() string {
	return receiver(t.GoName)
}

// QualifiedName returns the declared name prefixed with the enclosing names.
func (t *Type) QualifiedName() string {
	if len(t.Enclosing) == 0 {
		return t.Name
	}
	return strings.Join(t.Enclosing, ".") + "." + t.Name
}

// ID returns the import-path-qualified Go name of the type.
func (t *Type) ID() string {
	return t.PkgPath + "." + t.GoName
}

// Keyed reports whether the type is identified by its key member.
func (t *Type) Keyed() bool {
	return t.Kind.Keyed() && t.Key != nil
}

// Derived reports whether the type derives from an extensible enumeration.
func (t *Type) Derived() bool {
	return t.Base != nil
}

// Root returns the root of the derivation chain: the type itself for
// types without a base.
func (t *Type) Root() *Type {
	for t.Base != nil {
		t = t.Base
	}
	return t
}

// Pointer reports whether values of the type are handled through pointers.
func (t *Type) Pointer() bool {
	return t.Kind.Enumeration() || (t.Reference && t.Kind != vogen.KindUnion)
}

// MemberByName returns the member with the given declared name.
func (t *Type) MemberByName(name string) *Member {
	return t.memberIn(t.Members, name)
}

func (t *Type) memberIn(ms []*Member, name string) *Member {
	for _, m := range ms {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// Ordinary returns the ordinary members of the type in declaration order.
// For derived enumerations, members declared by the base are excluded.
func (t *Type) Ordinary() []*Member {
	var ms []*Member
	for _, m := range t.Members {
		if m.Role == RoleOrdinary {
			ms = append(ms, m)
		}
	}
	return ms
}

// valueMember returns the ordinary member an item value is assigned to,
// searching the base chain.
func (t *Type) valueMember(name string) *Member {
	for c := t; c != nil; c = c.Base {
		if m := c.MemberByName(name); m != nil && m.Role == RoleOrdinary {
			return m
		}
	}
	return nil
}

// CaseNames returns the names of the dispatch cases: items of enumerations
// and variants of unions.
func (t *Type) CaseNames() []string {
	var names []string
	for _, it := range t.Items {
		names = append(names, it.Name)
	}
	for _, v := range t.Variants {
		names = append(names, v.Name)
	}
	return names
}

// ItemByName returns the item with the given name.
func (t *Type) ItemByName(name string) *Item {
	for _, it := range t.Items {
		if it.Name == name {
			return it
		}
	}
	return nil
}

// VariantByName returns the case with the given name.
func (t *Type) VariantByName(name string) *Variant {
	for _, v := range t.Variants {
		if v.Name == name {
			return v
		}
	}
	return nil
}

// StoreName returns the name of the item store variable of enumerations.
func (t *Type) StoreName() string {
	return unexport(t.GoName) + "Items"
}

// ItemsFuncName returns the name of the function listing the items of an
// enumeration, e.g. ProductCategories.
func (t *Type) ItemsFuncName() string {
	return plural(t.GoName)
}

// MembersOrderable reports whether every member has a total order.
func (t *Type) MembersOrderable() bool {
	for _, m := range t.Members {
		if !m.Orderable() {
			return false
		}
	}
	return true
}

// orderingSkipped reports whether the ordering concern is skipped for a
// complex value object whose members are not totally ordered. The
// validator warns about it.
func (t *Type) orderingSkipped() bool {
	return t.Kind == vogen.KindComplexValueObject && !t.MembersOrderable()
}

// ChainMembers returns the ordinary members of the derivation chain of an
// enumeration, root first.
func (t *Type) ChainMembers() []*Member {
	var ms []*Member
	if t.Base != nil {
		ms = t.Base.ChainMembers()
	}
	return append(ms, t.Ordinary()...)
}

// SamePackage reports whether o is generated in the package of t.
func (t *Type) SamePackage(o *Type) bool {
	return o != nil && o.PkgPath == t.PkgPath
}

// Param returns the parameter and field name of the item in dispatch.
func (it *Item) Param() string {
	return fieldName(it.Name)
}

// CaseField returns the field of the item in partial dispatch structs.
func (it *Item) CaseField() string {
	return exported(it.Name)
}

// Param returns the parameter name of the case in dispatch.
func (v *Variant) Param() string {
	return fieldName(v.Name)
}

// CaseField returns the field of the case in partial dispatch structs.
func (v *Variant) CaseField() string {
	return exported(v.Name)
}

// Marker reports whether the case carries no members.
func (v *Variant) Marker() bool {
	return len(v.Members) == 0
}

// Receiver returns the receiver name of the case methods.
func (v *Variant) Receiver() string {
	return receiver(v.Name)
}

// Field returns the struct field holding the member.
func (m *Member) Field() string {
	return fieldName(m.Name)
}

// Accessor returns the name of the accessor method of the member.
func (m *Member) Accessor() string {
	return exported(m.Name)
}

// Param returns the parameter name of the member in factories.
func (m *Member) Param() string {
	return fieldName(m.Name)
}

// Orderable reports whether the member has a total order under its
// ordering comparer.
func (m *Member) Orderable() bool {
	switch {
	case m.Ordering != nil && !m.Ordering.Default():
		return true
	case m.Ref != nil:
		return m.Ref.Operators.Ordering.Enabled() && m.Ref.Kind != vogen.KindUnion && !m.Ref.orderingSkipped()
	default:
		return m.Type.Type.Orderable()
	}
}

// Comparable reports whether the Go type of the member supports ==.
func (m *Member) Comparable() bool {
	return m.Ref == nil && (m.Type.Type.Comparable() || m.Type.Type == member.TypeOther)
}

func (m *Member) resolveComparers(t *Type) {
	switch {
	case m.comparer != nil:
		m.Equality, m.Ordering = m.comparer, m.comparer
	case m.Role == RoleKey:
		m.Equality, m.Ordering = t.EqualityComparer, t.Comparer
	default:
		d := newComparer(directive.ComparerDefault)
		m.Equality, m.Ordering = d, d
	}
}

func newComparer(name string) *Comparer {
	c := &Comparer{Name: name}
	if !directive.BuiltinComparer(name) {
		c.PkgPath, c.Ident, _ = directive.SplitQualified(name)
	}
	return c
}

func parseComparer(name string) *Comparer {
	if directive.BuiltinComparer(name) {
		return newComparer(name)
	}
	if _, _, ok := directive.SplitQualified(name); !ok {
		return nil
	}
	return newComparer(name)
}

// Default reports whether the comparer is the natural comparer of the type.
func (c *Comparer) Default() bool {
	return c == nil || c.Name == directive.ComparerDefault
}

// Custom reports whether the comparer is user-provided.
func (c *Comparer) Custom() bool {
	return c != nil && !directive.BuiltinComparer(c.Name)
}

// String returns the directive spelling of the comparer.
func (c *Comparer) String() string {
	if c == nil {
		return directive.ComparerDefault
	}
	return c.Name
}

func newErrorType(raw string) *ErrorType {
	if raw == "" {
		return &ErrorType{PkgPath: runtimePkg, Name: "ValidationError"}
	}
	e := &ErrorType{Raw: raw}
	e.PkgPath, e.Name, _ = directive.SplitQualified(raw)
	return e
}

// Valid reports whether the error type names a Go type.
func (e *ErrorType) Valid() bool {
	return token.IsIdentifier(e.Name)
}

// literal normalizes a declared literal of a member type: integers to int64
// or uint64, floats to float64, decimals, UUIDs and times to their
// canonical strings, and bytes to string.
func literal(m *Member, v any) (any, error) {
	t := m.Type.Type
	if v == nil {
		if m.Nullable {
			return nil, nil
		}
		return nil, errors.Newf("missing value")
	}
	switch {
	case m.Ref != nil || t == member.TypeOther:
		return nil, errors.Newf("literals of type %s cannot be declared", m.Type)
	case t == member.TypeString || t == member.TypeBytes:
		s, ok := v.(string)
		if !ok {
			return nil, errors.Newf("expect a string, got %T", v)
		}
		return s, nil
	case t == member.TypeBool:
		b, ok := v.(bool)
		if !ok {
			return nil, errors.Newf("expect a boolean, got %T", v)
		}
		return b, nil
	case t.Integer():
		return integer(t, v)
	case t.Float():
		switch n := v.(type) {
		case int:
			return float64(n), nil
		case int64:
			return float64(n), nil
		case uint64:
			return float64(n), nil
		case float64:
			if t == member.TypeFloat32 && math.Abs(n) > math.MaxFloat32 {
				return nil, errors.Newf("%v overflows float32", n)
			}
			return n, nil
		}
		return nil, errors.Newf("expect a number, got %T", v)
	case t == member.TypeDecimal:
		var (
			d   decimal.Decimal
			err error
		)
		switch n := v.(type) {
		case string:
			d, err = decimal.NewFromString(n)
		case int:
			d = decimal.NewFromInt(int64(n))
		case int64:
			d = decimal.NewFromInt(n)
		case float64:
			d = decimal.NewFromFloat(n)
		default:
			err = errors.Newf("expect a decimal string or a number, got %T", v)
		}
		if err != nil {
			return nil, err
		}
		return d.String(), nil
	case t == member.TypeUUID:
		s, ok := v.(string)
		if !ok {
			return nil, errors.Newf("expect a UUID string, got %T", v)
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		return id.String(), nil
	case t == member.TypeTime:
		var ts time.Time
		switch x := v.(type) {
		case time.Time:
			ts = x
		case string:
			var err error
			if ts, err = time.Parse(time.RFC3339Nano, x); err != nil {
				return nil, err
			}
		default:
			return nil, errors.Newf("expect an RFC 3339 time, got %T", v)
		}
		return ts.UTC().Format(time.RFC3339Nano), nil
	}
	return nil, errors.Newf("unsupported literal of type %s", m.Type)
}

func integer(t member.Type, v any) (any, error) {
	var (
		i   int64
		u   uint64
		neg bool
	)
	switch n := v.(type) {
	case int:
		i, neg = int64(n), n < 0
	case int64:
		i, neg = n, n < 0
	case uint64:
		u = n
		if n > math.MaxInt64 {
			if t.Signed() {
				return nil, errors.Newf("%d overflows %s", n, t)
			}
		} else {
			i = int64(n)
		}
	case float64:
		if n != math.Trunc(n) || math.Abs(n) > 1<<53 {
			return nil, errors.Newf("%v is not an integer", n)
		}
		i, neg = int64(n), n < 0
	default:
		return nil, errors.Newf("expect an integer, got %T", v)
	}
	bits := map[member.Type]uint{
		member.TypeInt8: 8, member.TypeInt16: 16, member.TypeInt32: 32,
		member.TypeUint8: 8, member.TypeUint16: 16, member.TypeUint32: 32,
	}[t]
	if !t.Signed() {
		if neg {
			return nil, errors.Newf("%d overflows %s", i, t)
		}
		if u == 0 {
			u = uint64(i)
		}
		if bits > 0 && u >= 1<<bits {
			return nil, errors.Newf("%d overflows %s", u, t)
		}
		return u, nil
	}
	if bits > 0 && (i >= 1<<(bits-1) || i < -(1<<(bits-1))) {
		return nil, errors.Newf("%d overflows %s", i, t)
	}
	return i, nil
}
