package gen

import (
	"fmt"
	"slices"

	"golang.org/x/text/cases"

	"github.com/syssam/vogen"
	"github.com/syssam/vogen/schema/directive"
	"github.com/syssam/vogen/schema/member"
)

// checks run independently on every built model.
var checks = []func(*Type) Diagnostics{
	checkIssues,
	checkKey,
	checkArithmetic,
	checkComparers,
	checkBase,
	checkUnion,
	checkDispatch,
	checkErrorType,
	checkItems,
	checkOrdering,
	checkReserved,
}

// Validate checks the semantic consistency of a model. A model with error
// diagnostics is not emitted.
func Validate(t *Type) Diagnostics {
	var ds Diagnostics
	for _, check := range checks {
		ds = append(ds, check(t)...)
	}
	for i := range ds {
		ds[i].Type = t.QualifiedName()
	}
	return ds
}

func checkIssues(t *Type) (ds Diagnostics) {
	for _, i := range t.Issues {
		code := CodeInvalidOption
		if i.Kind == directive.IssueUnknownOption {
			code = CodeUnknownOption
		}
		ds = append(ds, Errorf(code, t.Pos, "", "%s", i))
	}
	return ds
}

func checkKey(t *Type) (ds Diagnostics) {
	switch {
	case t.Kind.Enumeration() && t.Key == nil:
		ds = append(ds, Errorf(CodeMissingKey, t.Pos, "", "enumeration has no key member (declare a member %q or set %s)", directive.DefaultKeyMemberName, directive.KeyKeyMemberName))
	case t.Kind == vogen.KindValueObject && t.Key == nil:
		ds = append(ds, Errorf(CodeMissingKey, t.Pos, "", "value object with %d members needs %s", len(t.Members), directive.KeyKeyMemberName))
	case t.Key != nil && t.Key.Ref != nil:
		ds = append(ds, Errorf(CodeKeyNotComparable, t.Pos, "", "key member %q refers to the generated type %s", t.Key.Name, t.Key.Ref.GoName))
	}
	return ds
}

func checkArithmetic(t *Type) (ds Diagnostics) {
	ops := t.Operators
	switch {
	case !ops.Arithmetic.Enabled():
	case t.Kind != vogen.KindValueObject:
		ds = append(ds, Errorf(CodeArithmeticKind, t.Pos, "", "arithmetic operators apply to value objects, not %s", t.Kind))
	case t.Key == nil:
	case !t.Key.Type.Type.Numeric():
		ds = append(ds, Errorf(CodeArithmeticKey, t.Pos, "", "arithmetic operators on non-numeric key %q of type %s", t.Key.Name, t.Key.Type))
	case ops.Arithmetic.Checked() && t.Key.Type.Type.Float():
		ds = append(ds, Warnf(CodeCheckedFloat, t.Pos, "", "checked arithmetic on %s key %q; only unchecked forms are generated", t.Key.Type, t.Key.Name))
	}
	return ds
}

func checkComparers(t *Type) (ds Diagnostics) {
	if t.Key != nil {
		for _, c := range []*Comparer{t.Comparer, t.EqualityComparer} {
			if directive.StringComparer(c.Name) && t.Key.Type.Type != member.TypeString {
				ds = append(ds, Errorf(CodeComparerMismatch, t.Pos, "", "comparer %q requires a string key, %q is %s", c.Name, t.Key.Name, t.Key.Type))
				break
			}
		}
	}
	members := slices.Clone(t.Members)
	for _, v := range t.Variants {
		members = append(members, v.Members...)
	}
	for _, m := range members {
		if m.comparer != nil && directive.StringComparer(m.comparer.Name) && m.Type.Type != member.TypeString {
			ds = append(ds, Errorf(CodeComparerMismatch, t.Pos, "", "comparer %q requires a string member, %q is %s", m.comparer.Name, m.Name, m.Type))
		}
	}
	return ds
}

func checkBase(t *Type) (ds Diagnostics) {
	switch {
	case t.BaseName != "" && !t.Kind.Enumeration():
		ds = append(ds, Errorf(CodeBaseOnNonEnum, t.Pos, "", "%s applies to enumerations, not %s", directive.KeyBaseType, t.Kind))
	case t.Base != nil && t.Base.Key != nil && t.Key != nil && t.Key.Type.String() != t.Base.Key.Type.String():
		ds = append(ds, Errorf(CodeBaseKeyMismatch, t.Pos, "", "key type %s differs from key type %s of base %s", t.Key.Type, t.Base.Key.Type, t.Base.GoName))
	}
	return ds
}

func checkUnion(t *Type) (ds Diagnostics) {
	if t.Kind == vogen.KindUnion && len(t.Variants) == 0 {
		ds = append(ds, Warnf(CodeEmptyUnion, t.Pos, "", "union declares no cases"))
	}
	return ds
}

func checkDispatch(t *Type) (ds Diagnostics) {
	if t.Dispatch.Mode != directive.DispatchPartial {
		return nil
	}
	names := t.CaseNames()
	for _, c := range t.Dispatch.Cases {
		if !slices.Contains(names, c) {
			ds = append(ds, Errorf(CodeUnknownCase, t.Pos, "", "partial dispatch case %q is not an item or case of %s", c, t.GoName))
		}
	}
	return ds
}

func checkErrorType(t *Type) (ds Diagnostics) {
	if e := t.ValidationError; e != nil && e.Raw != "" && !e.Valid() {
		ds = append(ds, Errorf(CodeInvalidErrorType, t.Pos, "", "%s %q is not a Go type name", directive.KeyValidationErrorType, e.Raw))
	}
	return ds
}

func checkItems(t *Type) (ds Diagnostics) {
	if t.Key == nil || len(t.Items) == 0 {
		return nil
	}
	seen := make(map[any]string)
	for b := t.Base; b != nil; b = b.Base {
		for _, it := range b.Items {
			seen[canonical(t, it.Key)] = b.GoName + "." + it.Name
		}
	}
	for _, it := range t.Items {
		k := canonical(t, it.Key)
		if prev, ok := seen[k]; ok {
			ds = append(ds, Errorf(CodeItemCollision, t.Pos, "", "item %s: key %v collides with %s", it.Name, it.Key, prev))
			continue
		}
		seen[k] = it.Name
	}
	return ds
}

func checkOrdering(t *Type) (ds Diagnostics) {
	if t.Operators.Ordering.Enabled() && t.orderingSkipped() {
		var names []string
		for _, m := range t.Members {
			if !m.Orderable() {
				names = append(names, m.Name)
			}
		}
		ds = append(ds, Warnf(CodeUnorderableMembers, t.Pos, "", "ordering skipped: members %q have no total order", names))
	}
	return ds
}

// methods are the exported methods generated on types. Accessors must not
// collide with them.
var methods = names(
	"Add", "AddChecked", "AddKey", "Case", "Compare", "CompareKey", "Div",
	"DivChecked", "DivKey", "Equal", "EqualKey", "Greater", "GreaterKey",
	"GreaterOrEqual", "GreaterOrEqualKey", "HashCode", "IsValid", "Less",
	"LessKey", "LessOrEqual", "LessOrEqualKey", "Mul", "MulChecked", "MulKey",
	"String", "Sub", "SubChecked", "SubKey", "Validate",
)

// internal are the unexported methods generated on types. Struct fields
// must not collide with them.
var internal = names("withKey")

func checkReserved(t *Type) (ds Diagnostics) {
	ms := slices.Clone(t.Members)
	for _, v := range t.Variants {
		ms = append(ms, v.Members...)
	}
	for _, m := range ms {
		if _, ok := methods[m.Accessor()]; ok && !m.Private {
			ds = append(ds, Errorf(CodeReservedMember, t.Pos, "", "accessor of member %q collides with the generated method %s", m.Name, m.Accessor()))
		}
		if _, ok := internal[m.Field()]; ok {
			ds = append(ds, Errorf(CodeReservedMember, t.Pos, "", "member %q collides with the generated method %s", m.Name, m.Field()))
		}
	}
	return ds
}

// canonical returns the canonical form of a normalized key literal under the
// equality comparer of t.
func canonical(t *Type, key any) any {
	if s, ok := key.(string); ok && t.EqualityComparer.Name == directive.ComparerOrdinalIgnoreCase {
		return cases.Fold().String(s)
	}
	return fmt.Sprint(key)
}
