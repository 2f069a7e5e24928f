package golang

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/vogen"
	"github.com/syssam/vogen/compiler/gen"
	"github.com/syssam/vogen/schema/member"
)

var kindConsts = map[vogen.Kind]string{
	vogen.KindKeyedEnumeration:      "KindKeyedEnumeration",
	vogen.KindExtensibleEnumeration: "KindExtensibleEnumeration",
	vogen.KindValueObject:           "KindValueObject",
	vogen.KindComplexValueObject:    "KindComplexValueObject",
	vogen.KindUnion:                 "KindUnion",
}

var kindDocs = map[vogen.Kind]string{
	vogen.KindKeyedEnumeration:      "a keyed enumeration",
	vogen.KindExtensibleEnumeration: "an extensible enumeration",
	vogen.KindValueObject:           "a value object",
	vogen.KindComplexValueObject:    "a complex value object",
	vogen.KindUnion:                 "a union",
}

// rt returns a qualified identifier of the runtime library.
func rt(h gen.GeneratorHelper, name string) *jen.Statement {
	return jen.Qual(h.RuntimePkg(), name)
}

// qual returns an identifier declared in the package of t.
func qual(t *gen.Type, name string) *jen.Statement {
	return jen.Qual(t.PkgPath, name)
}

// recv returns the receiver of the methods of t.
func recv(h gen.GeneratorHelper, t *gen.Type) *jen.Statement {
	return jen.Id(t.Receiver()).Add(h.SelfType(t))
}

// keyOf returns the expression reading the key of v, a value of t. The key
// field lives on the root of derived enumerations and is promoted within
// its package.
func keyOf(t *gen.Type, v jen.Code) *jen.Statement {
	return keyIn(t, t, v)
}

// keyIn is like keyOf for code generated in the package of in.
func keyIn(in, t *gen.Type, v jen.Code) *jen.Statement {
	root := t.Root()
	if !in.SamePackage(root) {
		return jen.Add(v).Dot(root.Key.Accessor()).Call()
	}
	return jen.Add(v).Dot(root.Key.Field())
}

// nilGuard returns the statement handling nil pointers before comparing a
// and b, for types held by pointer.
func nilGuard(t *gen.Type, a, b string, eq jen.Code) jen.Code {
	if !t.Pointer() {
		return jen.Null()
	}
	return jen.If(jen.Id(a).Op("==").Nil().Op("||").Id(b).Op("==").Nil()).Block(jen.Return(eq))
}

// zero returns the zero value of a member.
func zero(h gen.GeneratorHelper, m *gen.Member) jen.Code {
	switch {
	case m.Ref != nil:
		if m.Nullable || m.Ref.Pointer() || m.Ref.Kind == vogen.KindUnion {
			return jen.Nil()
		}
		return jen.Add(h.TypeRef(m.Ref)).Values()
	case m.Nullable, m.Type.Type == member.TypeBytes:
		return jen.Nil()
	case m.Type.Type == member.TypeString:
		return jen.Lit("")
	case m.Type.Type == member.TypeBool:
		return jen.False()
	case m.Type.Type.Numeric() && m.Type.Type != member.TypeDecimal:
		return jen.Lit(0)
	default:
		return jen.Op("*").New(h.BaseType(m))
	}
}

// value returns the literal of an item value, or the zero value of the
// member if the item does not set it.
func value(h gen.GeneratorHelper, it *gen.Item, m *gen.Member) jen.Code {
	v, ok := it.Values[m.Name]
	if !ok {
		return zero(h, m)
	}
	return h.Literal(m, v)
}

// params returns the parameters taking the members.
func params(h gen.GeneratorHelper, ms []*gen.Member) []jen.Code {
	ps := make([]jen.Code, len(ms))
	for i, m := range ms {
		ps[i] = jen.Id(m.Param()).Add(h.GoType(m))
	}
	return ps
}

// fields returns the struct literal fields initialized from the member
// parameters.
func fields(ms []*gen.Member) jen.Dict {
	d := jen.Dict{}
	for _, m := range ms {
		d[jen.Id(m.Field())] = jen.Id(m.Param())
	}
	return d
}

// caseType returns the type handed to the dispatch handler of a case.
func caseType(h gen.GeneratorHelper, t *gen.Type, v *gen.Variant) jen.Code {
	if v == nil {
		return h.SelfType(t)
	}
	return qual(t, v.GoName)
}

// structFields returns the fields of the struct of t: the embedded base of
// derived enumerations followed by the members t declares.
func structFields(h gen.GeneratorHelper, t *gen.Type) []jen.Code {
	var fs []jen.Code
	if t.Base != nil {
		fs = append(fs, jen.Op("*").Add(h.TypeRef(t.Base)))
	}
	for _, m := range t.Members {
		if t.Base != nil && m.Role == gen.RoleKey {
			continue
		}
		fs = append(fs, jen.Id(m.Field()).Add(h.GoType(m)))
	}
	return fs
}

// ownMembers returns the members stored in the struct of t.
func ownMembers(t *gen.Type) []*gen.Member {
	if t.Base == nil {
		return t.Members
	}
	return t.Ordinary()
}
