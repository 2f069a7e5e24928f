package golang

import (
	"github.com/cockroachdb/errors"
	"github.com/dave/jennifer/jen"

	"github.com/syssam/vogen/compiler/gen"
	"github.com/syssam/vogen/schema/member"
)

// relations are the comparison methods derived from Compare.
var relations = []struct {
	name, op, doc string
}{
	{"Less", "<", "orders before"},
	{"LessOrEqual", "<=", "orders before or with"},
	{"Greater", ">", "orders after"},
	{"GreaterOrEqual", ">=", "orders after or with"},
}

// genOrdering generates the ordering file ({type}_ordering.go).
// Includes: Compare and the relations derived from it, key forms under the
// all mode.
func genOrdering(h gen.GeneratorHelper, t *gen.Type) (*jen.File, error) {
	f := h.NewFile(t)
	r := t.Receiver()
	self := h.SelfType(t)
	if t.Keyed() {
		if !t.Key.Orderable() {
			return nil, errors.Newf("key member %s of %s has no order under comparer %s", t.Key.Name, t.GoName, t.Key.Ordering)
		}
		f.Commentf("Compare returns -1, 0 or +1 as %s orders before, with or after other.", r)
		f.Comment("Keys are ordered by the comparer of the type.")
	} else {
		f.Commentf("Compare returns -1, 0 or +1 as %s orders before, with or after other.", r)
		f.Comment("Members are compared in declaration order.")
	}
	if t.Pointer() {
		f.Comment("nil orders first.")
	}
	f.Func().Params(recv(h, t)).Id("Compare").Params(jen.Id("other").Add(self)).Int().BlockFunc(func(group *jen.Group) {
		if t.Pointer() {
			group.Switch().Block(
				jen.Case(jen.Id(r).Op("==").Nil().Op("&&").Id("other").Op("==").Nil()).Block(jen.Return(jen.Lit(0))),
				jen.Case(jen.Id(r).Op("==").Nil()).Block(jen.Return(jen.Lit(-1))),
				jen.Case(jen.Id("other").Op("==").Nil()).Block(jen.Return(jen.Lit(1))),
			)
		}
		if t.Keyed() {
			group.Return(keyCompare(h, t.Key, keyOf(t, jen.Id(r)), keyOf(t, jen.Id("other"))))
			return
		}
		for i, m := range t.Members {
			c := memberCompare(h, m, jen.Id(r).Dot(m.Field()), jen.Id("other").Dot(m.Field()))
			if i == len(t.Members)-1 {
				group.Return(c)
				return
			}
			group.If(jen.Id("c").Op(":=").Add(c), jen.Id("c").Op("!=").Lit(0)).Block(jen.Return(jen.Id("c")))
		}
		group.Return(jen.Lit(0))
	})
	for _, rel := range relations {
		f.Commentf("%s reports whether %s %s other.", rel.name, r, rel.doc)
		f.Func().Params(recv(h, t)).Id(rel.name).Params(jen.Id("other").Add(self)).Bool().Block(
			jen.Return(jen.Id(r).Dot("Compare").Call(jen.Id("other")).Op(rel.op).Lit(0)),
		)
	}
	if t.Keyed() && t.Operators.Ordering.KeyOverloads() {
		genKeyOrdering(h, f, t)
	}
	return f, nil
}

// genKeyOrdering generates the comparisons of a value with a bare key.
// A nil value orders before every key.
func genKeyOrdering(h gen.GeneratorHelper, f *jen.File, t *gen.Type) {
	r := t.Receiver()
	f.Commentf("CompareKey returns -1, 0 or +1 as the key of %s orders before, with or after k.", r)
	f.Func().Params(recv(h, t)).Id("CompareKey").Params(jen.Id("k").Add(h.KeyType(t))).Int().BlockFunc(func(group *jen.Group) {
		if t.Pointer() {
			group.If(jen.Id(r).Op("==").Nil()).Block(jen.Return(jen.Lit(-1)))
		}
		group.Return(keyCompare(h, t.Key, keyOf(t, jen.Id(r)), jen.Id("k")))
	})
	for _, rel := range relations {
		name := rel.name + "Key"
		f.Func().Params(recv(h, t)).Id(name).Params(jen.Id("k").Add(h.KeyType(t))).Bool().Block(
			jen.Return(jen.Id(r).Dot("CompareKey").Call(jen.Id("k")).Op(rel.op).Lit(0)),
		)
	}
}

func keyCompare(h gen.GeneratorHelper, m *gen.Member, a, b jen.Code) jen.Code {
	if m.Ref != nil {
		return memberCompare(h, m, a, b)
	}
	return jen.Add(h.ComparerExpr(m, m.Ordering)).Dot("Compare").Call(a, b)
}

// memberCompare returns the expression ordering the member values a and b.
func memberCompare(h gen.GeneratorHelper, m *gen.Member, a, b jen.Code) jen.Code {
	switch {
	case m.Ref != nil && m.Nullable && !m.Ref.Pointer():
		return rt(h, "CompareRef").Call(a, b)
	case m.Ref != nil:
		return jen.Add(a).Dot("Compare").Call(b)
	case m.Nullable && m.Type.Type != member.TypeBytes:
		return rt(h, "ComparePtr").Call(h.ComparerExpr(m, m.Ordering), a, b)
	default:
		return jen.Add(h.ComparerExpr(m, m.Ordering)).Dot("Compare").Call(a, b)
	}
}
