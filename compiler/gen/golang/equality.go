package golang

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/vogen"
	"github.com/syssam/vogen/compiler/gen"
	"github.com/syssam/vogen/schema/member"
)

// genEquality generates the equality file ({type}_equality.go).
// Includes: Equal and HashCode, EqualKey under the all mode.
func genEquality(h gen.GeneratorHelper, t *gen.Type) (*jen.File, error) {
	f := h.NewFile(t)
	switch {
	case t.Kind == vogen.KindUnion:
		genUnionEquality(h, f, t)
		for _, v := range t.Variants {
			genMemberwiseEquality(h, f, v.GoName, jen.Id(v.GoName), v.Receiver(), false, v.Members)
		}
	case t.Keyed():
		genKeyEquality(h, f, t)
	default:
		genMemberwiseEquality(h, f, t.GoName, h.SelfType(t), t.Receiver(), t.Pointer(), t.Members)
	}
	return f, nil
}

// genKeyEquality generates equality of keyed types: two values are equal
// if their keys are equal under the equality comparer.
func genKeyEquality(h gen.GeneratorHelper, f *jen.File, t *gen.Type) {
	r := t.Receiver()
	k := t.Key
	f.Commentf("Equal reports whether %s and other have equal keys.", r)
	f.Func().Params(recv(h, t)).Id("Equal").Params(jen.Id("other").Add(h.SelfType(t))).Bool().Block(
		nilGuard(t, r, "other", jen.Id(r).Op("==").Id("other")),
		jen.Return(keyEqual(h, k, keyOf(t, jen.Id(r)), keyOf(t, jen.Id("other")))),
	)
	f.Comment("HashCode returns a hash of the key, consistent with Equal.")
	f.Func().Params(recv(h, t)).Id("HashCode").Params().Uint64().BlockFunc(func(group *jen.Group) {
		if t.Pointer() {
			group.If(jen.Id(r).Op("==").Nil()).Block(jen.Return(jen.Lit(0)))
		}
		group.Return(keyHash(h, k, keyOf(t, jen.Id(r))))
	})
	if !t.Operators.Equality.KeyOverloads() {
		return
	}
	f.Commentf("EqualKey reports whether the key of %s equals k.", r)
	f.Func().Params(recv(h, t)).Id("EqualKey").Params(jen.Id("k").Add(h.KeyType(t))).Bool().BlockFunc(func(group *jen.Group) {
		eq := keyEqual(h, k, keyOf(t, jen.Id(r)), jen.Id("k"))
		if t.Pointer() {
			group.Return(jen.Id(r).Op("!=").Nil().Op("&&").Add(eq))
			return
		}
		group.Return(eq)
	})
}

func keyEqual(h gen.GeneratorHelper, m *gen.Member, a, b jen.Code) jen.Code {
	if m.Ref != nil {
		return memberEqual(h, m, a, b)
	}
	return jen.Add(h.ComparerExpr(m, m.Equality)).Dot("Equal").Call(a, b)
}

func keyHash(h gen.GeneratorHelper, m *gen.Member, v jen.Code) jen.Code {
	if m.Ref != nil {
		return memberHash(h, m, v)
	}
	return rt(h, "HashKey").Call(h.ComparerExpr(m, m.Equality), v)
}

// genMemberwiseEquality generates equality of complex value objects and
// union cases.
func genMemberwiseEquality(h gen.GeneratorHelper, f *jen.File, name string, self jen.Code, r string, pointer bool, ms []*gen.Member) {
	if len(ms) == 0 {
		f.Commentf("Equal reports whether other is %s too.", name)
		f.Func().Params(self).Id("Equal").Params(self).Bool().Block(jen.Return(jen.True()))
		f.Comment("HashCode returns a hash consistent with Equal.")
		f.Func().Params(self).Id("HashCode").Params().Uint64().Block(jen.Return(jen.Lit(0)))
		return
	}
	var (
		eq     *jen.Statement
		hashes []jen.Code
	)
	for _, m := range ms {
		e := memberEqual(h, m, jen.Id(r).Dot(m.Field()), jen.Id("other").Dot(m.Field()))
		if eq == nil {
			eq = jen.Add(e)
		} else {
			eq = eq.Op("&&").Line().Add(e)
		}
		if hc := memberHash(h, m, jen.Id(r).Dot(m.Field())); hc != nil {
			hashes = append(hashes, hc)
		}
	}
	f.Commentf("Equal reports whether %s and other have equal members.", r)
	f.Func().Params(jen.Id(r).Add(self)).Id("Equal").Params(jen.Id("other").Add(self)).Bool().BlockFunc(func(group *jen.Group) {
		if pointer {
			group.If(jen.Id(r).Op("==").Nil().Op("||").Id("other").Op("==").Nil()).Block(
				jen.Return(jen.Id(r).Op("==").Id("other")),
			)
		}
		group.Return(eq)
	})
	f.Comment("HashCode returns a hash of the members, consistent with Equal.")
	f.Func().Params(jen.Id(r).Add(self)).Id("HashCode").Params().Uint64().BlockFunc(func(group *jen.Group) {
		if pointer {
			group.If(jen.Id(r).Op("==").Nil()).Block(jen.Return(jen.Lit(0)))
		}
		group.Return(rt(h, "CombineHash").CallFunc(func(g *jen.Group) {
			for _, hc := range hashes {
				g.Line().Add(hc)
			}
			g.Line()
		}))
	})
}

// refEquality reports whether the generated type of a member has Equal and
// HashCode methods.
func refEquality(h gen.GeneratorHelper, m *gen.Member) bool {
	return h.FeatureEnabled(gen.FeatureEquality.Name) && m.Ref.Operators.Equality.Enabled()
}

// memberEqual returns the expression comparing the member values a and b.
func memberEqual(h gen.GeneratorHelper, m *gen.Member, a, b jen.Code) jen.Code {
	switch {
	case m.Ref != nil && !refEquality(h, m):
		return jen.Qual("reflect", "DeepEqual").Call(a, b)
	case m.Ref != nil && m.Ref.Kind == vogen.KindUnion:
		return qual(m.Ref, "Equal"+m.Ref.GoName).Call(a, b)
	case m.Ref != nil && m.Nullable && !m.Ref.Pointer():
		return rt(h, "EqualRef").Call(a, b)
	case m.Ref != nil:
		return jen.Add(a).Dot("Equal").Call(b)
	case m.Nullable && m.Type.Type != member.TypeBytes:
		return rt(h, "EqualPtr").Call(h.ComparerExpr(m, m.Equality), a, b)
	default:
		return jen.Add(h.ComparerExpr(m, m.Equality)).Dot("Equal").Call(a, b)
	}
}

// memberHash returns the expression hashing the member value v, or nil
// for members without a hash.
func memberHash(h gen.GeneratorHelper, m *gen.Member, v jen.Code) jen.Code {
	switch {
	case m.Ref != nil && !refEquality(h, m):
		return nil
	case m.Ref != nil && m.Ref.Kind == vogen.KindUnion:
		return qual(m.Ref, "HashCode"+m.Ref.GoName).Call(v)
	case m.Ref != nil && m.Nullable && !m.Ref.Pointer():
		return rt(h, "HashRef").Call(v)
	case m.Ref != nil:
		return jen.Add(v).Dot("HashCode").Call()
	case m.Nullable && m.Type.Type != member.TypeBytes:
		return rt(h, "HashPtr").Call(h.ComparerExpr(m, m.Equality), v)
	default:
		return rt(h, "HashKey").Call(h.ComparerExpr(m, m.Equality), v)
	}
}

// genUnionEquality generates the discriminant-aware equality of a union:
// values of different cases are never equal.
func genUnionEquality(h gen.GeneratorHelper, f *jen.File, t *gen.Type) {
	eqName, hashName := "Equal"+t.GoName, "HashCode"+t.GoName
	f.Commentf("%s reports whether a and b hold the same case with equal members.", eqName)
	f.Func().Id(eqName).Params(jen.List(jen.Id("a"), jen.Id("b")).Id(t.GoName)).Bool().BlockFunc(func(group *jen.Group) {
		if len(t.Variants) > 0 {
			group.Switch(jen.Id("x").Op(":=").Id("a").Assert(jen.Type())).BlockFunc(func(sw *jen.Group) {
				for _, v := range t.Variants {
					sw.Case(jen.Id(v.GoName)).Block(
						jen.List(jen.Id("y"), jen.Id("ok")).Op(":=").Id("b").Assert(jen.Id(v.GoName)),
						jen.Return(jen.Id("ok").Op("&&").Id("x").Dot("Equal").Call(jen.Id("y"))),
					)
				}
			})
		}
		group.Return(jen.Id("a").Op("==").Nil().Op("&&").Id("b").Op("==").Nil())
	})
	f.Commentf("%s returns a hash of the case and its members, consistent with %s.", hashName, eqName)
	f.Func().Id(hashName).Params(jen.Id("v").Id(t.GoName)).Uint64().BlockFunc(func(group *jen.Group) {
		if len(t.Variants) > 0 {
			group.Switch(jen.Id("x").Op(":=").Id("v").Assert(jen.Type())).BlockFunc(func(sw *jen.Group) {
				for _, v := range t.Variants {
					sw.Case(jen.Id(v.GoName)).Block(
						jen.Return(rt(h, "CombineHash").Call(jen.Lit(v.Index), jen.Id("x").Dot("HashCode").Call())),
					)
				}
			})
		}
		group.Return(jen.Lit(0))
	})
}
