package golang

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/dave/jennifer/jen"

	"github.com/syssam/vogen"
	"github.com/syssam/vogen/compiler/gen"
)

// genDefinition generates the definition file ({type}_definition.go).
// Includes: struct or sealed interface, accessors, items, item store.
func genDefinition(h gen.GeneratorHelper, t *gen.Type) (*jen.File, error) {
	f := h.NewFile(t)
	switch {
	case t.Kind == vogen.KindUnion:
		genUnion(h, f, t)
	case t.Kind.Enumeration():
		genStruct(h, f, t)
		genAccessors(h, f, t)
		if t.Key == nil {
			return nil, errors.Newf("enumeration %s has no key member", t.GoName)
		}
		genItems(h, f, t)
		genStore(h, f, t)
		genIsValid(h, f, t)
		if t.Extensible {
			genExtend(h, f, t)
		}
	default:
		genStruct(h, f, t)
		genAccessors(h, f, t)
	}
	return f, nil
}

func genStruct(h gen.GeneratorHelper, f *jen.File, t *gen.Type) {
	switch {
	case t.Base != nil:
		f.Commentf("%s is %s deriving from %s.", t.GoName, kindDocs[t.Kind], t.Base.GoName)
		f.Comment("Its items are items of the base type too.")
	default:
		f.Commentf("%s is %s.", t.GoName, kindDocs[t.Kind])
	}
	f.Type().Id(t.GoName).Struct(structFields(h, t)...)
}

// genAccessors generates the read accessors of the non-private members.
func genAccessors(h gen.GeneratorHelper, f *jen.File, t *gen.Type) {
	r := t.Receiver()
	for _, m := range ownMembers(t) {
		if m.Private {
			continue
		}
		f.Commentf("%s returns the %s member of the %s.", m.Accessor(), m.Name, t.GoName)
		f.Func().Params(recv(h, t)).Id(m.Accessor()).Params().Add(h.GoType(m)).Block(
			jen.Return(jen.Id(r).Dot(m.Field())),
		)
	}
}

// genItems generates one variable per declared item.
func genItems(h gen.GeneratorHelper, f *jen.File, t *gen.Type) {
	if len(t.Items) == 0 {
		return
	}
	f.Var().DefsFunc(func(group *jen.Group) {
		for _, it := range t.Items {
			group.Commentf("%s is the %s item of %s.", it.GoName, it.Name, t.GoName)
			group.Id(it.GoName).Op("=").Op("&").Id(t.GoName).Values(itemFields(h, t, it))
		}
	})
}

// itemFields returns the struct literal of an item. Items of derived
// enumerations extend the base first.
func itemFields(h gen.GeneratorHelper, t *gen.Type, it *gen.Item) jen.Dict {
	d := jen.Dict{}
	if b := t.Base; b != nil {
		args := []jen.Code{h.Literal(t.Key, it.Key)}
		for _, m := range b.ChainMembers() {
			args = append(args, value(h, it, m))
		}
		d[jen.Id(b.GoName)] = qual(b, "Extend"+b.GoName).Call(args...)
	}
	for _, m := range ownMembers(t) {
		if m.Role == gen.RoleKey {
			d[jen.Id(m.Field())] = h.Literal(m, it.Key)
			continue
		}
		if v, ok := it.Values[m.Name]; ok {
			d[jen.Id(m.Field())] = h.Literal(m, v)
		}
	}
	return d
}

// genStore generates the item store. Items of types deriving from t are
// registered into it at initialization.
func genStore(h gen.GeneratorHelper, f *jen.File, t *gen.Type) {
	items := make([]jen.Code, 0, len(t.Items)+2)
	items = append(items,
		h.ComparerExpr(t.Key, t.EqualityComparer),
		jen.Func().Params(jen.Id("v").Add(h.SelfType(t))).Add(h.KeyType(t)).Block(
			jen.Return(keyOf(t, jen.Id("v"))),
		),
	)
	for _, it := range t.Items {
		items = append(items, jen.Id(it.GoName))
	}
	f.Var().Id(t.StoreName()).Op("=").Add(rt(h, "NewItemStore")).Types(h.KeyType(t), h.SelfType(t)).CallFunc(func(group *jen.Group) {
		for _, c := range items {
			group.Line().Add(c)
		}
		group.Line()
	})
}

func genIsValid(h gen.GeneratorHelper, f *jen.File, t *gen.Type) {
	r := t.Receiver()
	f.Commentf("IsValid reports whether %s is an item of %s.", r, t.GoName)
	f.Comment("Values created from unknown keys are not.")
	f.Func().Params(recv(h, t)).Id("IsValid").Params().Bool().Block(
		jen.If(jen.Id(r).Op("==").Nil()).Block(jen.Return(jen.False())),
		jen.List(jen.Id("v"), jen.Id("ok")).Op(":=").Id(t.StoreName()).Dot("Get").Call(keyOf(t, jen.Id(r))),
		jen.Return(jen.Id("ok").Op("&&").Id("v").Op("==").Id(r)),
	)
}

// genExtend generates the function enumerations deriving from t declare
// their items with.
func genExtend(h gen.GeneratorHelper, f *jen.File, t *gen.Type) {
	name := "Extend" + t.GoName
	chain := t.ChainMembers()
	f.Commentf("%s registers an item of %s declared by a derived enumeration.", name, t.GoName)
	f.Comment("It panics if an item with an equal key exists.")
	ps := append([]jen.Code{jen.Id("k").Add(h.KeyType(t))}, params(h, chain)...)
	lit := jen.Dict{}
	if b := t.Base; b != nil {
		args := []jen.Code{jen.Id("k")}
		for _, m := range b.ChainMembers() {
			args = append(args, jen.Id(m.Param()))
		}
		lit[jen.Id(b.GoName)] = qual(b, "Extend"+b.GoName).Call(args...)
	} else {
		lit[jen.Id(t.Key.Field())] = jen.Id("k")
	}
	for k, v := range fields(t.Ordinary()) {
		lit[k] = v
	}
	f.Func().Id(name).Params(ps...).Add(h.SelfType(t)).Block(
		jen.Id("v").Op(":=").Op("&").Id(t.GoName).Values(lit),
		jen.If(jen.Err().Op(":=").Id(t.StoreName()).Dot("Register").Call(jen.Id("v")), jen.Err().Op("!=").Nil()).Block(
			jen.Panic(jen.Err()),
		),
		jen.Return(jen.Id("v")),
	)
}

// genUnion generates the sealed interface of a union and one struct per case.
func genUnion(h gen.GeneratorHelper, f *jen.File, t *gen.Type) {
	marker := "is" + t.GoName
	names := make([]string, len(t.Variants))
	for i, v := range t.Variants {
		names[i] = v.Name
	}
	f.Commentf("%s is a union of %s.", t.GoName, strings.Join(names, ", "))
	f.Type().Id(t.GoName).Interface(
		jen.Id(marker).Params(),
		jen.Comment("Case returns the name of the case."),
		jen.Id("Case").Params().String(),
	)
	for _, v := range t.Variants {
		f.Commentf("%s is the %s case of %s.", v.GoName, v.Name, t.GoName)
		f.Type().Id(v.GoName).StructFunc(func(group *jen.Group) {
			for _, m := range v.Members {
				group.Id(m.Field()).Add(h.GoType(m))
			}
		})
		f.Func().Params(jen.Id(v.GoName)).Id(marker).Params().Block()
		f.Comment("Case implements " + t.GoName + ".")
		f.Func().Params(jen.Id(v.GoName)).Id("Case").Params().String().Block(jen.Return(jen.Lit(v.Name)))
		for _, m := range v.Members {
			if m.Private {
				continue
			}
			f.Func().Params(jen.Id(v.Receiver()).Id(v.GoName)).Id(m.Accessor()).Params().Add(h.GoType(m)).Block(
				jen.Return(jen.Id(v.Receiver()).Dot(m.Field())),
			)
		}
	}
}
