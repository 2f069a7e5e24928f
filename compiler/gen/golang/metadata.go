package golang

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/vogen"
	"github.com/syssam/vogen/compiler/gen"
)

// genMetadata generates the metadata file ({type}_metadata.go): an init
// function registering the structure of the type with the runtime registry.
func genMetadata(h gen.GeneratorHelper, t *gen.Type) (*jen.File, error) {
	f := h.NewFile(t)
	typeOf := func(c jen.Code) jen.Code {
		return jen.Qual("reflect", "TypeFor").Types(c).Call()
	}
	d := jen.Dict{
		jen.Id("Kind"): rt(h, kindConsts[t.Kind]),
		jen.Id("Type"): typeOf(h.SelfType(t)),
	}
	if len(t.Members) > 0 {
		d[jen.Id("Members")] = jen.Index().Add(rt(h, "MemberMetadata")).CustomFunc(jen.Options{
			Open: "{", Close: "}", Separator: ",", Multi: true,
		}, func(group *jen.Group) {
			for _, m := range t.Members {
				md := jen.Dict{
					jen.Id("Name"): jen.Lit(m.Name),
					jen.Id("Type"): typeOf(h.GoType(m)),
				}
				if m.Role == gen.RoleKey {
					md[jen.Id("Key")] = jen.True()
				}
				group.Values(md)
			}
		})
	}
	if t.Base != nil {
		d[jen.Id("Base")] = typeOf(h.SelfType(t.Base))
	}
	if len(t.Variants) > 0 {
		d[jen.Id("Variants")] = jen.Index().Qual("reflect", "Type").ValuesFunc(func(group *jen.Group) {
			for _, v := range t.Variants {
				group.Line().Add(typeOf(jen.Id(v.GoName)))
			}
			group.Line()
		})
	}
	if t.Keyed() {
		d[jen.Id("KeyType")] = typeOf(h.KeyType(t))
		d[jen.Id("FromKey")] = fromKey(h, t)
		d[jen.Id("ToKey")] = jen.Func().Params(jen.Id("v").Any()).Params(jen.Any(), jen.Bool()).BlockFunc(func(group *jen.Group) {
			group.List(jen.Id("x"), jen.Id("ok")).Op(":=").Id("v").Assert(h.SelfType(t))
			cond := jen.Op("!").Id("ok")
			if t.Pointer() {
				cond = cond.Op("||").Id("x").Op("==").Nil()
			}
			group.If(cond).Block(jen.Return(jen.Nil(), jen.False()))
			group.Return(keyOf(t, jen.Id("x")), jen.True())
		})
	}
	if t.Kind.Enumeration() && t.Key != nil {
		d[jen.Id("Items")] = jen.Func().Params().Index().Any().Block(
			jen.Return(rt(h, "AnySlice").Call(jen.Id(t.StoreName()).Dot("Items").Call())),
		)
	}
	f.Func().Id("init").Params().Block(
		rt(h, "RegisterMetadata").Call(jen.Op("&").Add(rt(h, "Metadata")).Values(d)),
	)
	return f, nil
}

// fromKey returns the key conversion of keyed types. Enumerations only
// accept keys of items; value objects go through their factory.
func fromKey(h gen.GeneratorHelper, t *gen.Type) jen.Code {
	return jen.Func().Params(jen.Id("key").Any()).Params(jen.Any(), jen.Error()).BlockFunc(func(group *jen.Group) {
		group.List(jen.Id("k"), jen.Id("ok")).Op(":=").Id("key").Assert(h.KeyType(t))
		group.If(jen.Op("!").Id("ok")).Block(
			jen.Return(jen.Nil(), rt(h, "NewUnknownCaseError").Call(jen.Lit(t.GoName), jen.Id("key"))),
		)
		switch {
		case t.Kind.Enumeration():
			group.List(jen.Id("v"), jen.Id("ok")).Op(":=").Id(t.StoreName()).Dot("Get").Call(jen.Id("k"))
			group.If(jen.Op("!").Id("ok")).Block(
				jen.Return(jen.Nil(), rt(h, "NewUnknownCaseError").Call(jen.Lit(t.GoName), jen.Id("key"))),
			)
			group.Return(jen.Id("v"), jen.Nil())
		case t.Kind == vogen.KindValueObject && len(t.Members) == 1 && h.FeatureEnabled(gen.FeatureFactory.Name):
			group.List(jen.Id("v"), jen.Err()).Op(":=").Id("TryCreate" + t.GoName).Call(jen.Id("k"))
			group.If(jen.Err().Op("!=").Nil()).Block(jen.Return(jen.Nil(), jen.Err()))
			group.Return(jen.Id("v"), jen.Nil())
		default:
			lit := jen.Id(t.GoName).Values(jen.Dict{jen.Id(t.Key.Field()): jen.Id("k")})
			if t.Pointer() {
				lit = jen.Op("&").Add(lit)
			}
			group.Return(lit, jen.Nil())
		}
	})
}
