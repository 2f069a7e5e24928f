package golang

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/vogen/compiler/gen"
)

// genDerived generates the derived file ({type}_derived.go) of enumerations
// deriving from an extensible base.
func genDerived(h gen.GeneratorHelper, t *gen.Type) (*jen.File, error) {
	b := t.Base
	if b == nil {
		return nil, nil
	}
	f := h.NewFile(t)
	as, is := "As"+t.GoName, "Is"+t.GoName
	f.Commentf("%s returns the %s item extending the %s item v.", as, t.GoName, b.GoName)
	f.Func().Id(as).Params(jen.Id("v").Add(h.SelfType(b))).Params(h.SelfType(t), jen.Bool()).Block(
		jen.If(jen.Id("v").Op("==").Nil()).Block(jen.Return(jen.Nil(), jen.False())),
		jen.List(jen.Id("x"), jen.Id("ok")).Op(":=").Id(t.StoreName()).Dot("Get").Call(keyIn(t, b, jen.Id("v"))),
		jen.If(jen.Op("!").Id("ok").Op("||").Id("x").Dot(b.GoName).Op("!=").Id("v")).Block(
			jen.Return(jen.Nil(), jen.False()),
		),
		jen.Return(jen.Id("x"), jen.True()),
	)
	f.Commentf("%s reports whether the %s item v is declared by %s.", is, b.GoName, t.GoName)
	f.Func().Id(is).Params(jen.Id("v").Add(h.SelfType(b))).Bool().Block(
		jen.List(jen.Id("_"), jen.Id("ok")).Op(":=").Id(as).Call(jen.Id("v")),
		jen.Return(jen.Id("ok")),
	)
	return f, nil
}
