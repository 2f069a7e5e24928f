package golang

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/vogen"
	"github.com/syssam/vogen/compiler/gen"
)

// validator is the optional hook user code declares on a type to reject
// values in factories.
var validator = jen.Interface(jen.Id("Validate").Params().Error())

// genFactory generates the factory file ({type}_factory.go).
// Includes: Get, TryGet, TryCreate, MustCreate and the item list for
// enumerations; TryCreate and MustCreate for value objects and cases.
func genFactory(h gen.GeneratorHelper, t *gen.Type) (*jen.File, error) {
	f := h.NewFile(t)
	switch {
	case t.Kind.Enumeration():
		genEnumFactory(h, f, t)
	case t.Kind == vogen.KindUnion:
		for _, v := range t.Variants {
			if v.Marker() {
				continue
			}
			genValueFactory(h, f, t, v.GoName, jen.Id(v.GoName), false, v.Members)
		}
	default:
		genValueFactory(h, f, t, t.GoName, h.SelfType(t), t.Pointer(), t.Members)
	}
	return f, nil
}

// invalidItem returns a value of t holding the key k that is not an item.
func invalidItem(h gen.GeneratorHelper, t *gen.Type, k jen.Code) jen.Code {
	if b := t.Base; b != nil {
		var base jen.Code
		if t.SamePackage(b) {
			base = invalidItem(h, b, k)
		} else {
			base = qual(b, "Get"+b.GoName).Call(k)
		}
		return jen.Op("&").Id(t.GoName).Values(jen.Dict{jen.Id(b.GoName): base})
	}
	return jen.Op("&").Add(h.TypeRef(t)).Values(jen.Dict{jen.Id(t.Key.Field()): k})
}

func genEnumFactory(h gen.GeneratorHelper, f *jen.File, t *gen.Type) {
	var (
		name  = t.GoName
		store = jen.Id(t.StoreName())
		key   = jen.Id("k").Add(h.KeyType(t))
		self  = h.SelfType(t)
	)
	f.Commentf("Get%s returns the item of %s with the key k.", name, name)
	f.Comment("Unknown keys give a value that is not valid, see IsValid.")
	f.Func().Id("Get"+name).Params(key).Add(self).Block(
		jen.If(jen.List(jen.Id("v"), jen.Id("ok")).Op(":=").Add(store).Dot("Get").Call(jen.Id("k")), jen.Id("ok")).Block(
			jen.Return(jen.Id("v")),
		),
		jen.Return(invalidItem(h, t, jen.Id("k"))),
	)
	f.Commentf("TryGet%s returns the item of %s with the key k.", name, name)
	f.Func().Id("TryGet"+name).Params(key).Params(self, jen.Bool()).Block(
		jen.Return(jen.Add(store).Dot("Get").Call(jen.Id("k"))),
	)
	f.Commentf("TryCreate%s returns the item of %s with the key k, or a value that", name, name)
	f.Comment("is not valid and a validation error for unknown keys.")
	f.Func().Id("TryCreate"+name).Params(key).Params(self, jen.Error()).Block(
		jen.If(jen.List(jen.Id("v"), jen.Id("ok")).Op(":=").Add(store).Dot("Get").Call(jen.Id("k")), jen.Id("ok")).Block(
			jen.Return(jen.Id("v"), jen.Nil()),
		),
		jen.Return(
			invalidItem(h, t, jen.Id("k")),
			rt(h, "NewValidationErrorf").Types(h.ValidationErrorType(t)).Call(jen.Lit(name), jen.Lit("unknown key %v"), jen.Id("k")),
		),
	)
	genMustCreate(f, name, []jen.Code{key}, []jen.Code{jen.Id("k")}, self)
	f.Commentf("%s returns the items of %s in declaration order.", t.ItemsFuncName(), name)
	if t.Extensible {
		f.Comment("Items of derived enumerations follow, in registration order.")
	}
	f.Func().Id(t.ItemsFuncName()).Params().Index().Add(self).Block(
		jen.Return(jen.Add(store).Dot("Items").Call()),
	)
}

// genValueFactory generates the validated construction of a value object
// or union case. Values are rejected by the optional Validate method of
// the type.
func genValueFactory(h gen.GeneratorHelper, f *jen.File, t *gen.Type, name string, self jen.Code, pointer bool, ms []*gen.Member) {
	var (
		args = make([]jen.Code, len(ms))
		lit  = jen.Id(name).Values(fields(ms))
		fail = jen.Nil()
	)
	for i, m := range ms {
		args[i] = jen.Id(m.Param())
	}
	if pointer {
		lit = jen.Op("&").Add(lit)
	} else {
		fail = jen.Id(name).Values()
	}
	f.Commentf("TryCreate%s returns a new %s, or a validation error if its Validate", name, name)
	f.Comment("method rejects it.")
	f.Func().Id("TryCreate"+name).Params(params(h, ms)...).Params(self, jen.Error()).Block(
		jen.Id("v").Op(":=").Add(lit),
		jen.If(jen.List(jen.Id("x"), jen.Id("ok")).Op(":=").Any().Parens(jen.Id("v")).Assert(validator), jen.Id("ok")).Block(
			jen.If(jen.Err().Op(":=").Id("x").Dot("Validate").Call(), jen.Err().Op("!=").Nil()).Block(
				jen.Return(fail, rt(h, "NewValidationError").Types(h.ValidationErrorType(t)).Call(jen.Lit(name), jen.Err().Dot("Error").Call())),
			),
		),
		jen.Return(jen.Id("v"), jen.Nil()),
	)
	genMustCreate(f, name, params(h, ms), args, self)
}

func genMustCreate(f *jen.File, name string, ps, args []jen.Code, self jen.Code) {
	f.Commentf("MustCreate%s is like TryCreate%s but panics on error.", name, name)
	f.Func().Id("MustCreate"+name).Params(ps...).Add(self).Block(
		jen.List(jen.Id("v"), jen.Err()).Op(":=").Id("TryCreate"+name).Call(args...),
		jen.If(jen.Err().Op("!=").Nil()).Block(jen.Panic(jen.Err())),
		jen.Return(jen.Id("v")),
	)
}
