package golang

import (
	"slices"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/vogen"
	"github.com/syssam/vogen/compiler/gen"
	"github.com/syssam/vogen/schema/directive"
)

// dispatchCase is an item or variant of a dispatch.
type dispatchCase struct {
	name, param, field string
	// match is the item variable of enumerations. Nil for union cases.
	match jen.Code
	// variant is the struct of union cases. Nil for items.
	variant *gen.Variant
}

func dispatchCases(t *gen.Type) []dispatchCase {
	var cs []dispatchCase
	for _, it := range t.Items {
		cs = append(cs, dispatchCase{name: it.Name, param: it.Param(), field: it.CaseField(), match: jen.Id(it.GoName)})
	}
	for _, v := range t.Variants {
		cs = append(cs, dispatchCase{name: v.Name, param: v.Param(), field: v.CaseField(), variant: v})
	}
	return cs
}

// genDispatch generates the dispatch file ({type}_dispatch.go).
// Includes: Switch and Map taking one argument per case, and the Partially
// forms taking a struct of the handled cases and a default.
func genDispatch(h gen.GeneratorHelper, t *gen.Type) (*jen.File, error) {
	cases := dispatchCases(t)
	if err := gen.CheckDispatch(t, t.Dispatch.Cases, true); err != nil {
		return nil, err
	}
	f := h.NewFile(t)
	union := t.Kind == vogen.KindUnion
	// Items of extensible enumerations are open: derived enumerations add
	// items the switch cannot list.
	open := t.Extensible
	genSwitch(h, f, t, cases, union, open)
	genMap(h, f, t, cases, union, open)
	if t.Dispatch.Mode == directive.DispatchPartial {
		partial := cases
		if len(t.Dispatch.Cases) > 0 {
			partial = slices.DeleteFunc(slices.Clone(cases), func(c dispatchCase) bool {
				return !slices.Contains(t.Dispatch.Cases, c.name)
			})
		}
		genSwitchPartially(h, f, t, partial, union)
		genMapPartially(h, f, t, partial, union)
	}
	return f, nil
}

// unknownCase adds the return of values matching no case.
func unknownCase(h gen.GeneratorHelper, group *jen.Group, t *gen.Type) {
	group.Var().Id("zero").Id("R")
	group.Return(jen.Id("zero"), rt(h, "NewUnknownCaseError").Call(jen.Lit(t.GoName), jen.Id("v")))
}

// genSwitch generates Switch{T}, calling the handler of the case of v.
func genSwitch(h gen.GeneratorHelper, f *jen.File, t *gen.Type, cases []dispatchCase, union, open bool) {
	name := "Switch" + t.GoName
	ps := []jen.Code{jen.Id("v").Add(h.SelfType(t))}
	for _, c := range cases {
		ps = append(ps, jen.Id(c.param).Func().Params(caseType(h, t, c.variant)).Id("R"))
	}
	if open {
		ps = append(ps, jen.Id("otherwise").Func().Params(h.SelfType(t)).Id("R"))
	}
	f.Commentf("%s calls the handler of the case of v and returns its result.", name)
	if open {
		f.Comment("Items of derived enumerations are handled by otherwise.")
	}
	f.Comment("Values matching no case give an *vogen.UnknownCaseError.")
	f.Func().Id(name).Types(jen.Id("R").Any()).Params(ps...).Params(jen.Id("R"), jen.Error()).BlockFunc(func(group *jen.Group) {
		switch {
		case union && len(cases) > 0:
			group.Switch(jen.Id("x").Op(":=").Id("v").Assert(jen.Type())).BlockFunc(func(sw *jen.Group) {
				for _, c := range cases {
					sw.Case(jen.Id(c.variant.GoName)).Block(jen.Return(jen.Id(c.param).Call(jen.Id("x")), jen.Nil()))
				}
			})
		case !union && len(cases) > 0:
			group.Switch(jen.Id("v")).BlockFunc(func(sw *jen.Group) {
				for _, c := range cases {
					sw.Case(c.match).Block(jen.Return(jen.Id(c.param).Call(jen.Id("v")), jen.Nil()))
				}
			})
		}
		if open {
			group.If(jen.Id("v").Dot("IsValid").Call()).Block(jen.Return(jen.Id("otherwise").Call(jen.Id("v")), jen.Nil()))
		}
		unknownCase(h, group, t)
	})
}

// genMap generates Map{T}, returning the value given for the case of v.
func genMap(h gen.GeneratorHelper, f *jen.File, t *gen.Type, cases []dispatchCase, union, open bool) {
	name := "Map" + t.GoName
	ps := []jen.Code{jen.Id("v").Add(h.SelfType(t))}
	for _, c := range cases {
		ps = append(ps, jen.Id(c.param).Id("R"))
	}
	if open {
		ps = append(ps, jen.Id("otherwise").Id("R"))
	}
	f.Commentf("%s returns the value given for the case of v.", name)
	f.Func().Id(name).Types(jen.Id("R").Any()).Params(ps...).Params(jen.Id("R"), jen.Error()).BlockFunc(func(group *jen.Group) {
		switch {
		case union && len(cases) > 0:
			group.Switch(jen.Id("v").Assert(jen.Type())).BlockFunc(func(sw *jen.Group) {
				for _, c := range cases {
					sw.Case(jen.Id(c.variant.GoName)).Block(jen.Return(jen.Id(c.param), jen.Nil()))
				}
			})
		case !union && len(cases) > 0:
			group.Switch(jen.Id("v")).BlockFunc(func(sw *jen.Group) {
				for _, c := range cases {
					sw.Case(c.match).Block(jen.Return(jen.Id(c.param), jen.Nil()))
				}
			})
		}
		if open {
			group.If(jen.Id("v").Dot("IsValid").Call()).Block(jen.Return(jen.Id("otherwise"), jen.Nil()))
		}
		unknownCase(h, group, t)
	})
}

// genSwitchPartially generates the Cases struct and Switch{T}Partially.
// Cases without a handler fall back to otherwise.
func genSwitchPartially(h gen.GeneratorHelper, f *jen.File, t *gen.Type, cases []dispatchCase, union bool) {
	var (
		typ  = t.GoName + "Cases"
		name = "Switch" + t.GoName + "Partially"
	)
	f.Commentf("%s holds the handlers of %s. Nil handlers are not called.", typ, name)
	f.Type().Id(typ).Types(jen.Id("R").Any()).StructFunc(func(group *jen.Group) {
		for _, c := range cases {
			group.Id(c.field).Func().Params(caseType(h, t, c.variant)).Id("R")
		}
	})
	f.Commentf("%s calls the handler of the case of v, or otherwise if the case is", name)
	f.Comment("not handled.")
	f.Func().Id(name).Types(jen.Id("R").Any()).Params(
		jen.Id("v").Add(h.SelfType(t)),
		jen.Id("cases").Id(typ).Types(jen.Id("R")),
		jen.Id("otherwise").Func().Params(h.SelfType(t)).Id("R"),
	).Id("R").BlockFunc(func(group *jen.Group) {
		handler := func(c dispatchCase) *jen.Statement { return jen.Id("cases").Dot(c.field) }
		switch {
		case union && len(cases) > 0:
			group.Switch(jen.Id("x").Op(":=").Id("v").Assert(jen.Type())).BlockFunc(func(sw *jen.Group) {
				for _, c := range cases {
					sw.Case(jen.Id(c.variant.GoName)).Block(
						jen.If(handler(c).Op("!=").Nil()).Block(jen.Return(handler(c).Call(jen.Id("x")))),
					)
				}
			})
		case !union && len(cases) > 0:
			group.Switch().BlockFunc(func(sw *jen.Group) {
				for _, c := range cases {
					sw.Case(jen.Id("v").Op("==").Add(c.match).Op("&&").Add(handler(c)).Op("!=").Nil()).Block(
						jen.Return(handler(c).Call(jen.Id("v"))),
					)
				}
			})
		}
		group.Return(jen.Id("otherwise").Call(jen.Id("v")))
	})
}

// genMapPartially generates the Values struct and Map{T}Partially. Values
// are computed by the given functions, for the handled cases only.
func genMapPartially(h gen.GeneratorHelper, f *jen.File, t *gen.Type, cases []dispatchCase, union bool) {
	var (
		typ  = t.GoName + "Values"
		name = "Map" + t.GoName + "Partially"
	)
	f.Commentf("%s holds the values of %s. Nil functions are not called.", typ, name)
	f.Type().Id(typ).Types(jen.Id("R").Any()).StructFunc(func(group *jen.Group) {
		for _, c := range cases {
			group.Id(c.field).Func().Params().Id("R")
		}
	})
	f.Commentf("%s returns the value of the case of v, or otherwise if the case is", name)
	f.Comment("not handled.")
	f.Func().Id(name).Types(jen.Id("R").Any()).Params(
		jen.Id("v").Add(h.SelfType(t)),
		jen.Id("values").Id(typ).Types(jen.Id("R")),
		jen.Id("otherwise").Id("R"),
	).Id("R").BlockFunc(func(group *jen.Group) {
		fn := func(c dispatchCase) *jen.Statement { return jen.Id("values").Dot(c.field) }
		switch {
		case union && len(cases) > 0:
			group.Switch(jen.Id("v").Assert(jen.Type())).BlockFunc(func(sw *jen.Group) {
				for _, c := range cases {
					sw.Case(jen.Id(c.variant.GoName)).Block(
						jen.If(fn(c).Op("!=").Nil()).Block(jen.Return(fn(c).Call())),
					)
				}
			})
		case !union && len(cases) > 0:
			group.Switch().BlockFunc(func(sw *jen.Group) {
				for _, c := range cases {
					sw.Case(jen.Id("v").Op("==").Add(c.match).Op("&&").Add(fn(c)).Op("!=").Nil()).Block(
						jen.Return(fn(c).Call()),
					)
				}
			})
		}
		group.Return(jen.Id("otherwise"))
	})
}
