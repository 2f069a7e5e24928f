package golang

import (
	"github.com/cockroachdb/errors"
	"github.com/dave/jennifer/jen"

	"github.com/syssam/vogen/compiler/gen"
	"github.com/syssam/vogen/schema/member"
)

var operations = []struct {
	name, op, checked, doc string
}{
	{"Add", "+", "AddChecked", "sum"},
	{"Sub", "-", "SubChecked", "difference"},
	{"Mul", "*", "MulChecked", "product"},
	{"Div", "/", "DivChecked", "quotient"},
}

// genArithmetic generates the arithmetic file ({type}_arithmetic.go).
// The result keeps the other members of the receiver.
func genArithmetic(h gen.GeneratorHelper, t *gen.Type) (*jen.File, error) {
	if t.Key == nil || !t.Key.Type.Type.Numeric() || t.Key.Ref != nil {
		return nil, errors.Newf("arithmetic needs a numeric key member on %s", t.GoName)
	}
	f := h.NewFile(t)
	var (
		r       = t.Receiver()
		typ     = t.Key.Type.Type
		decimal = typ == member.TypeDecimal
		field   = t.Key.Field()
		self    = h.SelfType(t)
	)
	for _, o := range operations {
		f.Commentf("%s returns the %s of %s and other.", o.name, o.doc, r)
		f.Func().Params(recv(h, t)).Id(o.name).Params(jen.Id("other").Add(self)).Add(self).Block(
			jen.Return(jen.Id(r).Dot("withKey").Call(apply(decimal, o.name, o.op, jen.Id(r).Dot(field), jen.Id("other").Dot(field)))),
		)
		if t.Operators.Arithmetic.KeyOverloads() {
			f.Func().Params(recv(h, t)).Id(o.name+"Key").Params(jen.Id("k").Add(h.KeyType(t))).Add(self).Block(
				jen.Return(jen.Id(r).Dot("withKey").Call(apply(decimal, o.name, o.op, jen.Id(r).Dot(field), jen.Id("k")))),
			)
		}
	}
	if t.Operators.Arithmetic.Checked() && (typ.Integer() || decimal) {
		for _, o := range operations {
			genChecked(h, f, t, o.name, o.checked, o.doc, decimal)
		}
	}
	f.Commentf("withKey returns a copy of %s holding the key k.", r)
	f.Func().Params(recv(h, t)).Id("withKey").Params(jen.Id("k").Add(h.KeyType(t))).Add(self).BlockFunc(func(group *jen.Group) {
		if t.Pointer() {
			group.Id("v").Op(":=").Op("*").Id(r)
			group.Id("v").Dot(field).Op("=").Id("k")
			group.Return(jen.Op("&").Id("v"))
			return
		}
		group.Id(r).Dot(field).Op("=").Id("k")
		group.Return(jen.Id(r))
	})
	return f, nil
}

func apply(decimal bool, name, op string, a, b *jen.Statement) jen.Code {
	if decimal {
		return a.Dot(name).Call(b)
	}
	return a.Op(op).Add(b)
}

// genChecked generates the overflow-checked form of an operation. Decimals
// only fail on division by zero.
func genChecked(h gen.GeneratorHelper, f *jen.File, t *gen.Type, name, checked, doc string, decimal bool) {
	var (
		r     = t.Receiver()
		field = t.Key.Field()
		self  = h.SelfType(t)
		a     = jen.Id(r).Dot(field)
		b     = jen.Id("other").Dot(field)
		fail  = jen.Nil()
	)
	if !t.Pointer() {
		fail = jen.Id(t.GoName).Values()
	}
	method := name + "Checked"
	f.Commentf("%s returns the %s of %s and other, or an error on overflow or division by zero.", method, doc, r)
	f.Func().Params(recv(h, t)).Id(method).Params(jen.Id("other").Add(self)).Params(self, jen.Error()).BlockFunc(func(group *jen.Group) {
		if decimal {
			if name == "Div" {
				group.If(jen.Add(b).Dot("IsZero").Call()).Block(
					jen.Return(fail, jen.Op("&").Add(rt(h, "ArithmeticError")).Values(jen.Dict{
						jen.Id("Op"):  jen.Lit("div"),
						jen.Id("A"):   a,
						jen.Id("B"):   b,
						jen.Id("Err"): rt(h, "ErrDivideByZero"),
					})),
				)
			}
			group.Return(jen.Id(r).Dot("withKey").Call(jen.Add(a).Dot(name).Call(b)), jen.Nil())
			return
		}
		group.List(jen.Id("k"), jen.Err()).Op(":=").Add(rt(h, checked)).Call(a, b)
		group.If(jen.Err().Op("!=").Nil()).Block(jen.Return(fail, jen.Err()))
		group.Return(jen.Id(r).Dot("withKey").Call(jen.Id("k")), jen.Nil())
	})
}
