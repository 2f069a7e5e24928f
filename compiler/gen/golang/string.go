package golang

import (
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/vogen"
	"github.com/syssam/vogen/compiler/gen"
	"github.com/syssam/vogen/schema/member"
)

// genString generates the string file ({type}_string.go).
func genString(h gen.GeneratorHelper, t *gen.Type) (*jen.File, error) {
	f := h.NewFile(t)
	switch {
	case t.Kind == vogen.KindUnion:
		for _, v := range t.Variants {
			genMemberString(h, f, v.Name, jen.Id(v.Receiver()).Id(v.GoName), v.Receiver(), false, v.Members)
		}
	case t.Keyed():
		r := t.Receiver()
		f.Commentf("String returns the key of %s.", r)
		f.Func().Params(recv(h, t)).Id("String").Params().String().BlockFunc(func(group *jen.Group) {
			if t.Pointer() {
				group.If(jen.Id(r).Op("==").Nil()).Block(jen.Return(jen.Lit("<nil>")))
			}
			k := keyOf(t, jen.Id(r))
			if t.Key.Ref == nil && t.Key.Type.Type == member.TypeString {
				group.Return(k)
				return
			}
			group.Return(jen.Qual("fmt", "Sprint").Call(k))
		})
	default:
		genMemberString(h, f, t.GoName, recv(h, t), t.Receiver(), t.Pointer(), t.Members)
	}
	return f, nil
}

// genMemberString generates String of complex value objects and union
// cases, in the Name(member=value, ...) form.
func genMemberString(h gen.GeneratorHelper, f *jen.File, name string, self jen.Code, r string, pointer bool, ms []*gen.Member) {
	f.Commentf("String returns %s in the %s(member=value, ...) form.", r, name)
	f.Func().Params(self).Id("String").Params().String().BlockFunc(func(group *jen.Group) {
		if pointer {
			group.If(jen.Id(r).Op("==").Nil()).Block(jen.Return(jen.Lit("<nil>")))
		}
		if len(ms) == 0 {
			group.Return(jen.Lit(name))
			return
		}
		var (
			format = make([]string, len(ms))
			args   = []jen.Code{nil}
		)
		for i, m := range ms {
			format[i] = m.Name + "=%v"
			v := jen.Id(r).Dot(m.Field())
			if m.Nullable && m.Ref == nil && m.Type.Type != member.TypeBytes {
				args = append(args, rt(h, "Deref").Call(v))
				continue
			}
			args = append(args, v)
		}
		args[0] = jen.Lit(name + "(" + strings.Join(format, ", ") + ")")
		group.Return(jen.Qual("fmt", "Sprintf").Call(args...))
	})
}
