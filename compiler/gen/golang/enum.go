package golang

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/zerobuf/compiler/gen"
)

// genEnum renders an enum as a named uint32 with one constant per value,
// its String and Parse functions and its codec.
func genEnum(f *jen.File, e *gen.Enum) {
	name := enumName(e)
	f.Commentf("%s is the enum %s. Values are stored in 4 bytes, the declared base type is %s.", name, e.QualifiedName(), e.Base)
	f.Type().Id(name).Uint32()

	f.Comment("Values of " + name + ".")
	f.Const().DefsFunc(func(group *jen.Group) {
		for i, v := range e.Values {
			group.Id(name + "_" + v).Id(name).Op("=").Lit(i)
		}
	})

	f.Var().Id(codecVar(e)).Op("=").Qual(zbPkg, "EnumCodec").Index(jen.Id(name)).Call()

	f.Comment("String returns the name of the value.")
	f.Func().Params(jen.Id("e").Id(name)).Id("String").Params().String().Block(
		jen.Switch(jen.Id("e")).BlockFunc(func(group *jen.Group) {
			for _, v := range e.Values {
				group.Case(jen.Id(name + "_" + v)).Block(jen.Return(jen.Lit(v)))
			}
			group.Default().Block(
				jen.Return(jen.Qual("fmt", "Sprintf").Call(jen.Lit(name+"(%d)"), jen.Uint32().Parens(jen.Id("e")))),
			)
		}),
	)

	f.Commentf("Parse%s returns the value named s.", name)
	f.Func().Id("Parse"+name).Params(jen.Id("s").String()).Params(jen.Id(name), jen.Error()).Block(
		jen.Switch(jen.Id("s")).BlockFunc(func(group *jen.Group) {
			for _, v := range e.Values {
				group.Case(jen.Lit(v)).Block(jen.Return(jen.Id(name+"_"+v), jen.Nil()))
			}
		}),
		jen.Return(jen.Lit(0), jen.Qual("fmt", "Errorf").Call(jen.Lit("invalid "+name+" value %q"), jen.Id("s"))),
	)
}
