package golang

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/zerobuf/compiler/gen"
)

// genJSON renders MarshalJSON and UnmarshalJSON of t. Objects encode with
// one key per member in declaration order; decoding updates the members
// present and leaves the others unchanged.
func genJSON(f *jen.File, t *gen.Table) {
	if len(t.Members) == 0 {
		f.Comment("MarshalJSON implements json.Marshaler.")
		f.Func().Params(recv(t)).Id("MarshalJSON").Params().Params(jen.Index().Byte(), jen.Error()).Block(
			jen.Return(jen.Index().Byte().Call(jen.Lit("{}")), jen.Nil()),
		)
		f.Comment("UnmarshalJSON implements json.Unmarshaler.")
		f.Func().Params(recv(t)).Id("UnmarshalJSON").Params(jen.Id("data").Index().Byte()).Error().Block(
			jen.List(jen.Id("_"), jen.Err()).Op(":=").Qual(zbPkg, "ParseFields").Call(jen.Id("data")),
			jen.Return(jen.Err()),
		)
		return
	}

	f.Comment("MarshalJSON implements json.Marshaler.")
	f.Func().Params(recv(t)).Id("MarshalJSON").Params().Params(jen.Index().Byte(), jen.Error()).Block(
		jen.Return(jen.Qual("encoding/json", "Marshal").Call(
			jen.StructFunc(func(group *jen.Group) {
				for _, m := range t.Members {
					group.Id(gen.Pascal(m.Name)).Add(jsonType(m)).Tag(map[string]string{"json": m.Name})
				}
			}).ValuesFunc(func(group *jen.Group) {
				for _, m := range t.Members {
					group.Add(jsonValue(m))
				}
			}),
		)),
	)

	typ := jen.Lit(t.QualifiedName())
	f.Comment("UnmarshalJSON implements json.Unmarshaler.")
	f.Func().Params(recv(t)).Id("UnmarshalJSON").Params(jen.Id("data").Index().Byte()).Error().BlockFunc(func(group *jen.Group) {
		group.List(jen.Id("f"), jen.Err()).Op(":=").Qual(zbPkg, "ParseFields").Call(jen.Id("data"))
		group.If(jen.Err().Op("!=").Nil()).Block(jen.Return(jen.Err()))
		group.Id("t").Dot("NotifyChanging").Call()
		for _, m := range t.Members {
			group.If(jen.Err().Op(":=").Add(decodeMember(typ.Clone(), m)), jen.Err().Op("!=").Nil()).Block(
				jen.Return(jen.Err()),
			)
		}
		group.Return(jen.Nil())
	})
}

// jsonType returns the type m takes in the JSON form of its table.
func jsonType(m *gen.Member) *jen.Statement {
	switch {
	case m.IsString:
		return jen.String()
	case m.Kind == gen.KindScalar, m.Kind == gen.KindTable:
		return elemType(m.Type)
	case m.IsByte():
		return jen.Index().Byte()
	case isByteList(m):
		return jen.Qual(zbPkg, "ByteList")
	default:
		return jen.Index().Add(elemType(m.Type))
	}
}

// jsonValue returns the expression reading m for MarshalJSON.
func jsonValue(m *gen.Member) *jen.Statement {
	view := jen.Id("t").Dot(field(m))
	switch {
	case m.IsString, m.Kind == gen.KindScalar && !m.IsTable():
		return jen.Id("t").Dot(getter(m)).Call()
	case m.Kind == gen.KindScalar, m.Kind == gen.KindTable, m.Kind == gen.KindArray && m.IsTable():
		return view
	case m.Kind == gen.KindArray && m.IsByte():
		return view.Dot("Bytes").Call()
	case isByteList(m):
		return jen.Qual(zbPkg, "ByteList").Call(view.Dot("Values").Call())
	default:
		return view.Dot("Values").Call()
	}
}

// decodeMember returns the call decoding the JSON member of m.
func decodeMember(typ *jen.Statement, m *gen.Member) *jen.Statement {
	view := jen.Id("t").Dot(field(m))
	name := jen.Lit(m.Name)
	switch {
	case m.IsTable() && m.Kind == gen.KindArray:
		return jen.Qual(zbPkg, "DecodeTableArray").Call(
			jen.Id("f"), typ, name, jen.Len(view.Clone()),
			jen.Func().Params(jen.Id("i").Int()).Qual("encoding/json", "Unmarshaler").Block(
				jen.Return(view.Clone().Index(jen.Id("i"))),
			),
		)
	case m.IsTable() && m.Kind == gen.KindVector:
		return jen.Qual(zbPkg, "DecodeTables").Call(
			jen.Id("f"), typ, name, jen.Id("New"+typeName(m.Type.Table)), jen.Id("t").Dot(setter(m)),
		)
	case m.IsTable():
		return jen.Qual(zbPkg, "DecodeObject").Call(jen.Id("f"), typ, name, view)
	case isByteList(m):
		var set *jen.Statement
		if m.Kind == gen.KindArray {
			set = view.Dot("Fill").Call(jen.Id("v"))
		} else {
			set = jen.Id("t").Dot(setter(m)).Call(jen.Id("v"))
		}
		return jen.Qual(zbPkg, "DecodeField").Call(
			jen.Id("f"), typ, name,
			jen.Func().Params(jen.Id("v").Qual(zbPkg, "ByteList")).Block(set),
		)
	case m.Kind == gen.KindArray && m.IsByte():
		return jen.Qual(zbPkg, "DecodeField").Call(jen.Id("f"), typ, name, view.Dot("FillBytes"))
	case m.Kind == gen.KindArray:
		return jen.Qual(zbPkg, "DecodeField").Call(jen.Id("f"), typ, name, view.Dot("Fill"))
	default:
		return jen.Qual(zbPkg, "DecodeField").Call(jen.Id("f"), typ, name, jen.Id("t").Dot(setter(m)))
	}
}
