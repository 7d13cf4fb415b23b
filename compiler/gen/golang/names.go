package golang

import (
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/zerobuf/compiler/gen"
)

const zbPkg = "github.com/syssam/zerobuf"

// goTypes maps the scalar keywords to the Go types of their values.
var goTypes = map[string]string{
	"int":       "int32",
	"uint":      "uint32",
	"float":     "float32",
	"double":    "float64",
	"byte":      "byte",
	"short":     "int16",
	"ubyte":     "byte",
	"ushort":    "uint16",
	"ulong":     "uint64",
	"uint8_t":   "uint8",
	"uint16_t":  "uint16",
	"uint32_t":  "uint32",
	"uint64_t":  "uint64",
	"int8_t":    "int8",
	"int16_t":   "int16",
	"int32_t":   "int32",
	"int64_t":   "int64",
	"bool":      "bool",
	"string":    "byte",
	"uint128_t": "Uint128",
}

// reserved are the method names every generated table has, either
// generated or promoted from zerobuf.Object. Member accessors are renamed
// around them.
var reserved = map[string]bool{
	"TypeIdentifier":  true,
	"TypeName":        true,
	"StaticSize":      true,
	"NumDynamics":     true,
	"Layout":          true,
	"Clone":           true,
	"MoveFrom":        true,
	"Rebind":          true,
	"Compact":         true,
	"MarshalJSON":     true,
	"UnmarshalJSON":   true,
	"Schema":          true,
	"Signals":         true,
	"Allocator":       true,
	"Data":            true,
	"Bytes":           true,
	"Version":         true,
	"Reset":           true,
	"NotifyChanging":  true,
	"SetChangingHook": true,
	"Object":          true,
}

func typeName(t *gen.Table) string  { return gen.Pascal(t.Name) }
func enumName(e *gen.Enum) string   { return gen.Pascal(e.Name) }
func layoutVar(t *gen.Table) string { return gen.Camel(t.Name) + "Layout" }
func schemaVar(t *gen.Table) string { return gen.Camel(t.Name) + "Schema" }
func codecVar(e *gen.Enum) string   { return gen.Camel(e.Name) + "Codec" }

// accessor returns the base name of the accessors of m. Members whose
// accessors would shadow a method every table has get a Field suffix:
// data: [ubyte:8] is read with DataField and written with SetDataField.
func accessor(m *gen.Member) string {
	name := gen.Pascal(m.Name)
	for _, method := range accessorMethods(m, name) {
		if reserved[method] {
			return name + "Field"
		}
	}
	return name
}

// getter returns the name of the accessor of m.
func getter(m *gen.Member) string { return accessor(m) }

// setter returns the name of the setter of m.
func setter(m *gen.Member) string { return "Set" + accessor(m) }

// field returns the name of the struct field holding the view of m. Field
// names are unexported, so only the unexported names of the table itself
// can clash.
func field(m *gen.Member) string {
	name := gen.GoIdent(m.Name)
	if name == "signals" || name == "setDefaults" {
		name += "_"
	}
	return name
}

// param returns the parameter name of m in member constructors.
func param(m *gen.Member) string {
	name := gen.GoIdent(m.Name)
	if name == "t" {
		name += "_"
	}
	return name
}

// isByteList reports whether the elements of m are uint8_t values, which
// convert to JSON as a list of numbers instead of base64.
func isByteList(m *gen.Member) bool {
	return !m.IsString && m.Type.Name == "uint8_t"
}

// hasStringSetter reports whether m is a byte array accepting a string.
func hasStringSetter(m *gen.Member) bool {
	return m.Kind == gen.KindArray && (m.IsByte() || isByteList(m))
}

// accessorMethods returns the names of the methods generated for m when
// its accessors are based on name.
func accessorMethods(m *gen.Member, name string) []string {
	names := []string{name, "Set" + name}
	if m.IsString {
		names = append(names, name+"Vector")
	}
	if hasStringSetter(m) {
		names = append(names, "Set"+name+"String")
	}
	return names
}

// checkNames reports generated identifiers that collide with each other.
func checkNames(g *gen.Graph) error {
	top := make(map[string]string)
	declare := func(name, owner string) error {
		if prev, ok := top[name]; ok {
			return gen.NewGenerationError("render", g.Path, fmt.Sprintf("identifier %s of %s collides with %s", name, owner, prev), nil)
		}
		top[name] = owner
		return nil
	}
	for _, e := range g.Enums {
		owner := "enum " + e.Name
		for _, name := range []string{enumName(e), codecVar(e), "Parse" + enumName(e)} {
			if err := declare(name, owner); err != nil {
				return err
			}
		}
		for _, v := range e.Values {
			if err := declare(enumName(e)+"_"+v, owner); err != nil {
				return err
			}
		}
	}
	for _, t := range g.Tables {
		owner := "table " + t.Name
		name := typeName(t)
		for _, id := range []string{name, layoutVar(t), schemaVar(t), "New" + name, "New" + name + "FromAllocator", "New" + name + "With", name + "Signals"} {
			if err := declare(id, owner); err != nil {
				return err
			}
		}
		seen := make(map[string]string)
		for _, m := range t.Members {
			for _, method := range accessorMethods(m, accessor(m)) {
				if prev, ok := seen[method]; ok {
					return gen.NewGenerationError("render", g.Path, fmt.Sprintf("method %s of %s.%s collides with member %s", method, t.Name, m.Name, prev), nil)
				}
				seen[method] = m.Name
			}
		}
	}
	return nil
}

// elemType returns the Go type of one element of type ti.
func elemType(ti *gen.TypeInfo) *jen.Statement {
	switch ti.Kind {
	case gen.TypeTable:
		return jen.Op("*").Id(typeName(ti.Table))
	case gen.TypeEnum:
		return jen.Id(enumName(ti.Enum))
	}
	if ti.Name == "uint128_t" {
		return jen.Qual(zbPkg, "Uint128")
	}
	return jen.Id(goTypes[ti.Name])
}

// codec returns the codec of values of type ti.
func codec(ti *gen.TypeInfo) *jen.Statement {
	switch {
	case ti.Kind == gen.TypeEnum:
		return jen.Id(codecVar(ti.Enum))
	case ti.Name == "uint128_t":
		return jen.Qual(zbPkg, "Uint128Codec")
	default:
		return jen.Qual(zbPkg, gen.Title(goTypes[ti.Name])+"Codec")
	}
}

// viewType returns the type of the struct field holding the view of m, or
// nil if m is accessed through the codec only.
func viewType(m *gen.Member) *jen.Statement {
	switch m.Kind {
	case gen.KindScalar:
		if m.IsTable() {
			return elemType(m.Type)
		}
		return nil
	case gen.KindArray:
		if m.IsTable() {
			return jen.Index().Add(elemType(m.Type))
		}
		return jen.Op("*").Qual(zbPkg, "Array").Index(elemType(m.Type))
	case gen.KindTable:
		return elemType(m.Type)
	default:
		if m.IsTable() {
			return jen.Op("*").Qual(zbPkg, "TableVector").Index(elemType(m.Type))
		}
		return jen.Op("*").Qual(zbPkg, "Vector").Index(elemType(m.Type))
	}
}

// valueType returns the type the setter of m takes.
func valueType(m *gen.Member) *jen.Statement {
	switch {
	case m.IsString:
		return jen.String()
	case m.Kind == gen.KindArray, m.Kind == gen.KindVector:
		return jen.Index().Add(elemType(m.Type))
	default:
		return elemType(m.Type)
	}
}

// raw renders a literal as written in the schema.
func raw(text string) *jen.Statement { return jen.Op(text) }

// hex renders v as a 64-bit hexadecimal literal.
func hex(v uint64) *jen.Statement { return raw(fmt.Sprintf("0x%016x", v)) }
