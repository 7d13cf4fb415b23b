package golang

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/zerobuf"
	"github.com/syssam/zerobuf/compiler/gen"
)

// recv returns the receiver of all table methods.
func recv(t *gen.Table) *jen.Statement {
	return jen.Id("t").Op("*").Id(typeName(t))
}

// data returns the static bytes of t starting at offset.
func data(offset int) *jen.Statement {
	return jen.Id("t").Dot("Data").Call().Index(jen.Lit(offset), jen.Empty())
}

// genTable renders the struct, the layout, the constructors and the
// introspection methods of t.
func genTable(h *helper, f *jen.File, t *gen.Table) error {
	name := typeName(t)
	f.Commentf("%s is the table %s.", name, t.QualifiedName())
	f.Type().Id(name).StructFunc(func(group *jen.Group) {
		group.Qual(zbPkg, "Object")
		for _, m := range t.Members {
			if vt := viewType(m); vt != nil {
				group.Id(field(m)).Add(vt)
			}
		}
		if h.signals && len(t.Members) > 0 {
			group.Id("signals").Id(name + "Signals")
		}
	})

	f.Var().Id(layoutVar(t)).Op("=").Op("&").Qual(zbPkg, "Layout").ValuesFunc(func(group *jen.Group) {
		if t.Empty {
			return
		}
		group.Id("StaticSize").Op(":").Lit(t.StaticSize)
		if t.IsDynamic() {
			group.Id("Slots").Op(":").Index().Int().ValuesFunc(func(slots *jen.Group) {
				for _, off := range t.Slots() {
					slots.Lit(off)
				}
			})
		}
	})

	if h.schema {
		s, err := t.SchemaJSON()
		if err != nil {
			return gen.NewGenerationError("render", h.g.BaseName(), "schema of "+t.Name, err)
		}
		f.Const().Id(schemaVar(t)).Op("=").Lit(s)
	}
	if h.signals && len(t.Members) > 0 {
		genSignals(f, t)
	}
	genConstructors(f, t)
	genRebind(f, t)
	if t.HasDefaults() {
		genDefaults(f, t)
	}
	genIntrospection(h, f, t)
	return nil
}

func genSignals(f *jen.File, t *gen.Table) {
	name := typeName(t)
	f.Commentf("%sSignals holds one signal per member of %s, emitted with the table after the member was set.", name, name)
	f.Type().Id(name + "Signals").StructFunc(func(group *jen.Group) {
		for _, m := range t.Members {
			group.Id(gen.Pascal(m.Name)).Qual(zbPkg, "Signal").Index(jen.Op("*").Id(name))
		}
	})
	f.Comment("Signals returns the change signals of the table.")
	f.Func().Params(recv(t)).Id("Signals").Params().Op("*").Id(name + "Signals").Block(
		jen.Return(jen.Op("&").Id("t").Dot("signals")),
	)
}

func genConstructors(f *jen.File, t *gen.Table) {
	name := typeName(t)
	f.Commentf("New%s returns a %s with its own storage and all members set to their defaults.", name, name)
	if t.Empty {
		f.Func().Id("New" + name).Params().Op("*").Id(name).Block(
			jen.Return(jen.Op("&").Id(name).Values()),
		)
	} else {
		f.Func().Id("New" + name).Params().Op("*").Id(name).BlockFunc(func(group *jen.Group) {
			group.Id("t").Op(":=").Id("New" + name + "FromAllocator").Call(
				jen.Qual(zbPkg, "NewHeapAllocator").Call(jen.Id(layoutVar(t))),
			)
			if t.HasDefaults() {
				group.Id("t").Dot("setDefaults").Call()
			}
			group.Return(jen.Id("t"))
		})
	}

	f.Commentf("New%sFromAllocator returns a %s bound to the storage of a.", name, name)
	f.Func().Id("New"+name+"FromAllocator").Params(jen.Id("a").Qual(zbPkg, "Allocator")).Op("*").Id(name).Block(
		jen.Id("t").Op(":=").Op("&").Id(name).Values(),
		jen.Id("t").Dot("Rebind").Call(jen.Id("a")),
		jen.Return(jen.Id("t")),
	)

	if len(t.Members) == 0 {
		return
	}
	f.Commentf("New%sWith returns a new %s with the given member values.", name, name)
	f.Func().Id("New"+name+"With").ParamsFunc(func(group *jen.Group) {
		for _, m := range t.Members {
			group.Id(param(m)).Add(valueType(m))
		}
	}).Op("*").Id(name).BlockFunc(func(group *jen.Group) {
		group.Id("t").Op(":=").Id("New" + name).Call()
		for _, m := range t.Members {
			group.Id("t").Dot(setter(m)).Call(jen.Id(param(m)))
		}
		group.Return(jen.Id("t"))
	})
}

// genRebind renders the method binding t and all its member views to an
// allocator.
func genRebind(f *jen.File, t *gen.Table) {
	f.Comment("Rebind binds the table and all its member views to a.")
	f.Func().Params(recv(t)).Id("Rebind").Params(jen.Id("a").Qual(zbPkg, "Allocator")).BlockFunc(func(group *jen.Group) {
		group.Id("t").Dot("Reset").Call(jen.Id("a"))
		for _, m := range t.Members {
			rebindMember(group, m)
		}
	})
}

func rebindMember(group *jen.Group, m *gen.Member) {
	view := jen.Id("t").Dot(field(m))
	switch {
	case m.Kind == gen.KindScalar && m.IsTable():
		group.Add(lazyChild(m))
		group.Id("t").Dot(field(m)).Dot("Rebind").Call(
			jen.Qual(zbPkg, "NewStaticSubAllocator").Call(jen.Id("a"), jen.Lit(-1), jen.Lit(m.Offset), jen.Lit(m.ElemSize)),
		)
	case m.Kind == gen.KindArray && m.IsTable():
		elem := typeName(m.Type.Table)
		group.If(view.Clone().Op("==").Nil()).Block(
			view.Clone().Op("=").Make(jen.Index().Op("*").Id(elem), jen.Lit(m.Count)),
			jen.For(jen.Id("i").Op(":=").Range().Add(view.Clone())).Block(
				view.Clone().Index(jen.Id("i")).Op("=").Op("&").Id(elem).Values(),
				view.Clone().Index(jen.Id("i")).Dot("SetChangingHook").Call(jen.Id("t").Dot("NotifyChanging")),
			),
		)
		group.For(jen.List(jen.Id("i"), jen.Id("e")).Op(":=").Range().Add(view.Clone())).Block(
			jen.Id("e").Dot("Rebind").Call(
				jen.Qual(zbPkg, "NewStaticSubAllocator").Call(
					jen.Id("a"), jen.Lit(-1), jen.Lit(m.Offset).Op("+").Id("i").Op("*").Lit(m.ElemSize), jen.Lit(m.ElemSize),
				),
			),
		)
	case m.Kind == gen.KindArray:
		group.Add(view.Clone()).Op("=").Qual(zbPkg, "RebindArray").Call(
			view.Clone(), jen.Id("a"), jen.Lit(m.Offset), jen.Lit(m.Count), codec(m.Type),
		)
		group.Add(hookView(m))
	case m.Kind == gen.KindTable:
		group.Add(lazyChild(m))
		group.Id("t").Dot(field(m)).Dot("Rebind").Call(
			jen.Qual(zbPkg, "NewDynamicSubAllocator").Call(jen.Id("a"), jen.Lit(m.Index), jen.Id(layoutVar(m.Type.Table))),
		)
	case m.Kind == gen.KindVector && m.IsTable():
		group.Add(view.Clone()).Op("=").Qual(zbPkg, "RebindTableVector").Call(
			view.Clone(), jen.Id("a"), jen.Lit(m.Index), jen.Lit(m.ElemSize), jen.Id("New"+typeName(m.Type.Table)+"FromAllocator"),
		)
		group.Add(hookView(m))
	case m.Kind == gen.KindVector:
		group.Add(view.Clone()).Op("=").Qual(zbPkg, "RebindVector").Call(
			view.Clone(), jen.Id("a"), jen.Lit(m.Index), codec(m.Type),
		)
		group.Add(hookView(m))
	}
}

// hookView hooks the view of m to the changing hook of its table.
func hookView(m *gen.Member) *jen.Statement {
	return jen.Id("t").Dot(field(m)).Dot("SetChangingHook").Call(jen.Id("t").Dot("NotifyChanging"))
}

// lazyChild creates the view of an embedded table on first bind and hooks
// it to the changing hook of its parent.
func lazyChild(m *gen.Member) *jen.Statement {
	view := jen.Id("t").Dot(field(m))
	return jen.If(view.Clone().Op("==").Nil()).Block(
		view.Clone().Op("=").Op("&").Id(typeName(m.Type.Table)).Values(),
		view.Clone().Dot("SetChangingHook").Call(jen.Id("t").Dot("NotifyChanging")),
	)
}

// genDefaults renders the method writing the default values of t and of
// the tables it holds in place.
func genDefaults(f *jen.File, t *gen.Table) {
	f.Func().Params(recv(t)).Id("setDefaults").Params().BlockFunc(func(group *jen.Group) {
		for _, m := range t.Members {
			switch {
			case m.Default != nil && m.Type.Name == "uint128_t":
				group.Add(codec(m.Type)).Dot("Put").Call(
					data(m.Offset),
					jen.Qual(zbPkg, "Uint128").Values(jen.Dict{jen.Id("Low"): raw(m.Default.Text)}),
				)
			case m.Default != nil:
				group.Add(codec(m.Type)).Dot("Put").Call(data(m.Offset), raw(m.Default.Text))
			case !m.IsTable() || !m.Type.Table.HasDefaults():
			case m.Kind == gen.KindArray:
				group.For(jen.List(jen.Id("_"), jen.Id("e")).Op(":=").Range().Id("t").Dot(field(m))).Block(
					jen.Id("e").Dot("setDefaults").Call(),
				)
			case m.Kind != gen.KindVector:
				group.Id("t").Dot(field(m)).Dot("setDefaults").Call()
			}
		}
	})
}

func genIntrospection(h *helper, f *jen.File, t *gen.Table) {
	name := typeName(t)
	id := zerobuf.Uint128FromUUID(t.ID)

	f.Commentf("TypeIdentifier returns the identifier of %s, %s.", t.QualifiedName(), t.ID)
	f.Func().Params(recv(t)).Id("TypeIdentifier").Params().Qual(zbPkg, "Uint128").Block(
		jen.Return(jen.Qual(zbPkg, "Uint128").Values(jen.Dict{
			jen.Id("High"): hex(id.High),
			jen.Id("Low"):  hex(id.Low),
		})),
	)

	f.Comment("TypeName returns the qualified name of the table.")
	f.Func().Params(recv(t)).Id("TypeName").Params().String().Block(jen.Return(jen.Lit(t.QualifiedName())))
	f.Comment("StaticSize returns the size of the static region.")
	f.Func().Params(recv(t)).Id("StaticSize").Params().Int().Block(jen.Return(jen.Lit(t.StaticSize)))
	f.Comment("NumDynamics returns the number of dynamic slots.")
	f.Func().Params(recv(t)).Id("NumDynamics").Params().Int().Block(jen.Return(jen.Lit(t.NumDynamics)))
	f.Comment("Layout returns the layout of the table.")
	f.Func().Params(recv(t)).Id("Layout").Params().Op("*").Qual(zbPkg, "Layout").Block(jen.Return(jen.Id(layoutVar(t))))

	if h.schema {
		f.Comment("Schema returns the JSON schema of the table.")
		f.Func().Params(recv(t)).Id("Schema").Params().String().Block(jen.Return(jen.Id(schemaVar(t))))
	}

	f.Comment("Clone returns a deep copy with its own storage.")
	if t.Empty {
		f.Func().Params(recv(t)).Id("Clone").Params().Op("*").Id(name).Block(jen.Return(jen.Id("New" + name).Call()))
	} else {
		f.Func().Params(recv(t)).Id("Clone").Params().Op("*").Id(name).Block(
			jen.Return(jen.Id("New" + name + "FromAllocator").Call(
				jen.Qual(zbPkg, "CloneAllocator").Call(jen.Id("t").Dot("Allocator").Call()),
			)),
		)
	}
	f.Comment("MoveFrom moves the content of src into the table.")
	f.Func().Params(recv(t)).Id("MoveFrom").Params(jen.Id("src").Op("*").Id(name)).Error().Block(
		jen.Return(jen.Qual(zbPkg, "Move").Call(jen.Id("t"), jen.Id("src"))),
	)
}

// genAccessors renders the getters and setters of every member of t.
func genAccessors(h *helper, f *jen.File, t *gen.Table) {
	for _, m := range t.Members {
		genGetters(f, t, m)
		genSetters(h, f, t, m)
	}
	if t.HasDynamicTable() {
		f.Comment("Compact compacts the embedded tables, then the storage of the table.")
		f.Func().Params(recv(t)).Id("Compact").Params(jen.Id("threshold").Float64()).BlockFunc(func(group *jen.Group) {
			for _, m := range t.Members {
				if m.Kind == gen.KindTable {
					group.Id("t").Dot(field(m)).Dot("Compact").Call(jen.Id("threshold"))
				}
			}
			group.Id("t").Dot("Object").Dot("Compact").Call(jen.Id("threshold"))
		})
	}
}

func genGetters(f *jen.File, t *gen.Table, m *gen.Member) {
	view := jen.Id("t").Dot(field(m))
	get := f.Func().Params(recv(t)).Id(getter(m)).Params()
	switch {
	case m.Kind == gen.KindScalar && !m.IsTable():
		get.Add(elemType(m.Type)).Block(jen.Return(codec(m.Type).Dot("Get").Call(data(m.Offset))))
	case m.Kind == gen.KindArray && m.IsTable():
		get.Index().Add(elemType(m.Type)).Block(
			jen.Return(jen.Append(jen.Index().Add(elemType(m.Type)).Parens(jen.Nil()), view.Clone().Op("..."))),
		)
	case m.IsString:
		get.String().Block(jen.Return(view.Clone().Dot("String").Call()))
		f.Func().Params(recv(t)).Id(getter(m) + "Vector").Params().Add(viewType(m)).Block(jen.Return(view.Clone()))
	default:
		get.Add(viewType(m)).Block(jen.Return(view.Clone()))
	}
}

func genSetters(h *helper, f *jen.File, t *gen.Table, m *gen.Member) {
	view := jen.Id("t").Dot(field(m))
	emit := func(group *jen.Group) {
		if h.signals {
			group.Id("t").Dot("signals").Dot(gen.Pascal(m.Name)).Dot("Emit").Call(jen.Id("t"))
		}
	}
	set := func(name string, typ *jen.Statement, body func(group *jen.Group)) {
		f.Func().Params(recv(t)).Id(name).Params(jen.Id("v").Add(typ)).BlockFunc(func(group *jen.Group) {
			body(group)
			emit(group)
		})
	}
	notify := jen.Id("t").Dot("NotifyChanging").Call()

	switch {
	case m.Kind == gen.KindArray && m.IsTable():
		f.Commentf("%s copies v into the first elements of %s. It does nothing if v holds more than %d elements.", setter(m), m.Name, m.Count)
		set(setter(m), valueType(m), func(group *jen.Group) {
			group.If(jen.Len(jen.Id("v")).Op(">").Lit(m.Count)).Block(jen.Return())
			group.Add(notify)
			group.For(jen.List(jen.Id("i"), jen.Id("e")).Op(":=").Range().Id("v")).Block(
				view.Clone().Index(jen.Id("i")).Dot("Allocator").Call().Dot("Assign").Call(
					jen.Id("e").Dot("Allocator").Call().Dot("Bytes").Call(),
				),
			)
		})
	case m.IsTable() && m.Kind != gen.KindVector:
		set(setter(m), valueType(m), func(group *jen.Group) {
			group.Add(notify)
			group.Add(view.Clone()).Dot("Allocator").Call().Dot("Assign").Call(
				jen.Id("v").Dot("Allocator").Call().Dot("Bytes").Call(),
			)
		})
	case m.Kind == gen.KindScalar:
		set(setter(m), valueType(m), func(group *jen.Group) {
			group.Add(notify)
			group.Add(codec(m.Type)).Dot("Put").Call(data(m.Offset), jen.Id("v"))
		})
	// Views fire the changing hook themselves.
	case m.Kind == gen.KindArray:
		f.Commentf("%s copies v into %s. It does nothing if v holds more than %d elements.", setter(m), m.Name, m.Count)
		tooLong := jen.If(jen.Len(jen.Id("v")).Op(">").Lit(m.Count)).Block(jen.Return())
		set(setter(m), valueType(m), func(group *jen.Group) {
			group.Add(tooLong.Clone())
			group.Add(view.Clone()).Dot("Assign").Call(jen.Id("v"))
		})
		if hasStringSetter(m) {
			set(setter(m)+"String", jen.String(), func(group *jen.Group) {
				group.Add(tooLong.Clone())
				group.Add(view.Clone()).Dot("AssignString").Call(jen.Id("v"))
			})
		}
	case m.IsString:
		set(setter(m), jen.String(), func(group *jen.Group) {
			group.Add(view.Clone()).Dot("SetString").Call(jen.Id("v"))
		})
	default:
		set(setter(m), valueType(m), func(group *jen.Group) {
			group.Add(view.Clone()).Dot("Replace").Call(jen.Id("v"))
		})
	}
}
