package gen

import (
	"fmt"
	"strconv"

	"github.com/syssam/zerobuf"
	"github.com/syssam/zerobuf/compiler/load"
)

const (
	// HeaderSize is the size of the version header starting every table.
	HeaderSize = zerobuf.HeaderSize
	// SlotSize is the static size of a dynamic member: an 8-byte offset
	// and an 8-byte size.
	SlotSize = zerobuf.SlotSize
)

// LayoutTable lays out the fields of decl in declaration order against the
// types registered in r. It classifies every field as fixed or dynamic,
// assigns offsets and slot indices, validates the result and stamps the
// type identifier. The table is not registered.
func LayoutTable(r *Registry, ns []string, decl *load.Table) (*Table, error) {
	t := &Table{Name: decl.Name, Namespace: ns, Pos: decl.Pos}
	offset := HeaderSize
	seen := make(map[string]bool, len(decl.Fields))
	for _, fd := range decl.Fields {
		if seen[fd.Name] {
			return nil, (&ValidationError{
				Type:    t.Name,
				Field:   fd.Name,
				Message: "field is declared twice",
				Cause:   ErrRedeclared,
			}).At(fd.Pos)
		}
		seen[fd.Name] = true
		m, err := layoutMember(r, t.Name, fd)
		if err != nil {
			return nil, err
		}
		m.Offset = offset
		if m.IsDynamic() {
			m.Index = t.NumDynamics
			t.NumDynamics++
		}
		offset += m.Size()
		t.Members = append(t.Members, m)
	}
	if offset == HeaderSize {
		t.Empty = true
	} else {
		t.StaticSize = offset
	}
	t.ID = Identify(ns, t.Name, t.Members)
	return t, nil
}

// layoutMember classifies one field. Offsets are assigned by the caller.
func layoutMember(r *Registry, table string, fd *load.Field) (*Member, error) {
	typ, err := r.Resolve(fd.Type.Name)
	if err != nil {
		se := err.(*SchemaError)
		se.Type, se.Field = table, fd.Name
		se.Message = fmt.Sprintf("type %s is not declared", fd.Type.Name)
		return nil, se.At(fd.Pos)
	}
	m := &Member{Name: fd.Name, Type: typ, Index: -1, Pos: fd.Pos}
	structural := func(format string, args ...any) error {
		return NewValidationError(table, fd.Name, nil, fmt.Sprintf(format, args...)).At(fd.Pos)
	}
	switch {
	case typ.IsString():
		m.Kind, m.IsString, m.ElemSize = KindVector, true, typ.Size
	case fd.Type.Kind == load.Vector:
		if typ.Kind == TypeTable && typ.Size == 0 {
			return nil, structural("vector of table %s without static size", typ.Name)
		}
		m.Kind, m.ElemSize = KindVector, typ.Size
	case fd.Type.Kind == load.Array:
		if fd.Type.Count < 2 {
			return nil, structural("array of %d elements, at least 2 required", fd.Type.Count)
		}
		if typ.Size == 0 {
			if typ.Kind == TypeTable {
				return nil, structural("fixed array of table %s without static size", typ.Name)
			}
			return nil, structural("fixed array of zero-size element type %s", typ.Name)
		}
		m.Kind, m.ElemSize, m.Count = KindArray, typ.Size, fd.Type.Count
	case typ.Kind == TypeTable && typ.Table.Empty:
		return nil, structural("cannot embed table %s without payload", typ.Name)
	case typ.Kind == TypeTable && typ.Size == 0:
		if typ.Table.HasDynamicTable() {
			return nil, structural("nested dynamic table %s", typ.Name)
		}
		m.Kind = KindTable
	default:
		m.Kind, m.ElemSize, m.Count = KindScalar, typ.Size, 1
	}
	if fd.Default != nil {
		if err := checkDefault(table, m, fd.Default); err != nil {
			return nil, err
		}
		m.Default = fd.Default
	}
	return m, nil
}

// checkDefault verifies that lit is a valid value of the member type.
// Defaults are supported on bare scalar members only.
func checkDefault(table string, m *Member, lit *load.Literal) error {
	invalid := func(msg string) error {
		return (&ValidationError{Type: table, Field: m.Name, Value: lit.Text, Message: msg}).At(m.Pos)
	}
	switch {
	case m.Kind != KindScalar || m.Type.Kind == TypeTable:
		return invalid("default values are supported on scalar fields only")
	case m.Type.Kind == TypeEnum:
		return invalid("default values on enum fields are not supported")
	case m.Type.IsBool():
		if lit.Kind != load.LitBool {
			return invalid("bool field requires true or false")
		}
		return nil
	case lit.Kind != load.LitNumber:
		return invalid(fmt.Sprintf("%s field requires a number", m.Type.Name))
	}
	bits := m.Type.Size * 8
	var err error
	switch {
	case m.Type.IsFloat():
		if _, err = strconv.ParseFloat(lit.Text, bits); err != nil && !lit.IsFloat() {
			_, err = strconv.ParseInt(lit.Text, 0, 64)
		}
	case lit.IsFloat():
		return invalid(fmt.Sprintf("%s field requires an integer", m.Type.Name))
	case m.Type.IsSigned():
		_, err = strconv.ParseInt(lit.Text, 0, bits)
	default:
		_, err = strconv.ParseUint(lit.Text, 0, min(bits, 64))
	}
	if err != nil {
		return invalid(fmt.Sprintf("value out of range for %s", m.Type.Name))
	}
	return nil
}
