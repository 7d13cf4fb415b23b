package load

import (
	"fmt"
	"strings"
)

// BaseTypes lists the built-in scalar type keywords, in the order the
// schema language documents them.
var BaseTypes = []string{
	"int", "uint", "float", "double", "byte", "short", "ubyte", "ushort", "ulong",
	"uint8_t", "uint16_t", "uint32_t", "uint64_t", "uint128_t",
	"int8_t", "int16_t", "int32_t", "int64_t", "bool", "string",
}

// IsBaseType reports whether name is a built-in scalar keyword.
func IsBaseType(name string) bool {
	for _, t := range BaseTypes {
		if t == name {
			return true
		}
	}
	return false
}

// Pos describes a position in a schema file.
type Pos struct {
	Filename string `json:"filename,omitempty"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

func (p Pos) String() string {
	name := p.Filename
	if name == "" {
		name = "<input>"
	}
	return fmt.Sprintf("%s:%d:%d", name, p.Line, p.Column)
}

// File is the token tree of one schema file.
type File struct {
	Path      string   `json:"path,omitempty"`
	Namespace []string `json:"namespace,omitempty"`
	Decls     []Decl   `json:"-"`
	RootType  string   `json:"root_type,omitempty"`
	RootPos   Pos      `json:"-"`
}

// Enums returns the enum declarations in declaration order.
func (f *File) Enums() []*Enum {
	var enums []*Enum
	for _, d := range f.Decls {
		if e, ok := d.(*Enum); ok {
			enums = append(enums, e)
		}
	}
	return enums
}

// Tables returns the table declarations in declaration order.
func (f *File) Tables() []*Table {
	var tables []*Table
	for _, d := range f.Decls {
		if t, ok := d.(*Table); ok {
			tables = append(tables, t)
		}
	}
	return tables
}

// Decl is an enum or table declaration.
type Decl interface {
	DeclName() string
	DeclPos() Pos
	decl()
}

// Enum is an enum declaration. Values get ordinals by declaration order,
// starting at 0.
type Enum struct {
	Name   string   `json:"name"`
	Base   string   `json:"base"`
	Values []string `json:"values"`
	Pos    Pos      `json:"-"`
}

func (e *Enum) DeclName() string { return e.Name }
func (e *Enum) DeclPos() Pos     { return e.Pos }
func (*Enum) decl()              {}

// Table is a table declaration.
type Table struct {
	Name   string   `json:"name"`
	Fields []*Field `json:"fields,omitempty"`
	Pos    Pos      `json:"-"`
}

func (t *Table) DeclName() string { return t.Name }
func (t *Table) DeclPos() Pos     { return t.Pos }
func (*Table) decl()              {}

// Field is one entry of a table.
type Field struct {
	Name    string   `json:"name"`
	Type    TypeRef  `json:"type"`
	Default *Literal `json:"default,omitempty"`
	Pos     Pos      `json:"-"`
}

// TypeKind tells how a field refers to its element type.
type TypeKind int

// List of type reference kinds.
const (
	Bare   TypeKind = iota // type
	Vector                 // [type]
	Array                  // [type:N]
)

func (k TypeKind) String() string {
	switch k {
	case Bare:
		return "bare"
	case Vector:
		return "vector"
	case Array:
		return "array"
	default:
		return fmt.Sprintf("TypeKind(%d)", int(k))
	}
}

// TypeRef is the declared type of a field.
type TypeRef struct {
	Name  string   `json:"name"`
	Kind  TypeKind `json:"kind"`
	Count int      `json:"count,omitempty"`
}

// String returns the type in schema syntax.
func (t TypeRef) String() string {
	switch t.Kind {
	case Vector:
		return "[" + t.Name + "]"
	case Array:
		return fmt.Sprintf("[%s:%d]", t.Name, t.Count)
	default:
		return t.Name
	}
}

// LiteralKind is the kind of a default value.
type LiteralKind int

// List of literal kinds.
const (
	LitNumber LiteralKind = iota
	LitBool
)

// Literal is a default value as written in the schema.
type Literal struct {
	Kind LiteralKind `json:"kind"`
	Text string      `json:"text"`
}

// IsFloat reports whether a numeric literal has a fractional part or an
// exponent.
func (l *Literal) IsFloat() bool {
	if l.Kind != LitNumber {
		return false
	}
	digits := strings.ToLower(strings.TrimPrefix(l.Text, "-"))
	if strings.HasPrefix(digits, "0x") {
		return false
	}
	return strings.ContainsAny(digits, ".e")
}

func (l *Literal) String() string { return l.Text }
