package gen

import "fmt"

// TypeKind classifies registry entries.
type TypeKind uint8

// List of type kinds.
const (
	TypeScalar TypeKind = iota
	TypeEnum
	TypeTable
)

// String returns the kind name.
func (k TypeKind) String() string {
	switch k {
	case TypeScalar:
		return "scalar"
	case TypeEnum:
		return "enum"
	case TypeTable:
		return "table"
	default:
		return fmt.Sprintf("TypeKind(%d)", k)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k TypeKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// TypeInfo is a resolved type: its byte size and its representation name.
// Representation names are the canonical C names of the scalar types and
// feed the type identifiers, so identifiers do not depend on the backend.
type TypeInfo struct {
	Name  string
	Size  int
	Repr  string
	Kind  TypeKind
	Enum  *Enum  // TypeEnum only
	Table *Table // TypeTable only
}

// IsString reports whether t is the string placeholder type.
func (t *TypeInfo) IsString() bool { return t.Kind == TypeScalar && t.Name == "string" }

// IsByte reports whether t is one of the byte keywords, whose arrays and
// vectors convert to JSON as binary.
func (t *TypeInfo) IsByte() bool { return t.Name == "byte" || t.Name == "ubyte" }

// IsBool reports whether t is the boolean type.
func (t *TypeInfo) IsBool() bool { return t.Name == "bool" }

// IsFloat reports whether t is a floating point type.
func (t *TypeInfo) IsFloat() bool { return t.Name == "float" || t.Name == "double" }

// IsSigned reports whether t is a signed integer type.
func (t *TypeInfo) IsSigned() bool {
	switch t.Name {
	case "int", "short", "int8_t", "int16_t", "int32_t", "int64_t":
		return true
	}
	return false
}

// scalars is the seed of every registry, in keyword order.
var scalars = []TypeInfo{
	{Name: "int", Size: 4, Repr: "int32_t"},
	{Name: "uint", Size: 4, Repr: "uint32_t"},
	{Name: "float", Size: 4, Repr: "float"},
	{Name: "double", Size: 8, Repr: "double"},
	{Name: "byte", Size: 1, Repr: "uint8_t"},
	{Name: "short", Size: 2, Repr: "int16_t"},
	{Name: "ubyte", Size: 1, Repr: "uint8_t"},
	{Name: "ushort", Size: 2, Repr: "uint16_t"},
	{Name: "ulong", Size: 8, Repr: "uint64_t"},
	{Name: "uint8_t", Size: 1, Repr: "uint8_t"},
	{Name: "uint16_t", Size: 2, Repr: "uint16_t"},
	{Name: "uint32_t", Size: 4, Repr: "uint32_t"},
	{Name: "uint64_t", Size: 8, Repr: "uint64_t"},
	{Name: "uint128_t", Size: 16, Repr: "::zerobuf::uint128_t"},
	{Name: "int8_t", Size: 1, Repr: "int8_t"},
	{Name: "int16_t", Size: 2, Repr: "int16_t"},
	{Name: "int32_t", Size: 4, Repr: "int32_t"},
	{Name: "int64_t", Size: 8, Repr: "int64_t"},
	{Name: "bool", Size: 1, Repr: "bool"},
	{Name: "string", Size: 1, Repr: "char*"},
}

// Registry maps type names to resolved types. It is append-only and local
// to one schema: a name resolves only after its declaration was
// registered, which rules out forward references and recursive tables.
type Registry struct {
	types map[string]*TypeInfo
	order []string
}

// NewRegistry returns a registry seeded with the scalar types.
func NewRegistry() *Registry {
	r := &Registry{types: make(map[string]*TypeInfo, len(scalars))}
	for i := range scalars {
		t := scalars[i]
		r.add(&t)
	}
	return r
}

func (r *Registry) add(t *TypeInfo) {
	r.types[t.Name] = t
	r.order = append(r.order, t.Name)
}

// Resolve returns the type registered under name.
func (r *Registry) Resolve(name string) (*TypeInfo, error) {
	t, ok := r.types[name]
	if !ok {
		return nil, NewSchemaError(name, "", "type is not declared", ErrUnresolvedType)
	}
	return t, nil
}

// RegisterEnum adds e. Enums occupy 4 bytes whatever their base type.
func (r *Registry) RegisterEnum(e *Enum) (*TypeInfo, error) {
	if err := r.declare(e.Name); err != nil {
		return nil, err
	}
	t := &TypeInfo{Name: e.Name, Size: 4, Repr: e.Name, Kind: TypeEnum, Enum: e}
	r.add(t)
	return t, nil
}

// RegisterTable adds t with its registry size: the static size, or 0 if
// the table is dynamically sized or has no payload.
func (r *Registry) RegisterTable(t *Table) (*TypeInfo, error) {
	if err := r.declare(t.Name); err != nil {
		return nil, err
	}
	info := &TypeInfo{Name: t.Name, Size: t.Size(), Repr: t.Name, Kind: TypeTable, Table: t}
	r.add(info)
	return info, nil
}

func (r *Registry) declare(name string) error {
	if _, ok := r.types[name]; ok {
		return NewSchemaError(name, "", "type is already declared", ErrRedeclared)
	}
	return nil
}

// Names returns the registered names in registration order, scalars first.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}
