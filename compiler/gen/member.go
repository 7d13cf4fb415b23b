package gen

import (
	"fmt"
	"strconv"

	"github.com/syssam/zerobuf/compiler/load"
)

// MemberKind is one of the four member variants.
type MemberKind uint8

// List of member kinds.
const (
	// KindScalar is a fixed member holding one scalar, enum or static table
	// in place.
	KindScalar MemberKind = iota
	// KindArray is a fixed array of Count elements held in place.
	KindArray
	// KindTable is an embedded dynamically sized table living in a
	// dynamic slot.
	KindTable
	// KindVector is a variable-length vector or string living in a dynamic
	// slot.
	KindVector
)

// String returns the kind name.
func (k MemberKind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindArray:
		return "array"
	case KindTable:
		return "table"
	case KindVector:
		return "vector"
	default:
		return fmt.Sprintf("MemberKind(%d)", k)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k MemberKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Member is one laid out field of a table. Members are created by the
// layout engine and never modified afterwards.
type Member struct {
	Kind MemberKind
	Name string
	// Type is the resolved element type.
	Type *TypeInfo
	// ElemSize is the byte size of one element, 0 for a dynamically sized
	// embedded table.
	ElemSize int
	// Offset is the static offset of the member, or of its 16-byte slot
	// for dynamic members.
	Offset int
	// Index is the dynamic slot index, -1 for fixed members.
	Index int
	// Count is the number of elements: 1 for scalars, N for fixed arrays
	// and 0 for dynamic members.
	Count int
	// Default is the literal default value of a scalar member.
	Default *load.Literal
	// IsString marks a string member, a vector of chars.
	IsString bool
	Pos      load.Pos
}

// IsDynamic reports whether the member lives in a dynamic slot.
func (m *Member) IsDynamic() bool { return m.Kind == KindTable || m.Kind == KindVector }

// Size returns the number of static bytes the member occupies.
func (m *Member) Size() int {
	if m.IsDynamic() {
		return SlotSize
	}
	return m.ElemSize * m.Count
}

// IsByte reports whether the elements are bytes that convert to JSON as
// binary.
func (m *Member) IsByte() bool { return !m.IsString && m.Type.IsByte() }

// IsTable reports whether the elements are tables.
func (m *Member) IsTable() bool { return m.Type.Kind == TypeTable }

// IsEnum reports whether the elements are enum values.
func (m *Member) IsEnum() bool { return m.Type.Kind == TypeEnum }

// Fingerprint returns the contribution of the member to the type
// identifier of its table: the representation name, suffixed with
// "Vector" for vectors and strings or with the count for fixed arrays.
func (m *Member) Fingerprint() string {
	switch {
	case m.IsString:
		return "charVector"
	case m.Kind == KindVector:
		return m.Type.Repr + "Vector"
	case m.Kind == KindArray:
		return m.Type.Repr + strconv.Itoa(m.Count)
	default:
		return m.Type.Repr
	}
}
