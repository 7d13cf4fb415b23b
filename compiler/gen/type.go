package gen

import (
	"strings"

	"github.com/google/uuid"

	"github.com/syssam/zerobuf/compiler/load"
)

// The following types and their exported methods are used by the backends
// to render the generated files.
type (
	// Table is a laid out table type.
	Table struct {
		// Name holds the table name as declared.
		Name string
		// Namespace holds the namespace path of the schema.
		Namespace []string
		// Members holds the members in declaration order.
		Members []*Member
		// StaticSize is the size of the static region: the header, all
		// fixed members and one slot per dynamic member. It is 0 for a
		// table without payload.
		StaticSize int
		// NumDynamics is the number of dynamic slots.
		NumDynamics int
		// Empty marks a table without payload. All its instances are
		// interchangeable and have no storage.
		Empty bool
		// ID is the type identifier.
		ID uuid.UUID
		// Pos is the position of the declaration.
		Pos load.Pos
	}

	// Enum is an enum type. Values are numbered in declaration order,
	// starting at 0.
	Enum struct {
		Name      string
		Base      string
		Values    []string
		Namespace []string
		Pos       load.Pos
	}
)

// Size returns the size stored in the type registry: the static size, or
// 0 if the table is dynamically sized or has no payload. Only tables with
// a non-zero size can be embedded in place.
func (t *Table) Size() int {
	if t.Empty || t.NumDynamics > 0 {
		return 0
	}
	return t.StaticSize
}

// IsDynamic reports whether the table has dynamic members.
func (t *Table) IsDynamic() bool { return t.NumDynamics > 0 }

// QualifiedName returns the name prefixed with the namespace, e.g.
// "ns::Point".
func (t *Table) QualifiedName() string { return qualify(t.Namespace, t.Name) }

// Member returns the member with the given name.
func (t *Table) Member(name string) (*Member, bool) {
	for _, m := range t.Members {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

// StaticMembers returns the fixed members.
func (t *Table) StaticMembers() []*Member {
	var ms []*Member
	for _, m := range t.Members {
		if !m.IsDynamic() {
			ms = append(ms, m)
		}
	}
	return ms
}

// DynamicMembers returns the dynamic members in slot order.
func (t *Table) DynamicMembers() []*Member {
	var ms []*Member
	for _, m := range t.Members {
		if m.IsDynamic() {
			ms = append(ms, m)
		}
	}
	return ms
}

// Slots returns the static offsets of the dynamic slots.
func (t *Table) Slots() []int {
	var slots []int
	for _, m := range t.DynamicMembers() {
		slots = append(slots, m.Offset)
	}
	return slots
}

// HasDynamicTable reports whether the table embeds a dynamically sized
// table. Such a table cannot be embedded itself.
func (t *Table) HasDynamicTable() bool {
	for _, m := range t.Members {
		if m.Kind == KindTable {
			return true
		}
	}
	return false
}

// HasDefaults reports whether the table or any table it holds in place or
// embeds has a member with a default value.
func (t *Table) HasDefaults() bool {
	for _, m := range t.Members {
		if m.Default != nil {
			return true
		}
		if m.IsTable() && m.Kind != KindVector && m.Type.Table.HasDefaults() {
			return true
		}
	}
	return false
}

// QualifiedName returns the name prefixed with the namespace.
func (e *Enum) QualifiedName() string { return qualify(e.Namespace, e.Name) }

func qualify(ns []string, name string) string {
	if len(ns) == 0 {
		return name
	}
	return strings.Join(ns, "::") + "::" + name
}
