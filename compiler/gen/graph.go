package gen

import (
	"fmt"
	"go/token"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/syssam/zerobuf/compiler/load"
)

// Graph is the model of one schema file: its enums and laid out tables in
// declaration order. It is immutable once built and handed to a Backend.
type Graph struct {
	*Config
	// Path is the path of the schema file, empty for in-memory sources.
	Path string
	// Namespace holds the namespace path.
	Namespace []string
	// Enums holds the enum types in declaration order.
	Enums []*Enum
	// Tables holds the table types in declaration order.
	Tables []*Table
	// Root is the table named by root_type, if any.
	Root *Table
	// Registry holds the types resolved while building the graph.
	Registry *Registry
}

// NewGraph builds the model of f. Declarations are processed in order, so a
// field may only refer to types declared above it.
func NewGraph(c *Config, f *load.File) (*Graph, error) {
	if c == nil {
		c = &Config{}
	}
	c.defaults()
	g := &Graph{
		Config:    c,
		Path:      f.Path,
		Namespace: f.Namespace,
		Registry:  NewRegistry(),
	}
	for _, d := range f.Decls {
		var err error
		switch d := d.(type) {
		case *load.Enum:
			err = g.addEnum(d)
		case *load.Table:
			err = g.addTable(d)
		}
		if err != nil {
			return nil, err
		}
	}
	if f.RootType != "" {
		t, ok := g.Table(f.RootType)
		if !ok {
			return nil, NewSchemaError(f.RootType, "", "root_type must name a declared table", ErrUnresolvedType).At(f.RootPos)
		}
		g.Root = t
	}
	return g, nil
}

func (g *Graph) addEnum(d *load.Enum) error {
	seen := make(map[string]bool, len(d.Values))
	for _, v := range d.Values {
		if seen[v] {
			return NewSchemaError(d.Name, v, "enum value is declared twice", ErrRedeclared).At(d.Pos)
		}
		seen[v] = true
	}
	e := &Enum{
		Name:      d.Name,
		Base:      d.Base,
		Values:    d.Values,
		Namespace: g.Namespace,
		Pos:       d.Pos,
	}
	if _, err := g.Registry.RegisterEnum(e); err != nil {
		return err.(*SchemaError).At(d.Pos)
	}
	g.Enums = append(g.Enums, e)
	return nil
}

func (g *Graph) addTable(d *load.Table) error {
	if _, err := g.Registry.Resolve(d.Name); err == nil {
		return NewSchemaError(d.Name, "", "type is already declared", ErrRedeclared).At(d.Pos)
	}
	t, err := LayoutTable(g.Registry, g.Namespace, d)
	if err != nil {
		return err
	}
	if _, err := g.Registry.RegisterTable(t); err != nil {
		return err.(*SchemaError).At(d.Pos)
	}
	g.Config.Logger.Debug("laid out table",
		"table", t.QualifiedName(),
		"static_size", t.StaticSize,
		"dynamics", t.NumDynamics,
		"id", t.ID.String(),
	)
	g.Tables = append(g.Tables, t)
	return nil
}

// Table returns the table with the given name.
func (g *Graph) Table(name string) (*Table, bool) {
	for _, t := range g.Tables {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// Enum returns the enum with the given name.
func (g *Graph) Enum(name string) (*Enum, bool) {
	for _, e := range g.Enums {
		if e.Name == name {
			return e, true
		}
	}
	return nil, false
}

// BaseName returns the schema file name without directory and extension.
func (g *Graph) BaseName() string {
	if g.Path == "" {
		return "schema"
	}
	base := filepath.Base(g.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Dir returns the directory the generated files are written to.
func (g *Graph) Dir() string {
	if g.Target != "" && g.Target != Stdout {
		return g.Target
	}
	if g.Path == "" {
		return "."
	}
	return filepath.Dir(g.Path)
}

// PackageName returns the name of the generated Go package: the configured
// package, else the last namespace segment, else the name of the output
// directory.
func (g *Graph) PackageName() string {
	if g.Package != "" {
		return g.Package
	}
	if n := len(g.Namespace); n > 0 {
		return packageName(g.Namespace[n-1])
	}
	dir, err := filepath.Abs(g.Dir())
	if err != nil {
		dir = g.Dir()
	}
	return packageName(filepath.Base(dir))
}

// packageName turns s into a valid Go package name.
func packageName(s string) string {
	s = strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			return unicode.ToLower(r)
		case r == '_':
			return r
		}
		return -1
	}, s)
	if s == "" || unicode.IsDigit(rune(s[0])) || token.IsKeyword(s) {
		s = "zb" + s
	}
	return s
}

// String returns a one-line summary for diagnostics.
func (g *Graph) String() string {
	return fmt.Sprintf("%s: %d enums, %d tables", g.BaseName(), len(g.Enums), len(g.Tables))
}
