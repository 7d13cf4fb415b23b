// Package golang renders the laid out tables of a schema as Go types
// backed by the zerobuf runtime.
//
// Every schema renders into a declaration file <base>.go holding the
// enums, the table structs, their layouts and constructors, and an
// implementation file <base>_impl.<ext> holding the member accessors and
// the JSON conversion. With the inline extension both parts are rendered
// into <base>.go.
package golang

import (
	"bytes"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/zerobuf/compiler/gen"
)

// generatedBy is the first line of every generated file.
const generatedBy = "Code generated by zerobufc. DO NOT EDIT."

// Backend renders Go source files.
type Backend struct {
	registry *gen.TemplateWriter
}

var (
	_ gen.Backend           = (*Backend)(nil)
	_ gen.RegistryGenerator = (*Backend)(nil)
)

// New returns the Go backend.
func New() *Backend {
	return &Backend{registry: gen.MustNewTemplateWriter("registry", registryTmpl)}
}

// Name implements gen.Backend.
func (*Backend) Name() string { return "go" }

// GenSchema implements gen.Backend.
func (b *Backend) GenSchema(g *gen.Graph) ([]*gen.File, error) {
	if err := checkNames(g); err != nil {
		return nil, err
	}
	h := newHelper(g)
	decl := h.newFile()
	if err := genDecl(h, decl); err != nil {
		return nil, err
	}
	if g.Inline() {
		genImpl(h, decl)
		out, err := render(g, g.BaseName()+".go", decl)
		if err != nil {
			return nil, err
		}
		return []*gen.File{out}, nil
	}
	impl := h.newFile()
	genImpl(h, impl)
	out, err := render(g, g.BaseName()+".go", decl)
	if err != nil {
		return nil, err
	}
	outImpl, err := render(g, g.BaseName()+"_impl."+g.Extension, impl)
	if err != nil {
		return nil, err
	}
	return []*gen.File{out, outImpl}, nil
}

// helper carries the graph and its feature switches through the file
// generators.
type helper struct {
	g       *gen.Graph
	signals bool
	schema  bool
}

func newHelper(g *gen.Graph) *helper {
	signals, _ := g.FeatureEnabled(gen.FeatureSignals.Name)
	schema, _ := g.FeatureEnabled(gen.FeatureSchema.Name)
	return &helper{g: g, signals: signals, schema: schema}
}

// newFile returns an empty file of the generated package with the
// generated-code header.
func (h *helper) newFile() *jen.File {
	f := jen.NewFile(h.g.PackageName())
	f.ImportName(zbPkg, "zerobuf")
	f.HeaderComment(generatedBy)
	if h.g.Header != "" {
		for _, line := range strings.Split(strings.TrimRight(h.g.Header, "\n"), "\n") {
			f.HeaderComment(line)
		}
	}
	return f
}

// genDecl adds the type declarations of the schema to f.
func genDecl(h *helper, f *jen.File) error {
	for _, e := range h.g.Enums {
		genEnum(f, e)
	}
	for _, t := range h.g.Tables {
		if err := genTable(h, f, t); err != nil {
			return err
		}
	}
	if len(h.g.Tables) > 0 {
		f.Var().DefsFunc(func(group *jen.Group) {
			for _, t := range h.g.Tables {
				group.Id("_").Qual(zbPkg, "Zerobuf").Op("=").Parens(jen.Op("*").Id(typeName(t))).Parens(jen.Nil())
			}
		})
	}
	return nil
}

// genImpl adds the accessors and the JSON conversion of every table to f.
func genImpl(h *helper, f *jen.File) {
	for _, t := range h.g.Tables {
		genAccessors(h, f, t)
		genJSON(f, t)
	}
}

func render(g *gen.Graph, name string, f *jen.File) (*gen.File, error) {
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, gen.NewGenerationError("format", name, "rendering "+g.BaseName(), err)
	}
	return &gen.File{Name: name, Content: buf.Bytes()}, nil
}
