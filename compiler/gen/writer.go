package gen

import (
	"bytes"
	"fmt"
	"text/template"

	"golang.org/x/tools/imports"
)

// TemplateWriter renders Go files from text templates and formats them
// with goimports, which also fixes up the import block.
type TemplateWriter struct {
	tmpl *template.Template
}

// NewTemplateWriter parses the template text with Funcs available.
func NewTemplateWriter(name, text string) (*TemplateWriter, error) {
	tmpl, err := template.New(name).Funcs(Funcs).Parse(text)
	if err != nil {
		return nil, NewGenerationError("parse", name, "parsing template", err)
	}
	return &TemplateWriter{tmpl: tmpl}, nil
}

// MustNewTemplateWriter is like NewTemplateWriter but panics on error.
func MustNewTemplateWriter(name, text string) *TemplateWriter {
	w, err := NewTemplateWriter(name, text)
	if err != nil {
		panic(err)
	}
	return w
}

// Render executes the template with data and returns the formatted file.
// The filename is only used to resolve imports and in errors.
func (w *TemplateWriter) Render(filename string, data any) (*File, error) {
	// 1. Execute template
	var buf bytes.Buffer
	if err := w.tmpl.Execute(&buf, data); err != nil {
		return nil, NewGenerationError("render", filename, fmt.Sprintf("execute template %q", w.tmpl.Name()), err)
	}

	// 2. Format using goimports (removes unused imports and adds missing ones)
	formatted, err := imports.Process(filename, buf.Bytes(), nil)
	if err != nil {
		return nil, NewGenerationError("format", filename, "", err)
	}
	return &File{Name: filename, Content: formatted}, nil
}
