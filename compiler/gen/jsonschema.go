package gen

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SchemaDialect is the JSON schema dialect of generated schemas.
const SchemaDialect = "http://json-schema.org/schema#"

// JSONSchema is the JSON schema of a table, a member or an enum, matching
// the JSON form of generated objects.
type JSONSchema struct {
	Schema               string      `json:"$schema,omitempty"`
	Title                string      `json:"title,omitempty"`
	Description          string      `json:"description,omitempty"`
	Type                 string      `json:"type"`
	ContentEncoding      string      `json:"contentEncoding,omitempty"`
	AdditionalProperties *bool       `json:"additionalProperties,omitempty"`
	Enum                 []int       `json:"enum,omitempty"`
	Items                *JSONSchema `json:"items,omitempty"`
	MinItems             *int        `json:"minItems,omitempty"`
	MaxItems             *int        `json:"maxItems,omitempty"`
	Properties           Properties  `json:"properties,omitempty"`
}

// Property is a named member schema.
type Property struct {
	Name   string
	Schema *JSONSchema
}

// Properties are the member schemas of an object in declaration order.
type Properties []Property

// MarshalJSON encodes the properties as an object, keeping their order.
func (p Properties) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, prop := range p {
		if i > 0 {
			b.WriteByte(',')
		}
		key, err := json.Marshal(prop.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(prop.Schema)
		if err != nil {
			return nil, err
		}
		b.Write(key)
		b.WriteByte(':')
		b.Write(val)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// JSONSchema returns the schema of the JSON form of t.
func (t *Table) JSONSchema() *JSONSchema {
	closed := false
	s := &JSONSchema{
		Schema:               SchemaDialect,
		Title:                t.Name,
		Description:          fmt.Sprintf("Table %s of namespace %v", t.Name, t.Namespace),
		Type:                 "object",
		AdditionalProperties: &closed,
	}
	for _, m := range t.Members {
		s.Properties = append(s.Properties, Property{Name: m.Name, Schema: m.JSONSchema()})
	}
	return s
}

// SchemaJSON returns the indented JSON schema of t.
func (t *Table) SchemaJSON() (string, error) {
	b, err := json.MarshalIndent(t.JSONSchema(), "", "    ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// JSONSchema returns the schema of e. Enum values convert to JSON as
// their ordinal.
func (e *Enum) JSONSchema() *JSONSchema {
	s := &JSONSchema{
		Schema:      SchemaDialect,
		Title:       e.Name,
		Description: fmt.Sprintf("Enum %s of type %s: %v", e.Name, e.Base, e.Values),
		Type:        "integer",
	}
	for i := range e.Values {
		s.Enum = append(s.Enum, i)
	}
	return s
}

// JSONSchema returns the schema of the JSON form of m.
func (m *Member) JSONSchema() *JSONSchema {
	switch {
	case m.IsString:
		return &JSONSchema{Type: "string"}
	case m.IsByte() && (m.Kind == KindArray || m.Kind == KindVector):
		return &JSONSchema{Type: "string", ContentEncoding: "base64"}
	case m.Kind == KindArray:
		n := m.Count
		return &JSONSchema{Type: "array", Items: elemSchema(m.Type), MinItems: &n, MaxItems: &n}
	case m.Kind == KindVector:
		return &JSONSchema{Type: "array", Items: elemSchema(m.Type)}
	default:
		return elemSchema(m.Type)
	}
}

func elemSchema(t *TypeInfo) *JSONSchema {
	switch {
	case t.Kind == TypeTable:
		return t.Table.JSONSchema()
	case t.Kind == TypeEnum:
		return t.Enum.JSONSchema()
	case t.IsBool():
		return &JSONSchema{Type: "boolean"}
	case t.IsFloat():
		return &JSONSchema{Type: "number"}
	case t.Name == "uint128_t":
		closed := false
		return &JSONSchema{
			Type:                 "object",
			AdditionalProperties: &closed,
			Properties: Properties{
				{Name: "high", Schema: &JSONSchema{Type: "integer"}},
				{Name: "low", Schema: &JSONSchema{Type: "integer"}},
			},
		}
	default:
		return &JSONSchema{Type: "integer"}
	}
}
