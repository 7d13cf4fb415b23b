package gen

import (
	"encoding/json"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Snapshot formats.
const (
	FormatJSON    = "json"
	FormatYAML    = "yaml"
	FormatMsgpack = "msgpack"
)

// Snapshot is a serializable dump of a Graph, for inspecting the layout the
// compiler computed or feeding it to other tools.
type Snapshot struct {
	Path      string          `json:"path,omitempty" yaml:"path,omitempty" msgpack:"path,omitempty"`
	Namespace []string        `json:"namespace,omitempty" yaml:"namespace,omitempty" msgpack:"namespace,omitempty"`
	Root      string          `json:"root,omitempty" yaml:"root,omitempty" msgpack:"root,omitempty"`
	Enums     []EnumSnapshot  `json:"enums,omitempty" yaml:"enums,omitempty" msgpack:"enums,omitempty"`
	Tables    []TableSnapshot `json:"tables" yaml:"tables" msgpack:"tables"`
}

// EnumSnapshot is the dump of an enum.
type EnumSnapshot struct {
	Name   string   `json:"name" yaml:"name" msgpack:"name"`
	Base   string   `json:"base" yaml:"base" msgpack:"base"`
	Values []string `json:"values" yaml:"values" msgpack:"values"`
}

// TableSnapshot is the dump of a laid out table.
type TableSnapshot struct {
	Name        string           `json:"name" yaml:"name" msgpack:"name"`
	ID          string           `json:"id" yaml:"id" msgpack:"id"`
	StaticSize  int              `json:"static_size" yaml:"static_size" msgpack:"static_size"`
	NumDynamics int              `json:"num_dynamics" yaml:"num_dynamics" msgpack:"num_dynamics"`
	Empty       bool             `json:"empty,omitempty" yaml:"empty,omitempty" msgpack:"empty,omitempty"`
	Members     []MemberSnapshot `json:"members,omitempty" yaml:"members,omitempty" msgpack:"members,omitempty"`
}

// MemberSnapshot is the dump of a member.
type MemberSnapshot struct {
	Name     string `json:"name" yaml:"name" msgpack:"name"`
	Kind     string `json:"kind" yaml:"kind" msgpack:"kind"`
	Type     string `json:"type" yaml:"type" msgpack:"type"`
	ElemSize int    `json:"elem_size" yaml:"elem_size" msgpack:"elem_size"`
	Offset   int    `json:"offset" yaml:"offset" msgpack:"offset"`
	Index    int    `json:"index" yaml:"index" msgpack:"index"`
	Count    int    `json:"count,omitempty" yaml:"count,omitempty" msgpack:"count,omitempty"`
	Default  string `json:"default,omitempty" yaml:"default,omitempty" msgpack:"default,omitempty"`
}

// Snapshot returns the dump of g.
func (g *Graph) Snapshot() *Snapshot {
	s := &Snapshot{Path: g.Path, Namespace: g.Namespace, Tables: []TableSnapshot{}}
	if g.Root != nil {
		s.Root = g.Root.Name
	}
	for _, e := range g.Enums {
		s.Enums = append(s.Enums, EnumSnapshot{Name: e.Name, Base: e.Base, Values: e.Values})
	}
	for _, t := range g.Tables {
		ts := TableSnapshot{
			Name:        t.Name,
			ID:          t.ID.String(),
			StaticSize:  t.StaticSize,
			NumDynamics: t.NumDynamics,
			Empty:       t.Empty,
		}
		for _, m := range t.Members {
			ms := MemberSnapshot{
				Name:     m.Name,
				Kind:     m.Kind.String(),
				Type:     m.Type.Name,
				ElemSize: m.ElemSize,
				Offset:   m.Offset,
				Index:    m.Index,
				Count:    m.Count,
			}
			if m.Default != nil {
				ms.Default = m.Default.Text
			}
			ts.Members = append(ts.Members, ms)
		}
		s.Tables = append(s.Tables, ts)
	}
	return s
}

// Encode serializes the snapshot in the given format.
func (s *Snapshot) Encode(format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(s, "", "  ")
	case FormatYAML:
		return yaml.Marshal(s)
	case FormatMsgpack:
		return msgpack.Marshal(s)
	default:
		return nil, NewConfigError("Dump", format, "unsupported snapshot format; use json, yaml or msgpack")
	}
}

// DecodeSnapshot parses a snapshot written by Encode.
func DecodeSnapshot(format string, data []byte) (*Snapshot, error) {
	s := &Snapshot{}
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, s)
	case FormatYAML:
		err = yaml.Unmarshal(data, s)
	case FormatMsgpack:
		err = msgpack.Unmarshal(data, s)
	default:
		return nil, NewConfigError("Dump", format, "unsupported snapshot format; use json, yaml or msgpack")
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}
