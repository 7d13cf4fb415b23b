package golang

import (
	_ "embed"
	"strings"

	"github.com/syssam/zerobuf"
	"github.com/syssam/zerobuf/compiler/gen"
)

//go:embed registry.tmpl
var registryTmpl string

type (
	registryData struct {
		Header  []string
		Package string
		Tables  []registryEntry
	}
	registryEntry struct {
		ID   zerobuf.Uint128
		Name string
		Type string
	}
)

// GenRegistry implements gen.RegistryGenerator. It renders one file
// registering the tables of all graphs, which share an output directory and
// thus a package.
func (b *Backend) GenRegistry(graphs []*gen.Graph) (*gen.File, error) {
	if len(graphs) == 0 {
		return nil, gen.NewGenerationError("render", gen.RegistryFile, "no schema to register", nil)
	}
	first := graphs[0]
	data := registryData{Package: first.PackageName()}
	if first.Header != "" {
		data.Header = strings.Split(strings.TrimRight(first.Header, "\n"), "\n")
	}
	for _, g := range graphs {
		for _, t := range g.Tables {
			data.Tables = append(data.Tables, registryEntry{
				ID:   zerobuf.Uint128FromUUID(t.ID),
				Name: t.QualifiedName(),
				Type: typeName(t),
			})
		}
	}
	return b.registry.Render(gen.RegistryFile, data)
}
