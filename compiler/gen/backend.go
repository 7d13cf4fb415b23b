package gen

// File is a rendered source file. Name is relative to the output
// directory of the graph it was rendered from.
type File struct {
	Name    string
	Content []byte
}

// Backend renders the model of one schema into target-language source
// files. Backends must not write anything themselves: the generator writes
// the files once every schema of the run rendered without error.
type Backend interface {
	// Name returns the backend name, e.g. "go".
	Name() string
	// GenSchema renders the enums and tables of g.
	GenSchema(g *Graph) ([]*File, error)
}

// RegistryGenerator is implemented by backends that can render a file
// registering the tables of several schemas sharing an output directory
// with the runtime type registry. The generator detects it with a type
// assertion and uses it when FeatureRegistry is enabled.
type RegistryGenerator interface {
	GenRegistry(graphs []*Graph) (*File, error)
}
