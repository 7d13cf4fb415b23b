// Package compiler is the entry point of the zerobuf schema compiler. It
// loads schema files, builds their models and runs a backend on them.
//
//	err := compiler.Generate(ctx, []string{"schema/doc.fbs"},
//		gen.WithTarget("internal/model"),
//		gen.WithFeatures(gen.FeatureSignals),
//	)
package compiler

import (
	"context"
	"errors"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/syssam/zerobuf/compiler/gen"
	"github.com/syssam/zerobuf/compiler/gen/golang"
	"github.com/syssam/zerobuf/compiler/load"
)

// LoadGraph parses the schema file at path and builds its model.
func LoadGraph(path string, c *gen.Config) (*gen.Graph, error) {
	f, err := load.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return gen.NewGraph(c, f)
}

// LoadGraphs parses the schema files in parallel and builds their models in
// the order of paths. A schema that fails is left out of the result and its
// error is joined into the returned error, so the others can still be
// generated.
func LoadGraphs(ctx context.Context, c *gen.Config, paths ...string) ([]*gen.Graph, error) {
	var (
		eg    errgroup.Group
		files = make([]*load.File, len(paths))
		errs  = make([]error, len(paths))
	)
	if c.Workers > 0 {
		eg.SetLimit(c.Workers)
	}
	for i, path := range paths {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			files[i], errs[i] = load.LoadFile(path)
			return nil
		})
	}
	_ = eg.Wait()

	// Graphs share the config and are built sequentially.
	graphs := make([]*gen.Graph, 0, len(paths))
	for i, f := range files {
		if errs[i] != nil {
			continue
		}
		g, err := gen.NewGraph(c, f)
		if err != nil {
			errs[i] = err
			continue
		}
		c.Logger.Debug("compiled schema", "path", paths[i], "enums", len(g.Enums), "tables", len(g.Tables))
		graphs = append(graphs, g)
	}
	return graphs, errors.Join(errs...)
}

// NewConfig returns a config for the given options. The Go backend is used
// unless an option sets another one.
func NewConfig(opts ...gen.Option) (*gen.Config, error) {
	return gen.NewConfig(append([]gen.Option{gen.WithBackend(golang.New())}, opts...)...)
}

// Generate compiles the schema files at paths and writes the generated
// code. Schemas that fail to compile or render produce no output; the files
// of all other schemas are written and the errors are joined.
func Generate(ctx context.Context, paths []string, opts ...gen.Option) error {
	if len(paths) == 0 {
		return gen.NewConfigError("Paths", nil, "no schema files given")
	}
	c, err := NewConfig(opts...)
	if err != nil {
		return err
	}
	g, err := gen.NewGenerator(c)
	if err != nil {
		return err
	}
	graphs, loadErr := LoadGraphs(ctx, c, paths...)
	return errors.Join(loadErr, g.Generate(ctx, graphs...))
}

// Dump compiles the schema files at paths and writes the snapshot of every
// model to w, encoded in format. YAML documents are separated by "---".
func Dump(ctx context.Context, w io.Writer, format string, paths []string, opts ...gen.Option) error {
	switch format {
	case gen.FormatJSON, gen.FormatYAML, gen.FormatMsgpack:
	default:
		return gen.NewConfigError("Dump", format, "unsupported snapshot format; use json, yaml or msgpack")
	}
	if len(paths) == 0 {
		return gen.NewConfigError("Paths", nil, "no schema files given")
	}
	c, err := NewConfig(opts...)
	if err != nil {
		return err
	}
	graphs, loadErr := LoadGraphs(ctx, c, paths...)
	for i, g := range graphs {
		data, err := g.Snapshot().Encode(format)
		if err != nil {
			return errors.Join(loadErr, err)
		}
		if i > 0 && format == gen.FormatYAML {
			if _, err := io.WriteString(w, "---\n"); err != nil {
				return err
			}
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
		if format == gen.FormatJSON {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
	}
	return loadErr
}
