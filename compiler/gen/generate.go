package gen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

// Generator renders graphs with a Backend and writes the resulting files.
// Rendering happens in memory first: a schema that fails to render leaves
// no file behind.
type Generator struct {
	cfg     *Config
	backend Backend
	log     *slog.Logger

	// Optional capability detected at construction.
	registryGen RegistryGenerator
}

// NewGenerator creates a generator for the backend configured in c.
func NewGenerator(c *Config) (*Generator, error) {
	if c == nil || c.Backend == nil {
		return nil, NewConfigError("Backend", nil, "no backend set: use WithBackend")
	}
	c.defaults()
	g := &Generator{
		cfg:     c,
		backend: c.Backend,
		log:     c.Logger.With("backend", c.Backend.Name()),
	}
	if rg, ok := c.Backend.(RegistryGenerator); ok {
		g.registryGen = rg
	}
	return g, nil
}

// output is a rendered file and the directory it goes to.
type output struct {
	dir  string
	file *File
}

func (o output) path() string { return filepath.Join(o.dir, o.file.Name) }

// Generate renders all graphs and writes their files. Errors of different
// graphs are joined; the files of graphs that rendered successfully are
// written regardless.
func (g *Generator) Generate(ctx context.Context, graphs ...*Graph) error {
	var (
		errs []error
		outs []output
		done []*Graph
	)
	for _, gr := range graphs {
		files, err := g.backend.GenSchema(gr)
		if err != nil {
			errs = append(errs, renderError(gr.Path, err))
			continue
		}
		for _, f := range files {
			outs = append(outs, output{dir: gr.Dir(), file: f})
		}
		done = append(done, gr)
	}
	regs, err := g.registries(done)
	if err != nil {
		errs = append(errs, err)
	}
	outs = append(outs, regs...)
	if g.cfg.Target == Stdout {
		errs = append(errs, g.print(outs))
	} else {
		errs = append(errs, g.write(ctx, outs))
	}
	return errors.Join(errs...)
}

// registries renders one registry file per output directory, or removes
// stale ones when the feature is disabled.
func (g *Generator) registries(graphs []*Graph) ([]output, error) {
	var (
		dirs  []string
		byDir = make(map[string][]*Graph)
	)
	for _, gr := range graphs {
		dir := gr.Dir()
		if _, ok := byDir[dir]; !ok {
			dirs = append(dirs, dir)
		}
		byDir[dir] = append(byDir[dir], gr)
	}
	if !g.cfg.featureEnabled(FeatureRegistry) || g.registryGen == nil {
		if g.cfg.Target == Stdout {
			return nil, nil
		}
		var errs []error
		for _, dir := range dirs {
			errs = append(errs, FeatureRegistry.cleanup(dir))
		}
		return nil, errors.Join(errs...)
	}
	var (
		outs []output
		errs []error
	)
	for _, dir := range dirs {
		f, err := g.registryGen.GenRegistry(byDir[dir])
		if err != nil {
			errs = append(errs, renderError(filepath.Join(dir, RegistryFile), err))
			continue
		}
		outs = append(outs, output{dir: dir, file: f})
	}
	return outs, errors.Join(errs...)
}

// renderError wraps a backend error. Errors that already are a
// GenerationError are returned as is.
func renderError(path string, err error) error {
	var ge *GenerationError
	if errors.As(err, &ge) {
		return err
	}
	return NewGenerationError("render", path, "", err)
}

// write writes the files in parallel.
func (g *Generator) write(ctx context.Context, outs []output) error {
	errg, ctx := errgroup.WithContext(ctx)
	errg.SetLimit(g.cfg.Workers)
	for _, o := range outs {
		errg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return g.writeFile(o)
		})
	}
	return errg.Wait()
}

// writeFile writes one rendered file to disk.
func (g *Generator) writeFile(o output) error {
	if err := os.MkdirAll(o.dir, 0o755); err != nil {
		return NewGenerationError("write", o.path(), "", err)
	}
	if err := os.WriteFile(o.path(), o.file.Content, 0o644); err != nil {
		return NewGenerationError("write", o.path(), "", err)
	}
	g.log.Info("generated file", "path", o.path(), "bytes", len(o.file.Content))
	return nil
}

// print writes all files to the configured output, in order.
func (g *Generator) print(outs []output) error {
	for _, o := range outs {
		if _, err := fmt.Fprintf(g.cfg.Output, "// %s\n%s", o.path(), o.file.Content); err != nil {
			return NewGenerationError("write", o.path(), "", err)
		}
	}
	return nil
}
