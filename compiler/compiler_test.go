package compiler

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/zerobuf/compiler/gen"
	"github.com/syssam/zerobuf/compiler/load"
)

// writeSchema writes src to name in dir and returns its path.
func writeSchema(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestLoadGraph(t *testing.T) {
	g, err := LoadGraph(filepath.Join("load", "testdata", "full.fbs"), &gen.Config{})
	require.NoError(t, err)
	assert.Len(t, g.Tables, 4)
	assert.Equal(t, "Doc", g.Root.Name)

	_, err = LoadGraph(filepath.Join("load", "testdata", "missing.fbs"), &gen.Config{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadGraphs(t *testing.T) {
	dir := t.TempDir()
	a := writeSchema(t, dir, "a.fbs", "table A { x: int; }")
	bad := writeSchema(t, dir, "bad.fbs", "table B { x: int }")
	c := writeSchema(t, dir, "c.fbs", "table C { y: Missing; }")
	d := writeSchema(t, dir, "d.fbs", "table D { z: float; }")

	cfg, err := NewConfig(gen.WithWorkers(2))
	require.NoError(t, err)
	graphs, err := LoadGraphs(context.Background(), cfg, a, bad, c, d)
	require.Error(t, err)
	assert.True(t, load.IsSyntaxError(err))
	assert.True(t, gen.IsSchemaError(err))
	assert.ErrorIs(t, err, gen.ErrUnresolvedType)

	require.Len(t, graphs, 2)
	assert.Equal(t, "a", graphs[0].BaseName())
	assert.Equal(t, "d", graphs[1].BaseName())

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		graphs, err := LoadGraphs(ctx, cfg, a)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, graphs)
	})
}

func TestNewConfig(t *testing.T) {
	c, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, "go", c.Backend.Name())
	assert.Equal(t, gen.DefaultExtension, c.Extension)

	_, err = NewConfig(gen.WithPackage("a/b"))
	assert.True(t, gen.IsConfigError(err))
}

func TestGenerate(t *testing.T) {
	t.Run("writes declaration and implementation", func(t *testing.T) {
		in, out := t.TempDir(), t.TempDir()
		path := writeSchema(t, in, "point.fbs", "namespace geo; table Point { x: int; y: int; }")
		require.NoError(t, Generate(context.Background(), []string{path}, gen.WithTarget(out)))

		decl, err := os.ReadFile(filepath.Join(out, "point.go"))
		require.NoError(t, err)
		assert.Contains(t, string(decl), "package geo")
		assert.Contains(t, string(decl), "type Point struct {")
		assert.FileExists(t, filepath.Join(out, "point_impl.go"))
		assert.NoFileExists(t, filepath.Join(out, gen.RegistryFile))
	})

	t.Run("alongside the input", func(t *testing.T) {
		in := t.TempDir()
		path := writeSchema(t, in, "point.fbs", "table Point { x: int; }")
		require.NoError(t, Generate(context.Background(), []string{path}, gen.WithExtension(gen.InlineExtension)))
		assert.FileExists(t, filepath.Join(in, "point.go"))
		assert.NoFileExists(t, filepath.Join(in, "point_impl.go"))
	})

	t.Run("registry", func(t *testing.T) {
		in, out := t.TempDir(), t.TempDir()
		a := writeSchema(t, in, "a.fbs", "namespace m; table A { x: int; }")
		b := writeSchema(t, in, "b.fbs", "namespace m; table B { y: int; }")
		require.NoError(t, Generate(context.Background(), []string{a, b},
			gen.WithTarget(out),
			gen.WithFeatures(gen.FeatureRegistry),
		))
		content, err := os.ReadFile(filepath.Join(out, gen.RegistryFile))
		require.NoError(t, err)
		assert.Contains(t, string(content), `"m::A"`)
		assert.Contains(t, string(content), `"m::B"`)
	})

	t.Run("failing schema produces no output", func(t *testing.T) {
		in, out := t.TempDir(), t.TempDir()
		good := writeSchema(t, in, "good.fbs", "table Good { x: int; }")
		bad := writeSchema(t, in, "bad.fbs", "table Bad { v: [int:1]; }")
		err := Generate(context.Background(), []string{good, bad}, gen.WithTarget(out))
		require.Error(t, err)
		assert.True(t, gen.IsValidationError(err))
		assert.FileExists(t, filepath.Join(out, "good.go"))
		assert.NoFileExists(t, filepath.Join(out, "bad.go"))
		assert.NoFileExists(t, filepath.Join(out, "bad_impl.go"))
	})

	t.Run("stdout", func(t *testing.T) {
		in := t.TempDir()
		path := writeSchema(t, in, "point.fbs", "table Point { x: int; }")
		var buf bytes.Buffer
		require.NoError(t, Generate(context.Background(), []string{path},
			gen.WithTarget(gen.Stdout),
			gen.WithOutput(&buf),
		))
		assert.Contains(t, buf.String(), "// "+filepath.Join(in, "point.go")+"\n")
		assert.Contains(t, buf.String(), "func (t *Point) SetX(v int32)")
		assert.NoFileExists(t, filepath.Join(in, "point.go"))
	})

	t.Run("no inputs", func(t *testing.T) {
		err := Generate(context.Background(), nil)
		assert.True(t, gen.IsConfigError(err))
	})

	t.Run("invalid option", func(t *testing.T) {
		err := Generate(context.Background(), []string{"x.fbs"}, gen.WithWorkers(0))
		assert.True(t, gen.IsConfigError(err))
	})
}

func TestDump(t *testing.T) {
	in := t.TempDir()
	a := writeSchema(t, in, "a.fbs", "table A { x: int; }")
	b := writeSchema(t, in, "b.fbs", "table B { s: string; }")

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Dump(context.Background(), &buf, gen.FormatJSON, []string{a, b}))
		assert.Equal(t, 2, strings.Count(buf.String(), `"static_size"`))
		assert.Contains(t, buf.String(), `"static_size": 8`)
		assert.Contains(t, buf.String(), `"static_size": 20`)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Dump(context.Background(), &buf, gen.FormatYAML, []string{a, b}))
		docs := strings.Split(buf.String(), "---\n")
		require.Len(t, docs, 2)
		s, err := gen.DecodeSnapshot(gen.FormatYAML, []byte(docs[1]))
		require.NoError(t, err)
		assert.Equal(t, "B", s.Tables[0].Name)
		assert.Equal(t, 1, s.Tables[0].NumDynamics)
	})

	t.Run("msgpack", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Dump(context.Background(), &buf, gen.FormatMsgpack, []string{a}))
		s, err := gen.DecodeSnapshot(gen.FormatMsgpack, buf.Bytes())
		require.NoError(t, err)
		assert.Equal(t, "A", s.Tables[0].Name)
	})

	t.Run("unknown format", func(t *testing.T) {
		err := Dump(context.Background(), &bytes.Buffer{}, "toml", []string{a})
		assert.True(t, gen.IsConfigError(err))
	})

	t.Run("failing schema", func(t *testing.T) {
		bad := writeSchema(t, in, "bad.fbs", "table {")
		var buf bytes.Buffer
		err := Dump(context.Background(), &buf, gen.FormatJSON, []string{a, bad})
		require.Error(t, err)
		var syntaxErr *load.SyntaxError
		assert.True(t, errors.As(err, &syntaxErr))
		assert.Contains(t, buf.String(), `"name": "A"`)
	})
}
