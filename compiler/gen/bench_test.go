package gen_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/syssam/zerobuf/compiler/gen"
	"github.com/syssam/zerobuf/compiler/load"
)

func BenchmarkNewGraph(b *testing.B) {
	f, err := load.LoadFile(filepath.Join("..", "load", "testdata", "full.fbs"))
	require.NoError(b, err)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := gen.NewGraph(&gen.Config{}, f)
		require.NoError(b, err)
	}
}

func BenchmarkSchemaJSON(b *testing.B) {
	f, err := load.LoadFile(filepath.Join("..", "load", "testdata", "full.fbs"))
	require.NoError(b, err)
	g, err := gen.NewGraph(&gen.Config{}, f)
	require.NoError(b, err)
	doc, ok := g.Table("Doc")
	require.True(b, ok)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := doc.SchemaJSON()
		require.NoError(b, err)
	}
}
