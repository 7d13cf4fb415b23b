package golang

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/syssam/zerobuf/compiler/gen"
)

// TestGeneratedCode generates full.fbs into a package of this module and
// runs the behaviour tests of testdata/full_test.go.txt against it.
func TestGeneratedCode(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the generated package")
	}
	goBin, err := exec.LookPath("go")
	if err != nil {
		t.Skip("go command not found")
	}
	dir, err := os.MkdirTemp(".", "_generated")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	c := &gen.Config{Features: []gen.Feature{gen.FeatureSignals, gen.FeatureRegistry}}
	g := loadGraph(t, c, "full.fbs")
	files, err := New().GenSchema(g)
	require.NoError(t, err)
	registry, err := New().GenRegistry([]*gen.Graph{g})
	require.NoError(t, err)
	for _, f := range append(files, registry) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f.Name), f.Content, 0o644))
	}
	tests, err := os.ReadFile(filepath.Join("testdata", "full_test.go.txt"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "full_test.go"), tests, 0o644))

	cmd := exec.Command(goBin, "test", "-count=1", ".")
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "%s", out)
}
