package sketch

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/destrak/novedad-genomica/internal/errs"
	"github.com/destrak/novedad-genomica/internal/hll"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeMinimizerFile(t *testing.T, dir, name string, n int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	for i := 0; i < n; i++ {
		fmt.Fprintf(f, "%d\t%d\n", uint64(i)*2654435761+12345, i)
	}
	return path
}

func TestBuildFromFile(t *testing.T) {
	dir := t.TempDir()
	in := writeMinimizerFile(t, dir, "genome.txt", 5000)
	out := filepath.Join(dir, "genome.hll")

	res, err := BuildFromFile(in, 10, out)
	require.NoError(t, err)
	assert.Equal(t, out, res.OutputPath)
	assert.Greater(t, res.Cardinality, 0.0)
	assert.Equal(t, int64(9+1024), res.TheoreticalBytes)
	assert.Equal(t, res.TheoreticalBytes, res.BytesWritten)

	loaded, err := hll.Load(out)
	require.NoError(t, err)
	assert.Equal(t, byte(10), loaded.P())
}

func TestBuildFromFileMalformedLine(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(path, []byte("not-a-number\t1\n"), 0o644))

	_, err := BuildFromFile(path, 10, filepath.Join(dir, "bad.hll"))
	assert.True(t, errs.Is(err, errs.MalformedMinimizerLine))
}

func TestBuildFromFileMissingField(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(path, []byte("123\n"), 0o644))

	_, err := BuildFromFile(path, 10, filepath.Join(dir, "bad.hll"))
	assert.True(t, errs.Is(err, errs.MalformedMinimizerLine))
}

func TestBuildDir(t *testing.T) {
	dir := t.TempDir()
	outDir := t.TempDir()
	writeMinimizerFile(t, dir, "a.txt", 1000)
	writeMinimizerFile(t, dir, "b.txt", 1000)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.md"), []byte("x"), 0o644))

	var seen []string
	results, err := BuildDir(dir, outDir, 8, func(p string) { seen = append(seen, p) })
	require.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Len(t, seen, 2)

	assert.FileExists(t, filepath.Join(outDir, "a.hll"))
	assert.FileExists(t, filepath.Join(outDir, "b.hll"))
}
