package dirstat

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// denyFs refuses to open the listed directories, like a permission error would.
type denyFs struct {
	afero.Fs
	deny map[string]bool
}

func (d denyFs) Open(name string) (afero.File, error) {
	if d.deny[filepath.Clean(name)] {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrPermission}
	}

	return d.Fs.Open(name)
}

// writeTree creates files of the given sizes and the given empty directories.
func writeTree(t *testing.T, fsys afero.Fs, files map[string]int, dirs ...string) {
	t.Helper()

	for _, dir := range dirs {
		require.NoError(t, fsys.MkdirAll(dir, 0o755))
	}

	for path, size := range files {
		require.NoError(t, fsys.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, afero.WriteFile(fsys, path, make([]byte, size), 0o644))
	}
}

// sampleTree returns a tree with several levels, categories and distinct min/max files.
func sampleTree(root string) map[string]int {
	j := func(parts ...string) string {
		return filepath.Join(append([]string{root}, parts...)...)
	}

	return map[string]int{
		j("top.md"):                      7,
		j("README"):                      3,
		j("a", "one.go"):                 120,
		j("a", "two.go"):                 80,
		j("a", "deep", "x.json"):         15,
		j("a", "deep", "deeper", "y.go"): 9,
		j("b", "notes.txt"):              33,
		j("b", "archive.tar.gz"):         999,
		j("b", "odd name. x"):            4,
		j("b", "trailing."):              5,
		j("c", "d", "e", "f", "tiny.c"):  1,
		j("c", "d", "e", "g.h"):          2,
	}
}

// sampleTotals returns the expected count, size and histogram of sampleTree.
func sampleTotals() (int64, int64, map[string]int64) {
	return 12, 1278, map[string]int64{
		".md":        1,
		CategoryNone: 3,
		".go":        3,
		".json":      1,
		".txt":       1,
		".gz":        1,
		".c":         1,
		".h":         1,
	}
}

// assertSameStats compares the order-independent parts of two aggregates.
// Min/max paths are left out: they are non-deterministic on ties.
func assertSameStats(t *testing.T, want, got *Aggregate) {
	t.Helper()

	require.NotNil(t, got)
	assert.Equal(t, want.FileCount, got.FileCount, "file count")
	assert.Equal(t, want.TotalSize, got.TotalSize, "total size")
	assert.Equal(t, want.Histogram, got.Histogram, "histogram")
	assert.Equal(t, want.Min.Size, got.Min.Size, "min size")
	assert.Equal(t, want.Max.Size, got.Max.Size, "max size")
}

// histogramSum returns the sum of the histogram counts.
func histogramSum(agg *Aggregate) int64 {
	var sum int64
	for _, n := range agg.Histogram {
		sum += n
	}

	return sum
}
