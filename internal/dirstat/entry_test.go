package dirstat

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

func TestCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want string
	}{
		{"main.go", ".go"},
		{"archive.tar.gz", ".gz"},
		{"README", CategoryNone},
		{"trailing.", CategoryNone},
		{"spaced. ext", CategoryNone},
		{"tabbed.e\txt", CategoryNone},
		{"my file.txt", ".txt"},
		{".bashrc", ".bashrc"},
		{"", CategoryNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, category(tt.name))
		})
	}
}

func TestProbe(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeTree(t, fsys, map[string]int{"/root/a.txt": 10}, "/root/sub")

	t.Run("file", func(t *testing.T) {
		e := Probe(fsys, "/root/a.txt")
		assert.Equal(t, Entry{Name: "a.txt", Path: "/root/a.txt", Size: 10, Category: ".txt"}, e)
		assert.False(t, e.IsDir())
	})

	t.Run("directory", func(t *testing.T) {
		e := Probe(fsys, "/root/sub")
		assert.Equal(t, "sub", e.Name)
		assert.Equal(t, CategoryDir, e.Category)
		assert.True(t, e.IsDir())
	})

	t.Run("directory with trailing slash keeps it in the name", func(t *testing.T) {
		e := Probe(fsys, "/root/sub/")
		assert.Equal(t, "sub/", e.Name)
		assert.Equal(t, "/root/sub", e.Path)
		assert.True(t, e.IsDir())
	})

	t.Run("missing path", func(t *testing.T) {
		e := Probe(fsys, "/root/missing.log")
		assert.Equal(t, Entry{Name: "missing.log", Path: "/root/missing.log", Category: ".log"}, e)
	})
}
