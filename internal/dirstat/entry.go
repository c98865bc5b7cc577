package dirstat

import (
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/spf13/afero"
)

const (
	// CategoryDir is the category of a directory entry.
	CategoryDir = "dir"
	// CategoryNone is the category of a file without a valid extension.
	CategoryNone = "no extension"
)

// Entry describes one filesystem entry.
type Entry struct {
	// Name is the display name. Directories keep a trailing separator when the probed path had one.
	Name string `json:"name"`
	// Path is the full path, without a trailing separator.
	Path string `json:"path"`
	// Size is the size in bytes as reported by the entry's metadata.
	Size int64 `json:"size"`
	// Category is CategoryDir, an extension including its leading period, or CategoryNone.
	Category string `json:"category"`
}

// IsDir reports whether the entry is a directory.
func (e Entry) IsDir() bool {
	return e.Category == CategoryDir
}

// Probe reads the metadata of path and returns its Entry.
// Symbolic links are not followed when the filesystem supports Lstat.
// A failed metadata read yields a zero-size file entry.
func Probe(fsys afero.Fs, path string) Entry {
	trailing := len(path) > 1 && os.IsPathSeparator(path[len(path)-1])
	if trailing {
		path = strings.TrimRight(path, string(filepath.Separator)+"/")
		if path == "" {
			path = string(filepath.Separator)
		}
	}

	info, err := lstat(fsys, path)
	if err != nil {
		name := filepath.Base(path)

		return Entry{Name: name, Path: path, Category: category(name)}
	}

	e := entryFromInfo(path, info)
	if trailing && e.IsDir() {
		e.Name += "/"
	}

	return e
}

// lstat prefers LstatIfPossible so that symlinks are reported, not followed.
func lstat(fsys afero.Fs, path string) (os.FileInfo, error) {
	if l, ok := fsys.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(path)

		return info, err
	}

	return fsys.Stat(path)
}

// entryFromInfo builds an Entry from already-read metadata.
func entryFromInfo(path string, info os.FileInfo) Entry {
	name := filepath.Base(path)

	if info.IsDir() {
		return Entry{Name: name, Path: path, Size: info.Size(), Category: CategoryDir}
	}

	return Entry{Name: name, Path: path, Size: info.Size(), Category: category(name)}
}

// category extracts the extension of a file name, including the leading period.
// The text after the last period must be non-empty and free of whitespace.
func category(name string) string {
	idx := strings.LastIndexByte(name, '.')
	if idx < 0 || idx == len(name)-1 {
		return CategoryNone
	}

	ext := name[idx:]
	if strings.ContainsFunc(ext, unicode.IsSpace) {
		return CategoryNone
	}

	return ext
}
