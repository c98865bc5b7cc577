package dirstat

import (
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

// Lister enumerates the immediate children of a directory.
type Lister struct {
	// Fs is the filesystem to read. Defaults to the OS filesystem.
	Fs afero.Fs
	// CountDirs includes subdirectories in the file list under CategoryDir.
	CountDirs bool
	// Logger receives a debug record for every directory that cannot be read.
	Logger *log.Logger
	// OnSkip is called for every directory that cannot be read.
	OnSkip func(path string, err error)
}

// NewLister creates a lister over fsys.
func NewLister(fsys afero.Fs, logger *log.Logger) *Lister {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}

	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Lister{Fs: fsys, Logger: logger}
}

// List returns the file entries and the subdirectory entries directly below dir.
// A directory that cannot be read yields two empty lists.
func (l *Lister) List(dir Entry) (files, dirs []Entry) {
	infos, err := afero.ReadDir(l.Fs, dir.Path)
	if err != nil {
		if l.Logger != nil {
			l.Logger.Debug("skipping unreadable directory", "path", dir.Path, "err", err)
		}

		if l.OnSkip != nil {
			l.OnSkip(dir.Path, err)
		}

		return nil, nil
	}

	files = make([]Entry, 0, len(infos))

	for _, info := range infos {
		name := info.Name()
		if name == "." || name == ".." {
			continue
		}

		e := entryFromInfo(filepath.Join(dir.Path, name), info)
		if e.IsDir() {
			dirs = append(dirs, e)

			if !l.CountDirs {
				continue
			}
		}

		files = append(files, e)
	}

	return files, dirs
}
