package dirstat

import (
	"context"
	"io/fs"
	"path/filepath"

	"github.com/charlievieth/fastwalk"
	"github.com/charmbracelet/log"
)

// FlatWalk aggregates the tree below root with a parallel fastwalk traversal,
// adding every entry straight into one sink. It reads the OS filesystem only.
func FlatWalk(ctx context.Context, root string, countDirs bool, logger *log.Logger, progress *Progress) (*Aggregate, error) {
	sink := NewSink()
	root = filepath.Clean(root)

	conf := &fastwalk.Config{
		Follow: false,
	}

	//nolint:varnamelen // d is standard for DirEntry
	err := fastwalk.Walk(conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if logger != nil {
				logger.Debug("skipping unreadable directory", "path", path, "err", err)
			}

			progress.skip(1)

			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if d.IsDir() && (!countDirs || filepath.Clean(path) == root) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil //nolint:nilerr // Entry vanished during the walk
		}

		e := entryFromInfo(path, info)
		sink.Add(e)
		progress.addEntry(e)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return sink.Take(), nil
}
