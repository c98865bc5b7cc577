package dirstat

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

// Run performs directory analysis and returns aggregated statistics.
// It validates opt.Path, then traverses it with the strategy selected by opt.Mode.
//
// Directories that cannot be read contribute nothing and are counted in
// Stats.Unreadable. Progress updates are sent to progressHook if provided.
func Run(ctx context.Context, opt Options, progressHook func(int64, int64)) (*Stats, error) {
	logger := opt.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	fsys := opt.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}

	if opt.Path == "" {
		opt.Path = "."
	}

	opt.Path = filepath.Clean(opt.Path)

	// validate path exists and is accessible
	if statInfo, err := fsys.Stat(opt.Path); err != nil {
		return nil, fmt.Errorf("accessing path %q: %w", opt.Path, err)
	} else if !statInfo.IsDir() {
		return nil, fmt.Errorf("path %q: %w", opt.Path, ErrNotDirectory)
	}

	mode, err := ParseMode(string(opt.Mode))
	if err != nil {
		return nil, err
	}

	progress := &Progress{}

	// Create child context to ensure progress reporter cleanup
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	startProgressReporter(ctx, progress, progressHook, opt.ProgressInterval)

	logger.Debug("starting analysis", "path", opt.Path, "mode", mode, "max_tasks", opt.MaxTasks)

	start := time.Now()
	root := Probe(fsys, opt.Path)

	lister := NewLister(fsys, logger)
	lister.CountDirs = opt.CountDirs
	lister.OnSkip = func(string, error) { progress.skip(1) }

	var (
		agg   *Aggregate
		units int
	)

	switch mode {
	case ModeSerial, ModeTasks:
		walker := &Walker{Lister: lister, Progress: progress}
		if mode == ModeTasks {
			walker.Tasks = NewTaskPool(opt.MaxTasks)
		}

		agg, err = walker.Walk(ctx, root)
	case ModeUnits:
		coord := &Coordinator{
			Lister:   lister,
			Progress: progress,
			Units: &InProcessRunner{
				Fs:        fsys,
				CountDirs: opt.CountDirs,
				MaxTasks:  opt.MaxTasks,
				Logger:    logger,
				Progress:  progress,
			},
		}

		agg, units, err = coord.Run(ctx, root)
	case ModeProcesses:
		command := opt.UnitCommand
		if len(command) == 0 {
			command, err = DefaultUnitCommand(opt.MaxTasks, opt.CountDirs, opt.Debug)
			if err != nil {
				return nil, err
			}
		}

		coord := &Coordinator{
			Lister:   lister,
			Progress: progress,
			Units:    &ProcessRunner{Command: command, Progress: progress},
		}

		agg, units, err = coord.Run(ctx, root)
	case ModeFastwalk:
		agg, err = FlatWalk(ctx, opt.Path, opt.CountDirs, logger, progress)
	}

	if err != nil {
		return nil, err
	}

	stats := &Stats{
		Aggregate:  agg,
		Root:       root.Path,
		Mode:       mode,
		Units:      units,
		Unreadable: progress.Unreadable(),
		Elapsed:    time.Since(start),
	}

	logger.Debug("analysis finished", "files", stats.FileCount, "units", units, "elapsed", stats.Elapsed)

	return stats, nil
}
