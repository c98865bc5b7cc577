package dirstat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

// UnitReport is what a tier-1 unit hands back to the coordinator.
type UnitReport struct {
	// Aggregate covers the unit's whole subtree.
	Aggregate *Aggregate `json:"aggregate"`
	// Unreadable is the number of directories in the subtree that could not be read.
	Unreadable int64 `json:"unreadable"`
}

// UnitRunner walks one top-level subdirectory in isolation from its siblings.
type UnitRunner interface {
	RunUnit(ctx context.Context, dir Entry) (*UnitReport, error)
}

// InProcessRunner runs each unit on its own goroutine with a private task pool.
// Units share nothing but the coordinator's sink.
type InProcessRunner struct {
	Fs        afero.Fs
	CountDirs bool
	// MaxTasks bounds the concurrent tasks of each unit (<= 0 is unbounded).
	MaxTasks int
	Logger   *log.Logger
	Progress *Progress
}

// RunUnit walks dir with tier-2 tasks.
func (r *InProcessRunner) RunUnit(ctx context.Context, dir Entry) (*UnitReport, error) {
	var skipped atomic.Int64

	lister := NewLister(r.Fs, r.Logger)
	lister.CountDirs = r.CountDirs
	lister.OnSkip = func(string, error) {
		skipped.Add(1)
		r.Progress.skip(1)
	}

	walker := &Walker{
		Lister:   lister,
		Tasks:    NewTaskPool(r.MaxTasks),
		Progress: r.Progress,
	}

	agg, err := walker.Walk(ctx, dir)
	if err != nil {
		return nil, err
	}

	return &UnitReport{Aggregate: agg, Unreadable: skipped.Load()}, nil
}

// ProcessRunner runs each unit as a separate operating system process.
// The child writes its UnitReport as JSON to stdout.
type ProcessRunner struct {
	// Command is the executable and leading arguments. The directory is appended after "--".
	Command []string
	// Env is appended to the current environment.
	Env []string
	// Stderr receives the child's diagnostics. Defaults to os.Stderr.
	Stderr   io.Writer
	Progress *Progress
}

// DefaultUnitCommand re-executes the running binary as a unit process.
func DefaultUnitCommand(maxTasks int, countDirs, debug bool) ([]string, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("locating executable: %w", err)
	}

	cmd := []string{exe, "internal", "unit", "--max-tasks", strconv.Itoa(maxTasks)}
	if countDirs {
		cmd = append(cmd, "--count-dirs")
	}

	if debug {
		cmd = append(cmd, "--debug")
	}

	return cmd, nil
}

// RunUnit starts the unit process, waits for it, and decodes its report.
func (r *ProcessRunner) RunUnit(ctx context.Context, dir Entry) (*UnitReport, error) {
	if len(r.Command) == 0 {
		return nil, errors.New("no unit command configured")
	}

	args := append(append([]string{}, r.Command[1:]...), "--", dir.Path)

	//nolint:gosec // The command is the tool's own executable
	cmd := exec.CommandContext(ctx, r.Command[0], args...)
	cmd.Env = append(os.Environ(), r.Env...)

	var stdout bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = r.Stderr

	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting unit process: %w", err)
	}

	if err := cmd.Wait(); err != nil {
		return nil, fmt.Errorf("unit process: %w", err)
	}

	var report UnitReport
	if err := json.NewDecoder(&stdout).Decode(&report); err != nil {
		return nil, fmt.Errorf("decoding unit report: %w", err)
	}

	if report.Aggregate == nil {
		return nil, errors.New("decoding unit report: missing aggregate")
	}

	r.Progress.add(report.Aggregate)
	r.Progress.skip(report.Unreadable)

	return &report, nil
}

// ServeUnit is the entry point of a unit process: it walks path and writes the
// UnitReport as JSON to w.
func ServeUnit(ctx context.Context, opt Options, path string, w io.Writer) error {
	runner := &InProcessRunner{
		Fs:        opt.Fs,
		CountDirs: opt.CountDirs,
		MaxTasks:  opt.MaxTasks,
		Logger:    opt.Logger,
	}

	fsys := opt.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}

	report, err := runner.RunUnit(ctx, Probe(fsys, path))
	if err != nil {
		return err
	}

	if err := json.NewEncoder(w).Encode(report); err != nil {
		return fmt.Errorf("encoding unit report: %w", err)
	}

	return nil
}
