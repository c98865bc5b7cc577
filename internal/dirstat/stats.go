package dirstat

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

// DefaultMaxTasks is the default bound on concurrent tasks per unit.
const DefaultMaxTasks = 128

var (
	// ErrNotDirectory is returned when the analyzed path is not a directory.
	ErrNotDirectory = errors.New("not a directory")
	// ErrUnknownMode is returned for an unrecognized traversal mode.
	ErrUnknownMode = errors.New("unknown mode")
)

// Mode selects how the tree is traversed.
type Mode string

const (
	// ModeSerial walks the whole tree on one goroutine.
	ModeSerial Mode = "serial"
	// ModeTasks walks the tree with one task pool and no tier-1 units.
	ModeTasks Mode = "tasks"
	// ModeUnits runs one goroutine unit per top-level subdirectory, each with its own task pool.
	ModeUnits Mode = "units"
	// ModeProcesses runs one OS process per top-level subdirectory.
	ModeProcesses Mode = "processes"
	// ModeFastwalk runs a flat parallel walk.
	ModeFastwalk Mode = "fastwalk"
)

// Modes lists the supported modes.
func Modes() []Mode {
	return []Mode{ModeSerial, ModeTasks, ModeUnits, ModeProcesses, ModeFastwalk}
}

// ParseMode parses a mode name. The empty string selects ModeUnits.
func ParseMode(s string) (Mode, error) {
	if s == "" {
		return ModeUnits, nil
	}

	m := Mode(strings.ToLower(s))
	if !slices.Contains(Modes(), m) {
		return "", fmt.Errorf("%w %q: must be one of %v", ErrUnknownMode, s, Modes())
	}

	return m, nil
}

// Stats holds the result of a run.
type Stats struct {
	*Aggregate

	// Root is the analyzed directory.
	Root string `json:"root"`
	// Mode is the traversal mode used.
	Mode Mode `json:"mode"`
	// Units is the number of tier-1 units started.
	Units int `json:"units"`
	// Unreadable is the number of directories that could not be read.
	Unreadable int64 `json:"unreadable"`
	// Elapsed is the total time taken for analysis.
	Elapsed time.Duration `json:"elapsed"`
}

// Options configures directory analysis and CLI behavior.
type Options struct {
	// Path is the directory to analyze.
	Path string
	// Mode selects the traversal strategy.
	Mode Mode
	// MaxTasks bounds concurrent tasks per unit (<= 0 is unbounded).
	MaxTasks int
	// CountDirs counts directories as entries under CategoryDir.
	CountDirs bool
	// UnitCommand overrides the process started per unit in ModeProcesses.
	UnitCommand []string
	// ProgressInterval controls progress callback cadence.
	ProgressInterval time.Duration
	// Fs is the filesystem to read. Defaults to the OS filesystem.
	// ModeProcesses and ModeFastwalk always read the OS filesystem.
	Fs afero.Fs
	// Logger receives diagnostics. Defaults to a discarding logger.
	Logger *log.Logger
	// Debug indicates whether debug output is enabled.
	Debug bool
	// Output represents output format (table or json).
	Output string
	// Version indicates whether to show version and exit.
	Version bool
}
