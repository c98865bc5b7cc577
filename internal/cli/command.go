package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/dirsum/internal/dirstat"
)

// EnvPrefix prefixes the environment variables that mirror the flags.
const EnvPrefix = "DIRSUM"

// CLI represents the command-line interface.
type CLI struct {
	version string
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{
		version: version,
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}
}

// UsageError reports an invalid invocation. It is not printed.
type UsageError struct {
	Err error
}

// Error returns the error message for UsageError.
func (e *UsageError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *UsageError) Unwrap() error {
	return e.Err
}

func help(cmd *cobra.Command, out io.Writer) {
	fmt.Fprintln(out, heredoc.Doc(`
		dirsum reports file count, total size, file categories and the smallest
		and largest file of a directory tree.

		Usage:

			dirsum [flags]

		Without flags the current working directory is analyzed.
		With -path the directory is read from standard input.

		Modes:
		  units      one goroutine unit per top-level subdirectory (default)
		  processes  one OS process per top-level subdirectory
		  tasks      one task per subdirectory, no units
		  serial     single goroutine
		  fastwalk   flat parallel walk

		Every flag can also be set through the environment, e.g. DIRSUM_MODE=serial.

		Flags:
	`))
	fmt.Fprint(out, cmd.Flags().FlagUsages())
}

// normalizeArgs accepts the single-dash "-path" spelling.
func normalizeArgs(args []string) []string {
	out := make([]string, len(args))
	for i, arg := range args {
		if arg == "-path" {
			arg = "--path"
		}

		out[i] = arg
	}

	return out
}

// Execute runs the CLI with the provided arguments.
func (c CLI) Execute(args []string) error {
	cmd := c.command()
	cmd.SetArgs(normalizeArgs(args))

	return cmd.ExecuteContext(context.Background())
}

func (c CLI) command() *cobra.Command {
	v := viper.New()

	var promptPath bool

	cmd := &cobra.Command{
		Use:           "dirsum",
		Short:         "Directory tree statistics",
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 0 {
				return &UsageError{Err: fmt.Errorf("unexpected arguments: %v", args)}
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			options, err := resolveOptions(v)
			if err != nil {
				return &UsageError{Err: err}
			}

			options.Version, _ = cmd.Flags().GetBool("version")
			if options.Version {
				//nolint:forbidigo // Version output to console
				fmt.Fprintln(c.stdout, c.version)

				return nil
			}

			if promptPath {
				options.Path, err = prompt(c.stdin, c.stdout)
			} else {
				options.Path, err = os.Getwd()
			}

			if err != nil {
				return err
			}

			return logic(cmd.Context(), options, c.stdout, c.stderr)
		},
	}

	flags := cmd.Flags()
	flags.SortFlags = false
	flags.BoolVar(&promptPath, "path", false, "Prompt for the directory to analyze")
	flags.StringP("output", "o", "table", "Output format: json or table")
	flags.StringP("mode", "m", string(dirstat.ModeUnits), fmt.Sprintf("Traversal mode: %v", dirstat.Modes()))
	flags.Int("max-tasks", dirstat.DefaultMaxTasks, "Concurrent tasks per unit (<=0 for unbounded)")
	flags.Bool("count-dirs", false, "Count directories as entries of category 'dir'")
	flags.Bool("debug", false, "Enable debug output")
	flags.BoolP("version", "v", false, "Show version and exit")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for _, name := range []string{"output", "mode", "max-tasks", "count-dirs", "debug"} {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})
	cmd.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		help(cmd, c.stdout)
	})
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.SetOut(c.stdout)
	cmd.SetErr(c.stderr)
	cmd.AddCommand(c.internalCommand())

	return cmd
}

// resolveOptions reads flag values, falling back to the environment.
func resolveOptions(v *viper.Viper) (dirstat.Options, error) {
	allowedOutputs := []string{"table", "json"}

	options := dirstat.Options{
		Output:    strings.ToLower(v.GetString("output")),
		MaxTasks:  v.GetInt("max-tasks"),
		CountDirs: v.GetBool("count-dirs"),
		Debug:     v.GetBool("debug"),
	}

	if !slices.Contains(allowedOutputs, options.Output) {
		return options, fmt.Errorf("invalid output format %q: must be one of %v", options.Output, allowedOutputs)
	}

	mode, err := dirstat.ParseMode(v.GetString("mode"))
	if err != nil {
		return options, err
	}

	options.Mode = mode

	return options, nil
}

// prompt asks for the directory to analyze and reads one line.
func prompt(in io.Reader, out io.Writer) (string, error) {
	//nolint:forbidigo // Prompt output to console
	fmt.Fprintln(out, "Enter Target Path:")

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading path: %w", err)
	}

	path := strings.TrimRight(line, "\r\n")
	if path == "" {
		return "", errors.New("no path entered")
	}

	return path, nil
}
