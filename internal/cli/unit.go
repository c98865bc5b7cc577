package cli

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/dirsum/internal/dirstat"
)

// internalCommand is the parent of hidden subcommands used between dirsum processes.
func (c CLI) internalCommand() *cobra.Command {
	internal := &cobra.Command{
		Use:    "internal",
		Short:  "Internal commands (not for direct use)",
		Hidden: true,
	}

	var options dirstat.Options

	unit := &cobra.Command{
		Use:   "unit <dir>",
		Short: "Analyze one top-level subdirectory and print its report as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			options.Logger = newLogger(c.stderr, options.Debug)

			return dirstat.ServeUnit(cmd.Context(), options, args[0], c.stdout)
		},
	}

	unit.Flags().IntVar(&options.MaxTasks, "max-tasks", dirstat.DefaultMaxTasks, "Concurrent tasks (<=0 for unbounded)")
	unit.Flags().BoolVar(&options.CountDirs, "count-dirs", false, "Count directories as entries")
	unit.Flags().BoolVar(&options.Debug, "debug", false, "Enable debug output")

	internal.AddCommand(unit)

	return internal
}
