package cli

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/dirsum/internal/dirstat"
)

const (
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 2
)

// PrintJSON outputs statistics in JSON format.
func PrintJSON(stats *dirstat.Stats, writer io.Writer) error {
	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

// sortedCategories orders categories by count, largest first, then by name.
func sortedCategories(histogram map[string]int64) []string {
	cats := make([]string, 0, len(histogram))
	for cat := range histogram {
		cats = append(cats, cat)
	}

	slices.SortFunc(cats, func(a, b string) int {
		if c := cmp.Compare(histogram[b], histogram[a]); c != 0 {
			return c
		}

		return cmp.Compare(a, b)
	})

	return cats
}

// formatFile renders a min/max slot.
func formatFile(f dirstat.FileRef) (string, string) {
	if f.Empty() {
		return dirstat.EmptyPath, "-"
	}

	//nolint:gosec // Sizes are never negative
	return "'" + f.Path + "'", fmt.Sprintf("%s (%d bytes)", humanize.IBytes(uint64(f.Size)), f.Size)
}

// PrintTable outputs statistics in human-readable table format.
//
//nolint:forbidigo // This function prints output to the console.
func PrintTable(stats *dirstat.Stats, writer io.Writer) error {
	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	fmt.Fprintln(w, "File Types:\t\t")

	for _, cat := range sortedCategories(stats.Histogram) {
		fmt.Fprintf(w, "  - %s:\t%d\n", cat, stats.Histogram[cat])
	}

	minPath, minSize := formatFile(stats.Min)
	maxPath, maxSize := formatFile(stats.Max)

	fmt.Fprintln(w, "\nStats:\t\t")
	fmt.Fprintf(w, "File Count:\t%d\n", stats.FileCount)
	//nolint:gosec // Sizes are never negative
	fmt.Fprintf(w, "Total Size:\t%s (%d bytes)\n", humanize.IBytes(uint64(stats.TotalSize)), stats.TotalSize)
	fmt.Fprintf(w, "Smallest File:\t%s\t%s\n", minPath, minSize)
	fmt.Fprintf(w, "Biggest File:\t%s\t%s\n", maxPath, maxSize)

	if stats.Unreadable > 0 {
		fmt.Fprintf(w, "Unreadable directories:\t%d\n", stats.Unreadable)
	}

	fmt.Fprintf(w, "\nMode:\t%s (%d units)\n", stats.Mode, stats.Units)
	fmt.Fprintf(w, "Elapsed:\t%v\n", stats.Elapsed)

	return w.Flush()
}
