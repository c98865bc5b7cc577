package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/dirsum/internal/dirstat"
)

func sampleStats() *dirstat.Stats {
	agg := dirstat.Leaf([]dirstat.Entry{
		{Name: "a.txt", Path: "root/a.txt", Size: 10, Category: ".txt"},
		{Name: "b.txt", Path: "root/b.txt", Size: 2048, Category: ".txt"},
		{Name: "c.log", Path: "root/sub/c.log", Size: 5, Category: ".log"},
		{Name: "Makefile", Path: "root/Makefile", Size: 7, Category: dirstat.CategoryNone},
	})

	return &dirstat.Stats{
		Aggregate:  agg,
		Root:       "root",
		Mode:       dirstat.ModeUnits,
		Units:      1,
		Unreadable: 2,
		Elapsed:    time.Second,
	}
}

func TestSortedCategories(t *testing.T) {
	t.Parallel()

	got := sortedCategories(map[string]int64{".go": 3, ".md": 1, ".c": 3, "no extension": 2})
	assert.Equal(t, []string{".c", ".go", "no extension", ".md"}, got)
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintTable(sampleStats(), &buf))

	out := buf.String()

	assert.Contains(t, out, "File Types:")
	assert.Less(t, strings.Index(out, "- .txt:"), strings.Index(out, "- .log:"))
	assert.Contains(t, out, "File Count:")
	assert.Contains(t, out, "2.0 KiB (2070 bytes)")
	assert.Contains(t, out, "'root/sub/c.log'")
	assert.Contains(t, out, "5 B (5 bytes)")
	assert.Contains(t, out, "'root/b.txt'")
	assert.Contains(t, out, "2.0 KiB (2048 bytes)")
	assert.Contains(t, out, "Unreadable directories:")
	assert.Contains(t, out, "units (1 units)")
}

func TestPrintTable_Empty(t *testing.T) {
	stats := &dirstat.Stats{Aggregate: dirstat.NewAggregate(), Mode: dirstat.ModeSerial}

	var buf bytes.Buffer
	require.NoError(t, PrintTable(stats, &buf))

	out := buf.String()
	assert.Contains(t, out, "Smallest File:")
	assert.Contains(t, out, dirstat.EmptyPath)
	assert.NotContains(t, out, "Unreadable directories:")
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintJSON(sampleStats(), &buf))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.InDelta(t, 4, decoded["file_count"], 0)
	assert.InDelta(t, 2070, decoded["total_size"], 0)
	assert.Equal(t, "units", decoded["mode"])
	assert.InDelta(t, 2, decoded["unreadable"], 0)
	assert.Equal(t, map[string]any{".txt": 2.0, ".log": 1.0, "no extension": 1.0}, decoded["histogram"])
}
