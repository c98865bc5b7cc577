package dirstat

import (
	"maps"
	"math"
)

// EmptyPath is the path recorded for a min/max slot that has not seen a file yet.
const EmptyPath = "empty"

// FileRef represents a single file path and size.
type FileRef struct {
	// Path is the file path.
	Path string `json:"path"`
	// Size is the size in bytes.
	Size int64 `json:"size"`
}

// Empty reports whether no file has been recorded in the slot.
func (f FileRef) Empty() bool {
	return f.Path == EmptyPath && (f.Size == 0 || f.Size == math.MaxInt64)
}

// Aggregate holds mergeable statistics for a set of files.
//
// The zero value is not usable; NewAggregate returns the identity element for Merge.
type Aggregate struct {
	// FileCount is the number of files seen.
	FileCount int64 `json:"file_count"`
	// TotalSize is the cumulative size of all files seen.
	TotalSize int64 `json:"total_size"`
	// Histogram maps categories to file counts.
	Histogram map[string]int64 `json:"histogram"`
	// Min is the smallest file seen.
	Min FileRef `json:"min_file"`
	// Max is the largest file seen.
	Max FileRef `json:"max_file"`
}

// NewAggregate returns an aggregate that has seen no files.
func NewAggregate() *Aggregate {
	return &Aggregate{
		Histogram: make(map[string]int64),
		Min:       FileRef{Path: EmptyPath, Size: math.MaxInt64},
		Max:       FileRef{Path: EmptyPath, Size: 0},
	}
}

// Leaf folds the given entries into a fresh aggregate.
// On equal sizes the entry encountered first keeps the min/max slot.
func Leaf(files []Entry) *Aggregate {
	agg := NewAggregate()
	for _, f := range files {
		agg.Add(f)
	}

	return agg
}

// Add records a single entry.
func (a *Aggregate) Add(e Entry) {
	if a.Histogram == nil {
		a.Histogram = make(map[string]int64)
	}

	a.FileCount++
	a.TotalSize += e.Size
	a.Histogram[e.Category]++

	if e.Size > a.Max.Size {
		a.Max = FileRef{Path: e.Path, Size: e.Size}
	}

	if e.Size < a.Min.Size {
		a.Min = FileRef{Path: e.Path, Size: e.Size}
	}
}

// Merge folds src into a. The receiver keeps its min/max record when sizes tie,
// so the recorded path of a tie depends on merge order.
func (a *Aggregate) Merge(src *Aggregate) {
	if src == nil {
		return
	}

	if a.Histogram == nil {
		a.Histogram = make(map[string]int64, len(src.Histogram))
	}

	a.FileCount += src.FileCount
	a.TotalSize += src.TotalSize

	for cat, n := range src.Histogram {
		a.Histogram[cat] += n
	}

	if src.Max.Size > a.Max.Size {
		a.Max = src.Max
	}

	if src.Min.Size < a.Min.Size {
		a.Min = src.Min
	}
}

// Clone returns a deep copy of a.
func (a *Aggregate) Clone() *Aggregate {
	c := *a
	c.Histogram = maps.Clone(a.Histogram)

	if c.Histogram == nil {
		c.Histogram = make(map[string]int64)
	}

	return &c
}
