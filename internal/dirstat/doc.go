// Package dirstat provides directory statistics collection and analysis.
//
// It computes the file count, total size, per-category histogram and the
// smallest and largest file of a directory tree. Work is split in two tiers:
// one isolated unit per top-level subdirectory (a goroutine or an OS process),
// and inside each unit one task per subdirectory, bounded by a TaskPool.
// Partial results meet in a Sink, whose lock is held for a single merge.
//
// Merge is commutative and associative on counts, sizes, histograms and the
// min/max sizes. When two files tie for smallest or largest, which path is
// reported depends on scheduling and is not deterministic.
package dirstat
