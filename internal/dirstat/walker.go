package dirstat

import "context"

// NodeState is the traversal state of one directory node.
type NodeState int

// Directory node states, in transition order. A node without subdirectories
// goes from Scanned straight to Done.
const (
	Discovered NodeState = iota
	Scanned
	SpawningChildren
	AwaitingChildren
	MergingUp
	Done
)

// String returns the state name.
func (s NodeState) String() string {
	switch s {
	case Discovered:
		return "discovered"
	case Scanned:
		return "scanned"
	case SpawningChildren:
		return "spawning"
	case AwaitingChildren:
		return "awaiting"
	case MergingUp:
		return "merging"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// Walker computes the aggregate of a directory subtree.
//
// The walk itself does not care how children run: with a nil Tasks pool every
// subdirectory is walked on the caller's goroutine, otherwise each one becomes a task.
type Walker struct {
	// Lister reads directories.
	Lister *Lister
	// Tasks runs child walks. Nil means serial.
	Tasks *TaskPool
	// Progress receives the leaf aggregate of every directory. Optional.
	Progress *Progress
	// Trace observes node state transitions. Optional, called concurrently.
	Trace func(path string, state NodeState)
}

// Walk returns the aggregate of dir and everything below it.
// It returns only after every child walk has returned.
func (w *Walker) Walk(ctx context.Context, dir Entry) (*Aggregate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	w.trace(dir.Path, Discovered)

	files, subdirs := w.Lister.List(dir)
	leaf := Leaf(files)
	w.Progress.add(leaf)

	w.trace(dir.Path, Scanned)

	if len(subdirs) == 0 {
		w.trace(dir.Path, Done)

		return leaf, nil
	}

	node := &Sink{agg: leaf}

	w.trace(dir.Path, SpawningChildren)

	group := w.Tasks.Group(ctx)
	for _, sub := range subdirs {
		group.Go(func(ctx context.Context) error {
			agg, err := w.Walk(ctx, sub)
			if err != nil {
				return err
			}

			node.Merge(agg)

			return nil
		})
	}

	w.trace(dir.Path, AwaitingChildren)

	if err := group.Wait(); err != nil {
		return nil, err
	}

	w.trace(dir.Path, MergingUp)

	agg := node.Take()

	w.trace(dir.Path, Done)

	return agg, nil
}

func (w *Walker) trace(path string, state NodeState) {
	if w.Trace != nil {
		w.Trace(path, state)
	}
}
