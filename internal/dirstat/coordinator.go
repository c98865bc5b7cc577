package dirstat

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Coordinator runs one tier-1 unit per top-level subdirectory and merges
// every unit's result into a single shared sink.
type Coordinator struct {
	// Lister reads the root directory.
	Lister *Lister
	// Units walks each top-level subdirectory.
	Units UnitRunner
	// Progress receives the root's own leaf aggregate. Optional.
	Progress *Progress
}

// Run returns the aggregate of root and the number of units started.
// A failing unit fails the run, and no aggregate is returned.
func (c *Coordinator) Run(ctx context.Context, root Entry) (*Aggregate, int, error) {
	shared := NewSink()

	files, subdirs := c.Lister.List(root)
	leaf := Leaf(files)
	c.Progress.add(leaf)
	shared.Merge(leaf)

	g, gctx := errgroup.WithContext(ctx)

	for _, sub := range subdirs {
		g.Go(func() error {
			report, err := c.Units.RunUnit(gctx, sub)
			if err != nil {
				return fmt.Errorf("unit %q: %w", sub.Path, err)
			}

			shared.Merge(report.Aggregate)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, len(subdirs), err
	}

	return shared.Take(), len(subdirs), nil
}
