package dirstat

import (
	"context"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// TaskPool bounds the number of concurrently running tasks of one unit.
// A nil *TaskPool runs every task inline, which makes a walk serial.
type TaskPool struct {
	sem *semaphore.Weighted
}

// NewTaskPool creates a pool that runs at most limit tasks on their own goroutines.
// A limit <= 0 spawns one goroutine per task without bound.
func NewTaskPool(limit int) *TaskPool {
	if limit <= 0 {
		return &TaskPool{}
	}

	return &TaskPool{sem: semaphore.NewWeighted(int64(limit))}
}

// Group starts a set of sibling tasks whose parent joins them with Wait.
func (p *TaskPool) Group(ctx context.Context) *TaskGroup {
	if p == nil {
		return &TaskGroup{ctx: ctx}
	}

	g, gctx := errgroup.WithContext(ctx)

	return &TaskGroup{pool: p, g: g, ctx: gctx}
}

// TaskGroup is a set of sibling tasks spawned by one directory node.
type TaskGroup struct {
	pool      *TaskPool
	g         *errgroup.Group
	ctx       context.Context //nolint:containedctx // Scoped to the group's lifetime
	inlineErr error
}

// Go runs fn on its own goroutine when the pool has a free slot, and inline otherwise.
// Running inline when saturated keeps a bounded pool free of deadlock, since parents
// hold their slot while they wait for children.
func (t *TaskGroup) Go(fn func(ctx context.Context) error) {
	if t.inlineErr != nil {
		return
	}

	if t.g != nil && (t.pool.sem == nil || t.pool.sem.TryAcquire(1)) {
		t.g.Go(func() error {
			if t.pool.sem != nil {
				defer t.pool.sem.Release(1)
			}

			return fn(t.ctx)
		})

		return
	}

	t.inlineErr = fn(t.ctx)
}

// Wait blocks until every spawned task has returned and reports the first error.
func (t *TaskGroup) Wait() error {
	if t.g != nil {
		if err := t.g.Wait(); err != nil {
			return err
		}
	}

	return t.inlineErr
}
