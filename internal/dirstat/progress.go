package dirstat

import (
	"context"
	"sync/atomic"
	"time"
)

// DefaultProgressInterval is the default interval for progress updates.
const DefaultProgressInterval = 500 * time.Millisecond

// Progress counts work done so far. All methods are safe on a nil receiver.
type Progress struct {
	files      atomic.Int64
	bytes      atomic.Int64
	unreadable atomic.Int64
}

// Files returns the number of files recorded so far.
func (p *Progress) Files() int64 {
	if p == nil {
		return 0
	}

	return p.files.Load()
}

// Bytes returns the number of bytes recorded so far.
func (p *Progress) Bytes() int64 {
	if p == nil {
		return 0
	}

	return p.bytes.Load()
}

// Unreadable returns the number of directories that could not be read.
func (p *Progress) Unreadable() int64 {
	if p == nil {
		return 0
	}

	return p.unreadable.Load()
}

func (p *Progress) add(agg *Aggregate) {
	if p == nil || agg == nil {
		return
	}

	p.files.Add(agg.FileCount)
	p.bytes.Add(agg.TotalSize)
}

func (p *Progress) addEntry(e Entry) {
	if p == nil {
		return
	}

	p.files.Add(1)
	p.bytes.Add(e.Size)
}

func (p *Progress) skip(n int64) {
	if p == nil {
		return
	}

	p.unreadable.Add(n)
}

// startProgressReporter invokes hook(files, bytes) on each tick until ctx is done.
func startProgressReporter(ctx context.Context, p *Progress, hook func(int64, int64), interval time.Duration) {
	if hook == nil {
		return
	}

	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				hook(p.Files(), p.Bytes())
			case <-ctx.Done():
				return
			}
		}
	}()
}
