package dirstat

import "sync"

// Sink is an aggregate shared by concurrent participants.
// Every mutation happens inside Merge, which holds the lock for exactly one merge.
type Sink struct {
	mu  sync.Mutex
	agg *Aggregate
}

// NewSink creates a sink holding the identity aggregate.
func NewSink() *Sink {
	return &Sink{agg: NewAggregate()}
}

// Merge folds agg into the sink.
func (s *Sink) Merge(agg *Aggregate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.agg.Merge(agg)
}

// Add records a single entry.
func (s *Sink) Add(e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.agg.Add(e)
}

// Snapshot returns a copy of the current aggregate.
func (s *Sink) Snapshot() *Aggregate {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.agg.Clone()
}

// Take hands the aggregate to the caller and resets the sink to the identity.
// It must only be called once all participants have finished.
func (s *Sink) Take() *Aggregate {
	s.mu.Lock()
	defer s.mu.Unlock()

	agg := s.agg
	s.agg = NewAggregate()

	return agg
}
