package state

import (
	"fmt"
	"sync"
	"time"
)

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu        sync.RWMutex
	snapshot  Snapshot
	listeners []func(Snapshot)
}

// Publish replaces the stored records and aggregates with snap, which must
// come from Build. Results of a cycle older than the last published one are
// dropped and Publish returns false.
func (s *Store) Publish(cycle uint64, snap Snapshot) bool {
	s.mu.Lock()
	if s.snapshot.HasData && cycle < s.snapshot.Cycle {
		s.mu.Unlock()
		return false
	}

	snap.Cycle = cycle
	snap.HasData = true
	snap.LastError = nil
	snap.ConsecutiveFailures = 0
	if snap.LastUpdated.IsZero() {
		snap.LastUpdated = time.Now()
	}
	s.snapshot = snap
	listeners, out := s.listeners, s.copyLocked()
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(out)
	}
	return true
}

// Fail records a failed cycle. Records and aggregates are kept. A failure
// from a cycle older than the last published one is ignored and Fail
// returns false.
func (s *Store) Fail(cycle uint64, err error) bool {
	s.mu.Lock()
	if s.snapshot.HasData && cycle < s.snapshot.Cycle {
		s.mu.Unlock()
		return false
	}
	s.snapshot.LastError = err
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures++
	listeners, out := s.listeners, s.copyLocked()
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(out)
	}
	return true
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyLocked()
}

// Subscribe registers fn to receive a copy of every new snapshot.
func (s *Store) Subscribe(fn func(Snapshot)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Store) copyLocked() Snapshot {
	snap := s.snapshot
	snap.Records = cloneRecords(s.snapshot.Records)
	snap.Occurrence = cloneOccurrence(s.snapshot.Occurrence)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}
