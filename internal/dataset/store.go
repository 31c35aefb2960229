package dataset

import (
	"context"
	"sync"

	"admindash/internal/log"
)

// Ticket identifies one reload request
type Ticket uint64

// Store holds the current snapshot. Reloads are last-write-wins: a loaded
// snapshot is accepted only if no newer reload was started in the meantime.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	issued   Ticket
	version  uint64
}

// NewStore creates a store holding initial
func NewStore(initial Snapshot) *Store {
	return &Store{snapshot: initial.Clone()}
}

// Begin starts a reload and returns its ticket
func (s *Store) Begin() Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}

// Commit installs snap if t is the latest ticket. Stale results are dropped
// and Commit reports false.
func (s *Store) Commit(t Ticket, snap Snapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t != s.issued {
		return false
	}
	s.snapshot = snap.Clone()
	s.version++
	return true
}

// Snapshot returns a copy of the current snapshot
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Clone()
}

// Version counts accepted commits
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Reload runs load under a fresh ticket and commits its result. It returns
// false without error when a newer reload superseded this one.
func (s *Store) Reload(ctx context.Context, load func(context.Context) (Snapshot, error)) (bool, error) {
	t := s.Begin()
	snap, err := load(ctx)
	if err != nil {
		log.LogWithError(err).Warn("reload failed, keeping previous snapshot")
		return false, err
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	accepted := s.Commit(t, snap)
	if !accepted {
		log.LogWithFields(log.F("ticket", uint64(t))).Debug("discarding stale reload")
	}
	return accepted, nil
}
