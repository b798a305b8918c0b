package state

import (
	"fmt"
	"sync"
	"time"
)

// Snapshot is the latest connectivity probe result available to the UI.
type Snapshot struct {
	Target              string // address that was probed
	Connected           bool
	Checked             bool // false until the first probe completes
	CheckedAt           time.Time
	LastError           error
	ConsecutiveFailures int
}

// Status returns the header text for the snapshot.
func (s Snapshot) Status() string {
	switch {
	case !s.Checked:
		return fmt.Sprintf("Connecting to %s...", s.Target)
	case s.Connected:
		return fmt.Sprintf("Connected to %s", s.Target)
	default:
		return fmt.Sprintf("Failed to connect to %s", s.Target)
	}
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Begin records that target is about to be probed. A change of target resets
// the previous result so stale state is never shown for a new address.
func (s *Store) Begin(target string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshot.Target == target {
		return
	}
	s.snapshot = Snapshot{Target: target}
}

// Update records a probe result for target. A nil err means connected.
// Results for a target other than the current one are dropped.
func (s *Store) Update(target string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshot.Target != "" && s.snapshot.Target != target {
		return
	}
	s.snapshot.Target = target
	s.snapshot.Checked = true
	s.snapshot.CheckedAt = time.Now()

	if err != nil {
		s.snapshot.Connected = false
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}
	s.snapshot.Connected = true
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}
