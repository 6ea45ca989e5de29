package state

import (
	"sync"
	"time"

	"github.com/five82/concierge/internal/building"
)

// OfflineAfter is the number of consecutive failed polls after which the
// backend is reported offline.
const OfflineAfter = 2

// Snapshot is the latest dashboard overview known to the UI.
type Snapshot struct {
	Overview            building.Overview
	HasOverview         bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsOffline reports whether the backend has been unreachable for several polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= OfflineAfter
}

// Store shares the overview between the poller goroutine and the UI.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	notify   []chan struct{}
}

// Update records a poll result. On error the previous overview is kept and
// the failure counted.
func (s *Store) Update(ov building.Overview, err error) {
	s.mu.Lock()
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
	} else {
		s.snapshot.Overview = ov
		s.snapshot.HasOverview = true
		s.snapshot.LastError = nil
		s.snapshot.ConsecutiveFailures = 0
	}
	s.snapshot.LastUpdated = time.Now()
	subs := s.notify
	s.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Subscribe returns a channel that receives a signal after each Update.
// Signals coalesce when the reader falls behind.
func (s *Store) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	s.notify = append(s.notify, ch)
	s.mu.Unlock()
	return ch
}
