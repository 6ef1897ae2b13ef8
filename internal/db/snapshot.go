package db

import (
	"sync"
	"time"
)

// SnapshotStore holds a single document and the time it was stored.
// Both are replaced together.
type SnapshotStore struct {
	mu       sync.RWMutex
	data     []byte
	storedAt time.Time
	set      bool
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

// Put replaces the stored document. The store keeps its own copy of data.
func (s *SnapshotStore) Put(data []byte, at time.Time) {
	cp := make([]byte, len(data))
	copy(cp, data)

	s.mu.Lock()
	s.data = cp
	s.storedAt = at
	s.set = true
	s.mu.Unlock()
}

// Get returns the stored document and its time; ok is false before the first Put.
func (s *SnapshotStore) Get() (data []byte, at time.Time, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.set {
		return nil, time.Time{}, false
	}
	return s.data, s.storedAt, true
}
