package cache

import (
	"sync"
	"time"
)

// realTimeEntry records a value and when it was written. There is no per-key
// TTL: the acceptable age is decided by each reader.
type realTimeEntry struct {
	value      any
	insertedAt time.Time
}

// RealTimeStore holds values whose freshness window varies per reader: a
// live view may demand data newer than a second while a fallback read during
// an outage accepts anything. Because another reader with a looser window
// may still want an entry, a stale read never purges.
type RealTimeStore struct {
	mu      sync.Mutex
	entries map[string]realTimeEntry
	clock   Clock
}

// NewRealTimeStore creates a real-time store.
func NewRealTimeStore(clock Clock) *RealTimeStore {
	if clock == nil {
		clock = SystemClock
	}
	return &RealTimeStore{
		entries: make(map[string]realTimeEntry),
		clock:   clock,
	}
}

// Set stores a value stamped with the current time.
func (s *RealTimeStore) Set(key string, value any) {
	s.mu.Lock()
	s.entries[key] = realTimeEntry{value: value, insertedAt: s.clock.Now()}
	s.mu.Unlock()
}

// Get returns the value iff it is younger than maxAge. A non-positive maxAge
// accepts any age.
func (s *RealTimeStore) Get(key string, maxAge time.Duration) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	if maxAge > 0 && s.clock.Now().Sub(e.insertedAt) >= maxAge {
		return nil, false
	}
	return e.value, true
}

// Delete removes a key.
func (s *RealTimeStore) Delete(key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// Clear removes all entries.
func (s *RealTimeStore) Clear() {
	s.mu.Lock()
	s.entries = make(map[string]realTimeEntry)
	s.mu.Unlock()
}

// Len returns the number of stored entries.
func (s *RealTimeStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
