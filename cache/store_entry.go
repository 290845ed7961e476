package cache

import (
	"strings"
	"sync"
	"time"
)

// cacheEntry is a stored value with its write time and per-entry TTL.
// Entries are replaced whole, never mutated in place.
type cacheEntry struct {
	value      any
	insertedAt time.Time
	ttl        time.Duration
}

// EntryStore is the in-memory TTL store backing an engine. Expiry is lazy:
// staleness is only checked when a key is read, and the stale entry is
// purged by that read. There is no background sweeper, so growth is bounded
// only by TTL reads and explicit invalidation.
type EntryStore struct {
	mu         sync.Mutex
	entries    map[string]cacheEntry
	defaultTTL time.Duration
	clock      Clock
}

// NewEntryStore creates an entry store. A non-positive defaultTTL means
// entries without an explicit TTL never expire.
func NewEntryStore(defaultTTL time.Duration, clock Clock) *EntryStore {
	if clock == nil {
		clock = SystemClock
	}
	return &EntryStore{
		entries:    make(map[string]cacheEntry),
		defaultTTL: defaultTTL,
		clock:      clock,
	}
}

// Set stores a value stamped with the current time. A non-positive ttl falls
// back to the store default.
func (s *EntryStore) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}

	s.mu.Lock()
	s.entries[key] = cacheEntry{value: value, insertedAt: s.clock.Now(), ttl: ttl}
	s.mu.Unlock()
}

// Get returns a fresh value. A read at or past insertedAt+ttl is a miss and
// removes the entry.
func (s *EntryStore) Get(key string) (any, bool) {
	value, fresh, ok := s.Lookup(key)
	if !ok || !fresh {
		return nil, false
	}
	return value, true
}

// Lookup reports the stored value even when it is stale, so the caller can
// keep it as a fallback candidate. A stale entry is still purged on the way
// out; only its value survives in the return.
func (s *EntryStore) Lookup(key string) (value any, fresh bool, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, false, false
	}

	if e.ttl > 0 && s.clock.Now().Sub(e.insertedAt) >= e.ttl {
		delete(s.entries, key)
		return e.value, false, true
	}

	return e.value, true, true
}

// Delete removes a key. Removing an absent key is a no-op.
func (s *EntryStore) Delete(key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// ClearPattern removes every key containing pattern as a substring and
// returns the number of removed entries. An empty pattern matches every key.
func (s *EntryStore) ClearPattern(pattern string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key := range s.entries {
		if strings.Contains(key, pattern) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

// Clear removes all entries.
func (s *EntryStore) Clear() {
	s.mu.Lock()
	s.entries = make(map[string]cacheEntry)
	s.mu.Unlock()
}

// Len returns the number of stored entries, stale ones included.
func (s *EntryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
