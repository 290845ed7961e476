package cache

import (
	"context"
	"time"
)

// Fetcher loads the value for a key from the source of truth. Fetchers own
// their retries and timeouts; the engine performs no I/O itself.
type Fetcher func(ctx context.Context) (any, error)

// Result is a read outcome. Stale is set only when a failed fetch was
// answered with a previously cached value (see WithStaleFallback).
type Result struct {
	Value any
	Stale bool
}

// Stats are cumulative engine counters.
type Stats struct {
	Hits        int64
	Misses      int64
	Invalidates int64
	Errors      int64
	StaleServed int64
	Entries     int
}

// KeyPatterner is optionally implemented by events. It names the key
// patterns an invalidation rule should clear instead of the rule's static
// pattern, e.g. a ProductUpdated event returning the patterns of the keys
// it taints.
type KeyPatterner interface {
	CachePatterns() []string
}

// Engine fronts a remote data source with a keyed TTL cache, request
// coalescing and substring-pattern invalidation.
type Engine interface {
	// Namespace returns the engine's namespace.
	Namespace() string

	// BuildKey builds a deterministic key scoped to this engine.
	BuildKey(operation string, params map[string]any) (string, error)

	// GetOrFetch returns the cached value for key or, on a miss, fetches it
	// with at most one in-flight fetch per key.
	GetOrFetch(ctx context.Context, key string, fetch Fetcher, opts ...Option) (Result, error)

	// Get returns a fresh cached value without fetching; a miss or expired
	// entry returns ErrCacheMiss.
	Get(key string) (any, error)

	// Set stores a value directly. A non-positive ttl uses the engine
	// default.
	Set(key string, value any, ttl time.Duration)

	// Invalidate removes a single key.
	Invalidate(key string)

	// InvalidateByPattern removes every key containing pattern as a
	// substring and returns the number of removed entries.
	InvalidateByPattern(pattern string) int

	// Clear drops all cached and real-time values and detaches in-flight
	// fetches.
	Clear()

	// SetRealTime stores a value in the real-time store.
	SetRealTime(key string, value any)

	// GetRealTime returns a real-time value younger than maxAge; a
	// non-positive maxAge accepts any age.
	GetRealTime(key string, maxAge time.Duration) (any, bool)

	// ClearRealTime drops all real-time values.
	ClearRealTime()

	// Stats returns cumulative counters.
	Stats() *Stats

	// Close shuts the engine down; subsequent reads fail with
	// ErrEngineClosed.
	Close()
}
