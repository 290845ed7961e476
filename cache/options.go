package cache

import "time"

// fetchOptions are the per-call knobs of GetOrFetch.
type fetchOptions struct {
	ttl           time.Duration
	skipCache     bool
	staleFallback bool
}

// Option customizes a single GetOrFetch call.
type Option func(*fetchOptions)

// WithTTL overrides the engine default TTL for the value written by this
// call.
func WithTTL(ttl time.Duration) Option {
	return func(o *fetchOptions) { o.ttl = ttl }
}

// SkipCache bypasses the cached value and forces a fetch. The fetch still
// coalesces with concurrent callers for the same key, and its result is
// still written to the cache.
func SkipCache() Option {
	return func(o *fetchOptions) { o.skipCache = true }
}

// WithStaleFallback serves the last known value, marked stale, when the
// fetch fails, instead of returning the fetch error.
func WithStaleFallback() Option {
	return func(o *fetchOptions) { o.staleFallback = true }
}
