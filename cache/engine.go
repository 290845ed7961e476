package cache

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/blacknetb/go-cachefront/logger"
	"go.uber.org/zap"
)

// DefaultEngine is the Engine implementation: entry store + flight group +
// real-time store behind one facade.
type DefaultEngine struct {
	namespace  string
	keyPrefix  string
	defaultTTL time.Duration
	entries    *EntryStore
	realtime   *RealTimeStore
	flights    *flightGroup
	logger     *logger.CtxZapLogger
	closed     int32

	hits        int64
	misses      int64
	invalidates int64
	errs        int64
	staleServed int64
}

type engineSettings struct {
	clock     Clock
	logger    *logger.CtxZapLogger
	keyPrefix string
}

// EngineOption customizes engine construction.
type EngineOption func(*engineSettings)

// WithClock injects the time source (tests move it deterministically).
func WithClock(clock Clock) EngineOption {
	return func(s *engineSettings) { s.clock = clock }
}

// WithLogger attaches a module logger.
func WithLogger(log *logger.CtxZapLogger) EngineOption {
	return func(s *engineSettings) { s.logger = log }
}

// WithKeyPrefix overrides the namespace as the key prefix used by BuildKey.
func WithKeyPrefix(prefix string) EngineOption {
	return func(s *engineSettings) { s.keyPrefix = prefix }
}

// NewEngine creates an engine for one namespace. defaultTTL applies to
// writes that do not carry WithTTL; non-positive means entries never expire.
func NewEngine(namespace string, defaultTTL time.Duration, opts ...EngineOption) *DefaultEngine {
	settings := engineSettings{clock: SystemClock}
	for _, opt := range opts {
		opt(&settings)
	}

	prefix := settings.keyPrefix
	if prefix == "" {
		prefix = namespace
	}

	return &DefaultEngine{
		namespace:  namespace,
		keyPrefix:  prefix,
		defaultTTL: defaultTTL,
		entries:    NewEntryStore(defaultTTL, settings.clock),
		realtime:   NewRealTimeStore(settings.clock),
		flights:    newFlightGroup(),
		logger:     settings.logger,
	}
}

// Namespace returns the engine's namespace.
func (e *DefaultEngine) Namespace() string {
	return e.namespace
}

// BuildKey builds a deterministic key scoped to this engine.
func (e *DefaultEngine) BuildKey(operation string, params map[string]any) (string, error) {
	return BuildKey(e.keyPrefix, operation, params)
}

// GetOrFetch returns the cached value for key or, on a miss, fetches it.
// Concurrent callers for the same key share one fetch; every caller observes
// the identical value or identical error. An in-flight fetch is not
// cancelled when one caller's ctx ends.
func (e *DefaultEngine) GetOrFetch(ctx context.Context, key string, fetch Fetcher, opts ...Option) (Result, error) {
	if atomic.LoadInt32(&e.closed) == 1 {
		return Result{}, ErrEngineClosed
	}
	if key == "" {
		return Result{}, ErrInvalidKeyInput.WithMsg("empty cache key")
	}
	if fetch == nil {
		return Result{}, ErrInvalidKeyInput.WithMsg("nil fetcher")
	}

	var options fetchOptions
	for _, opt := range opts {
		opt(&options)
	}

	// One locked lookup answers both the hit path and the fallback
	// candidate: a stale entry is purged here, but its value is held in
	// case the fetch fails.
	var fallback any
	var haveFallback bool
	if value, fresh, ok := e.entries.Lookup(key); ok {
		if fresh && !options.skipCache {
			atomic.AddInt64(&e.hits, 1)
			if e.logger != nil {
				e.logger.DebugCtx(ctx, "cache hit", zap.String("key", key))
			}
			return Result{Value: value}, nil
		}
		fallback, haveFallback = value, true
	}

	atomic.AddInt64(&e.misses, 1)
	if e.logger != nil {
		e.logger.DebugCtx(ctx, "cache miss",
			zap.String("key", key),
			zap.Bool("skip_cache", options.skipCache))
	}

	value, err, _ := e.flights.Do(key, func() (any, error) {
		// Double-check: another flight may have filled the cache between
		// the lookup above and joining this flight.
		if !options.skipCache {
			if value, ok := e.entries.Get(key); ok {
				return value, nil
			}
		}

		value, err := fetch(ctx)
		if err != nil {
			return nil, err
		}

		e.entries.Set(key, value, options.ttl)
		return value, nil
	})
	if err != nil {
		atomic.AddInt64(&e.errs, 1)
		return e.fallbackResult(ctx, key, options, fallback, haveFallback, err)
	}

	return Result{Value: value}, nil
}

// fallbackResult answers a failed fetch: the freshest stale value available
// when WithStaleFallback was set, the wrapped fetch error otherwise.
func (e *DefaultEngine) fallbackResult(ctx context.Context, key string, options fetchOptions, fallback any, haveFallback bool, cause error) (Result, error) {
	if !options.staleFallback {
		if e.logger != nil {
			e.logger.WarnCtx(ctx, "cache fetch failed",
				zap.String("key", key),
				zap.Error(cause))
		}
		return Result{}, ErrFetchFailed.Wrap(cause)
	}

	// Real-time store first (never purged, so it survives expired entries),
	// then the stale entry value held from the read above.
	value, ok := e.realtime.Get(key, 0)
	if !ok && haveFallback {
		value, ok = fallback, true
	}
	if !ok {
		if e.logger != nil {
			e.logger.WarnCtx(ctx, "cache fetch failed with no fallback",
				zap.String("key", key),
				zap.Error(cause))
		}
		return Result{}, ErrNoFallback.Wrap(cause)
	}

	atomic.AddInt64(&e.staleServed, 1)
	if e.logger != nil {
		e.logger.WarnCtx(ctx, "cache fetch failed, serving stale value",
			zap.String("key", key),
			zap.Error(cause))
	}
	return Result{Value: value, Stale: true}, nil
}

// Get returns a fresh cached value without fetching.
func (e *DefaultEngine) Get(key string) (any, error) {
	if atomic.LoadInt32(&e.closed) == 1 {
		return nil, ErrEngineClosed
	}

	value, ok := e.entries.Get(key)
	if !ok {
		atomic.AddInt64(&e.misses, 1)
		return nil, ErrCacheMiss.WithData("key", key)
	}

	atomic.AddInt64(&e.hits, 1)
	return value, nil
}

// Set stores a value directly.
func (e *DefaultEngine) Set(key string, value any, ttl time.Duration) {
	e.entries.Set(key, value, ttl)
}

// Invalidate removes a single key.
func (e *DefaultEngine) Invalidate(key string) {
	e.entries.Delete(key)
	atomic.AddInt64(&e.invalidates, 1)
	if e.logger != nil {
		e.logger.Debug("cache invalidated", zap.String("key", key))
	}
}

// InvalidateByPattern removes every key containing pattern as a substring.
func (e *DefaultEngine) InvalidateByPattern(pattern string) int {
	removed := e.entries.ClearPattern(pattern)
	atomic.AddInt64(&e.invalidates, 1)
	if e.logger != nil {
		e.logger.Info("cache invalidated by pattern",
			zap.String("namespace", e.namespace),
			zap.String("pattern", pattern),
			zap.Int("removed", removed))
	}
	return removed
}

// Clear drops all cached and real-time values and detaches in-flight
// fetches so new callers start fresh.
func (e *DefaultEngine) Clear() {
	e.entries.Clear()
	e.realtime.Clear()
	e.flights.ForgetAll()
	atomic.AddInt64(&e.invalidates, 1)
	if e.logger != nil {
		e.logger.Info("cache cleared", zap.String("namespace", e.namespace))
	}
}

// SetRealTime stores a value in the real-time store.
func (e *DefaultEngine) SetRealTime(key string, value any) {
	e.realtime.Set(key, value)
}

// GetRealTime returns a real-time value younger than maxAge.
func (e *DefaultEngine) GetRealTime(key string, maxAge time.Duration) (any, bool) {
	return e.realtime.Get(key, maxAge)
}

// ClearRealTime drops all real-time values.
func (e *DefaultEngine) ClearRealTime() {
	e.realtime.Clear()
}

// Stats returns cumulative counters.
func (e *DefaultEngine) Stats() *Stats {
	return &Stats{
		Hits:        atomic.LoadInt64(&e.hits),
		Misses:      atomic.LoadInt64(&e.misses),
		Invalidates: atomic.LoadInt64(&e.invalidates),
		Errors:      atomic.LoadInt64(&e.errs),
		StaleServed: atomic.LoadInt64(&e.staleServed),
		Entries:     e.entries.Len(),
	}
}

// Close shuts the engine down. Idempotent.
func (e *DefaultEngine) Close() {
	if !atomic.CompareAndSwapInt32(&e.closed, 0, 1) {
		return
	}
	e.entries.Clear()
	e.realtime.Clear()
	e.flights.ForgetAll()
}
