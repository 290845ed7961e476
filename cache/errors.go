package cache

import "github.com/blacknetb/go-cachefront/errcode"

// Cache error codes (module code 70).
var (
	// ErrCacheMiss means the key is absent or its entry expired.
	ErrCacheMiss = errcode.Register(errcode.New(70, 1, "cache", "error.cache.miss", "cache miss"))

	// ErrInvalidKeyInput means the key material cannot form a deterministic
	// key (non-scalar parameter, empty namespace or operation, empty key).
	ErrInvalidKeyInput = errcode.Register(errcode.New(70, 2, "cache", "error.cache.invalid_key_input", "invalid cache key input"))

	// ErrFetchFailed wraps the fetcher's error when no fallback was requested.
	ErrFetchFailed = errcode.Register(errcode.New(70, 3, "cache", "error.cache.fetch_failed", "cache fetch failed"))

	// ErrNoFallback wraps the fetcher's error when a stale fallback was
	// requested but nothing usable is cached.
	ErrNoFallback = errcode.Register(errcode.New(70, 4, "cache", "error.cache.no_fallback", "fetch failed and no cached fallback available"))

	// ErrConfigInvalid means the cache section failed validation.
	ErrConfigInvalid = errcode.Register(errcode.New(70, 5, "cache", "error.cache.config_invalid", "invalid cache configuration"))

	// ErrNamespaceNotFound means no engine is configured under that name.
	ErrNamespaceNotFound = errcode.Register(errcode.New(70, 6, "cache", "error.cache.namespace_not_found", "cache namespace not found"))

	// ErrEngineClosed means the engine was shut down.
	ErrEngineClosed = errcode.Register(errcode.New(70, 7, "cache", "error.cache.engine_closed", "cache engine closed"))
)
