package cache

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// flightGroup wraps singleflight with tracking of in-flight keys so the
// whole group can be forgotten at once (on Clear or engine shutdown).
type flightGroup struct {
	sf       singleflight.Group
	mu       sync.Mutex
	inflight map[string]int
}

func newFlightGroup() *flightGroup {
	return &flightGroup{inflight: make(map[string]int)}
}

// Do executes fn at most once per key at a time; concurrent callers for the
// same key share the one result, value or error. shared reports whether the
// result was given to more than one caller.
func (g *flightGroup) Do(key string, fn func() (any, error)) (value any, err error, shared bool) {
	g.mu.Lock()
	g.inflight[key]++
	g.mu.Unlock()

	value, err, shared = g.sf.Do(key, fn)

	g.mu.Lock()
	if g.inflight[key]--; g.inflight[key] <= 0 {
		delete(g.inflight, key)
	}
	g.mu.Unlock()

	return value, err, shared
}

// ForgetAll detaches every in-flight key: callers already waiting still
// receive the original result, but new callers start a fresh fetch.
func (g *flightGroup) ForgetAll() {
	g.mu.Lock()
	keys := make([]string, 0, len(g.inflight))
	for key := range g.inflight {
		keys = append(keys, key)
	}
	g.mu.Unlock()

	for _, key := range keys {
		g.sf.Forget(key)
	}
}
