package errcode

import (
	"fmt"
	"sync"
)

// Registry guards against error code collisions across modules.
type Registry struct {
	mu     sync.RWMutex
	codes  map[int]string // code -> module:msgKey
	locked bool           // once locked, no new codes may be registered
}

// globalRegistry is the process-wide code registry.
var globalRegistry = &Registry{
	codes: make(map[int]string),
}

// Register registers an error code with the global registry.
// Panics if the code is already registered under a different key.
func Register(err *LayeredError) *LayeredError {
	return globalRegistry.Register(err)
}

// Register registers an error code.
func (r *Registry) Register(err *LayeredError) *LayeredError {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.locked {
		panic(fmt.Sprintf("registry is locked, cannot register error code: %d", err.Code()))
	}

	code := err.Code()
	key := fmt.Sprintf("%s:%s", err.Module(), err.MsgKey())

	if existingKey, exists := r.codes[code]; exists {
		if existingKey != key {
			panic(fmt.Sprintf(
				"error code conflict: code %d is already registered as %s, cannot register as %s",
				code, existingKey, key,
			))
		}
		// Same code and key: idempotent.
		return err
	}

	r.codes[code] = key
	return err
}

// Lock prevents further registrations. Typically called once startup is
// complete so codes cannot be minted at runtime.
func (r *Registry) Lock() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locked = true
}

// Unlock re-allows registrations.
func (r *Registry) Unlock() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locked = false
}

// IsLocked reports whether the registry is locked.
func (r *Registry) IsLocked() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.locked
}

// GetAll returns a copy of all registered codes.
func (r *Registry) GetAll() map[int]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	codes := make(map[int]string, len(r.codes))
	for k, v := range r.codes {
		codes[k] = v
	}
	return codes
}

// Count returns the number of registered codes.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.codes)
}

// Clear empties the registry (tests only).
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codes = make(map[int]string)
	r.locked = false
}

// LockGlobalRegistry locks the global registry.
func LockGlobalRegistry() {
	globalRegistry.Lock()
}

// UnlockGlobalRegistry unlocks the global registry.
func UnlockGlobalRegistry() {
	globalRegistry.Unlock()
}

// GetAllRegisteredCodes returns all codes in the global registry.
func GetAllRegisteredCodes() map[int]string {
	return globalRegistry.GetAll()
}

// ClearGlobalRegistry empties the global registry (tests only).
func ClearGlobalRegistry() {
	globalRegistry.Clear()
}
