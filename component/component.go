// Package component defines the component lifecycle contracts. It is the
// lowest-level package and depends on nothing else in this module, so any
// package can implement it without import cycles.
package component

import "context"

// Component is the unified lifecycle contract.
//
// Lifecycle: Init → Start → Stop.
type Component interface {
	// Name returns the component name (unique identifier), used for
	// dependency declarations and lookup.
	Name() string

	// DependsOn declares the names of components this one depends on.
	//
	// Optional dependencies use the "optional:" prefix:
	//
	//	return []string{
	//	    "config",          // hard dependency
	//	    "logger",          // hard dependency
	//	    "optional:event",  // skipped when not registered
	//	}
	//
	// A component must handle a missing optional dependency itself (e.g.
	// by falling back to defaults).
	DependsOn() []string

	// Init creates resources without exposing them: read configuration
	// from the loader, build internal state, but do not start serving.
	Init(ctx context.Context, loader ConfigLoader) error

	// Start makes the component operational.
	Start(ctx context.Context) error

	// Stop releases resources. Must be idempotent.
	Stop(ctx context.Context) error
}

// HealthChecker is optionally implemented by components that can report
// their own health.
type HealthChecker interface {
	// Check returns nil when healthy.
	Check(ctx context.Context) error

	// Name returns the check name.
	Name() string
}

// HealthCheckProvider is optionally implemented by components that expose a
// health checker.
type HealthCheckProvider interface {
	GetHealthChecker() HealthChecker
}
