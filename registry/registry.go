// Package registry is the component registration center. Components are
// registered by name, resolved into dependency layers, and driven through
// Init/Start/Stop in layer order (Stop runs in reverse).
package registry

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/blacknetb/go-cachefront/component"
	"github.com/blacknetb/go-cachefront/logger"
)

const optionalPrefix = "optional:"

// Registry holds registered components and runs their lifecycle.
type Registry struct {
	mu         sync.RWMutex
	components map[string]component.Component
	logger     *logger.CtxZapLogger
}

// NewRegistry creates a component registry.
func NewRegistry() *Registry {
	return &Registry{
		components: make(map[string]component.Component),
	}
}

// Register registers a component under its Name.
func (r *Registry) Register(comp component.Component) error {
	if comp == nil {
		return fmt.Errorf("component must not be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	name := comp.Name()
	if name == "" {
		return fmt.Errorf("component name must not be empty")
	}
	if _, exists := r.components[name]; exists {
		return fmt.Errorf("component %q already registered", name)
	}

	r.components[name] = comp
	return nil
}

// MustRegister registers a component and panics on failure. For core
// components where registration failure is a programming error.
func (r *Registry) MustRegister(comp component.Component) {
	if err := r.Register(comp); err != nil {
		panic(fmt.Sprintf("registering component %q failed: %v", comp.Name(), err))
	}
}

// SetLogger attaches a logger. Allowed once; the lifecycle phases log
// through it when present.
func (r *Registry) SetLogger(l *logger.CtxZapLogger) {
	if r.logger != nil {
		panic("registry logger already set")
	}
	r.logger = l
}

// Get returns a component by name.
func (r *Registry) Get(name string) (component.Component, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	comp, ok := r.components[name]
	return comp, ok
}

// Has reports whether a component is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// GetTyped returns a component cast to a concrete type.
func GetTyped[T component.Component](r *Registry, name string) (T, bool) {
	var zero T
	comp, ok := r.Get(name)
	if !ok {
		return zero, false
	}

	typed, ok := comp.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// MustGetTyped returns a component cast to a concrete type; panics when the
// component is missing or the type does not match.
func MustGetTyped[T component.Component](r *Registry, name string) T {
	typed, ok := GetTyped[T](r, name)
	if !ok {
		var zero T
		panic(fmt.Sprintf("component %q missing or not of type %T", name, zero))
	}
	return typed
}

// Resolve returns all components in dependency order.
func (r *Registry) Resolve() ([]component.Component, error) {
	layers, err := r.resolveLayers()
	if err != nil {
		return nil, err
	}

	var result []component.Component
	for _, layer := range layers {
		result = append(result, layer...)
	}
	return result, nil
}

// Init initializes all components in dependency order, handing each one the
// ConfigLoader implemented by the registered config component.
func (r *Registry) Init(ctx context.Context) error {
	configComp, ok := r.Get(component.ComponentConfig)
	if !ok {
		return fmt.Errorf("config component not registered")
	}
	loader, ok := configComp.(component.ConfigLoader)
	if !ok {
		return fmt.Errorf("config component does not implement ConfigLoader")
	}

	layers, err := r.resolveLayers()
	if err != nil {
		return fmt.Errorf("resolving component dependencies failed: %w", err)
	}

	r.logInfo(ctx, "initializing components",
		zap.Int("total", len(r.components)),
		zap.Int("layers", len(layers)))

	for _, layer := range layers {
		if err := r.runLayer(layer, func(c component.Component) error {
			r.logDebug(ctx, "initializing component", zap.String("component", c.Name()))
			return c.Init(ctx, loader)
		}); err != nil {
			return err
		}
	}

	r.logInfo(ctx, "all components initialized")
	return nil
}

// Start starts all components in dependency order.
func (r *Registry) Start(ctx context.Context) error {
	layers, err := r.resolveLayers()
	if err != nil {
		return fmt.Errorf("resolving component dependencies failed: %w", err)
	}

	for _, layer := range layers {
		if err := r.runLayer(layer, func(c component.Component) error {
			r.logDebug(ctx, "starting component", zap.String("component", c.Name()))
			return c.Start(ctx)
		}); err != nil {
			return err
		}
	}

	r.logInfo(ctx, "all components started")
	return nil
}

// Stop stops all components in reverse dependency order. Stop errors are
// logged and swallowed so every component gets its chance to shut down.
func (r *Registry) Stop(ctx context.Context) error {
	layers, err := r.resolveLayers()
	if err != nil {
		return fmt.Errorf("resolving component dependencies failed: %w", err)
	}

	for i := len(layers) - 1; i >= 0; i-- {
		r.stopLayer(ctx, layers[i])
	}

	r.logInfo(ctx, "all components stopped")
	return nil
}

// runLayer runs one lifecycle function over a layer, concurrently when the
// layer has more than one component.
func (r *Registry) runLayer(layer []component.Component, fn func(component.Component) error) error {
	if len(layer) == 0 {
		return nil
	}

	if len(layer) == 1 {
		comp := layer[0]
		if err := fn(comp); err != nil {
			return fmt.Errorf("component %q failed: %w", comp.Name(), err)
		}
		return nil
	}

	type result struct {
		comp component.Component
		err  error
	}

	results := make(chan result, len(layer))
	for _, comp := range layer {
		go func(c component.Component) {
			results <- result{comp: c, err: fn(c)}
		}(comp)
	}

	for range layer {
		res := <-results
		if res.err != nil {
			return fmt.Errorf("component %q failed: %w", res.comp.Name(), res.err)
		}
	}
	return nil
}

func (r *Registry) stopLayer(ctx context.Context, layer []component.Component) {
	var wg sync.WaitGroup
	for _, comp := range layer {
		wg.Add(1)
		go func(c component.Component) {
			defer wg.Done()
			if err := c.Stop(ctx); err != nil {
				r.logWarn(ctx, "component stop failed",
					zap.String("component", c.Name()),
					zap.Error(err))
			}
		}(comp)
	}
	wg.Wait()
}

// resolveLayers groups the topological order into layers of components with
// no dependencies between them. A dependency with the "optional:" prefix is
// skipped when its component is not registered; a missing hard dependency is
// an error, as is any cycle.
func (r *Registry) resolveLayers() ([][]component.Component, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	inDegree := make(map[string]int)
	graph := make(map[string][]string)

	for name := range r.components {
		inDegree[name] = 0
		graph[name] = nil
	}

	for name, comp := range r.components {
		for _, dep := range comp.DependsOn() {
			depName := strings.TrimPrefix(dep, optionalPrefix)
			optional := depName != dep

			if _, ok := r.components[depName]; !ok {
				if optional {
					continue
				}
				return nil, fmt.Errorf("component %q depends on unregistered %q", name, depName)
			}

			graph[depName] = append(graph[depName], name)
			inDegree[name]++
		}
	}

	var layers [][]component.Component
	processed := make(map[string]bool)

	for len(processed) < len(r.components) {
		var current []string
		for name, degree := range inDegree {
			if !processed[name] && degree == 0 {
				current = append(current, name)
				processed[name] = true
			}
		}

		if len(current) == 0 {
			return nil, fmt.Errorf("dependency cycle detected")
		}

		layer := make([]component.Component, 0, len(current))
		for _, name := range current {
			layer = append(layer, r.components[name])
			for _, next := range graph[name] {
				inDegree[next]--
			}
		}
		layers = append(layers, layer)
	}

	return layers, nil
}

func (r *Registry) logInfo(ctx context.Context, msg string, fields ...zap.Field) {
	if r.logger != nil {
		r.logger.InfoCtx(ctx, msg, fields...)
	}
}

func (r *Registry) logDebug(ctx context.Context, msg string, fields ...zap.Field) {
	if r.logger != nil {
		r.logger.DebugCtx(ctx, msg, fields...)
	}
}

func (r *Registry) logWarn(ctx context.Context, msg string, fields ...zap.Field) {
	if r.logger != nil {
		r.logger.WarnCtx(ctx, msg, fields...)
	}
}
