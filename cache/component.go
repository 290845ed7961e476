package cache

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/blacknetb/go-cachefront/component"
	"github.com/blacknetb/go-cachefront/event"
	"github.com/blacknetb/go-cachefront/logger"
)

// Component is the cache component. It owns one engine per configured
// namespace and subscribes the configured invalidation rules to the event
// dispatcher when one is present.
type Component struct {
	mu           sync.RWMutex
	config       *Config
	engines      map[string]*DefaultEngine
	clock        Clock
	dispatcher   event.Dispatcher
	unsubscribes []event.UnsubscribeFunc
	logger       *logger.CtxZapLogger
	started      bool
}

// NewComponent creates the cache component.
func NewComponent() *Component {
	return &Component{
		engines: make(map[string]*DefaultEngine),
		clock:   SystemClock,
	}
}

// Name returns the component name.
func (c *Component) Name() string {
	return component.ComponentCache
}

// DependsOn returns the component dependencies. The event dependency is
// optional: without a dispatcher the engines still work, only event-driven
// invalidation is off.
func (c *Component) DependsOn() []string {
	return []string{
		component.ComponentConfig,
		component.ComponentLogger,
		"optional:" + component.ComponentEvent,
	}
}

// SetEventDispatcher injects the dispatcher for invalidation rules. Must be
// called before Start.
func (c *Component) SetEventDispatcher(d event.Dispatcher) {
	c.mu.Lock()
	c.dispatcher = d
	c.mu.Unlock()
}

// SetClock injects the time source for all engines. Must be called before
// Start.
func (c *Component) SetClock(clock Clock) {
	c.mu.Lock()
	c.clock = clock
	c.mu.Unlock()
}

// Init loads and validates the "cache" configuration section.
func (c *Component) Init(ctx context.Context, loader component.ConfigLoader) error {
	c.logger = logger.GetLogger("cachefront")

	cfg := &Config{}
	if loader.IsSet("cache") {
		if err := loader.Unmarshal("cache", cfg); err != nil {
			return ErrConfigInvalid.Wrap(err)
		}
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	c.config = cfg
	c.mu.Unlock()

	if !cfg.Enabled {
		c.logger.InfoCtx(ctx, "cache component disabled")
		return nil
	}

	c.logger.InfoCtx(ctx, "cache component initialized",
		zap.Int("namespaces", len(cfg.Namespaces)),
		zap.Int("invalidation_rules", len(cfg.InvalidationRules)))
	return nil
}

// Start builds one engine per namespace and subscribes invalidation rules.
func (c *Component) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.config == nil || !c.config.Enabled {
		return nil
	}
	if c.started {
		return nil
	}

	for _, ns := range c.config.Namespaces {
		opts := []EngineOption{WithClock(c.clock), WithLogger(c.logger)}
		if ns.KeyPrefix != "" {
			opts = append(opts, WithKeyPrefix(ns.KeyPrefix))
		}
		c.engines[ns.Name] = NewEngine(ns.Name, ns.DefaultTTL, opts...)
	}

	if c.dispatcher != nil {
		c.subscribeInvalidationRules()
	} else if len(c.config.InvalidationRules) > 0 {
		c.logger.WarnCtx(ctx, "invalidation rules configured but no event dispatcher present")
	}

	c.started = true
	c.logger.InfoCtx(ctx, "cache component started", zap.Int("engines", len(c.engines)))
	return nil
}

// Stop unsubscribes invalidation rules and closes every engine. Idempotent.
func (c *Component) Stop(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.started {
		return nil
	}

	for _, unsub := range c.unsubscribes {
		unsub()
	}
	c.unsubscribes = nil

	for _, engine := range c.engines {
		engine.Close()
	}
	c.engines = make(map[string]*DefaultEngine)

	c.started = false
	c.logger.InfoCtx(ctx, "cache component stopped")
	return nil
}

// Engine returns the engine for a configured namespace.
func (c *Component) Engine(namespace string) (Engine, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	engine, ok := c.engines[namespace]
	if !ok {
		return nil, ErrNamespaceNotFound.WithMsgf("cache namespace not found: %s", namespace)
	}
	return engine, nil
}

// Namespaces returns the names of the running engines.
func (c *Component) Namespaces() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.engines))
	for name := range c.engines {
		names = append(names, name)
	}
	return names
}

// Fetch is the convenience entry point: builds the key from namespace,
// operation and params, then runs GetOrFetch on the namespace's engine.
func (c *Component) Fetch(ctx context.Context, namespace, operation string, params map[string]any, fetch Fetcher, opts ...Option) (Result, error) {
	engine, err := c.Engine(namespace)
	if err != nil {
		return Result{}, err
	}

	key, err := engine.BuildKey(operation, params)
	if err != nil {
		return Result{}, err
	}

	return engine.GetOrFetch(ctx, key, fetch, opts...)
}

// Invalidate removes a single key from a namespace.
func (c *Component) Invalidate(namespace, key string) error {
	engine, err := c.Engine(namespace)
	if err != nil {
		return err
	}
	engine.Invalidate(key)
	return nil
}

// InvalidateByPattern sweeps a namespace by substring pattern.
func (c *Component) InvalidateByPattern(namespace, pattern string) (int, error) {
	engine, err := c.Engine(namespace)
	if err != nil {
		return 0, err
	}
	return engine.InvalidateByPattern(pattern), nil
}

// ClearAll clears every engine.
func (c *Component) ClearAll() {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, engine := range c.engines {
		engine.Clear()
	}
}

// GetHealthChecker exposes the component as its own health check.
func (c *Component) GetHealthChecker() component.HealthChecker {
	return c
}

// Check verifies a set/get round-trip against the first engine.
func (c *Component) Check(ctx context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.config != nil && !c.config.Enabled {
		return nil
	}
	if !c.started || len(c.engines) == 0 {
		return ErrEngineClosed.WithMsg("cache component not started")
	}

	for _, engine := range c.engines {
		const probe = "health:probe"
		engine.Set(probe, "ok", 0)
		value, err := engine.Get(probe)
		engine.Invalidate(probe)
		if err != nil {
			return err
		}
		if value != "ok" {
			return fmt.Errorf("cache health probe mismatch: %v", value)
		}
		break
	}
	return nil
}

// subscribeInvalidationRules wires each rule to the dispatcher. Caller holds
// the lock.
func (c *Component) subscribeInvalidationRules() {
	for _, rule := range c.config.InvalidationRules {
		rule := rule
		unsub := c.dispatcher.Subscribe(rule.Event, c.invalidationListener(rule))
		c.unsubscribes = append(c.unsubscribes, unsub)
		c.logger.Debug("subscribed invalidation rule",
			zap.String("event", rule.Event),
			zap.Strings("namespaces", rule.Namespaces),
			zap.String("pattern", rule.Pattern))
	}
}

// invalidationListener builds the listener for one rule. Patterns come from
// the event itself when it implements KeyPatterner, else from the rule;
// with neither, the whole namespace is cleared.
func (c *Component) invalidationListener(rule InvalidationRule) event.Listener {
	return event.ListenerFunc(func(ctx context.Context, e event.Event) error {
		var patterns []string
		if patterner, ok := e.(KeyPatterner); ok {
			patterns = patterner.CachePatterns()
		} else if rule.Pattern != "" {
			patterns = []string{rule.Pattern}
		}

		for _, name := range rule.Namespaces {
			engine, err := c.Engine(name)
			if err != nil {
				c.logger.WarnCtx(ctx, "invalidation rule references missing namespace",
					zap.String("event", e.Name()),
					zap.String("namespace", name))
				continue
			}

			if len(patterns) == 0 {
				engine.Clear()
				continue
			}
			for _, pattern := range patterns {
				engine.InvalidateByPattern(pattern)
			}
		}
		return nil
	})
}
