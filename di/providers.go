package di

import (
	"fmt"

	"github.com/samber/do/v2"

	"github.com/blacknetb/go-cachefront/cache"
	"github.com/blacknetb/go-cachefront/component"
	"github.com/blacknetb/go-cachefront/config"
	"github.com/blacknetb/go-cachefront/event"
	"github.com/blacknetb/go-cachefront/health"
	"github.com/blacknetb/go-cachefront/registry"
)

// ErrComponentNotFound builds the error a provider returns when its
// component is not in the registry.
func ErrComponentNotFound(name string) error {
	return fmt.Errorf("component not found: %s", name)
}

// RegisterCoreComponents exposes initialized components from the registry in
// the injector: the config loader, the event dispatcher, the cache component
// itself, and one named engine per cache namespace.
func RegisterCoreComponents(injector do.Injector, reg *registry.Registry) {
	if cfgComp, ok := registry.GetTyped[*config.Component](reg, component.ComponentConfig); ok {
		do.ProvideValue(injector, cfgComp.GetLoader())
	}

	if eventComp, ok := registry.GetTyped[*event.Component](reg, component.ComponentEvent); ok {
		if dispatcher := eventComp.GetDispatcher(); dispatcher != nil {
			do.ProvideValue[event.Dispatcher](injector, dispatcher)
		}
	}

	if healthComp, ok := registry.GetTyped[*health.Component](reg, health.ComponentName); ok {
		do.ProvideValue(injector, healthComp)
	}

	if cacheComp, ok := registry.GetTyped[*cache.Component](reg, component.ComponentCache); ok {
		do.ProvideValue(injector, cacheComp)

		for _, namespace := range cacheComp.Namespaces() {
			engine, err := cacheComp.Engine(namespace)
			if err != nil {
				continue
			}
			do.ProvideNamedValue[cache.Engine](injector, engineServiceName(namespace), engine)
		}
	}
}

// ProvideEventDispatcher creates an event.Dispatcher provider backed by the
// registry.
func ProvideEventDispatcher(reg *registry.Registry) func(do.Injector) (event.Dispatcher, error) {
	return func(i do.Injector) (event.Dispatcher, error) {
		eventComp, ok := registry.GetTyped[*event.Component](reg, component.ComponentEvent)
		if !ok {
			return nil, ErrComponentNotFound("event")
		}
		return eventComp.GetDispatcher(), nil
	}
}

// ProvideCacheComponent creates a *cache.Component provider backed by the
// registry.
func ProvideCacheComponent(reg *registry.Registry) func(do.Injector) (*cache.Component, error) {
	return func(i do.Injector) (*cache.Component, error) {
		cacheComp, ok := registry.GetTyped[*cache.Component](reg, component.ComponentCache)
		if !ok {
			return nil, ErrComponentNotFound("cache")
		}
		return cacheComp, nil
	}
}

// ProvideEngine creates a provider for one namespace's engine.
func ProvideEngine(reg *registry.Registry, namespace string) func(do.Injector) (cache.Engine, error) {
	return func(i do.Injector) (cache.Engine, error) {
		cacheComp, ok := registry.GetTyped[*cache.Component](reg, component.ComponentCache)
		if !ok {
			return nil, ErrComponentNotFound("cache")
		}
		return cacheComp.Engine(namespace)
	}
}

// InvokeEngine resolves a named engine registered by RegisterCoreComponents.
func InvokeEngine(injector do.Injector, namespace string) (cache.Engine, error) {
	return do.InvokeNamed[cache.Engine](injector, engineServiceName(namespace))
}

func engineServiceName(namespace string) string {
	return "cache.engine." + namespace
}
