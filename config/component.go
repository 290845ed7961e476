package config

import (
	"context"

	"github.com/blacknetb/go-cachefront/component"
)

// Component wraps a Loader as a lifecycle component. It is the lowest-level
// component: every other component reads its section through this loader.
type Component struct {
	loader *Loader
}

// NewComponent creates the config component around a prepared loader.
// Sources must be added before the registry runs Init.
func NewComponent(loader *Loader) *Component {
	if loader == nil {
		loader = NewLoader()
	}
	return &Component{loader: loader}
}

// Name returns the component name.
func (c *Component) Name() string {
	return component.ComponentConfig
}

// DependsOn returns no dependencies; config is the bottom of the graph.
func (c *Component) DependsOn() []string {
	return nil
}

// Init loads and merges all registered sources.
func (c *Component) Init(ctx context.Context, _ component.ConfigLoader) error {
	return c.loader.Load()
}

// Start is a no-op; the loader is ready after Init.
func (c *Component) Start(ctx context.Context) error {
	return nil
}

// Stop is a no-op.
func (c *Component) Stop(ctx context.Context) error {
	return nil
}

// GetLoader returns the underlying loader.
func (c *Component) GetLoader() *Loader {
	return c.loader
}

// ConfigLoader delegation.

func (c *Component) Get(key string) interface{}                { return c.loader.Get(key) }
func (c *Component) Unmarshal(key string, v interface{}) error { return c.loader.Unmarshal(key, v) }
func (c *Component) GetString(key string) string               { return c.loader.GetString(key) }
func (c *Component) GetInt(key string) int                     { return c.loader.GetInt(key) }
func (c *Component) GetBool(key string) bool                   { return c.loader.GetBool(key) }
func (c *Component) IsSet(key string) bool                     { return c.loader.IsSet(key) }
