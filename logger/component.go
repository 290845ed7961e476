package logger

import (
	"context"

	"github.com/blacknetb/go-cachefront/component"
)

// Component configures the global logger manager from the "logger" config
// section during Init. Every other component names it in DependsOn so the
// manager is ready before their loggers are created.
type Component struct {
	core *CtxZapLogger
}

// NewComponent creates the logger component.
func NewComponent() *Component {
	return &Component{}
}

// Name returns the component name.
func (c *Component) Name() string {
	return component.ComponentLogger
}

// DependsOn returns the component dependencies.
func (c *Component) DependsOn() []string {
	return []string{component.ComponentConfig}
}

// Init builds the manager from the "logger" section, falling back to
// defaults when the section is absent.
func (c *Component) Init(ctx context.Context, loader component.ConfigLoader) error {
	cfg := DefaultManagerConfig()
	if loader.IsSet("logger") {
		if err := loader.Unmarshal("logger", &cfg); err != nil {
			return err
		}
		cfg.ApplyDefaults()
	}

	if err := ResetManager(cfg); err != nil {
		return err
	}

	c.core = GetLogger("cachefront")
	return nil
}

// Start makes the component operational. Logging needs no startup.
func (c *Component) Start(ctx context.Context) error {
	return nil
}

// Stop flushes and closes all log files.
func (c *Component) Stop(ctx context.Context) error {
	if c.core != nil {
		CloseAll()
		c.core = nil
	}
	return nil
}

// GetLogger returns the core logger instance.
func (c *Component) GetLogger() *CtxZapLogger {
	return c.core
}
