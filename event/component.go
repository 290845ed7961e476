package event

import (
	"context"

	"github.com/blacknetb/go-cachefront/component"
	"github.com/blacknetb/go-cachefront/logger"
	"go.uber.org/zap"
)

// Config is the event component configuration.
type Config struct {
	Enabled  bool `mapstructure:"enabled"`
	PoolSize int  `mapstructure:"pool_size"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Enabled:  true,
		PoolSize: 100,
	}
}

// Component is the event component.
type Component struct {
	dispatcher *dispatcher
	logger     *logger.CtxZapLogger
	config     Config
}

// NewComponent creates the event component.
func NewComponent() *Component {
	return &Component{}
}

// Name returns the component name.
func (c *Component) Name() string {
	return component.ComponentEvent
}

// DependsOn returns the component dependencies.
func (c *Component) DependsOn() []string {
	return []string{
		component.ComponentConfig,
		component.ComponentLogger,
	}
}

// Init loads configuration and creates the dispatcher.
func (c *Component) Init(ctx context.Context, loader component.ConfigLoader) error {
	c.logger = logger.GetLogger("cachefront")

	c.config = DefaultConfig()
	if err := loader.Unmarshal("event", &c.config); err != nil {
		c.logger.DebugCtx(ctx, "using default event config")
	}

	if !c.config.Enabled {
		c.logger.InfoCtx(ctx, "event component disabled")
		return nil
	}

	c.dispatcher = NewDispatcher(WithPoolSize(c.config.PoolSize))

	c.logger.InfoCtx(ctx, "event component initialized", zap.Int("pool_size", c.config.PoolSize))
	return nil
}

// Start makes the component operational.
func (c *Component) Start(ctx context.Context) error {
	return nil
}

// Stop releases the dispatcher pool.
func (c *Component) Stop(ctx context.Context) error {
	if c.dispatcher != nil {
		c.dispatcher.Close()
		c.logger.InfoCtx(ctx, "event component stopped")
	}
	return nil
}

// GetDispatcher returns the dispatcher.
func (c *Component) GetDispatcher() Dispatcher {
	return c.dispatcher
}

// IsEnabled reports whether the component is active.
func (c *Component) IsEnabled() bool {
	return c.config.Enabled && c.dispatcher != nil
}
