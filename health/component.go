package health

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/blacknetb/go-cachefront/component"
	"github.com/blacknetb/go-cachefront/logger"
	"github.com/blacknetb/go-cachefront/registry"
)

// ComponentName is the health component's registry name.
const ComponentName = "health"

// Component wires the aggregator into the component lifecycle and discovers
// checkers from the registry.
type Component struct {
	aggregator *Aggregator
	config     Config
	logger     *logger.CtxZapLogger
	registry   *registry.Registry
}

// NewComponent creates the health component.
func NewComponent() *Component {
	return &Component{}
}

// Name returns the component name.
func (c *Component) Name() string {
	return ComponentName
}

// DependsOn returns the component dependencies.
func (c *Component) DependsOn() []string {
	return []string{
		component.ComponentConfig,
		component.ComponentLogger,
	}
}

// SetRegistry injects the registry used to discover health check providers.
func (c *Component) SetRegistry(r *registry.Registry) {
	c.registry = r
}

// Init loads the "health" section and creates the aggregator.
func (c *Component) Init(ctx context.Context, loader component.ConfigLoader) error {
	c.logger = logger.GetLogger("cachefront")

	c.config = DefaultConfig()
	if loader.IsSet("health") {
		if err := loader.Unmarshal("health", &c.config); err != nil {
			c.logger.WarnCtx(ctx, "unmarshalling health config failed, using defaults", zap.Error(err))
		}
	}

	if !c.config.Enabled {
		c.logger.InfoCtx(ctx, "health component disabled")
		return nil
	}

	c.aggregator = NewAggregator(c.config.Timeout)
	c.logger.InfoCtx(ctx, "health component initialized", zap.Duration("timeout", c.config.Timeout))
	return nil
}

// Start discovers checkers from every registered component implementing
// HealthCheckProvider.
func (c *Component) Start(ctx context.Context) error {
	if !c.config.Enabled {
		return nil
	}

	if c.registry != nil {
		c.discoverCheckers(ctx)
	}
	return nil
}

// Stop is a no-op.
func (c *Component) Stop(ctx context.Context) error {
	return nil
}

// GetAggregator returns the aggregator.
func (c *Component) GetAggregator() *Aggregator {
	return c.aggregator
}

// IsEnabled reports whether the component is active.
func (c *Component) IsEnabled() bool {
	return c.config.Enabled
}

// Check runs all discovered checks.
func (c *Component) Check(ctx context.Context) *Response {
	if !c.config.Enabled || c.aggregator == nil {
		return &Response{
			Status:    StatusHealthy,
			Timestamp: time.Now(),
			Checks:    make(map[string]CheckResult),
			Metadata:  map[string]interface{}{"enabled": false},
		}
	}
	return c.aggregator.Check(ctx)
}

func (c *Component) discoverCheckers(ctx context.Context) {
	comps, err := c.registry.Resolve()
	if err != nil {
		c.logger.WarnCtx(ctx, "resolving components for health discovery failed", zap.Error(err))
		return
	}

	for _, comp := range comps {
		provider, ok := comp.(component.HealthCheckProvider)
		if !ok {
			continue
		}
		checker := provider.GetHealthChecker()
		if checker == nil {
			continue
		}
		c.aggregator.Register(checker)
		c.logger.DebugCtx(ctx, "registered health checker", zap.String("name", checker.Name()))
	}
}
