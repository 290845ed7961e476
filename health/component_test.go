package health

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blacknetb/go-cachefront/component"
	"github.com/blacknetb/go-cachefront/registry"
)

// checkedComponent is a component that exposes a health checker.
type checkedComponent struct {
	name     string
	checkErr error
}

func (c *checkedComponent) Name() string        { return c.name }
func (c *checkedComponent) DependsOn() []string { return nil }

func (c *checkedComponent) Init(ctx context.Context, _ component.ConfigLoader) error { return nil }
func (c *checkedComponent) Start(ctx context.Context) error                          { return nil }
func (c *checkedComponent) Stop(ctx context.Context) error                           { return nil }

func (c *checkedComponent) Check(ctx context.Context) error           { return c.checkErr }
func (c *checkedComponent) GetHealthChecker() component.HealthChecker { return c }

type emptyLoader struct{}

func (emptyLoader) Get(key string) interface{}                { return nil }
func (emptyLoader) Unmarshal(key string, v interface{}) error { return nil }
func (emptyLoader) GetString(key string) string               { return "" }
func (emptyLoader) GetInt(key string) int                     { return 0 }
func (emptyLoader) GetBool(key string) bool                   { return false }
func (emptyLoader) IsSet(key string) bool                     { return false }

func TestComponent_DiscoversCheckersFromRegistry(t *testing.T) {
	reg := registry.NewRegistry()
	reg.MustRegister(&checkedComponent{name: "cache"})
	reg.MustRegister(&checkedComponent{name: "event", checkErr: errors.New("pool exhausted")})

	comp := NewComponent()
	comp.SetRegistry(reg)

	ctx := context.Background()
	require.NoError(t, comp.Init(ctx, emptyLoader{}))
	require.NoError(t, comp.Start(ctx))
	defer comp.Stop(ctx)

	assert.True(t, comp.IsEnabled())

	resp := comp.Check(ctx)
	require.Len(t, resp.Checks, 2)
	assert.Equal(t, StatusUnhealthy, resp.Status)
	assert.Equal(t, StatusHealthy, resp.Checks["cache"].Status)
	assert.Equal(t, StatusUnhealthy, resp.Checks["event"].Status)
}

func TestComponent_DisabledAlwaysHealthy(t *testing.T) {
	comp := NewComponent()
	ctx := context.Background()

	require.NoError(t, comp.Init(ctx, emptyLoader{}))
	comp.config.Enabled = false

	resp := comp.Check(ctx)
	assert.True(t, resp.IsHealthy())
	assert.Empty(t, resp.Checks)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}
