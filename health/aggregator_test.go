package health

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChecker struct {
	name string
	err  error
}

func (s *stubChecker) Name() string                    { return s.name }
func (s *stubChecker) Check(ctx context.Context) error { return s.err }

func TestAggregator_AllHealthy(t *testing.T) {
	a := NewAggregator(time.Second)
	a.Register(&stubChecker{name: "cache"})
	a.Register(&stubChecker{name: "event"})
	a.SetMetadata("service", "cachefront")

	resp := a.Check(context.Background())

	assert.True(t, resp.IsHealthy())
	require.Len(t, resp.Checks, 2)
	assert.Equal(t, StatusHealthy, resp.Checks["cache"].Status)
	assert.Equal(t, "cachefront", resp.Metadata["service"])
}

func TestAggregator_UnhealthyCheckerFailsReport(t *testing.T) {
	a := NewAggregator(time.Second)
	a.Register(&stubChecker{name: "cache"})
	a.Register(&stubChecker{name: "event", err: errors.New("pool exhausted")})

	resp := a.Check(context.Background())

	assert.False(t, resp.IsHealthy())
	assert.Equal(t, StatusUnhealthy, resp.Status)
	assert.Equal(t, StatusUnhealthy, resp.Checks["event"].Status)
	assert.Contains(t, resp.Checks["event"].Error, "pool exhausted")
	assert.Equal(t, StatusHealthy, resp.Checks["cache"].Status)
}

func TestAggregator_NoCheckers(t *testing.T) {
	a := NewAggregator(0) // default timeout

	resp := a.Check(context.Background())

	assert.True(t, resp.IsHealthy())
	assert.Empty(t, resp.Checks)
}

func TestOverallStatus_Degraded(t *testing.T) {
	checks := map[string]CheckResult{
		"a": {Status: StatusHealthy},
		"b": {Status: StatusDegraded},
	}
	assert.Equal(t, StatusDegraded, overallStatus(checks))
}
