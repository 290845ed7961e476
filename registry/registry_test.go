package registry

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blacknetb/go-cachefront/component"
)

// fakeComponent records lifecycle calls in a shared journal.
type fakeComponent struct {
	name    string
	deps    []string
	initErr error

	mu      *sync.Mutex
	journal *[]string
}

func newFake(name string, journal *[]string, mu *sync.Mutex, deps ...string) *fakeComponent {
	return &fakeComponent{name: name, deps: deps, journal: journal, mu: mu}
}

func (f *fakeComponent) Name() string        { return f.name }
func (f *fakeComponent) DependsOn() []string { return f.deps }

func (f *fakeComponent) Init(ctx context.Context, loader component.ConfigLoader) error {
	if f.initErr != nil {
		return f.initErr
	}
	f.record("init:" + f.name)
	return nil
}

func (f *fakeComponent) Start(ctx context.Context) error {
	f.record("start:" + f.name)
	return nil
}

func (f *fakeComponent) Stop(ctx context.Context) error {
	f.record("stop:" + f.name)
	return nil
}

func (f *fakeComponent) record(entry string) {
	f.mu.Lock()
	*f.journal = append(*f.journal, entry)
	f.mu.Unlock()
}

// fakeConfig is a config component double: component.Component plus
// component.ConfigLoader.
type fakeConfig struct {
	fakeComponent
}

func newFakeConfig(journal *[]string, mu *sync.Mutex) *fakeConfig {
	return &fakeConfig{fakeComponent: *newFake(component.ComponentConfig, journal, mu)}
}

func (f *fakeConfig) Get(key string) interface{}                { return nil }
func (f *fakeConfig) Unmarshal(key string, v interface{}) error { return nil }
func (f *fakeConfig) GetString(key string) string               { return "" }
func (f *fakeConfig) GetInt(key string) int                     { return 0 }
func (f *fakeConfig) GetBool(key string) bool                   { return false }
func (f *fakeConfig) IsSet(key string) bool                     { return false }

func indexOf(journal []string, entry string) int {
	for i, e := range journal {
		if e == entry {
			return i
		}
	}
	return -1
}

func TestRegistry_Register(t *testing.T) {
	var journal []string
	var mu sync.Mutex
	r := NewRegistry()

	require.NoError(t, r.Register(newFake("a", &journal, &mu)))
	assert.True(t, r.Has("a"))

	err := r.Register(newFake("a", &journal, &mu))
	assert.Error(t, err, "duplicate registration must fail")

	assert.Error(t, r.Register(nil))
	assert.Error(t, r.Register(newFake("", &journal, &mu)))
}

func TestRegistry_GetTyped(t *testing.T) {
	var journal []string
	var mu sync.Mutex
	r := NewRegistry()
	r.MustRegister(newFakeConfig(&journal, &mu))

	cfg, ok := GetTyped[*fakeConfig](r, component.ComponentConfig)
	require.True(t, ok)
	assert.Equal(t, component.ComponentConfig, cfg.Name())

	_, ok = GetTyped[*fakeConfig](r, "absent")
	assert.False(t, ok)

	assert.Panics(t, func() { MustGetTyped[*fakeConfig](r, "absent") })
}

func TestRegistry_LifecycleOrder(t *testing.T) {
	var journal []string
	var mu sync.Mutex
	ctx := context.Background()

	r := NewRegistry()
	r.MustRegister(newFakeConfig(&journal, &mu))
	r.MustRegister(newFake("logger", &journal, &mu, component.ComponentConfig))
	r.MustRegister(newFake("cache", &journal, &mu, component.ComponentConfig, "logger"))

	require.NoError(t, r.Init(ctx))
	require.NoError(t, r.Start(ctx))
	require.NoError(t, r.Stop(ctx))

	// Dependencies initialize before their dependents.
	assert.Less(t, indexOf(journal, "init:config"), indexOf(journal, "init:logger"))
	assert.Less(t, indexOf(journal, "init:logger"), indexOf(journal, "init:cache"))

	// Stop runs in reverse.
	assert.Less(t, indexOf(journal, "stop:cache"), indexOf(journal, "stop:logger"))
	assert.Less(t, indexOf(journal, "stop:logger"), indexOf(journal, "stop:config"))
}

func TestRegistry_OptionalDependency(t *testing.T) {
	var journal []string
	var mu sync.Mutex

	r := NewRegistry()
	r.MustRegister(newFakeConfig(&journal, &mu))
	r.MustRegister(newFake("cache", &journal, &mu, component.ComponentConfig, "optional:event"))

	// "event" is not registered; the optional dependency is skipped.
	require.NoError(t, r.Init(context.Background()))
	assert.Contains(t, journal, "init:cache")
}

func TestRegistry_MissingHardDependency(t *testing.T) {
	var journal []string
	var mu sync.Mutex

	r := NewRegistry()
	r.MustRegister(newFakeConfig(&journal, &mu))
	r.MustRegister(newFake("cache", &journal, &mu, "event"))

	err := r.Init(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "event")
}

func TestRegistry_CycleDetected(t *testing.T) {
	var journal []string
	var mu sync.Mutex

	r := NewRegistry()
	r.MustRegister(newFakeConfig(&journal, &mu))
	r.MustRegister(newFake("a", &journal, &mu, "b"))
	r.MustRegister(newFake("b", &journal, &mu, "a"))

	err := r.Init(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle")
}

func TestRegistry_InitRequiresConfig(t *testing.T) {
	var journal []string
	var mu sync.Mutex

	r := NewRegistry()
	r.MustRegister(newFake("cache", &journal, &mu))

	assert.Error(t, r.Init(context.Background()))
}

func TestRegistry_InitErrorPropagates(t *testing.T) {
	var journal []string
	var mu sync.Mutex
	boom := errors.New("boom")

	r := NewRegistry()
	r.MustRegister(newFakeConfig(&journal, &mu))
	failing := newFake("cache", &journal, &mu, component.ComponentConfig)
	failing.initErr = boom
	r.MustRegister(failing)

	err := r.Init(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}
