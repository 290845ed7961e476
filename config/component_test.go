package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponent_LoadsSourcesOnInit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cache:\n  enabled: true\n  default_ttl: 2m\n"), 0o644))

	loader := NewLoader()
	loader.AddSource(NewFileSource(path, 10))

	comp := NewComponent(loader)
	assert.Equal(t, "config", comp.Name())
	assert.Empty(t, comp.DependsOn())

	ctx := context.Background()
	require.NoError(t, comp.Init(ctx, nil))
	require.NoError(t, comp.Start(ctx))
	defer comp.Stop(ctx)

	// ConfigLoader surface is delegated to the loader.
	assert.True(t, comp.IsSet("cache"))
	assert.True(t, comp.GetBool("cache.enabled"))
	assert.Equal(t, "2m", comp.GetString("cache.default_ttl"))
	assert.Same(t, loader, comp.GetLoader())

	var section struct {
		Enabled bool `mapstructure:"enabled"`
	}
	require.NoError(t, comp.Unmarshal("cache", &section))
	assert.True(t, section.Enabled)
}

func TestComponent_NilLoader(t *testing.T) {
	comp := NewComponent(nil)
	require.NoError(t, comp.Init(context.Background(), nil))
	assert.False(t, comp.IsSet("anything"))
}
