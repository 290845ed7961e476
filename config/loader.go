package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

// Loader merges multiple configuration sources by priority. It satisfies
// component.ConfigLoader.
type Loader struct {
	sources      []ConfigSource
	mergedConfig map[string]interface{} // flat, dot-separated keys
	v            *viper.Viper
	loadedFiles  []string
}

// NewLoader creates an empty loader.
func NewLoader() *Loader {
	return &Loader{
		sources:      make([]ConfigSource, 0),
		mergedConfig: make(map[string]interface{}),
		v:            viper.New(),
		loadedFiles:  make([]string, 0),
	}
}

// AddSource registers a configuration source.
func (l *Loader) AddSource(source ConfigSource) {
	l.sources = append(l.sources, source)
}

// Load loads all sources and merges them, lowest priority first so higher
// priorities override.
func (l *Loader) Load() error {
	sort.Slice(l.sources, func(i, j int) bool {
		return l.sources[i].Priority() < l.sources[j].Priority()
	})

	l.mergedConfig = make(map[string]interface{})
	for _, source := range l.sources {
		data, err := source.Load()
		if err != nil {
			return fmt.Errorf("loading source %s failed: %w", source.Name(), err)
		}

		if fileSource, ok := source.(*FileSource); ok {
			l.loadedFiles = append(l.loadedFiles, fileSource.path)
		}

		for key, value := range data {
			l.mergedConfig[key] = value
		}
	}

	l.syncToViper()

	return nil
}

// syncToViper rebuilds the backing viper instance from the merged flat map.
func (l *Loader) syncToViper() {
	nested := unflattenMap(l.mergedConfig)

	l.v = viper.New()
	for key, value := range nested {
		l.v.Set(key, value)
	}
}

// unflattenMap converts dot-separated keys back into nested maps.
func unflattenMap(flat map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{})

	for key, value := range flat {
		setNestedValue(result, key, value)
	}

	return result
}

func setNestedValue(m map[string]interface{}, key string, value interface{}) {
	keys := strings.Split(key, ".")
	if len(keys) == 1 {
		m[keys[0]] = value
		return
	}

	current := m
	for i := 0; i < len(keys)-1; i++ {
		k := keys[i]
		if _, ok := current[k]; !ok {
			current[k] = make(map[string]interface{})
		}

		if nested, ok := current[k].(map[string]interface{}); ok {
			current = nested
		} else {
			// A scalar in the way gets replaced by a map; the deeper key wins.
			newMap := make(map[string]interface{})
			current[k] = newMap
			current = newMap
		}
	}

	current[keys[len(keys)-1]] = value
}

// Unmarshal decodes the section under key into v.
func (l *Loader) Unmarshal(key string, v interface{}) error {
	if !l.v.IsSet(key) {
		return fmt.Errorf("config key not found: %s", key)
	}
	return l.v.UnmarshalKey(key, v)
}

// Get returns the raw value for a key.
func (l *Loader) Get(key string) interface{} {
	return l.v.Get(key)
}

// GetString returns a string value.
func (l *Loader) GetString(key string) string {
	return l.v.GetString(key)
}

// GetInt returns an integer value.
func (l *Loader) GetInt(key string) int {
	return l.v.GetInt(key)
}

// GetBool returns a boolean value.
func (l *Loader) GetBool(key string) bool {
	return l.v.GetBool(key)
}

// IsSet reports whether a key is present.
func (l *Loader) IsSet(key string) bool {
	return l.v.IsSet(key)
}

// AllSettings returns the merged configuration tree.
func (l *Loader) AllSettings() map[string]interface{} {
	return l.v.AllSettings()
}

// GetLoadedFiles returns the file paths that contributed configuration.
func (l *Loader) GetLoadedFiles() []string {
	return l.loadedFiles
}

// Reload loads all sources again.
func (l *Loader) Reload() error {
	return l.Load()
}
