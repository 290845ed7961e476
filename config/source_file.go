package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// FileSource loads configuration from a file (any format viper reads).
type FileSource struct {
	path     string
	priority int
}

// NewFileSource creates a file source.
func NewFileSource(path string, priority int) *FileSource {
	return &FileSource{
		path:     path,
		priority: priority,
	}
}

// Name returns the source name.
func (s *FileSource) Name() string {
	return "file:" + s.path
}

// Priority returns the source priority.
func (s *FileSource) Priority() int {
	return s.priority
}

// Load reads the file. A missing file is not an error, it just contributes
// nothing.
func (s *FileSource) Load() (map[string]interface{}, error) {
	if _, err := os.Stat(s.path); err != nil {
		if os.IsNotExist(err) {
			return make(map[string]interface{}), nil
		}
		return nil, fmt.Errorf("cannot access config file %s: %w", s.path, err)
	}

	v := viper.New()
	v.SetConfigFile(s.path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", s.path, err)
	}

	return flattenMap("", v.AllSettings()), nil
}

// flattenMap converts a nested map into dot-separated keys, e.g.
// {"cache": {"default_ttl": "5m"}} -> {"cache.default_ttl": "5m"}.
func flattenMap(prefix string, data map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{})

	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case map[string]interface{}:
			for nestedKey, nestedValue := range flattenMap(fullKey, v) {
				result[nestedKey] = nestedValue
			}
		default:
			result[fullKey] = value
		}
	}

	return result
}
