package config

import (
	"os"
	"strings"
)

// EnvSource loads configuration from environment variables.
type EnvSource struct {
	prefix   string // env var prefix, e.g. "APP"
	priority int
	bindings map[string]string // config key -> env var, e.g. "cache.enabled" -> "CACHE_ENABLED"
}

// NewEnvSource creates an environment variable source.
func NewEnvSource(prefix string, priority int) *EnvSource {
	return &EnvSource{
		prefix:   prefix,
		priority: priority,
		bindings: make(map[string]string),
	}
}

// AddBinding maps a config key to an explicit environment variable.
func (s *EnvSource) AddBinding(key, envKey string) {
	s.bindings[key] = envKey
}

// Name returns the source name.
func (s *EnvSource) Name() string {
	return "env:" + s.prefix
}

// Priority returns the source priority.
func (s *EnvSource) Priority() int {
	return s.priority
}

// Load reads environment variables. Explicit bindings win; otherwise all
// variables matching the prefix are scanned and converted
// (APP_CACHE_ENABLED -> cache.enabled).
func (s *EnvSource) Load() (map[string]interface{}, error) {
	result := make(map[string]interface{})

	if len(s.bindings) > 0 {
		for key, envKey := range s.bindings {
			fullEnvKey := envKey
			if s.prefix != "" && !strings.HasPrefix(envKey, s.prefix+"_") {
				fullEnvKey = s.prefix + "_" + envKey
			}

			if value := os.Getenv(fullEnvKey); value != "" {
				result[key] = value
			}
		}
		return result, nil
	}

	if s.prefix == "" {
		return result, nil
	}

	prefix := s.prefix + "_"
	for _, env := range os.Environ() {
		parts := strings.SplitN(env, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := parts[0]
		value := parts[1]

		if strings.HasPrefix(key, prefix) {
			configKey := strings.TrimPrefix(key, prefix)
			configKey = strings.ToLower(configKey)
			configKey = strings.ReplaceAll(configKey, "_", ".")
			result[configKey] = value
		}
	}

	return result, nil
}
