// Package config provides a multi-source configuration loader. Sources are
// merged by priority into a flat key space and exposed through a viper
// instance that satisfies component.ConfigLoader.
package config

// ConfigSource is implemented by every configuration data source (files,
// environment variables, ...).
type ConfigSource interface {
	// Name identifies the source in logs.
	Name() string

	// Priority orders sources; higher values override lower ones.
	// Suggested values: defaults 1, config file 10, env-specific file 20,
	// environment variables 50.
	Priority() int

	// Load returns the source's data as a flat map with dot-separated
	// keys, e.g. "cache.default_ttl".
	Load() (map[string]interface{}, error)
}
