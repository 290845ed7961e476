package cache

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/blacknetb/go-cachefront/validator"
)

// Config is the cache component configuration, loaded from the "cache"
// section.
type Config struct {
	// Enabled whether to enable caching.
	Enabled bool `mapstructure:"enabled"`

	// DefaultTTL default expiration time for namespaces without their own.
	DefaultTTL time.Duration `mapstructure:"default_ttl"`

	// Namespaces one engine is created per entry.
	Namespaces []NamespaceConfig `mapstructure:"namespaces"`

	// InvalidationRules event-driven invalidation rules.
	InvalidationRules []InvalidationRule `mapstructure:"invalidation_rules"`
}

// NamespaceConfig declares one cache engine.
type NamespaceConfig struct {
	// Name namespace name (unique identifier).
	Name string `mapstructure:"name"`

	// DefaultTTL expiration time for this namespace's entries.
	DefaultTTL time.Duration `mapstructure:"default_ttl"`

	// KeyPrefix overrides the namespace as the key prefix.
	KeyPrefix string `mapstructure:"key_prefix"`
}

// InvalidationRule sweeps caches when a domain event fires.
type InvalidationRule struct {
	// Event name of the triggering event.
	Event string `mapstructure:"event"`

	// Namespaces names of the engines to sweep.
	Namespaces []string `mapstructure:"namespaces"`

	// Pattern substring to sweep; empty clears the whole namespace unless
	// the event implements KeyPatterner.
	Pattern string `mapstructure:"pattern"`
}

// ApplyDefaults applies default values.
func (c *Config) ApplyDefaults() {
	if c.DefaultTTL <= 0 {
		c.DefaultTTL = 5 * time.Minute
	}

	for i := range c.Namespaces {
		if c.Namespaces[i].DefaultTTL <= 0 {
			c.Namespaces[i].DefaultTTL = c.DefaultTTL
		}
	}
}

// Validate validates the configuration. Disabled configs are not validated.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}

	err := validation.ValidateStruct(c,
		validation.Field(&c.DefaultTTL, validation.Min(time.Duration(0))),
		validation.Field(&c.Namespaces, validation.Required),
	)
	if err != nil {
		return c.invalid(err)
	}

	declared := make(map[string]bool, len(c.Namespaces))
	for i := range c.Namespaces {
		ns := &c.Namespaces[i]
		err := validation.ValidateStruct(ns,
			validation.Field(&ns.Name, validation.Required),
			validation.Field(&ns.DefaultTTL, validation.Min(time.Duration(0))),
		)
		if err != nil {
			return c.invalid(err)
		}
		if declared[ns.Name] {
			return ErrConfigInvalid.WithMsgf("duplicate namespace: %s", ns.Name)
		}
		declared[ns.Name] = true
	}

	for i := range c.InvalidationRules {
		rule := &c.InvalidationRules[i]
		err := validation.ValidateStruct(rule,
			validation.Field(&rule.Event, validation.Required),
			validation.Field(&rule.Namespaces, validation.Required),
		)
		if err != nil {
			return c.invalid(err)
		}
		for _, name := range rule.Namespaces {
			if !declared[name] {
				return ErrConfigInvalid.WithMsgf("invalidation rule %q references unknown namespace: %s", rule.Event, name)
			}
		}
	}

	return nil
}

func (c *Config) invalid(err error) error {
	if validationErrs, ok := err.(validation.Errors); ok {
		return ErrConfigInvalid.Wrap(validator.ConvertValidationError(validationErrs))
	}
	return ErrConfigInvalid.Wrap(err)
}
