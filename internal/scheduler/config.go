package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/gidroatlas/gidroatlas/pkg/envconf"
)

// Config controls the periodic priority recalculation.
type Config struct {
	Enabled *bool  `toml:"enabled"`
	Spec    string `toml:"spec"`
	Timeout string `toml:"timeout"`
}

// Env names the environment variables that override Config fields.
type Env struct {
	Enabled string
	Spec    string
	Timeout string
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		envconf.Bool(env.Enabled, c.Enabled)
		envconf.String(env.Spec, &c.Spec)
		envconf.String(env.Timeout, &c.Timeout)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Enabled != nil {
		c.Enabled = overlay.Enabled
	}
	if overlay.Spec != "" {
		c.Spec = overlay.Spec
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
}

// IsEnabled reports whether the job should be scheduled.
func (c *Config) IsEnabled() bool {
	return c.Enabled != nil && *c.Enabled
}

// TimeoutDuration bounds a single run.
func (c *Config) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

func (c *Config) loadDefaults() {
	if c.Enabled == nil {
		enabled := true
		c.Enabled = &enabled
	}
	if c.Spec == "" {
		c.Spec = "@daily"
	}
	if c.Timeout == "" {
		c.Timeout = "5m"
	}
}

func (c *Config) validate() error {
	if _, err := cron.ParseStandard(c.Spec); err != nil {
		return fmt.Errorf("invalid spec %q: %w", c.Spec, err)
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}
