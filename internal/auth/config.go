package auth

import (
	"fmt"
	"time"

	"github.com/gidroatlas/gidroatlas/pkg/envconf"
)

// Config holds token signing and login settings.
type Config struct {
	Secret    string `toml:"secret"`
	Issuer    string `toml:"issuer"`
	TokenTTL  string `toml:"token_ttl"`
	DemoUsers *bool  `toml:"demo_users"`
}

// Env names the environment variables that override Config fields.
type Env struct {
	Secret    string
	Issuer    string
	TokenTTL  string
	DemoUsers string
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		envconf.String(env.Secret, &c.Secret)
		envconf.String(env.Issuer, &c.Issuer)
		envconf.String(env.TokenTTL, &c.TokenTTL)
		envconf.Bool(env.DemoUsers, c.DemoUsers)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Secret != "" {
		c.Secret = overlay.Secret
	}
	if overlay.Issuer != "" {
		c.Issuer = overlay.Issuer
	}
	if overlay.TokenTTL != "" {
		c.TokenTTL = overlay.TokenTTL
	}
	if overlay.DemoUsers != nil {
		c.DemoUsers = overlay.DemoUsers
	}
}

// TokenTTLDuration returns the parsed token lifetime.
func (c *Config) TokenTTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.TokenTTL)
	return d
}

// DemoUsersEnabled reports whether the built-in demo accounts may log in.
func (c *Config) DemoUsersEnabled() bool {
	return c.DemoUsers != nil && *c.DemoUsers
}

func (c *Config) loadDefaults() {
	if c.Issuer == "" {
		c.Issuer = "gidroatlas"
	}
	if c.TokenTTL == "" {
		c.TokenTTL = "24h"
	}
	if c.DemoUsers == nil {
		enabled := true
		c.DemoUsers = &enabled
	}
}

const minSecretLength = 32

func (c *Config) validate() error {
	if len(c.Secret) < minSecretLength {
		return fmt.Errorf("secret must be at least %d characters", minSecretLength)
	}
	d, err := time.ParseDuration(c.TokenTTL)
	if err != nil {
		return fmt.Errorf("invalid token_ttl: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("token_ttl must be positive")
	}
	return nil
}
