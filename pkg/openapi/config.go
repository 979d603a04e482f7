package openapi

import "github.com/gidroatlas/gidroatlas/pkg/envconf"

// Config holds document metadata for the generated OpenAPI spec.
type Config struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
	Version     string `toml:"version"`
}

// ConfigEnv names the environment variables that override Config fields.
type ConfigEnv struct {
	Title       string
	Description string
	Version     string
}

// Finalize applies defaults and environment variable overrides.
func (c *Config) Finalize(env *ConfigEnv) error {
	if c.Title == "" {
		c.Title = "GidroAtlas API"
	}
	if c.Description == "" {
		c.Description = "Water object registry with inspection priorities and water quality assessment."
	}
	if c.Version == "" {
		c.Version = "1.0.0"
	}
	if env != nil {
		envconf.String(env.Title, &c.Title)
		envconf.String(env.Description, &c.Description)
		envconf.String(env.Version, &c.Version)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Title != "" {
		c.Title = overlay.Title
	}
	if overlay.Description != "" {
		c.Description = overlay.Description
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
}
