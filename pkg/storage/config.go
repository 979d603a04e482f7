package storage

import (
	"fmt"

	"github.com/gidroatlas/gidroatlas/pkg/envconf"
	"github.com/gidroatlas/gidroatlas/pkg/formatting"
)

// Config holds Azure Blob Storage settings. Either ConnectionString or
// ServiceURL is required; with only ServiceURL the client authenticates
// through the default Azure credential chain.
type Config struct {
	ContainerName    string `toml:"container_name"`
	ConnectionString string `toml:"connection_string"`
	ServiceURL       string `toml:"service_url"`
	MaxUploadSize    string `toml:"max_upload_size"`
}

// Env names the environment variables that override Config fields.
type Env struct {
	ContainerName    string
	ConnectionString string
	ServiceURL       string
	MaxUploadSize    string
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		envconf.String(env.ContainerName, &c.ContainerName)
		envconf.String(env.ConnectionString, &c.ConnectionString)
		envconf.String(env.ServiceURL, &c.ServiceURL)
		envconf.String(env.MaxUploadSize, &c.MaxUploadSize)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.ContainerName != "" {
		c.ContainerName = overlay.ContainerName
	}
	if overlay.ConnectionString != "" {
		c.ConnectionString = overlay.ConnectionString
	}
	if overlay.ServiceURL != "" {
		c.ServiceURL = overlay.ServiceURL
	}
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}
}

// MaxUploadBytes returns the parsed upload limit.
func (c *Config) MaxUploadBytes() int64 {
	n, _ := formatting.ParseBytes(c.MaxUploadSize)
	return n
}

func (c *Config) loadDefaults() {
	if c.ContainerName == "" {
		c.ContainerName = "passports"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "20MB"
	}
}

func (c *Config) validate() error {
	if c.ContainerName == "" {
		return fmt.Errorf("container_name required")
	}
	if c.ConnectionString == "" && c.ServiceURL == "" {
		return fmt.Errorf("connection_string or service_url required")
	}
	n, err := formatting.ParseBytes(c.MaxUploadSize)
	if err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	if n <= 0 {
		return fmt.Errorf("max_upload_size must be positive")
	}
	return nil
}
