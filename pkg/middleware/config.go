package middleware

import (
	"errors"
	"slices"

	"github.com/gidroatlas/gidroatlas/pkg/envconf"
)

// CORSConfig is the cross-origin policy for browser clients of the API.
type CORSConfig struct {
	Enabled          bool     `toml:"enabled"`
	Origins          []string `toml:"origins"`
	AllowedMethods   []string `toml:"allowed_methods"`
	AllowedHeaders   []string `toml:"allowed_headers"`
	ExposedHeaders   []string `toml:"exposed_headers"`
	AllowCredentials bool     `toml:"allow_credentials"`
	MaxAge           int      `toml:"max_age"`
}

type CORSEnv struct {
	Enabled          string
	Origins          string
	AllowedMethods   string
	AllowedHeaders   string
	ExposedHeaders   string
	AllowCredentials string
	MaxAge           string
}

var (
	defaultMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	defaultHeaders = []string{"Authorization", "Content-Type"}
	// Downloads name their file through Content-Disposition.
	defaultExposed = []string{"Content-Disposition"}
)

// Finalize fills defaults, reads env overrides, and rejects a wildcard
// origin combined with credentials, which browsers refuse.
func (c *CORSConfig) Finalize(env *CORSEnv) error {
	if env != nil {
		envconf.Bool(env.Enabled, &c.Enabled)
		envconf.List(env.Origins, &c.Origins)
		envconf.List(env.AllowedMethods, &c.AllowedMethods)
		envconf.List(env.AllowedHeaders, &c.AllowedHeaders)
		envconf.List(env.ExposedHeaders, &c.ExposedHeaders)
		envconf.Bool(env.AllowCredentials, &c.AllowCredentials)
		envconf.Int(env.MaxAge, &c.MaxAge)
	}

	c.AllowedMethods = orDefault(c.AllowedMethods, defaultMethods)
	c.AllowedHeaders = orDefault(c.AllowedHeaders, defaultHeaders)
	c.ExposedHeaders = orDefault(c.ExposedHeaders, defaultExposed)
	if c.MaxAge <= 0 {
		c.MaxAge = 3600
	}

	if c.AllowCredentials && slices.Contains(c.Origins, "*") {
		return errors.New("allow_credentials cannot be combined with origin \"*\"")
	}
	return nil
}

// Merge applies overlay. The two booleans always win; lists and max age
// only when the overlay sets them.
func (c *CORSConfig) Merge(overlay *CORSConfig) {
	c.Enabled = overlay.Enabled
	c.AllowCredentials = overlay.AllowCredentials

	for _, f := range []struct{ dst, src *[]string }{
		{&c.Origins, &overlay.Origins},
		{&c.AllowedMethods, &overlay.AllowedMethods},
		{&c.AllowedHeaders, &overlay.AllowedHeaders},
		{&c.ExposedHeaders, &overlay.ExposedHeaders},
	} {
		if *f.src != nil {
			*f.dst = *f.src
		}
	}
	if overlay.MaxAge > 0 {
		c.MaxAge = overlay.MaxAge
	}
}

func orDefault(v, def []string) []string {
	if len(v) == 0 {
		return slices.Clone(def)
	}
	return v
}
