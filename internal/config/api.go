package config

import (
	"fmt"
	"strings"

	"github.com/gidroatlas/gidroatlas/pkg/envconf"
	"github.com/gidroatlas/gidroatlas/pkg/middleware"
	"github.com/gidroatlas/gidroatlas/pkg/openapi"
	"github.com/gidroatlas/gidroatlas/pkg/pagination"
)

const EnvAPIBasePath = "GIDROATLAS_API_BASE_PATH"

var corsEnv = &middleware.CORSEnv{
	Enabled:          "GIDROATLAS_CORS_ENABLED",
	Origins:          "GIDROATLAS_CORS_ORIGINS",
	AllowedMethods:   "GIDROATLAS_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "GIDROATLAS_CORS_ALLOWED_HEADERS",
	ExposedHeaders:   "GIDROATLAS_CORS_EXPOSED_HEADERS",
	AllowCredentials: "GIDROATLAS_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "GIDROATLAS_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "GIDROATLAS_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "GIDROATLAS_PAGINATION_MAX_PAGE_SIZE",
}

var openapiEnv = &openapi.ConfigEnv{
	Title:       "GIDROATLAS_OPENAPI_TITLE",
	Description: "GIDROATLAS_OPENAPI_DESCRIPTION",
}

// APIConfig holds API routing, CORS, pagination, and OpenAPI settings.
type APIConfig struct {
	BasePath   string                `toml:"base_path"`
	CORS       middleware.CORSConfig `toml:"cors"`
	Pagination pagination.Config     `toml:"pagination"`
	OpenAPI    openapi.Config        `toml:"openapi"`
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested configs. The OpenAPI document version
// follows the service version unless set explicitly.
func (c *APIConfig) Finalize(version string) error {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	envconf.String(EnvAPIBasePath, &c.BasePath)

	if !strings.HasPrefix(c.BasePath, "/") || strings.HasSuffix(c.BasePath, "/") {
		return fmt.Errorf("invalid base_path %q: must start and not end with /", c.BasePath)
	}

	if c.OpenAPI.Version == "" {
		c.OpenAPI.Version = version
	}

	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	if err := c.OpenAPI.Finalize(openapiEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}
