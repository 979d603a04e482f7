// Package config loads the service configuration from TOML files and
// GIDROATLAS_ environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/gidroatlas/gidroatlas/internal/auth"
	"github.com/gidroatlas/gidroatlas/internal/chat"
	"github.com/gidroatlas/gidroatlas/internal/scheduler"
	"github.com/gidroatlas/gidroatlas/pkg/database"
	"github.com/gidroatlas/gidroatlas/pkg/envconf"
	"github.com/gidroatlas/gidroatlas/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvGidroAtlasEnv             = "GIDROATLAS_ENV"
	EnvGidroAtlasShutdownTimeout = "GIDROATLAS_SHUTDOWN_TIMEOUT"
	EnvGidroAtlasVersion         = "GIDROATLAS_VERSION"
	EnvGidroAtlasLogLevel        = "GIDROATLAS_LOG_LEVEL"
)

// databaseEnv names the database overrides; LoadDatabase applies them alone.
var databaseEnv = &database.Env{
	Host:            "GIDROATLAS_DB_HOST",
	Port:            "GIDROATLAS_DB_PORT",
	Name:            "GIDROATLAS_DB_NAME",
	User:            "GIDROATLAS_DB_USER",
	Password:        "GIDROATLAS_DB_PASSWORD",
	SSLMode:         "GIDROATLAS_DB_SSL_MODE",
	MaxOpenConns:    "GIDROATLAS_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "GIDROATLAS_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "GIDROATLAS_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "GIDROATLAS_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	ContainerName:    "GIDROATLAS_STORAGE_CONTAINER_NAME",
	ConnectionString: "GIDROATLAS_STORAGE_CONNECTION_STRING",
	ServiceURL:       "GIDROATLAS_STORAGE_SERVICE_URL",
	MaxUploadSize:    "GIDROATLAS_STORAGE_MAX_UPLOAD_SIZE",
}

var authEnv = &auth.Env{
	Secret:    "GIDROATLAS_AUTH_SECRET",
	Issuer:    "GIDROATLAS_AUTH_ISSUER",
	TokenTTL:  "GIDROATLAS_AUTH_TOKEN_TTL",
	DemoUsers: "GIDROATLAS_AUTH_DEMO_USERS",
}

var chatEnv = &chat.Env{
	BaseURL:      "GIDROATLAS_CHAT_BASE_URL",
	APIKey:       "GIDROATLAS_CHAT_API_KEY",
	Model:        "GIDROATLAS_CHAT_MODEL",
	SystemPrompt: "GIDROATLAS_CHAT_SYSTEM_PROMPT",
	Timeout:      "GIDROATLAS_CHAT_TIMEOUT",
	MaxHistory:   "GIDROATLAS_CHAT_MAX_HISTORY",
}

var schedulerEnv = &scheduler.Env{
	Enabled: "GIDROATLAS_SCHEDULER_ENABLED",
	Spec:    "GIDROATLAS_SCHEDULER_SPEC",
	Timeout: "GIDROATLAS_SCHEDULER_TIMEOUT",
}

// Config is the root configuration for the GidroAtlas service.
type Config struct {
	Server          ServerConfig     `toml:"server"`
	Database        database.Config  `toml:"database"`
	Storage         storage.Config   `toml:"storage"`
	API             APIConfig        `toml:"api"`
	Auth            auth.Config      `toml:"auth"`
	Chat            chat.Config      `toml:"chat"`
	Scheduler       scheduler.Config `toml:"scheduler"`
	ShutdownTimeout string           `toml:"shutdown_timeout"`
	Version         string           `toml:"version"`
	LogLevel        string           `toml:"log_level"`
}

// Env returns the GIDROATLAS_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvGidroAtlasEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	return LoadFrom(BaseConfigFile)
}

// LoadFrom is Load with an explicit base path. The overlay is looked up
// next to the base file.
func LoadFrom(base string) (*Config, error) {
	cfg, err := read(base)
	if err != nil {
		return nil, err
	}
	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}
	return cfg, nil
}

// read merges base and overlay without finalizing.
func read(base string) (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(base); err == nil {
		loaded, err := load(base)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(base); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	return cfg, nil
}

// LoadDatabase reads only the database section from base and its overlay,
// so tooling such as migrations runs without the service secrets.
func LoadDatabase(base string) (*database.Config, error) {
	cfg, err := read(base)
	if err != nil {
		return nil, err
	}
	if err := cfg.Database.Finalize(databaseEnv); err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	return &cfg.Database, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	if overlay.LogLevel != "" {
		c.LogLevel = overlay.LogLevel
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.API.Merge(&overlay.API)
	c.Auth.Merge(&overlay.Auth)
	c.Chat.Merge(&overlay.Chat)
	c.Scheduler.Merge(&overlay.Scheduler)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.API.Finalize(c.Version); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Auth.Finalize(authEnv); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	if err := c.Chat.Finalize(chatEnv); err != nil {
		return fmt.Errorf("chat: %w", err)
	}
	if err := c.Scheduler.Finalize(schedulerEnv); err != nil {
		return fmt.Errorf("scheduler: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func (c *Config) loadEnv() {
	envconf.String(EnvGidroAtlasShutdownTimeout, &c.ShutdownTimeout)
	envconf.String(EnvGidroAtlasVersion, &c.Version)
	envconf.String(EnvGidroAtlasLogLevel, &c.LogLevel)
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level: %q", c.LogLevel)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath(base string) string {
	env := os.Getenv(EnvGidroAtlasEnv)
	if env == "" {
		return ""
	}
	path := filepath.Join(filepath.Dir(base), fmt.Sprintf(OverlayConfigPattern, env))
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}
