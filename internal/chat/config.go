package chat

import (
	"fmt"
	"time"

	"github.com/gidroatlas/gidroatlas/pkg/envconf"
)

// DefaultSystemPrompt frames the assistant for the monitoring system.
const DefaultSystemPrompt = `You are a helpful assistant for GidroAtlas, a water resources monitoring system for Kazakhstan.
You help users with questions about water objects, monitoring data, and system features.
Answer in Russian if the user writes in Russian, otherwise in English.
Be concise and friendly in your responses.`

// Config holds the completion provider settings. Any OpenAI-compatible
// endpoint works; an empty BaseURL uses the OpenAI API.
type Config struct {
	BaseURL      string `toml:"base_url"`
	APIKey       string `toml:"api_key"`
	Model        string `toml:"model"`
	SystemPrompt string `toml:"system_prompt"`
	Timeout      string `toml:"timeout"`
	MaxHistory   int    `toml:"max_history"`
}

// Env names the environment variables that override Config fields.
type Env struct {
	BaseURL      string
	APIKey       string
	Model        string
	SystemPrompt string
	Timeout      string
	MaxHistory   string
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		envconf.String(env.BaseURL, &c.BaseURL)
		envconf.String(env.APIKey, &c.APIKey)
		envconf.String(env.Model, &c.Model)
		envconf.String(env.SystemPrompt, &c.SystemPrompt)
		envconf.String(env.Timeout, &c.Timeout)
		envconf.Int(env.MaxHistory, &c.MaxHistory)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.Model != "" {
		c.Model = overlay.Model
	}
	if overlay.SystemPrompt != "" {
		c.SystemPrompt = overlay.SystemPrompt
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if overlay.MaxHistory != 0 {
		c.MaxHistory = overlay.MaxHistory
	}
}

// Enabled reports whether an API key is configured.
func (c *Config) Enabled() bool {
	return c.APIKey != ""
}

// TimeoutDuration returns the parsed request timeout.
func (c *Config) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

func (c *Config) loadDefaults() {
	if c.Model == "" {
		c.Model = "gpt-4o-mini"
	}
	if c.SystemPrompt == "" {
		c.SystemPrompt = DefaultSystemPrompt
	}
	if c.Timeout == "" {
		c.Timeout = "30s"
	}
	if c.MaxHistory == 0 {
		c.MaxHistory = 20
	}
}

func (c *Config) validate() error {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.MaxHistory < 0 {
		return fmt.Errorf("max_history must not be negative")
	}
	return nil
}
