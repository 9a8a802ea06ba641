// Package config loads and validates readmegen run configuration.
//
// Configuration comes from a TOML or YAML file plus environment fallbacks:
//
//	cfg, err := config.Load("readmegen.toml")
//	if err != nil { ... }
//
// All fields have working defaults; an empty Config with just an API key is
// a valid starting point. Watch re-loads the file on change for
// long-running callers.
package config

import (
	"encoding"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/readmegen/prompt"
	"github.com/randalmurphal/readmegen/tokens"
)

// EnvAPIKey is the environment variable consulted when APIKey is unset.
const EnvAPIKey = "OPENAI_API_KEY"

// Duration wraps time.Duration so values can be written as "90s" or "2m"
// in both TOML and YAML files.
type Duration time.Duration

var _ encoding.TextUnmarshaler = (*Duration)(nil)

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalYAML implements yaml.Unmarshaler; yaml.v3 does not consult
// encoding.TextUnmarshaler on its own.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(raw))
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config holds one run's configuration.
type Config struct {
	// Endpoint is the chat-completion API base URL.
	// Default: "https://api.openai.com/v1/chat/completions"
	Endpoint string `toml:"endpoint" yaml:"endpoint"`

	// APIKey authenticates requests. Falls back to $OPENAI_API_KEY.
	APIKey string `toml:"api_key" yaml:"api_key"`

	// Engine is the model name sent with each request.
	// Default: "gpt-3.5-turbo"
	Engine string `toml:"engine" yaml:"engine"`

	// Encoding is the tokenizer encoding scheme.
	// Default: "cl100k_base"
	Encoding string `toml:"encoding" yaml:"encoding"`

	// Tokens is the per-response completion token cap.
	// Default: 650.
	Tokens int `toml:"tokens" yaml:"tokens"`

	// TokensMax is the model context window in tokens.
	// Default: the known limit for Engine, else 8192.
	TokensMax int `toml:"tokens_max" yaml:"tokens_max"`

	// Temperature is the sampling temperature. Nil leaves the server default.
	Temperature *float64 `toml:"temperature" yaml:"temperature"`

	// RateLimit is the maximum request starts per RateWindow.
	// Zero or negative disables rate limiting. Default: 10.
	RateLimit int `toml:"rate_limit" yaml:"rate_limit"`

	// RateWindow is the rate limit window. Default: 1m.
	RateWindow Duration `toml:"rate_window" yaml:"rate_window"`

	// Concurrency is the file-summarization worker count. Default: 4.
	Concurrency int `toml:"concurrency" yaml:"concurrency"`

	// Timeout is the per-request HTTP timeout. Default: 30s.
	Timeout Duration `toml:"timeout" yaml:"timeout"`

	// Attempts is the completion attempt count including retries.
	// Default: 3.
	Attempts int `toml:"attempts" yaml:"attempts"`

	// CacheSize is the completion cache entry cap. Negative disables
	// caching. Default: 500.
	CacheSize int `toml:"cache_size" yaml:"cache_size"`

	// CacheTTL is the completion cache entry lifetime. Default: 10m.
	CacheTTL Duration `toml:"cache_ttl" yaml:"cache_ttl"`

	// Prompts overrides built-in prompt templates by identifier
	// ("code_summary", "features", "overview", "slogan").
	Prompts map[string]string `toml:"prompts" yaml:"prompts"`
}

// DefaultConfig returns a Config with all defaults applied.
func DefaultConfig() Config {
	return Config{}.WithDefaults()
}

// WithDefaults returns a copy of the config with defaults applied for
// unset fields.
func (c Config) WithDefaults() Config {
	if c.Endpoint == "" {
		c.Endpoint = "https://api.openai.com/v1/chat/completions"
	}
	if c.APIKey == "" {
		c.APIKey = os.Getenv(EnvAPIKey)
	}
	if c.Engine == "" {
		c.Engine = "gpt-3.5-turbo"
	}
	if c.Encoding == "" {
		c.Encoding = "cl100k_base"
	}
	if c.Tokens == 0 {
		c.Tokens = 650
	}
	if c.TokensMax == 0 {
		c.TokensMax = tokens.GetModelLimit(c.Engine)
	}
	if c.RateLimit == 0 {
		c.RateLimit = 10
	}
	if c.RateWindow == 0 {
		c.RateWindow = Duration(time.Minute)
	}
	if c.Concurrency == 0 {
		c.Concurrency = 4
	}
	if c.Timeout == 0 {
		c.Timeout = Duration(30 * time.Second)
	}
	if c.Attempts == 0 {
		c.Attempts = 3
	}
	if c.CacheSize == 0 {
		c.CacheSize = 500
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = Duration(10 * time.Minute)
	}
	return c
}

// Validate checks if the configuration is usable.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("endpoint is required")
	}
	if c.Engine == "" {
		return fmt.Errorf("engine is required")
	}
	if c.Tokens <= 0 {
		return fmt.Errorf("tokens must be > 0")
	}
	if c.TokensMax <= c.Tokens {
		return fmt.Errorf("tokens_max (%d) must exceed tokens (%d)", c.TokensMax, c.Tokens)
	}
	if c.RateWindow < 0 {
		return fmt.Errorf("rate_window must be >= 0")
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be >= 1")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0")
	}
	if c.Attempts < 1 {
		return fmt.Errorf("attempts must be >= 1")
	}
	for id := range c.Prompts {
		if !knownTemplateID(id) {
			return fmt.Errorf("unknown prompt template %q", id)
		}
	}
	return nil
}

// TemplateSet merges prompt overrides over the built-in templates.
func (c *Config) TemplateSet() map[prompt.ID]string {
	set := prompt.DefaultTemplates()
	for id, text := range c.Prompts {
		set[prompt.ID(id)] = text
	}
	return set
}

func knownTemplateID(id string) bool {
	for _, known := range prompt.IDs {
		if prompt.ID(id) == known {
			return true
		}
	}
	return false
}

