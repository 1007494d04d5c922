package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"

	"github.com/mycelian/mycelian-fetch/client"
)

// Config holds the settings used to build a fetch client.
// Environment variables are parsed with the FETCH_ prefix.
type Config struct {
	// BaseURL is the origin every path is resolved against. Required, but
	// may be supplied after New (e.g. from a CLI flag) before Validate.
	BaseURL string `envconfig:"BASE_URL" default:""`

	// HTTPTimeout bounds a whole round-trip. Zero disables it.
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`

	Debug     bool   `envconfig:"DEBUG" default:"false"`
	APIKey    string `envconfig:"API_KEY" default:""`
	RequestID bool   `envconfig:"REQUEST_ID" default:"false"`
}

// New creates a Config by parsing environment variables.
// Example: FETCH_BASE_URL=https://api.example.com FETCH_HTTP_TIMEOUT=10s
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("FETCH", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	log.Debug().
		Str("base_url", cfg.BaseURL).
		Dur("http_timeout", cfg.HTTPTimeout).
		Bool("debug", cfg.Debug).
		Bool("request_id", cfg.RequestID).
		Str("api_key_present", func() string {
			if cfg.APIKey != "" {
				return "true"
			}
			return "false"
		}()).
		Msg("configuration loaded")

	return &cfg, nil
}

// Validate checks that BaseURL is an absolute http(s) URL and the timeout is not negative.
// The base URL is otherwise used as is.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base URL is required (set FETCH_BASE_URL)")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL %q: %w", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported base URL scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("base URL %q has no host", c.BaseURL)
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("http timeout must be >= 0")
	}
	return nil
}

// ClientOptions maps the configuration onto client options.
func (c *Config) ClientOptions() []client.Option {
	var opts []client.Option
	if c.HTTPTimeout > 0 {
		opts = append(opts, client.WithHTTPTimeout(c.HTTPTimeout))
	}
	if c.Debug {
		opts = append(opts, client.WithDebugLogging(true))
	}
	if c.APIKey != "" {
		opts = append(opts, client.WithAPIKey(c.APIKey))
	}
	if c.RequestID {
		opts = append(opts, client.WithRequestID(true))
	}
	return opts
}

// NewClient validates c and builds a client from it.
func (c *Config) NewClient(extra ...client.Option) (*client.Client, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return client.New(c.BaseURL, append(c.ClientOptions(), extra...)...), nil
}
