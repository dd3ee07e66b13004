package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/playperu/formrelay/internal/schema"
)

type Config struct {
	HTTPAddr string     `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`

	// Endpoint is the report API URL submissions are forwarded to, e.g.
	// http://host:port/reports/submit.
	Endpoint string        `env:"RELAY_ENDPOINT,required"`
	Schema   string        `env:"RELAY_SCHEMA" envDefault:"auto"`
	Timeout  time.Duration `env:"RELAY_TIMEOUT" envDefault:"30s"`

	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"0"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"5"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FormSchema resolves the configured form layout. A nil schema means the
// layout is detected per submission.
func (c *Config) FormSchema() (*schema.Schema, error) {
	return schema.Lookup(c.Schema)
}

func (c *Config) validate() error {
	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return fmt.Errorf("parsing RELAY_ENDPOINT: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("RELAY_ENDPOINT must be an absolute http(s) URL, got %q", c.Endpoint)
	}
	if _, err := c.FormSchema(); err != nil {
		return fmt.Errorf("parsing RELAY_SCHEMA: %w", err)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("RELAY_TIMEOUT must not be negative")
	}
	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		return fmt.Errorf("rate limit settings must not be negative")
	}
	return nil
}
