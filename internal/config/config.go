// Package config loads process configuration from the environment and an
// optional TOML file supplied by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"

	"cmc-mcp/internal/registry"
)

// Transport selects which bindings the process serves.
type Transport string

const (
	TransportStdio Transport = "stdio"
	TransportHTTP  Transport = "http"
	TransportBoth  Transport = "both"
)

// Config holds the service configuration.
type Config struct {
	// CoinMarketCap
	APIKey            string `env:"COINMARKETCAP_API_KEY"`
	SubscriptionLevel string `env:"SUBSCRIPTION_LEVEL" envDefault:"Basic"`
	BaseURL           string `env:"CMC_BASE_URL" envDefault:"https://pro-api.coinmarketcap.com"`
	UpstreamTimeoutMS int    `env:"UPSTREAM_TIMEOUT_MS" envDefault:"0"`

	// Server
	Port      int       `env:"PORT" envDefault:"3000"`
	Transport Transport `env:"TRANSPORT" envDefault:"both"`

	// Redis usage ledger; empty URL disables it
	RedisURL      string `env:"REDIS_URL"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	UsageTTLHours int    `env:"USAGE_TTL_HOURS" envDefault:"72"`

	// Observability
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Overrides is the caller-supplied configuration file. Non-empty fields
// replace the corresponding environment values.
type Overrides struct {
	APIKey            string `toml:"coinmarketcap_api_key"`
	SubscriptionLevel string `toml:"subscription_level"`
	Port              int    `toml:"port"`
	Transport         string `toml:"transport"`
	BaseURL           string `toml:"base_url"`
	LogLevel          string `toml:"log_level"`
}

// UpstreamTimeout returns the client timeout; zero means none.
func (c *Config) UpstreamTimeout() time.Duration {
	return time.Duration(c.UpstreamTimeoutMS) * time.Millisecond
}

// UsageTTL returns how long a day's ledger entry is kept.
func (c *Config) UsageTTL() time.Duration {
	return time.Duration(c.UsageTTLHours) * time.Hour
}

// Tier parses SubscriptionLevel. ok is false when the name matched no plan,
// in which case the tier is Basic.
func (c *Config) Tier() (tier registry.Tier, ok bool) {
	return registry.ParseTier(c.SubscriptionLevel)
}

// ServesStdio reports whether the stdio binding is enabled.
func (c *Config) ServesStdio() bool {
	return c.Transport == TransportStdio || c.Transport == TransportBoth
}

// ServesHTTP reports whether the HTTP binding is enabled.
func (c *Config) ServesHTTP() bool {
	return c.Transport == TransportHTTP || c.Transport == TransportBoth
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}
	return cfg, nil
}

// LoadOverrides reads a TOML overrides file.
func LoadOverrides(path string) (*Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var o Overrides
	if err := toml.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &o, nil
}

// Apply copies the non-empty override fields onto c.
func (c *Config) Apply(o *Overrides) {
	if o == nil {
		return
	}
	if o.APIKey != "" {
		c.APIKey = o.APIKey
	}
	if o.SubscriptionLevel != "" {
		c.SubscriptionLevel = o.SubscriptionLevel
	}
	if o.Port != 0 {
		c.Port = o.Port
	}
	if o.Transport != "" {
		c.Transport = Transport(strings.ToLower(o.Transport))
	}
	if o.BaseURL != "" {
		c.BaseURL = o.BaseURL
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
}

// Validate validates the configuration. A missing API key is not an error:
// every invocation then fails with a 403 envelope instead.
func (c *Config) Validate() error {
	var errs []error

	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port: %d", c.Port))
	}

	switch c.Transport {
	case TransportStdio, TransportHTTP, TransportBoth:
	default:
		errs = append(errs, fmt.Errorf("invalid transport: %q (want stdio, http or both)", c.Transport))
	}

	if c.UpstreamTimeoutMS < 0 {
		errs = append(errs, fmt.Errorf("upstream timeout must not be negative, got %dms", c.UpstreamTimeoutMS))
	}

	if c.UsageTTLHours < 1 {
		errs = append(errs, fmt.Errorf("usage TTL must be at least 1h, got %dh", c.UsageTTLHours))
	}

	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		errs = append(errs, fmt.Errorf("invalid base URL: %q", c.BaseURL))
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.LogLevel] {
		errs = append(errs, fmt.Errorf("invalid log level: %s", c.LogLevel))
	}

	return errors.Join(errs...)
}
