package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix scopes every configuration variable read by the client.
const EnvPrefix = "SMARTPARK"

// Environment variable names, exported for tests and tooling.
const (
	EnvBaseURL      = "SMARTPARK_BASE_URL"
	EnvHTTPTimeout  = "SMARTPARK_HTTP_TIMEOUT"
	EnvLogLevel     = "SMARTPARK_LOG_LEVEL"
	EnvLogWarnStack = "SMARTPARK_LOG_WARN_STACK"
)

type Config struct {
	App     AppConfig
	Backend BackendConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Backend.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	LogLevel     string `envconfig:"SMARTPARK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SMARTPARK_LOG_WARN_STACK" default:"false"`
}

// BackendConfig points the client at the reservation backend.
type BackendConfig struct {
	BaseURL     string        `envconfig:"SMARTPARK_BASE_URL" required:"true"`
	HTTPTimeout time.Duration `envconfig:"SMARTPARK_HTTP_TIMEOUT" default:"10s"`
}

func (b BackendConfig) validate() error {
	trimmed := strings.TrimSpace(b.BaseURL)
	if trimmed == "" {
		return fmt.Errorf("backend base URL is required")
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return fmt.Errorf("invalid backend base URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("backend base URL must be http or https, got %q", trimmed)
	}
	if b.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be positive")
	}
	return nil
}
