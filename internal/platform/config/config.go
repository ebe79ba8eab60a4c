package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds the runtime settings for the admin console.
type Config struct {
	HTTPAddr    string `env:"APOTEK_HTTP_ADDR" envDefault:":8080"`
	BasePath    string `env:"APOTEK_BASE_PATH" envDefault:"/"`
	LoginPath   string `env:"APOTEK_LOGIN_PATH"`
	Environment string `env:"APOTEK_ENVIRONMENT" envDefault:"Development"`

	// DBPath selects the SQLite database. Empty keeps everything in memory.
	DBPath string `env:"APOTEK_DB_PATH"`
	Seed   bool   `env:"APOTEK_SEED" envDefault:"true"`

	SessionHashKey  string `env:"APOTEK_SESSION_HASH_KEY"`
	SessionBlockKey string `env:"APOTEK_SESSION_BLOCK_KEY"`
	SessionSecure   bool   `env:"APOTEK_SESSION_COOKIE_SECURE"`

	CSRFCookieName   string `env:"APOTEK_CSRF_COOKIE_NAME" envDefault:"apotek_csrf"`
	CSRFHeaderName   string `env:"APOTEK_CSRF_HEADER_NAME" envDefault:"X-CSRF-Token"`
	CSRFCookieSecure bool   `env:"APOTEK_CSRF_COOKIE_SECURE"`

	FirebaseProjectID string `env:"FIREBASE_PROJECT_ID"`
	LogLevel          string `env:"LOG_LEVEL" envDefault:"info"`

	// OTelEndpoint is the OTLP/HTTP trace endpoint. Empty disables export.
	OTelEndpoint string `env:"APOTEK_OTEL_ENDPOINT"`
}

// ParseEnv loads configuration from environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses the process environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints env tags cannot express.
func (c Config) Validate() error {
	if strings.TrimSpace(c.HTTPAddr) == "" {
		return errors.New("config: APOTEK_HTTP_ADDR must not be empty")
	}
	if c.SessionBlockKey != "" {
		switch len(c.SessionBlockKey) {
		case 16, 24, 32:
		default:
			return fmt.Errorf("config: APOTEK_SESSION_BLOCK_KEY must be 16, 24 or 32 bytes, got %d", len(c.SessionBlockKey))
		}
	}
	return nil
}
