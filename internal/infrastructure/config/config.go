package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration.
type Config struct {
	// HTTP Server
	HTTPPort            string        `env:"HTTP_PORT"             envDefault:"8080"`
	HTTPReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT"     envDefault:"30s"`
	HTTPWriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT"    envDefault:"30s"`
	HTTPShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Chart of accounts preloaded at startup (optional)
	ChartFile     string `env:"CHART_FILE"     envDefault:""`
	ChartCurrency string `env:"CHART_CURRENCY" envDefault:"USD"`

	// Registry behavior on duplicate registration: warn, ignore or error
	DuplicatePolicy string `env:"DUPLICATE_POLICY" envDefault:"warn"`

	// Idempotency (optional - leave REDIS_URL empty for the in-process store)
	RedisURL       string        `env:"REDIS_URL"       envDefault:""`
	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL" envDefault:"24h"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	err := env.Parse(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
