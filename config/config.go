package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Config holds runtime configuration for the animation event tools.
type Config struct {
	Diagnostics Diagnostics

	PrefabsDir  string `env:"ANIMEVENTS_PREFABS_DIR" envDefault:"prefabs"`
	MetricsAddr string `env:"ANIMEVENTS_METRICS_ADDR"`
}

// Diagnostics controls the development-only diagnostic channel. With Dev
// unset every registry diagnostic is discarded.
type Diagnostics struct {
	Dev      bool   `env:"ANIMEVENTS_DEV" envDefault:"false"`
	Backend  string `env:"ANIMEVENTS_LOG_BACKEND" envDefault:"zerolog"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"debug"`
}

const (
	BackendZerolog = "zerolog"
	BackendZap     = "zap"
)

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for unsupported values
func (c *Config) Validate() error {
	switch c.Diagnostics.Backend {
	case BackendZerolog, BackendZap:
	default:
		return fmt.Errorf("unsupported log backend %q", c.Diagnostics.Backend)
	}
	switch c.Diagnostics.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unsupported log level %q", c.Diagnostics.LogLevel)
	}
	if c.PrefabsDir == "" {
		return fmt.Errorf("prefabs dir must not be empty")
	}
	return nil
}
