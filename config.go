package main

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the CLI settings read from the environment.
type Config struct {
	LogLevel    string        `env:"ROI_LOG_LEVEL"    envDefault:"info"`
	EvalTimeout time.Duration `env:"ROI_EVAL_TIMEOUT" envDefault:"5s"`
}

// Debug reports whether debug logging is enabled.
func (c Config) Debug() bool {
	return c.LogLevel == "debug"
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.EvalTimeout <= 0 {
		return Config{}, fmt.Errorf("ROI_EVAL_TIMEOUT must be positive, got %s", cfg.EvalTimeout)
	}
	return cfg, nil
}
