// Package config loads runtime settings for the commands from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds the settings shared by the commands.
type Config struct {
	// HistoryLimit caps the undo history; 0 keeps it unbounded.
	HistoryLimit int    `env:"HISTORY_LIMIT" envDefault:"0"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	// MetricsAddr serves /metrics when non-empty, e.g. ":9090".
	MetricsAddr  string `env:"METRICS_ADDR"`
	OTelEndpoint string `env:"OTEL_ENDPOINT"`
	ServiceName  string `env:"SERVICE_NAME" envDefault:"immutablectx"`
	HistoryFile  string `env:"HISTORY_FILE"`
}

// Prefix is prepended to every variable name.
const Prefix = "IMMUTABLECTX_"

// Load parses Config from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.HistoryLimit < 0 {
		return Config{}, fmt.Errorf("%sHISTORY_LIMIT must be >= 0, got %d", Prefix, cfg.HistoryLimit)
	}
	if _, err := cfg.Level(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv loads prefixed environment variables into target.
func ParseEnv(target any) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: Prefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Level resolves LogLevel to a slog.Level.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("%sLOG_LEVEL: %w", Prefix, err)
	}
	return l, nil
}
