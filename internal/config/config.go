// Package config assembles the service configuration in three layers:
// built-in defaults, an optional TOML file, then environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/ahmeed2051/onilne-mono-tracking/pkg/envconf"
)

// Config is the full service configuration.
type Config struct {
	LogLevel slog.Level    `toml:"log_level" env:"LEDGER_LOG_LEVEL"`
	Server   ServerConfig  `toml:"server"`
	Metrics  MetricsConfig `toml:"metrics"`
	Ledger   LedgerConfig  `toml:"ledger"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host            string        `toml:"host" env:"LEDGER_HOST"`
	Port            uint16        `toml:"port" env:"LEDGER_PORT"`
	ShutdownTimeout time.Duration `toml:"-" env:"LEDGER_SHUTDOWN_TIMEOUT"`
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `toml:"enabled" env:"LEDGER_METRICS_ENABLED"`
}

// LedgerConfig holds the defaults applied to newly created games.
type LedgerConfig struct {
	StartingBalance float64  `toml:"starting_balance" env:"LEDGER_STARTING_BALANCE"`
	Currency        string   `toml:"currency" env:"LEDGER_CURRENCY"`
	Palette         []string `toml:"palette"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel: slog.LevelInfo,
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            3000,
			ShutdownTimeout: 10 * time.Second,
		},
		Metrics: MetricsConfig{Enabled: true},
		Ledger: LedgerConfig{
			StartingBalance: 1500,
			Currency:        "M$",
		},
	}
}

// Load builds the configuration. path names an optional TOML file; an
// empty path skips that layer. Environment variables win over the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		_, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("decode config file %s: %w", path, err)
		}
	}

	err := envconf.Load(&cfg)
	if err != nil {
		return Config{}, fmt.Errorf("load env overrides: %w", err)
	}

	return cfg, nil
}

// FromEnvFile resolves the config file path from LEDGER_CONFIG, if set.
func FromEnvFile() string {
	return os.Getenv("LEDGER_CONFIG")
}
