// Package config loads the scancount CLI's configuration: an optional
// .env file, then environment variables via envconfig, validated
// before use.
package config

import (
	"errors"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the CLI's tunables. Flags (see cmd/scancount) take
// precedence over these when both are set; Load only fills in the
// environment-sourced defaults a flag didn't override.
type Config struct {
	// PostingsFile is the default --postings path (spec §6).
	PostingsFile string `envconfig:"POSTINGS_FILE"`
	// QueriesFile is the default --queries path (spec §6).
	QueriesFile string `envconfig:"QUERIES_FILE"`
	// Threshold is the default --threshold value.
	Threshold int `envconfig:"THRESHOLD" default:"0"`
	// MetricsAddr is the address the Prometheus /metrics server binds.
	MetricsAddr string `envconfig:"METRICS_ADDR" default:"0.0.0.0:9090"`
	// LogFormat is "json" or "console" ("text" is accepted as a synonym
	// for "console").
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`
	// LogLevel is "debug", "info", "warn" (or "warning"), or "error".
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	// Variant selects the scan kernel ("auto", "scalar", "avx2", "avx512",
	// "reference").
	Variant string `envconfig:"VARIANT" default:"auto"`
}

// Sentinel validation errors, one per bad field.
var (
	ErrInvalidThreshold   = errors.New("threshold must be >= 0")
	ErrInvalidMetricsAddr = errors.New("metrics_addr cannot be empty")
	ErrInvalidLogFormat   = errors.New("log_format must be 'json' or 'console'")
	ErrInvalidLogLevel    = errors.New("log_level must be debug, info, warn, or error")
	ErrInvalidVariant     = errors.New("variant must be one of auto, scalar, avx2, avx512, reference")
)

// Load reads an optional .env file (if present, ignored otherwise)
// then overlays environment variables prefixed SCANCOUNT_ on top of
// the struct defaults.
func Load() (Config, error) {
	_ = godotenv.Load() // optional; missing .env is not an error

	var cfg Config
	if err := envconfig.Process("SCANCOUNT", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the fields Load cannot itself guarantee are sane.
func Validate(cfg *Config) error {
	if cfg.Threshold < 0 {
		return ErrInvalidThreshold
	}
	if cfg.MetricsAddr == "" {
		return ErrInvalidMetricsAddr
	}
	switch cfg.LogFormat {
	case "json", "console", "text":
	default:
		return ErrInvalidLogFormat
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return ErrInvalidLogLevel
	}
	switch cfg.Variant {
	case "auto", "scalar", "avx2", "avx512", "reference":
	default:
		return ErrInvalidVariant
	}
	return nil
}

// DefaultConfig returns a Config with sane defaults, useful for tests
// and for seeding flag defaults in cmd/scancount.
func DefaultConfig() Config {
	return Config{
		Threshold:   0,
		MetricsAddr: "0.0.0.0:9090",
		LogFormat:   "json",
		LogLevel:    "info",
		Variant:     "auto",
	}
}
