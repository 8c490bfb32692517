// Package logging builds the zap logger scancount uses for structured,
// per-query and per-error records, with a Prometheus hook that counts
// log entries by level, and LogScanError, which breaks error volume
// down by the kernel's own error Kind instead of a flat error count.
package logging

import (
	"fmt"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	scanerrors "github.com/nkurz/scancount/internal/errors"
)

var (
	// LogEntriesTotal counts log entries by level.
	LogEntriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scancount_log_entries_total",
			Help: "Total number of log entries by level",
		},
		[]string{"level"},
	)

	// ScanErrorsByKindTotal counts logged scan errors broken down by
	// their errors.Kind (invalid_query_ref, bad_range_size, ...), so a
	// dashboard can tell a CLI usage mistake apart from a kernel bug
	// without parsing log messages.
	ScanErrorsByKindTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scancount_scan_errors_by_kind_total",
			Help: "Total number of logged scan errors by error kind",
		},
		[]string{"kind"},
	)
)

// Config holds logger configuration options.
type Config struct {
	// Format specifies the log output format: "json" or "console"/"text".
	Format string
	// Level specifies the minimum log level: "debug", "info", "warn", "error".
	Level string
	// Output specifies where logs are written (defaults to os.Stdout).
	Output zapcore.WriteSyncer
}

// DefaultConfig returns the default logger configuration.
func DefaultConfig() Config {
	return Config{
		Format: "json",
		Level:  "info",
		Output: os.Stdout,
	}
}

// NewLogger creates a new zap logger based on the provided configuration.
func NewLogger(cfg Config) (*zap.Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	output := cfg.Output
	if output == nil {
		output = os.Stdout
	}

	var encoder zapcore.Encoder
	switch strings.ToLower(cfg.Format) {
	case "text", "console":
		encoderConfig := zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	default:
		encoderConfig := zap.NewProductionEncoderConfig()
		encoderConfig.TimeKey = "timestamp"
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, output, level)
	metricsCore := &metricsHookCore{Core: core}

	return zap.New(metricsCore, zap.AddCaller()), nil
}

// DiscardLogger returns a logger that discards all output (useful for tests).
func DiscardLogger() *zap.Logger {
	return zap.NewNop()
}

func parseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	case "dpanic":
		return zapcore.DPanicLevel, nil
	case "panic":
		return zapcore.PanicLevel, nil
	case "fatal":
		return zapcore.FatalLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("invalid log level: %s", level)
	}
}

// ScanErrorFields flattens a *errors.ScanError's kind, operation, and
// context map into zap fields, so a log line carries the same
// diagnostics a caller would get from inspecting the error directly.
func ScanErrorFields(err *scanerrors.ScanError) []zap.Field {
	fields := make([]zap.Field, 0, 2+len(err.Context))
	fields = append(fields,
		zap.String("kind", string(err.Kind)),
		zap.String("operation", err.Operation),
	)
	for k, v := range err.Context {
		fields = append(fields, zap.Any("ctx_"+k, v))
	}
	return fields
}

// LogScanError logs a *errors.ScanError at error level with
// ScanErrorFields attached, and records it against
// ScanErrorsByKindTotal under its Kind. The kind-labeled counter is
// bumped even when the logger's level would drop an Error entry, so
// callers never lose the error-kind breakdown to a quiet log level.
func LogScanError(logger *zap.Logger, msg string, err *scanerrors.ScanError) {
	ScanErrorsByKindTotal.WithLabelValues(string(err.Kind)).Inc()
	fields := append(ScanErrorFields(err), zap.Error(err))
	logger.Error(msg, fields...)
}

// metricsHookCore wraps a zapcore.Core to add Prometheus metrics.
type metricsHookCore struct {
	zapcore.Core
}

// Check determines whether the entry should be logged.
//
//nolint:gocritic // hugeParam: interface requires value receiver
func (c *metricsHookCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checked.AddCore(entry, c)
	}
	return checked
}

// Write logs the entry and increments Prometheus metrics.
//
//nolint:gocritic // hugeParam: interface requires value receiver
func (c *metricsHookCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	LogEntriesTotal.WithLabelValues(entry.Level.String()).Inc()
	return c.Core.Write(entry, fields)
}

// With creates a child core with additional fields.
func (c *metricsHookCore) With(fields []zapcore.Field) zapcore.Core {
	return &metricsHookCore{Core: c.Core.With(fields)}
}
