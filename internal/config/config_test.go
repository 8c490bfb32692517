package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_DefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, Validate(&cfg))
}

func TestValidate_NegativeThreshold(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Threshold = -1
	assert.ErrorIs(t, Validate(&cfg), ErrInvalidThreshold)
}

func TestValidate_EmptyMetricsAddr(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MetricsAddr = ""
	assert.ErrorIs(t, Validate(&cfg), ErrInvalidMetricsAddr)
}

func TestValidate_BadLogFormat(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogFormat = "xml"
	assert.ErrorIs(t, Validate(&cfg), ErrInvalidLogFormat)
}

func TestValidate_BadVariant(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Variant = "bogus"
	assert.ErrorIs(t, Validate(&cfg), ErrInvalidVariant)
}

func TestLoad_EnvOverrides(t *testing.T) {
	os.Setenv("SCANCOUNT_THRESHOLD", "7")        //nolint:errcheck // test helper
	os.Setenv("SCANCOUNT_VARIANT", "avx2")       //nolint:errcheck // test helper
	os.Setenv("SCANCOUNT_METRICS_ADDR", ":1234") //nolint:errcheck // test helper
	defer func() {
		_ = os.Unsetenv("SCANCOUNT_THRESHOLD")
		_ = os.Unsetenv("SCANCOUNT_VARIANT")
		_ = os.Unsetenv("SCANCOUNT_METRICS_ADDR")
	}()

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Threshold)
	assert.Equal(t, "avx2", cfg.Variant)
	assert.Equal(t, ":1234", cfg.MetricsAddr)
}
