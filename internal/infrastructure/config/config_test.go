package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Server config
	assert.Equal(t, "8766", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)

	// Trace config
	assert.Equal(t, 1000, cfg.Trace.MaxSize)
	assert.True(t, cfg.Trace.PerformanceTracking)
	assert.Equal(t, int64(0), cfg.Trace.RetentionMS)
	assert.Equal(t, int64(60000), cfg.Trace.SweepIntervalMS)

	// Logging config
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)

	// Rate limit config
	assert.Equal(t, 100, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 200, cfg.RateLimit.Burst)
	assert.True(t, cfg.RateLimit.Enabled)
}

func TestLoadOrDefault(t *testing.T) {
	// Should return default when no env vars set
	cfg := LoadOrDefault()

	assert.NotNil(t, cfg)
	assert.Equal(t, "8766", cfg.Server.Port)
	assert.Equal(t, 1000, cfg.Trace.MaxSize)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	// Setup environment variables
	envVars := map[string]string{
		"PORT":                    "9000",
		"HOST":                    "127.0.0.1",
		"TRACE_MAX_SIZE":          "50",
		"TRACE_PERF_TRACKING":     "false",
		"TRACE_RETENTION_MS":      "600000",
		"TRACE_SWEEP_INTERVAL_MS": "5000",
		"LOG_LEVEL":               "debug",
		"LOG_DEV":                 "true",
		"RATE_LIMIT_RPS":          "500",
		"RATE_LIMIT_BURST":        "1000",
		"RATE_LIMIT_ENABLED":      "false",
	}

	// Set environment variables
	for key, value := range envVars {
		err := os.Setenv(key, value)
		require.NoError(t, err)
		defer os.Unsetenv(key)
	}

	cfg, err := Load()
	require.NoError(t, err)

	// Verify server config
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)

	// Verify trace config
	assert.Equal(t, 50, cfg.Trace.MaxSize)
	assert.False(t, cfg.Trace.PerformanceTracking)
	assert.Equal(t, int64(600000), cfg.Trace.RetentionMS)
	assert.Equal(t, int64(5000), cfg.Trace.SweepIntervalMS)

	// Verify logging config
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)

	// Verify rate limit config
	assert.Equal(t, 500, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 1000, cfg.RateLimit.Burst)
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestLoadWithPartialEnvironmentVariables(t *testing.T) {
	// Only set some environment variables
	err := os.Setenv("TRACE_MAX_SIZE", "25")
	require.NoError(t, err)
	defer os.Unsetenv("TRACE_MAX_SIZE")

	err = os.Setenv("LOG_LEVEL", "warn")
	require.NoError(t, err)
	defer os.Unsetenv("LOG_LEVEL")

	cfg, err := Load()
	require.NoError(t, err)

	// Verify overridden values
	assert.Equal(t, 25, cfg.Trace.MaxSize)
	assert.Equal(t, "warn", cfg.Logging.Level)

	// Verify default values still apply
	assert.Equal(t, "8766", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.True(t, cfg.Trace.PerformanceTracking)
}

func TestTraceConfig(t *testing.T) {
	tests := []struct {
		name          string
		maxSize       string
		retention     string
		wantMaxSize   int
		wantRetention int64
	}{
		{
			name:          "default values",
			maxSize:       "",
			retention:     "",
			wantMaxSize:   1000,
			wantRetention: 0,
		},
		{
			name:          "small store",
			maxSize:       "10",
			retention:     "",
			wantMaxSize:   10,
			wantRetention: 0,
		},
		{
			name:          "retention enabled",
			maxSize:       "",
			retention:     "3600000",
			wantMaxSize:   1000,
			wantRetention: 3600000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clean environment
			os.Unsetenv("TRACE_MAX_SIZE")
			os.Unsetenv("TRACE_RETENTION_MS")

			// Set test values
			if tt.maxSize != "" {
				err := os.Setenv("TRACE_MAX_SIZE", tt.maxSize)
				require.NoError(t, err)
				defer os.Unsetenv("TRACE_MAX_SIZE")
			}
			if tt.retention != "" {
				err := os.Setenv("TRACE_RETENTION_MS", tt.retention)
				require.NoError(t, err)
				defer os.Unsetenv("TRACE_RETENTION_MS")
			}

			cfg := LoadOrDefault()

			assert.Equal(t, tt.wantMaxSize, cfg.Trace.MaxSize)
			assert.Equal(t, tt.wantRetention, cfg.Trace.RetentionMS)
		})
	}
}

func TestLoadFile(t *testing.T) {
	content := `
server:
  port: "9100"
trace:
  maxSize: 250
  retentionMs: 120000
logging:
  level: debug
  development: true
rateLimit:
  requestsPerSecond: 42
  burst: 84
  enabled: false
`
	path := filepath.Join(t.TempDir(), "tracer.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "9100", cfg.Server.Port)
	assert.Equal(t, 250, cfg.Trace.MaxSize)
	assert.Equal(t, int64(120000), cfg.Trace.RetentionMS)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, 42, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 84, cfg.RateLimit.Burst)
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestLoadFilePartial(t *testing.T) {
	// Unset fields keep their defaults
	content := `
trace:
  maxSize: 5
`
	path := filepath.Join(t.TempDir(), "tracer.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Trace.MaxSize)
	assert.Equal(t, "8766", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.RateLimit.Enabled)
}

func TestLoadFileErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0o644))

		_, err := LoadFile(path)
		assert.Error(t, err)
	})
}
