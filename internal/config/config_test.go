package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// setupAndRestoreEnv clears the given keys, sets the provided values and
// returns a function restoring the original environment.
func setupAndRestoreEnv(t *testing.T, envVars map[string]string) func() {
	t.Helper()

	keys := []string{"SERVER_PORT", "LOG_LEVEL", "GIN_MODE", "SEED_SAMPLE_DATA", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST"}
	for key := range envVars {
		keys = append(keys, key)
	}

	originalEnv := make(map[string]string)
	for _, key := range keys {
		originalEnv[key] = os.Getenv(key)
		os.Unsetenv(key)
	}

	for key, value := range envVars {
		os.Setenv(key, value)
	}

	return func() {
		for _, key := range keys {
			os.Unsetenv(key)
		}
		for key, value := range originalEnv {
			if value != "" {
				os.Setenv(key, value)
			}
		}
	}
}

func validConfig() Config {
	return Config{
		Server: ServerConfig{
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			IdleTimeout:     120 * time.Second,
			RequestTimeout:  5 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Logger: LoggerConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
		GinMode: "release",
	}
}

func TestLoadFromEnv_DefaultValues(t *testing.T) {
	restore := setupAndRestoreEnv(t, map[string]string{})
	defer restore()

	cfg := LoadFromEnv()

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "release", cfg.GinMode)
	assert.False(t, cfg.SeedSampleData)
	assert.False(t, cfg.RateLimit.Enabled())
}

func TestLoadFromEnv_CustomValues(t *testing.T) {
	restore := setupAndRestoreEnv(t, map[string]string{
		"SERVER_PORT":      ":9090",
		"LOG_LEVEL":        "debug",
		"GIN_MODE":         "debug",
		"SEED_SAMPLE_DATA": "true",
		"RATE_LIMIT_RPS":   "25",
		"RATE_LIMIT_BURST": "10",
	})
	defer restore()

	cfg := LoadFromEnv()

	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "debug", cfg.GinMode)
	assert.True(t, cfg.SeedSampleData)
	assert.Equal(t, 25.0, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 10, cfg.RateLimit.Burst)
}

func TestConfig_Validate(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		assert.NoError(t, validConfig().Validate())
	})

	t.Run("invalid server config", func(t *testing.T) {
		cfg := validConfig()
		cfg.Server.ReadTimeout = 0

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "server config validation failed")
	})

	t.Run("invalid logger config", func(t *testing.T) {
		cfg := validConfig()
		cfg.Logger.Level = "invalid"

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "logger config validation failed")
	})

	t.Run("invalid rate limit config", func(t *testing.T) {
		cfg := validConfig()
		cfg.RateLimit = RateLimitConfig{RequestsPerSecond: 5, Burst: 0}

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "rate limit config validation failed")
	})

	t.Run("invalid gin mode", func(t *testing.T) {
		cfg := validConfig()
		cfg.GinMode = "invalid"

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid GIN_MODE")
	})

	t.Run("valid gin modes", func(t *testing.T) {
		for _, mode := range []string{"debug", "release", "test"} {
			cfg := validConfig()
			cfg.GinMode = mode
			assert.NoError(t, cfg.Validate(), "mode %s should be valid", mode)
		}
	})
}

func TestRateLimitConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		config    RateLimitConfig
		wantError bool
	}{
		{name: "disabled", config: RateLimitConfig{}, wantError: false},
		{name: "disabled ignores burst", config: RateLimitConfig{RequestsPerSecond: 0, Burst: -1}, wantError: false},
		{name: "enabled", config: RateLimitConfig{RequestsPerSecond: 10, Burst: 20}, wantError: false},
		{name: "negative rate", config: RateLimitConfig{RequestsPerSecond: -1, Burst: 20}, wantError: true},
		{name: "enabled without burst", config: RateLimitConfig{RequestsPerSecond: 10}, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
