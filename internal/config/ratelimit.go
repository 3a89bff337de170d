package config

import "fmt"

// RateLimitConfig holds the global request rate limit.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate. Zero disables limiting.
	RequestsPerSecond float64
	// Burst is the maximum number of requests allowed at once.
	Burst int
}

// LoadRateLimitConfigFromEnv loads rate limit configuration from environment variables.
func LoadRateLimitConfigFromEnv() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond: GetEnvFloat("RATE_LIMIT_RPS", 0),
		Burst:             GetEnvInt("RATE_LIMIT_BURST", 50),
	}
}

// Enabled reports whether requests should be rate limited.
func (c RateLimitConfig) Enabled() bool {
	return c.RequestsPerSecond > 0
}

// Validate validates rate limit configuration.
func (c RateLimitConfig) Validate() error {
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be non-negative")
	}
	if c.Enabled() && c.Burst <= 0 {
		return fmt.Errorf("RATE_LIMIT_BURST must be greater than 0 when rate limiting is enabled")
	}
	return nil
}
