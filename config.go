package tweetie

import (
	"time"

	stealth "github.com/anatolykoptev/go-stealth"
	"github.com/anatolykoptev/go-stealth/ratelimit"
)

// ClientConfig holds all configuration for the Twitter client.
type ClientConfig struct {
	// Credentials is the list of OAuth1 credential sets to rotate through. At least one is required.
	Credentials []*Credentials

	// BaseURL overrides the API host. Default: https://api.twitter.com
	BaseURL string

	// Proxy is an optional proxy URL for all requests.
	Proxy string

	// RateLimit configures per-credential per-endpoint rate limiting.
	RateLimit ratelimit.Config

	// MaxRetries bounds attempts per request for transient failures (network, 5xx).
	MaxRetries int

	// RetryBackoff is the wait between attempts.
	RetryBackoff stealth.BackoffConfig

	// RateLimitWait is how long a request may wait for rate-limited credentials to free up.
	// Zero fails immediately with ErrRateLimited.
	RateLimitWait time.Duration

	// AuthCooldown is how long credentials rejected by the platform sit out of rotation.
	AuthCooldown time.Duration

	// DisableJitter turns off the pre-request anti-fingerprint delay.
	DisableJitter bool

	// BreakerTimeout is how long the circuit breaker stays open before probing again.
	BreakerTimeout time.Duration

	// BreakerMinRequests and BreakerFailureRatio control when the breaker trips.
	BreakerMinRequests  uint32
	BreakerFailureRatio float64

	// MetricsHook is called on each API request for external metrics collection.
	// endpoint is the operation name, success and rateLimited indicate the outcome.
	MetricsHook func(endpoint string, success, rateLimited bool)
}

// defaults fills in zero-value config fields with sensible defaults.
func (cfg *ClientConfig) defaults() {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.RateLimit.RequestsPerWindow == 0 {
		cfg.RateLimit = ratelimit.DefaultConfig
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryBackoff.InitialWait == 0 {
		cfg.RetryBackoff = stealth.BackoffConfig{
			InitialWait: 1 * time.Second,
			MaxWait:     20 * time.Second,
			Multiplier:  2.0,
			JitterPct:   0.3,
		}
	}
	if cfg.AuthCooldown == 0 {
		cfg.AuthCooldown = 1 * time.Hour
	}
	if cfg.BreakerTimeout == 0 {
		cfg.BreakerTimeout = 30 * time.Second
	}
	if cfg.BreakerMinRequests == 0 {
		cfg.BreakerMinRequests = 5
	}
	if cfg.BreakerFailureRatio == 0 {
		cfg.BreakerFailureRatio = 0.6
	}
}
