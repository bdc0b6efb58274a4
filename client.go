// Package tweetie is an OAuth1-signed client for the Twitter v1.1 REST API with
// credential rotation, per-endpoint rate limiting and lazy cursor pagination.
package tweetie

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	stealth "github.com/anatolykoptev/go-stealth"
	"github.com/anatolykoptev/go-stealth/pool"
	"github.com/sony/gobreaker"
)

// transport is the subset of *stealth.BrowserClient the client needs.
type transport interface {
	DoWithHeaderOrder(method, url string, headers map[string]string, body io.Reader, order []string) ([]byte, map[string]string, int, error)
}

// errUpstream marks 5xx responses so the breaker counts them as failures.
var errUpstream = errors.New("upstream 5xx")

// Client is an OAuth1-signed Twitter v1.1 REST client. It is safe for concurrent use.
type Client struct {
	http    transport
	pool    *pool.Pool[*Credentials]
	breaker *gobreaker.CircuitBreaker
	cfg     ClientConfig

	userAgent string
	nonce     func() string
}

// NewClient creates a fully-wired Twitter client.
func NewClient(cfg ClientConfig) (*Client, error) {
	opts := []stealth.ClientOption{
		stealth.WithHeaderOrder(restHeaderOrder),
	}
	if cfg.Proxy != "" {
		opts = append(opts, stealth.WithProxy(cfg.Proxy))
	}
	bc, err := stealth.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("stealth client: %w", err)
	}
	return newClient(cfg, bc)
}

func newClient(cfg ClientConfig, t transport) (*Client, error) {
	if len(cfg.Credentials) == 0 {
		return nil, errors.New("no credentials configured")
	}
	cfg.defaults()

	for _, creds := range cfg.Credentials {
		creds.attach(cfg.RateLimit)
	}

	poolCfg := pool.Config{
		AlertHook: func(topic string, payload any) {
			slog.Warn("credential pool alert", slog.String("topic", topic), slog.Any("payload", payload))
		},
	}

	minRequests, ratio := cfg.BreakerMinRequests, cfg.BreakerFailureRatio
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "twitter-api",
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < minRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= ratio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state changed",
				slog.String("circuit", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	})

	profile := stealth.BuiltinProfiles[0]

	return &Client{
		http:      t,
		pool:      pool.New(cfg.Credentials, poolCfg),
		breaker:   breaker,
		cfg:       cfg,
		userAgent: profile.UserAgent,
		nonce:     generateNonce,
	}, nil
}

// Pool returns the underlying credential pool.
func (c *Client) Pool() *pool.Pool[*Credentials] {
	return c.pool
}

// BreakerState returns the circuit breaker state for health reporting.
func (c *Client) BreakerState() gobreaker.State {
	return c.breaker.State()
}

// recordAPICall calls the metrics hook if configured.
func (c *Client) recordAPICall(endpoint string, success, rateLimited bool) {
	if c.cfg.MetricsHook != nil {
		c.cfg.MetricsHook(endpoint, success, rateLimited)
	}
}
