package tweetie

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	stealth "github.com/anatolykoptev/go-stealth"
	"github.com/sony/gobreaker"
)

// doGET executes a signed GET with credential rotation, per-endpoint rate limiting
// and bounded retry of transient failures. Non-transient API errors return at once.
func (c *Client) doGET(ctx context.Context, operation string, params url.Values) ([]byte, error) {
	ep, err := lookupEndpoint(operation)
	if err != nil {
		return nil, err
	}

	// Anti-fingerprint jitter
	if !c.cfg.DisableJitter {
		if err := stealth.DefaultJitter.Sleep(ctx); err != nil {
			return nil, err
		}
	}

	query := ep.query(params)
	endpointURL := ep.URL(c.cfg.BaseURL)
	fullURL := endpointURL + "?" + query.Encode()

	var lastErr error
	for attempt := range c.cfg.MaxRetries {
		if attempt > 0 {
			delay := c.cfg.RetryBackoff.Duration(attempt - 1)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		creds, err := c.nextCredentials(ctx, operation)
		if err != nil {
			if lastErr != nil {
				return nil, lastErr
			}
			if c.allDeactivated() {
				return nil, fmt.Errorf("%s: all credentials deactivated: %w: %w", operation, ErrAuth, err)
			}
			return nil, fmt.Errorf("%s: no credentials available: %w: %w", operation, ErrRateLimited, err)
		}

		authz, err := authorizationHeader(creds, "GET", endpointURL, query, oauthParams{
			nonce:     c.nonce(),
			timestamp: time.Now().Unix(),
		})
		if err != nil {
			return nil, err
		}

		body, respHdrs, status, err := c.execute(fullURL, restHeaders(authz, c.userAgent))
		if err != nil {
			c.recordAPICall(operation, false, false)
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				return nil, fmt.Errorf("%s: %w: %w", operation, ErrNetwork, err)
			}
			c.recordFailure(creds)
			slog.Debug("request failed", slog.String("endpoint", operation), slog.Int("attempt", attempt+1), slog.Any("error", err))
			lastErr = fmt.Errorf("%s: %w: %w", operation, ErrNetwork, err)
			continue
		}

		if respHdrs["x-rate-limit-remaining"] == "0" {
			creds.MarkEndpointRateLimited(operation, parseRateLimitReset(respHdrs["x-rate-limit-reset"]))
		}

		if status == 200 {
			c.recordAPICall(operation, true, false)
			creds.RecordSuccess()
			return body, nil
		}

		apiErr := statusError(operation, status, body)
		class, _, _ := classifyError(body)

		switch {
		case errors.Is(apiErr, ErrRateLimited):
			apiErr.Reset = parseRateLimitReset(respHdrs["x-rate-limit-reset"])
			creds.MarkEndpointRateLimited(operation, apiErr.Reset)
			c.recordAPICall(operation, false, true)
			slog.Warn("rate limited",
				slog.String("endpoint", operation),
				slog.String("credentials", creds.ID()),
				slog.Time("reset", apiErr.Reset))
			// Another credential set may still have quota.
			lastErr = apiErr
			continue

		case retryable(status, class):
			c.recordAPICall(operation, false, false)
			c.recordFailure(creds)
			slog.Warn("transient platform error",
				slog.String("endpoint", operation),
				slog.Int("status", status),
				slog.String("body", truncateBytes(body, 200)))
			lastErr = apiErr
			continue

		case class == errAuthFailed:
			// The token set itself was rejected. Park it and try another.
			c.recordAPICall(operation, false, false)
			c.pool.SoftDeactivate(creds, c.cfg.AuthCooldown)
			c.recordFailure(creds)
			slog.Warn("credentials rejected, deactivating",
				slog.String("credentials", creds.ID()),
				slog.Int("code", apiErr.Code),
				slog.Duration("cooldown", c.cfg.AuthCooldown))
			lastErr = apiErr
			continue

		case errors.Is(apiErr, ErrAuth):
			c.recordAPICall(operation, false, false)
			return nil, apiErr

		default:
			c.recordAPICall(operation, false, false)
			return nil, apiErr
		}
	}

	if lastErr != nil {
		return nil, fmt.Errorf("%s failed after %d attempts: %w", operation, c.cfg.MaxRetries, lastErr)
	}
	return nil, fmt.Errorf("%s failed after %d attempts: %w", operation, c.cfg.MaxRetries, ErrPlatform)
}

// recordFailure counts a failed request against creds and takes them out of
// rotation once the health tracker gives up on them.
func (c *Client) recordFailure(creds *Credentials) {
	if shouldDeactivate := creds.RecordFailure(); shouldDeactivate {
		total, failed, consec := creds.Stats()
		slog.Warn("credentials unhealthy, deactivating",
			slog.String("credentials", creds.ID()),
			slog.Int("total", total),
			slog.Int("failed", failed),
			slog.Int("consec", consec))
		c.pool.DeactivateItem(creds)
	}
}

// allDeactivated reports whether no credential set is currently in rotation.
func (c *Client) allDeactivated() bool {
	now := time.Now()
	for _, cr := range c.cfg.Credentials {
		if cr.IsActive() || (!cr.ReactivateAt().IsZero() && now.After(cr.ReactivateAt())) {
			return false
		}
	}
	return true
}

// nextCredentials picks credentials that still have quota for the endpoint,
// waiting up to RateLimitWait when every set is blocked.
func (c *Client) nextCredentials(ctx context.Context, endpoint string) (*Credentials, error) {
	filter := func(cr *Credentials) bool {
		return time.Now().After(cr.EndpointAvailableAt(endpoint)) && cr.AllowRequest(endpoint)
	}
	if c.cfg.RateLimitWait > 0 {
		return c.pool.NextWithWait(ctx, filter, c.cfg.RateLimitWait)
	}
	return c.pool.Next(filter)
}

// execute runs one HTTP request through the circuit breaker. 5xx responses count as
// breaker failures but are still returned to the caller as a status.
func (c *Client) execute(fullURL string, headers map[string]string) ([]byte, map[string]string, int, error) {
	var respHdrs map[string]string
	var status int
	out, err := c.breaker.Execute(func() (interface{}, error) {
		body, hdrs, st, err := c.http.DoWithHeaderOrder("GET", fullURL, headers, nil, restHeaderOrder)
		if err != nil {
			return nil, err
		}
		respHdrs, status = lowerKeys(hdrs), st
		if st >= 500 {
			return body, errUpstream
		}
		return body, nil
	})
	if err != nil && !errors.Is(err, errUpstream) {
		return nil, nil, 0, err
	}
	body, _ := out.([]byte)
	return body, respHdrs, status, nil
}

func lowerKeys(h map[string]string) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		out[strings.ToLower(k)] = v
	}
	return out
}

func truncateBytes(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
