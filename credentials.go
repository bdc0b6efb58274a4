package tweetie

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/anatolykoptev/go-stealth/pool"
	"github.com/anatolykoptev/go-stealth/ratelimit"
)

// credentialFields is the number of comma-separated fields in a credential line.
const credentialFields = 4

// CredentialFormatError reports a malformed credential line.
type CredentialFormatError struct {
	Line   int
	Fields int
	Reason string
}

func (e *CredentialFormatError) Error() string {
	return fmt.Sprintf("credentials line %d: %s (got %d fields, want %d: consumer_key, consumer_secret, access_token, access_token_secret)",
		e.Line, e.Reason, e.Fields, credentialFields)
}

// Credentials is one OAuth1 application + user token set. Several sets can be
// rotated through the client pool; each keeps its own rate-limit and health state.
type Credentials struct {
	ConsumerKey       string
	ConsumerSecret    string
	AccessToken       string
	AccessTokenSecret string

	active atomic.Bool

	mu           sync.Mutex
	reactivateAt time.Time
	rateLimiter  *ratelimit.Limiter

	pool.HealthTracker
}

// ID implements pool.Identity. The access token identifies the user-app pair.
func (c *Credentials) ID() string { return maskToken(c.AccessToken) }

// IsActive implements pool.Identity.
func (c *Credentials) IsActive() bool { return c.active.Load() }

// SetActive implements pool.Identity.
func (c *Credentials) SetActive(v bool) { c.active.Store(v) }

// ReactivateAt implements pool.Identity.
func (c *Credentials) ReactivateAt() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reactivateAt
}

// SetReactivateAt implements pool.Identity.
func (c *Credentials) SetReactivateAt(t time.Time) {
	c.mu.Lock()
	c.reactivateAt = t
	c.mu.Unlock()
}

// AllowRequest checks if these credentials can make a request to the given endpoint.
func (c *Credentials) AllowRequest(endpoint string) bool {
	c.mu.Lock()
	rl := c.rateLimiter
	c.mu.Unlock()
	if rl == nil {
		return true
	}
	return rl.Allow(endpoint)
}

// MarkEndpointRateLimited blocks the endpoint for these credentials until the given time.
func (c *Credentials) MarkEndpointRateLimited(endpoint string, until time.Time) {
	c.mu.Lock()
	rl := c.rateLimiter
	c.mu.Unlock()
	if rl != nil {
		rl.MarkRateLimited(endpoint, until)
	}
}

// EndpointAvailableAt returns when these credentials may call the endpoint again.
func (c *Credentials) EndpointAvailableAt(endpoint string) time.Time {
	c.mu.Lock()
	rl := c.rateLimiter
	c.mu.Unlock()
	if rl == nil {
		return time.Time{}
	}
	return rl.AvailableAt(endpoint)
}

func (c *Credentials) attach(cfg ratelimit.Config) {
	c.mu.Lock()
	c.rateLimiter = ratelimit.NewLimiter(cfg)
	c.mu.Unlock()
	c.HealthTracker = pool.DefaultHealthTracker()
	c.active.Store(true)
}

// ParseCredentials parses a single line of the form
// "consumer_key, consumer_secret, access_token, access_token_secret".
// line is the 1-based line number used in error messages.
func ParseCredentials(raw string, line int) (*Credentials, error) {
	raw = strings.TrimSpace(raw)
	parts := strings.Split(raw, ", ")
	if len(parts) != credentialFields {
		return nil, &CredentialFormatError{Line: line, Fields: len(parts), Reason: "wrong field count"}
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
		if parts[i] == "" {
			return nil, &CredentialFormatError{Line: line, Fields: len(parts), Reason: fmt.Sprintf("field %d is empty", i+1)}
		}
	}
	c := &Credentials{
		ConsumerKey:       parts[0],
		ConsumerSecret:    parts[1],
		AccessToken:       parts[2],
		AccessTokenSecret: parts[3],
	}
	c.active.Store(true)
	return c, nil
}

// LoadCredentials reads a credential file. The first line is mandatory; any further
// non-empty lines are additional credential sets in the same format.
func LoadCredentials(path string) ([]*Credentials, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open credentials: %w", err)
	}
	defer f.Close()

	var creds []*Credentials
	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if line > 1 && strings.TrimSpace(text) == "" {
			continue
		}
		c, err := ParseCredentials(text, line)
		if err != nil {
			return nil, err
		}
		creds = append(creds, c)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	if len(creds) == 0 {
		return nil, &CredentialFormatError{Line: 1, Reason: "file is empty"}
	}
	return creds, nil
}

func maskToken(s string) string {
	if i := strings.IndexByte(s, '-'); i > 0 {
		return s[:i]
	}
	return s[:min(8, len(s))]
}
