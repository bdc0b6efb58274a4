package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":5000", cfg.ListenAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "https://api.twitter.com", cfg.TwitterAPIBase)
	assert.Empty(t, cfg.TwitterProxy)
	assert.Zero(t, cfg.TwitterRequestsPerWindow)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("LISTEN_ADDR", "127.0.0.1:8080")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("TWITTER_PROXY", "socks5://localhost:1080")
	t.Setenv("TWITTER_REQUESTS_PER_WINDOW", "900")
	t.Setenv("TWITTER_RATE_LIMIT_WAIT", "30s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8080", cfg.ListenAddr)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "socks5://localhost:1080", cfg.TwitterProxy)
	assert.Equal(t, 900, cfg.TwitterRequestsPerWindow)
	assert.Equal(t, 30*time.Second, cfg.TwitterRateLimitWait)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"bad log format", "LOG_FORMAT", "xml"},
		{"negative quota", "TWITTER_REQUESTS_PER_WINDOW", "-1"},
		{"zero shutdown", "SHUTDOWN_TIMEOUT", "0s"},
		{"unparsable duration", "SHUTDOWN_TIMEOUT", "soon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestCredentialsPath(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{"after marker", []string{"tweetie", "serve", "twitter.csv"}, "twitter.csv", false},
		{"marker not first", []string{"tweetie", "-v", "serve", "/etc/creds"}, "/etc/creds", false},
		{"extra args ignored", []string{"tweetie", "serve", "a.csv", "b.csv"}, "a.csv", false},
		{"no marker", []string{"tweetie", "twitter.csv"}, "", true},
		{"marker last", []string{"tweetie", "serve"}, "", true},
		{"empty value", []string{"tweetie", "serve", ""}, "", true},
		{"no args", nil, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CredentialsPath(tt.args, ServeMarker)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
