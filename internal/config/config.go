package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

// ServeMarker is the command-line token that precedes the credentials file path.
const ServeMarker = "serve"

type Config struct {
	ListenAddr      string        `env:"LISTEN_ADDR" default:":5000"`
	LogLevel        string        `env:"LOG_LEVEL" default:"info"`
	LogFormat       string        `env:"LOG_FORMAT" default:"text"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" default:"10s"`

	TwitterAPIBase           string        `env:"TWITTER_API_BASE" default:"https://api.twitter.com"`
	TwitterProxy             string        `env:"TWITTER_PROXY"`
	TwitterRequestsPerWindow int           `env:"TWITTER_REQUESTS_PER_WINDOW"`
	TwitterRateLimitWait     time.Duration `env:"TWITTER_RATE_LIMIT_WAIT" default:"0s"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.ListenAddr == "" {
		return errors.New("LISTEN_ADDR must not be empty")
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}
	if cfg.ShutdownTimeout <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	if cfg.TwitterRequestsPerWindow < 0 {
		return errors.New("TWITTER_REQUESTS_PER_WINDOW must not be negative")
	}
	if cfg.TwitterRateLimitWait < 0 {
		return errors.New("TWITTER_RATE_LIMIT_WAIT must not be negative")
	}
	return nil
}

// CredentialsPath returns the argument that immediately follows marker in args.
func CredentialsPath(args []string, marker string) (string, error) {
	for i, arg := range args {
		if arg != marker {
			continue
		}
		if i+1 >= len(args) || args[i+1] == "" {
			return "", fmt.Errorf("missing credentials file after %q", marker)
		}
		return args[i+1], nil
	}
	return "", fmt.Errorf("usage: tweetie %s <credentials-file>", marker)
}
