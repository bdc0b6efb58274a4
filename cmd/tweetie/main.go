package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anatolykoptev/go-stealth/ratelimit"

	tweetie "github.com/anatolykoptev/go-tweetie"
	"github.com/anatolykoptev/go-tweetie/internal/config"
	"github.com/anatolykoptev/go-tweetie/internal/logging"
	"github.com/anatolykoptev/go-tweetie/internal/metrics"
	"github.com/anatolykoptev/go-tweetie/internal/server"
	"github.com/anatolykoptev/go-tweetie/mood"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// slog is not configured yet
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupClient(cfg *config.Config, m *metrics.Metrics) *tweetie.Client {
	path, err := config.CredentialsPath(os.Args[1:], config.ServeMarker)
	if err != nil {
		slog.Error("No credentials file", slog.Any("error", err))
		os.Exit(2)
	}

	creds, err := tweetie.LoadCredentials(path)
	if err != nil {
		slog.Error("Failed to load credentials", slog.String("path", path), slog.Any("error", err))
		os.Exit(1)
	}

	rl := ratelimit.DefaultConfig
	if cfg.TwitterRequestsPerWindow > 0 {
		rl.RequestsPerWindow = cfg.TwitterRequestsPerWindow
	}

	client, err := tweetie.NewClient(tweetie.ClientConfig{
		Credentials:   creds,
		BaseURL:       cfg.TwitterAPIBase,
		Proxy:         cfg.TwitterProxy,
		RateLimit:     rl,
		RateLimitWait: cfg.TwitterRateLimitWait,
		MetricsHook:   m.APICall,
	})
	if err != nil {
		slog.Error("Failed to create Twitter client", slog.Any("error", err))
		os.Exit(1)
	}
	slog.Info("Twitter client ready", slog.Int("credential_sets", len(creds)))
	return client
}

func runGracefulShutdown(srv *server.Server, timeout time.Duration) <-chan struct{} {
	done := make(chan struct{})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received")

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", slog.Any("error", err))
		}
		close(done)
	}()

	return done
}

func main() {
	cfg := setupConfig()
	logging.Init(cfg.LogLevel, cfg.LogFormat)

	m := metrics.New()
	client := setupClient(cfg, m)
	reports := mood.NewService(client, m)

	srv := server.New(server.Config{
		Addr:    cfg.ListenAddr,
		Reports: reports,
		Metrics: m.Handler(),
		CircuitState: func() string {
			return client.BreakerState().String()
		},
	})

	done := runGracefulShutdown(srv, cfg.ShutdownTimeout)

	if err := srv.Start(); err != nil {
		slog.Error("Server error", slog.Any("error", err))
		os.Exit(1)
	}
	<-done
	slog.Info("Server stopped")
}
