package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/anatolykoptev/go-tweetie/mood"
)

// reporter produces the two account reports. *mood.Service implements it.
type reporter interface {
	Timeline(ctx context.Context, handle string) (*mood.TimelineReport, error)
	Following(ctx context.Context, handle string) (*mood.FollowingReport, error)
}

// Config wires the server's collaborators.
type Config struct {
	Addr    string
	Reports reporter

	// Metrics serves /metrics. Nil disables the route.
	Metrics http.Handler

	// CircuitState reports the upstream circuit breaker state for /healthz. Optional.
	CircuitState func() string
}

type Server struct {
	echo      *echo.Echo
	addr      string
	reports   reporter
	circuit   func() string
	startTime time.Time
}

func New(cfg Config) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			}
			level := slog.LevelInfo
			if v.Error != nil {
				attrs = append(attrs, slog.Any("error", v.Error))
				level = slog.LevelError
			}
			slog.LogAttrs(c.Request().Context(), level, "request", attrs...)
			return nil
		},
	}))
	e.Use(middleware.Recover())

	s := &Server{
		echo:      e,
		addr:      cfg.Addr,
		reports:   cfg.Reports,
		circuit:   cfg.CircuitState,
		startTime: time.Now(),
	}
	s.registerRoutes(cfg.Metrics)
	return s
}

func (s *Server) registerRoutes(metrics http.Handler) {
	s.echo.GET("/healthz", s.handleHealth)
	s.echo.GET("/favicon.ico", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})
	if metrics != nil {
		s.echo.GET("/metrics", echo.WrapHandler(metrics))
	}
	s.echo.GET("/following/:name", s.handleFollowing)
	s.echo.GET("/:name", s.handleTimeline)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.echo }

// Start serves until Shutdown is called. It returns nil after a clean shutdown.
func (s *Server) Start() error {
	slog.Info("starting server", slog.String("addr", s.addr))
	if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
