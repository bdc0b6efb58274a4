package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sony/gobreaker"

	tweetie "github.com/anatolykoptev/go-tweetie"
)

type errorResponse struct {
	Error     string `json:"error"`
	User      string `json:"user,omitempty"`
	RetryAt   string `json:"retry_at,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) handleTimeline(c echo.Context) error {
	handle, err := accountParam(c)
	if err != nil {
		return err
	}
	report, err := s.reports.Timeline(c.Request().Context(), handle)
	if err != nil {
		return reportError(c, handle, err)
	}
	if err := c.JSON(http.StatusOK, report); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleFollowing(c echo.Context) error {
	handle, err := accountParam(c)
	if err != nil {
		return err
	}
	report, err := s.reports.Following(c.Request().Context(), handle)
	if err != nil {
		return reportError(c, handle, err)
	}
	if err := c.JSON(http.StatusOK, report); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(c echo.Context) error {
	body := map[string]any{
		"status": "ok",
		"uptime": time.Since(s.startTime).Seconds(),
	}
	status := http.StatusOK
	if s.circuit != nil {
		state := s.circuit()
		body["circuit"] = state
		if state == gobreaker.StateOpen.String() {
			body["status"] = "degraded"
			status = http.StatusServiceUnavailable
		}
	}
	return c.JSON(status, body)
}

func accountParam(c echo.Context) (string, error) {
	handle := strings.TrimPrefix(strings.TrimSpace(c.Param("name")), "@")
	if handle == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, "account handle required")
	}
	return handle, nil
}

// statusFor maps a report failure onto an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, tweetie.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, tweetie.ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusBadGateway
	}
}

func reportError(c echo.Context, handle string, err error) error {
	status := statusFor(err)
	resp := errorResponse{
		Error:     http.StatusText(status),
		User:      handle,
		RequestID: c.Response().Header().Get(echo.HeaderXRequestID),
	}
	switch status {
	case http.StatusNotFound:
		resp.Error = "user not found"
	case http.StatusTooManyRequests:
		var apiErr *tweetie.APIError
		if errors.As(err, &apiErr) && !apiErr.Reset.IsZero() {
			resp.RetryAt = apiErr.Reset.UTC().Format(time.RFC3339)
			if wait := time.Until(apiErr.Reset); wait > 0 {
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(wait.Seconds())+1))
			}
		}
	}
	if err := c.JSON(status, resp); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}
