// Package logging configures the default slog logger.
package logging
