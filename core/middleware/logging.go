package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/devserve-go/devserve/core/handler"
	"github.com/devserve-go/devserve/core/logger"
)

// LoggingConfig configures the request logging middleware.
type LoggingConfig struct {
	// Logger is the slog logger to use (default: slog.Default())
	Logger *slog.Logger
	// Level for request log records (default: slog.LevelInfo)
	Level slog.Level
	// Skip defines a function to skip logging for specific requests
	Skip func(r *http.Request) bool
}

// Logging creates request logging middleware with default configuration.
func Logging() handler.Middleware {
	return LoggingWithConfig(LoggingConfig{})
}

// LoggingWithConfig logs one structured record per request: method, path,
// status, response size, and duration.
func LoggingWithConfig(cfg LoggingConfig) handler.Middleware {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Skip != nil && cfg.Skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			sw := &statusWriter{ResponseWriter: w}
			next.ServeHTTP(sw, r)

			cfg.Logger.LogAttrs(r.Context(), cfg.Level, "request",
				slog.String("method", r.Method),
				logger.Path(r.URL.Path),
				slog.Int("status", sw.status),
				slog.Int("bytes", sw.bytes),
				logger.Duration(time.Since(start)),
			)
		})
	}
}
