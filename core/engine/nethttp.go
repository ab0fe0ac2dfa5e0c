package engine

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/devserve-go/devserve/core/logger"
)

// Default timeouts for the net/http engine.
const (
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
)

// NetHTTP serves through the standard library's http.Server.
type NetHTTP struct {
	log          *slog.Logger
	readTimeout  time.Duration
	writeTimeout time.Duration
	idleTimeout  time.Duration
	shutdown     time.Duration
}

// NetHTTPOption configures the net/http engine.
type NetHTTPOption func(*NetHTTP)

// WithNetHTTPLogger sets a custom logger for engine lifecycle events.
func WithNetHTTPLogger(log *slog.Logger) NetHTTPOption {
	return func(e *NetHTTP) {
		e.log = log
	}
}

// WithNetHTTPShutdownTimeout sets the maximum time Stop waits for in-flight
// requests before giving up.
func WithNetHTTPShutdownTimeout(timeout time.Duration) NetHTTPOption {
	return func(e *NetHTTP) {
		e.shutdown = timeout
	}
}

// NewNetHTTP creates the net/http engine with default timeouts and a no-op
// logger.
func NewNetHTTP(opts ...NetHTTPOption) *NetHTTP {
	e := &NetHTTP{
		log:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		readTimeout:  DefaultReadTimeout,
		writeTimeout: DefaultWriteTimeout,
		idleTimeout:  DefaultIdleTimeout,
		shutdown:     DefaultShutdownTimeout,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Start binds the listener and serves in a goroutine, returning the handle
// immediately. Bind failures surface synchronously as ErrStart.
func (e *NetHTTP) Start(ctx context.Context, h http.Handler, opts Options) (*Handle, error) {
	ln, err := listen(opts)
	if err != nil {
		return nil, err
	}

	srv := &http.Server{
		Handler:      h,
		ReadTimeout:  e.readTimeout,
		WriteTimeout: e.writeTimeout,
		IdleTimeout:  e.idleTimeout,
	}

	port := boundPort(ln)
	e.log.InfoContext(ctx, "engine started", slog.String("engine", "net/http"), logger.Port(port))

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.log.Error("serve loop terminated", logger.Error(err))
		}
	}()

	return &Handle{
		Name: "net/http",
		Port: port,
		stop: func() error {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), e.shutdown)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}, nil
}
