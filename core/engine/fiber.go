package engine

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/devserve-go/devserve/core/logger"
)

// Fiber serves through gofiber, which runs on fasthttp instead of net/http.
// The effective handler is bridged with gofiber's adaptor package.
type Fiber struct {
	log      *slog.Logger
	shutdown time.Duration
}

// FiberOption configures the fasthttp engine.
type FiberOption func(*Fiber)

// WithFiberLogger sets a custom logger for engine lifecycle events.
func WithFiberLogger(log *slog.Logger) FiberOption {
	return func(e *Fiber) {
		e.log = log
	}
}

// WithFiberShutdownTimeout sets the maximum time Stop waits for in-flight
// requests before giving up.
func WithFiberShutdownTimeout(timeout time.Duration) FiberOption {
	return func(e *Fiber) {
		e.shutdown = timeout
	}
}

// NewFiber creates the fasthttp engine with a no-op logger.
func NewFiber(opts ...FiberOption) *Fiber {
	e := &Fiber{
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		shutdown: DefaultShutdownTimeout,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Start binds the listener and serves in a goroutine, returning the handle
// immediately. Bind failures surface synchronously as ErrStart.
func (e *Fiber) Start(ctx context.Context, h http.Handler, opts Options) (*Handle, error) {
	ln, err := listen(opts)
	if err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ReadTimeout:           DefaultReadTimeout,
		WriteTimeout:          DefaultWriteTimeout,
		IdleTimeout:           DefaultIdleTimeout,
	})
	app.Use(adaptor.HTTPHandler(h))

	port := boundPort(ln)
	e.log.InfoContext(ctx, "engine started", slog.String("engine", "fiber"), logger.Port(port))

	go func() {
		if err := app.Listener(ln); err != nil {
			e.log.Error("serve loop terminated", logger.Error(err))
		}
	}()

	return &Handle{
		Name: "fiber (fasthttp)",
		Port: port,
		stop: func() error {
			return app.ShutdownWithTimeout(e.shutdown)
		},
	}, nil
}
