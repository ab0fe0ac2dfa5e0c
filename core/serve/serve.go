package serve

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/devserve-go/devserve/core/engine"
	"github.com/devserve-go/devserve/core/handler"
	"github.com/devserve-go/devserve/core/logger"
	"github.com/devserve-go/devserve/core/middleware"
	"github.com/devserve-go/devserve/core/reload"
	"github.com/devserve-go/devserve/core/resolver"
	"github.com/devserve-go/devserve/core/static"
)

type options struct {
	resources fs.FS
	log       *slog.Logger
}

// Option configures the serve pipeline.
type Option func(*options)

// WithResources supplies the bundled resource filesystem, typically an
// embed.FS compiled into the hosting binary.
func WithResources(fsys fs.FS) Option {
	return func(o *options) {
		o.resources = fsys
	}
}

// WithLogger sets a custom logger for the pipeline and its middleware.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

// Handler produces the effective request handler for the configuration:
// the registered custom handler when one is named (optionally wrapped for
// live reload), else the directory chain, else the resource chain. The
// choice is made once; the losing chains are never constructed.
func Handler(cfg Config, opts ...Option) (http.Handler, error) {
	h, _, err := buildHandler(cfg, newOptions(opts))
	return h, err
}

// Start wraps the effective handler with the generic middleware stack and
// launches the configured engine. The call is non-blocking: the listener
// is bound synchronously and served in the background, and the returned
// handle carries the engine name, the bound port, and the stop action.
// Under Reload the filesystem watcher runs until ctx is canceled.
func Start(ctx context.Context, cfg Config, opts ...Option) (*engine.Handle, error) {
	o := newOptions(opts)

	h, rl, err := buildHandler(cfg, o)
	if err != nil {
		return nil, err
	}

	h = handler.Wrap(h,
		middleware.RequestID(),
		middleware.LoggingWithConfig(middleware.LoggingConfig{Logger: o.log}),
		middleware.NotModified(),
		middleware.ContentType(),
	)

	eng, err := engine.Select(cfg.Engine)
	if err != nil {
		return nil, err
	}

	launch := engine.BuildOptions(cfg.Port, engine.TLS{
		Port:     cfg.SSLPort,
		CertFile: cfg.CertFile,
		KeyFile:  cfg.KeyFile,
	})

	hdl, err := eng.Start(ctx, h, launch)
	if err != nil {
		return nil, err
	}

	if rl != nil {
		go func() {
			if err := rl.Watch(ctx); err != nil && ctx.Err() == nil {
				o.log.Error("reload watcher stopped", logger.Error(err))
			}
		}()
	}

	o.log.Info("server started",
		slog.String("engine", hdl.Name),
		logger.Port(hdl.Port),
		slog.Bool("tls", launch.SSLEnabled),
	)
	return hdl, nil
}

func newOptions(opts []Option) *options {
	o := &options{log: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// buildHandler evaluates the candidate producers in strict priority order
// and returns the first match, plus the reloader when one was created.
func buildHandler(cfg Config, o *options) (http.Handler, *reload.Reloader, error) {
	notFound, err := notFoundResponse(cfg)
	if err != nil {
		return nil, nil, err
	}

	switch {
	case cfg.Handler != "":
		if cfg.Reload {
			rl := reload.New(resolver.NewReloading(cfg.Handler),
				reload.WithWatchDirs(cfg.WatchDirs...),
				reload.WithLogger(o.log),
			)
			return rl.Handler(), rl, nil
		}

		// Without reload the name must resolve now; a dangling reference is
		// a startup failure, not a per-request 500.
		h, err := resolver.Lookup(cfg.Handler)
		if err != nil {
			return nil, nil, err
		}
		return h, nil, nil

	case cfg.Dir != "":
		resources, err := resourcesAt(o.resources, cfg.ResourceRoot)
		if err != nil {
			return nil, nil, err
		}
		h, err := static.DirChain(cfg.Dir,
			static.WithDirResources(resources),
			static.WithDirNotFound(notFound),
		)
		if err != nil {
			return nil, nil, err
		}
		return h, nil, nil

	default:
		resources, err := resourcesAt(o.resources, cfg.ResourceRoot)
		if err != nil {
			return nil, nil, err
		}
		return static.ResourceChain(resources, static.WithResourceNotFound(notFound)), nil, nil
	}
}

// notFoundResponse resolves the configured custom not-found handler, or
// falls back to the plain-text terminal.
func notFoundResponse(cfg Config) (handler.Response, error) {
	if cfg.NotFound == "" {
		return static.NotFound(), nil
	}

	h, err := resolver.Lookup(cfg.NotFound)
	if err != nil {
		return nil, err
	}
	return func(w http.ResponseWriter, r *http.Request) error {
		h.ServeHTTP(w, r)
		return nil
	}, nil
}

// resourcesAt narrows the bundled filesystem to the configured root.
func resourcesAt(fsys fs.FS, root string) (fs.FS, error) {
	if fsys == nil || root == "" {
		return fsys, nil
	}

	sub, err := fs.Sub(fsys, root)
	if err != nil {
		return nil, fmt.Errorf("serve: invalid resource root %q: %w", root, err)
	}
	return sub, nil
}
