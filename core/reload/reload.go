package reload

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/devserve-go/devserve/core/logger"
	"github.com/devserve-go/devserve/core/resolver"
)

// DefaultEndpoint is the websocket path the injected client script
// connects to.
const DefaultEndpoint = "/.devserve/livereload"

// DefaultDebounce coalesces bursts of filesystem events into one browser
// notification.
const DefaultDebounce = 100 * time.Millisecond

// Reloader wraps a handler provider with edit-without-restart semantics:
// the provider is re-resolved on every request, served HTML gets a small
// websocket client injected, and filesystem changes in the watched
// directories push a reload notification to connected browsers.
type Reloader struct {
	provider resolver.Provider
	watch    []string
	endpoint string
	debounce time.Duration
	log      *slog.Logger
	hub      *hub
}

// Option configures a Reloader.
type Option func(*Reloader)

// WithWatchDirs sets the directories watched for changes (default: ["src"]).
func WithWatchDirs(dirs ...string) Option {
	return func(rl *Reloader) {
		rl.watch = dirs
	}
}

// WithEndpoint overrides the websocket endpoint path.
func WithEndpoint(path string) Option {
	return func(rl *Reloader) {
		rl.endpoint = path
	}
}

// WithLogger sets a custom logger.
func WithLogger(log *slog.Logger) Option {
	return func(rl *Reloader) {
		rl.log = log
	}
}

// WithDebounce sets the event coalescing window.
func WithDebounce(d time.Duration) Option {
	return func(rl *Reloader) {
		rl.debounce = d
	}
}

// New creates a Reloader around the given provider.
func New(provider resolver.Provider, opts ...Option) *Reloader {
	rl := &Reloader{
		provider: provider,
		watch:    []string{"src"},
		endpoint: DefaultEndpoint,
		debounce: DefaultDebounce,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(rl)
	}

	rl.hub = newHub(rl.log)
	return rl
}

// Handler returns the wrapping handler. Resolution happens per request, so
// a handler re-registered under the same name is picked up immediately.
func (rl *Reloader) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == rl.endpoint {
			rl.hub.serve(w, r)
			return
		}

		h, err := rl.provider.Resolve()
		if err != nil {
			rl.log.Error("handler resolution failed", logger.Error(err))
			http.Error(w, "handler resolution failed", http.StatusInternalServerError)
			return
		}

		iw := &injectWriter{ResponseWriter: w, script: clientScript(rl.endpoint)}
		h.ServeHTTP(iw, r)
		iw.finish()
	})
}
