package handler

import (
	"log/slog"
	"net/http"
)

// First composes stages into a single stage that returns the response of the
// first stage that does not decline. Stage order is the evaluation order.
// The composed stage declines only if every stage declines.
func First(stages ...Stage) Stage {
	return func(r *http.Request) Response {
		for _, stage := range stages {
			if stage == nil {
				continue
			}
			if resp := stage(r); resp != nil {
				return resp
			}
		}
		return nil
	}
}

// Chain converts a stage into an http.Handler, using terminal as the
// guaranteed fallback when the stage and all of its children decline.
// Rendering errors are logged; by the time a Response fails the status line
// is usually already on the wire, so there is nothing better to do here.
func Chain(stage Stage, terminal Response) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := stage(r)
		if resp == nil {
			resp = terminal
		}
		if err := resp(w, r); err != nil {
			slog.Error("response rendering failed", "path", r.URL.Path, "error", err)
		}
	})
}

// Wrap applies middlewares to a handler in reverse order, so the first
// middleware in the list is the outermost one at request time.
func Wrap(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		if middlewares[i] != nil {
			h = middlewares[i](h)
		}
	}
	return h
}
