package static

import (
	"net/http"

	"github.com/devserve-go/devserve/core/handler"
)

// NotFound returns the terminal fallback response: plain-text 404.
// It never declines, so it is always the last element of a chain.
// Calling it repeatedly with the same request produces identical output.
func NotFound() handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		_, err := w.Write([]byte("Not found"))
		return err
	}
}
