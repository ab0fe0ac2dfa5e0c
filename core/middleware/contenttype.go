package middleware

import (
	"bufio"
	"mime"
	"net"
	"net/http"
	"path"

	"github.com/devserve-go/devserve/core/handler"
)

// ContentType returns middleware that infers a Content-Type from the
// request path's file extension when the handler did not set one. Responses
// without an extension are left to net/http's content sniffing.
func ContentType() handler.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(&contentTypeWriter{ResponseWriter: w, req: r}, r)
		})
	}
}

type contentTypeWriter struct {
	http.ResponseWriter
	req         *http.Request
	wroteHeader bool
}

func (w *contentTypeWriter) WriteHeader(status int) {
	if !w.wroteHeader {
		w.wroteHeader = true
		if w.Header().Get("Content-Type") == "" {
			if ct := mime.TypeByExtension(path.Ext(w.req.URL.Path)); ct != "" {
				w.Header().Set("Content-Type", ct)
			}
		}
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *contentTypeWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *contentTypeWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap exposes the wrapped writer to http.ResponseController.
func (w *contentTypeWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// Hijack hands the connection over, e.g. for a websocket upgrade.
func (w *contentTypeWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	return http.NewResponseController(w.ResponseWriter).Hijack()
}
