package middleware

import (
	"bufio"
	"net"
	"net/http"
	"strings"

	"github.com/devserve-go/devserve/core/handler"
)

// NotModified returns middleware that downgrades a 200 response to
// 304 Not Modified when the request's conditional headers show the client's
// cached copy is current. The comparison uses the ETag and Last-Modified
// validators set by the wrapped handler; responses without validators pass
// through untouched.
func NotModified() handler.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(&notModifiedWriter{ResponseWriter: w, req: r}, r)
		})
	}
}

type notModifiedWriter struct {
	http.ResponseWriter
	req         *http.Request
	wroteHeader bool
	skipBody    bool
}

func (w *notModifiedWriter) WriteHeader(status int) {
	if w.wroteHeader {
		w.ResponseWriter.WriteHeader(status)
		return
	}
	w.wroteHeader = true

	if status == http.StatusOK && w.unchanged() {
		// RFC 9110: a 304 carries no body and no representation headers.
		w.Header().Del("Content-Type")
		w.Header().Del("Content-Length")
		w.skipBody = true
		w.ResponseWriter.WriteHeader(http.StatusNotModified)
		return
	}

	w.ResponseWriter.WriteHeader(status)
}

func (w *notModifiedWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	if w.skipBody {
		return len(b), nil
	}
	return w.ResponseWriter.Write(b)
}

// Unwrap exposes the wrapped writer to http.ResponseController.
func (w *notModifiedWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// Hijack hands the connection over, e.g. for a websocket upgrade.
func (w *notModifiedWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	return http.NewResponseController(w.ResponseWriter).Hijack()
}

// unchanged reports whether the response validators match the request's
// conditional headers. If-None-Match takes precedence over
// If-Modified-Since, mirroring net/http's own conditional handling.
func (w *notModifiedWriter) unchanged() bool {
	if inm := w.req.Header.Get("If-None-Match"); inm != "" {
		etag := w.Header().Get("ETag")
		if etag == "" {
			return false
		}
		if inm == "*" {
			return true
		}
		for _, candidate := range strings.Split(inm, ",") {
			if strings.TrimSpace(candidate) == etag {
				return true
			}
		}
		return false
	}

	ims := w.req.Header.Get("If-Modified-Since")
	lastMod := w.Header().Get("Last-Modified")
	if ims == "" || lastMod == "" {
		return false
	}

	imsTime, err := http.ParseTime(ims)
	if err != nil {
		return false
	}
	modTime, err := http.ParseTime(lastMod)
	if err != nil {
		return false
	}

	// HTTP dates have second precision; unchanged when not strictly newer.
	return !modTime.After(imsTime)
}
