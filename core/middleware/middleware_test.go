package middleware_test

import (
	"bufio"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devserve-go/devserve/core/middleware"
)

func TestContentType(t *testing.T) {
	t.Parallel()

	plain := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("body"))
	})

	t.Run("infers from extension", func(t *testing.T) {
		t.Parallel()

		h := middleware.ContentType()(plain)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/styles.css", nil))

		assert.Contains(t, rec.Header().Get("Content-Type"), "text/css")
	})

	t.Run("keeps explicit content type", func(t *testing.T) {
		t.Parallel()

		h := middleware.ContentType()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/custom")
			_, _ = w.Write([]byte("body"))
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/styles.css", nil))

		assert.Equal(t, "application/custom", rec.Header().Get("Content-Type"))
	})

	t.Run("leaves extensionless paths alone", func(t *testing.T) {
		t.Parallel()

		h := middleware.ContentType()(plain)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/about", nil))

		// httptest does not sniff; absence here means net/http sniffing applies.
		assert.Empty(t, rec.Header().Get("Content-Type"))
	})
}

func TestNotModified(t *testing.T) {
	t.Parallel()

	lastMod := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	withValidators := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("ETag", `"v1"`)
		w.Header().Set("Last-Modified", lastMod.Format(http.TimeFormat))
		_, _ = w.Write([]byte("payload"))
	})

	t.Run("matching etag downgrades to 304", func(t *testing.T) {
		t.Parallel()

		h := middleware.NotModified()(withValidators)
		req := httptest.NewRequest(http.MethodGet, "/asset.js", nil)
		req.Header.Set("If-None-Match", `"v1"`)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotModified, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("stale etag passes through", func(t *testing.T) {
		t.Parallel()

		h := middleware.NotModified()(withValidators)
		req := httptest.NewRequest(http.MethodGet, "/asset.js", nil)
		req.Header.Set("If-None-Match", `"v0"`)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "payload", rec.Body.String())
	})

	t.Run("if-modified-since not newer downgrades to 304", func(t *testing.T) {
		t.Parallel()

		h := middleware.NotModified()(withValidators)
		req := httptest.NewRequest(http.MethodGet, "/asset.js", nil)
		req.Header.Set("If-Modified-Since", lastMod.Add(time.Hour).Format(http.TimeFormat))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotModified, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("modified since passes through", func(t *testing.T) {
		t.Parallel()

		h := middleware.NotModified()(withValidators)
		req := httptest.NewRequest(http.MethodGet, "/asset.js", nil)
		req.Header.Set("If-Modified-Since", lastMod.Add(-time.Hour).Format(http.TimeFormat))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("non-GET is untouched", func(t *testing.T) {
		t.Parallel()

		h := middleware.NotModified()(withValidators)
		req := httptest.NewRequest(http.MethodPost, "/asset.js", nil)
		req.Header.Set("If-None-Match", `"v1"`)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("responses without validators pass through", func(t *testing.T) {
		t.Parallel()

		h := middleware.NotModified()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("fresh"))
		}))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("If-Modified-Since", time.Now().Format(http.TimeFormat))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "fresh", rec.Body.String())
	})
}

// hijackableRecorder stands in for a connection-backed writer, as a
// websocket upgrade would see one.
type hijackableRecorder struct {
	*httptest.ResponseRecorder
	hijacked bool
}

func (h *hijackableRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h.hijacked = true
	client, server := net.Pipe()
	_ = client.Close()
	return server, bufio.NewReadWriter(bufio.NewReader(server), bufio.NewWriter(server)), nil
}

func TestWritersExposeHijack(t *testing.T) {
	t.Parallel()

	var hijackErr error
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, _, err := http.NewResponseController(w).Hijack()
		hijackErr = err
		if conn != nil {
			_ = conn.Close()
		}
	})

	// Stack all the wrapping writers in front, as the serve pipeline does.
	h := middleware.Logging()(middleware.NotModified()(middleware.ContentType()(inner)))

	rw := &hijackableRecorder{ResponseRecorder: httptest.NewRecorder()}
	h.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/live", nil))

	require.NoError(t, hijackErr)
	assert.True(t, rw.hijacked)
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	t.Run("generates id and stores it in context", func(t *testing.T) {
		t.Parallel()

		var fromCtx string
		h := middleware.RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fromCtx = middleware.GetRequestID(r.Context())
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.NotEmpty(t, fromCtx)
		assert.Equal(t, fromCtx, rec.Header().Get("X-Request-ID"))
	})

	t.Run("reuses client id when configured", func(t *testing.T) {
		t.Parallel()

		h := middleware.RequestIDWithConfig(middleware.RequestIDConfig{UseExisting: true})(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}),
		)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "client-supplied")

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, "client-supplied", rec.Header().Get("X-Request-ID"))
	})
}
