package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devserve-go/devserve/core/handler"
)

func respondWith(body string) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		_, err := w.Write([]byte(body))
		return err
	}
}

func TestFirst(t *testing.T) {
	t.Parallel()

	decline := handler.Stage(func(r *http.Request) handler.Response { return nil })
	answer := func(body string) handler.Stage {
		return func(r *http.Request) handler.Response { return respondWith(body) }
	}

	t.Run("returns first non-nil response", func(t *testing.T) {
		t.Parallel()

		stage := handler.First(decline, answer("second"), answer("third"))
		resp := stage(httptest.NewRequest(http.MethodGet, "/", nil))
		require.NotNil(t, resp)

		rec := httptest.NewRecorder()
		require.NoError(t, resp(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
		assert.Equal(t, "second", rec.Body.String())
	})

	t.Run("declines when all stages decline", func(t *testing.T) {
		t.Parallel()

		stage := handler.First(decline, decline)
		assert.Nil(t, stage(httptest.NewRequest(http.MethodGet, "/", nil)))
	})

	t.Run("skips nil stages", func(t *testing.T) {
		t.Parallel()

		stage := handler.First(nil, answer("ok"))
		assert.NotNil(t, stage(httptest.NewRequest(http.MethodGet, "/", nil)))
	})
}

func TestChain(t *testing.T) {
	t.Parallel()

	t.Run("falls back to terminal response", func(t *testing.T) {
		t.Parallel()

		h := handler.Chain(
			func(r *http.Request) handler.Response { return nil },
			func(w http.ResponseWriter, r *http.Request) error {
				w.WriteHeader(http.StatusNotFound)
				_, err := w.Write([]byte("terminal"))
				return err
			},
		)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "terminal", rec.Body.String())
	})

	t.Run("stage response wins over terminal", func(t *testing.T) {
		t.Parallel()

		h := handler.Chain(
			func(r *http.Request) handler.Response { return respondWith("stage") },
			respondWith("terminal"),
		)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, "stage", rec.Body.String())
	})
}

func TestWrap(t *testing.T) {
	t.Parallel()

	tag := func(name string) handler.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Add("X-Order", name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := handler.Wrap(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}),
		tag("outer"), tag("inner"),
	)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"outer", "inner"}, rec.Header().Values("X-Order"))
}
