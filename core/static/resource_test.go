package static_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devserve-go/devserve/core/static"
)

func TestResourceChainIndex(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"index.html":     {Data: []byte("<h1>root</h1>")},
		"foo/index.html": {Data: []byte("<h1>foo</h1>")},
		"foo/app.js":     {Data: []byte("console.log(1);")},
	}
	h := static.ResourceChain(fsys)

	tests := []struct {
		name         string
		method       string
		path         string
		expectStatus int
		expectBody   string
	}{
		{name: "root_index", method: http.MethodGet, path: "/", expectStatus: http.StatusOK, expectBody: "<h1>root</h1>"},
		{name: "index_with_trailing_slash", method: http.MethodGet, path: "/foo/", expectStatus: http.StatusOK, expectBody: "<h1>foo</h1>"},
		{name: "index_without_trailing_slash", method: http.MethodGet, path: "/foo", expectStatus: http.StatusOK, expectBody: "<h1>foo</h1>"},
		{name: "asset_file", method: http.MethodGet, path: "/foo/app.js", expectStatus: http.StatusOK, expectBody: "console.log(1);"},
		{name: "non_get_declines_index", method: http.MethodPost, path: "/foo", expectStatus: http.StatusNotFound, expectBody: "Not found"},
		{name: "missing_resource", method: http.MethodGet, path: "/missing", expectStatus: http.StatusNotFound, expectBody: "Not found"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.expectStatus, rec.Code)
			assert.Equal(t, tt.expectBody, rec.Body.String())
		})
	}
}

func TestResourceChainIndexContentType(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"docs/index.html": {Data: []byte("<p>docs</p>")},
	}
	h := static.ResourceChain(fsys)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/docs", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
}

func TestResourceChainNonGetAsset(t *testing.T) {
	t.Parallel()

	// The resource stage itself is method-agnostic; only the index stage
	// is restricted to GET.
	fsys := fstest.MapFS{
		"data.json": {Data: []byte(`{"ok":true}`)},
	}
	h := static.ResourceChain(fsys)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/data.json", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `{"ok":true}`, rec.Body.String())
}

func TestResourceChainNilFS(t *testing.T) {
	t.Parallel()

	h := static.ResourceChain(nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not found", rec.Body.String())
}

func TestResourceChainCustomNotFound(t *testing.T) {
	t.Parallel()

	h := static.ResourceChain(fstest.MapFS{}, static.WithResourceNotFound(
		func(w http.ResponseWriter, r *http.Request) error {
			http.Error(w, "gone", http.StatusNotFound)
			return nil
		},
	))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "gone\n", rec.Body.String())
}
