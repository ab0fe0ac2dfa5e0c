package static

import (
	"io"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/devserve-go/devserve/core/handler"
)

// resourceConfig holds configuration for bundled resource serving.
type resourceConfig struct {
	notFound handler.Response
}

// ResourceOption configures resource chain behavior.
type ResourceOption func(*resourceConfig)

// WithResourceNotFound sets a custom terminal not-found response.
func WithResourceNotFound(resp handler.Response) ResourceOption {
	return func(c *resourceConfig) {
		c.notFound = resp
	}
}

// ResourceChain builds the serving chain for a bundled, read-only resource
// filesystem (typically an embed.FS): conventional index files first, then
// the resources themselves, then the not-found terminal. Resources are not
// enumerable in general, so no listing is generated.
func ResourceChain(fsys fs.FS, opts ...ResourceOption) http.Handler {
	config := &resourceConfig{
		notFound: NotFound(),
	}

	for _, opt := range opts {
		opt(config)
	}

	stage := handler.First(
		resourceIndexStage(fsys),
		resourceStage(fsys),
	)
	return handler.Chain(stage, config.notFound)
}

// resourceIndexStage tries the conventional index file for GET requests:
// the request path is normalized to a trailing slash and index.html is
// looked up beneath it. Non-GET requests always decline.
func resourceIndexStage(fsys fs.FS) handler.Stage {
	return func(r *http.Request) handler.Response {
		if fsys == nil || r.Method != http.MethodGet {
			return nil
		}

		uri := strings.TrimPrefix(r.URL.Path, "/")
		if uri != "" && !strings.HasSuffix(uri, "/") {
			uri += "/"
		}

		name := uri + "index.html"
		info, err := fs.Stat(fsys, name)
		if err != nil || info.IsDir() {
			return nil
		}

		return serveResource(fsys, name, "text/html; charset=utf-8")
	}
}

// resourceStage serves a bundled asset when one exists at the request path.
func resourceStage(fsys fs.FS) handler.Stage {
	return func(r *http.Request) handler.Response {
		if fsys == nil {
			return nil
		}

		name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
		if name == "" {
			name = "."
		}

		info, err := fs.Stat(fsys, name)
		if err != nil || info.IsDir() {
			return nil
		}

		return serveResource(fsys, name, "")
	}
}

// serveResource streams a resource file. Seekable files (embed.FS provides
// them) go through http.ServeContent to get conditional request handling;
// anything else is copied directly.
func serveResource(fsys fs.FS, name, contentType string) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		f, err := fsys.Open(name)
		if err != nil {
			return err
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			return err
		}

		if contentType == "" {
			contentType = mime.TypeByExtension(path.Ext(name))
		}
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}

		if rs, ok := f.(io.ReadSeeker); ok {
			http.ServeContent(w, r, name, info.ModTime(), rs)
			return nil
		}

		w.WriteHeader(http.StatusOK)
		_, err = io.Copy(w, f)
		return err
	}
}
