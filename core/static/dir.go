package static

import (
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/devserve-go/devserve/core/handler"
	"github.com/devserve-go/devserve/core/logger"
)

// dirConfig holds configuration for directory serving.
type dirConfig struct {
	root      string
	resources fs.FS
	notFound  handler.Response
}

// DirOption configures directory chain behavior.
type DirOption func(*dirConfig)

// WithDirResources adds a bundled resource filesystem consulted after the
// on-disk directory declines a request.
func WithDirResources(fsys fs.FS) DirOption {
	return func(c *dirConfig) {
		c.resources = fsys
	}
}

// WithDirNotFound sets a custom terminal not-found response.
func WithDirNotFound(resp handler.Response) DirOption {
	return func(c *dirConfig) {
		c.notFound = resp
	}
}

// DirChain builds the serving chain for an on-disk directory: directory
// requests are answered by the index stage (index file or generated
// listing), regular files by the raw-file stage, bundled assets by the
// resource stage, and everything else by the not-found terminal.
//
// If root does not exist it is created recursively; this is a one-time
// startup side effect, not part of the request path.
func DirChain(root string, opts ...DirOption) (http.Handler, error) {
	config := &dirConfig{
		root:     filepath.Clean(root),
		notFound: NotFound(),
	}

	for _, opt := range opts {
		opt(config)
	}

	if _, err := os.Stat(config.root); os.IsNotExist(err) {
		slog.Warn("serve directory does not exist, creating it", logger.Path(config.root))
		if err := os.MkdirAll(config.root, 0o755); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrCreateDir, config.root, err)
		}
	}

	stage := handler.First(
		indexStage(config.root),
		fileStage(config.root),
		resourceStage(config.resources),
	)
	return handler.Chain(stage, config.notFound), nil
}

// indexStage answers directory requests. It declines anything that is not
// an existing directory, which hands files and missing paths to the later
// stages of the chain.
func indexStage(root string) handler.Stage {
	return func(r *http.Request) handler.Response {
		dirPath := joinRoot(root, r.URL.Path)

		info, err := os.Stat(dirPath)
		if err != nil || !info.IsDir() {
			return nil
		}

		entries, err := os.ReadDir(dirPath)
		if err != nil {
			return nil
		}

		if name, ok := findIndex(entries); ok {
			indexPath := filepath.Join(dirPath, name)
			return func(w http.ResponseWriter, r *http.Request) error {
				http.ServeFile(w, r, indexPath)
				return nil
			}
		}

		return Listing(listEntries(root, dirPath, entries))
	}
}

// fileStage serves regular files from root. It intentionally never appends
// index files to directory paths: index resolution belongs to indexStage,
// so the generated listing cannot be shadowed here.
func fileStage(root string) handler.Stage {
	return func(r *http.Request) handler.Response {
		filePath := joinRoot(root, r.URL.Path)

		info, err := os.Stat(filePath)
		if err != nil || info.IsDir() {
			return nil
		}

		return func(w http.ResponseWriter, r *http.Request) error {
			http.ServeFile(w, r, filePath)
			return nil
		}
	}
}

// joinRoot maps a request path onto the serving root. The request path
// arrives percent-decoded from net/http and is concatenated as-is; the
// filesystem stat decides what the result actually is.
func joinRoot(root, urlPath string) string {
	return filepath.FromSlash(strings.TrimSuffix(filepath.ToSlash(root), "/") + urlPath)
}
