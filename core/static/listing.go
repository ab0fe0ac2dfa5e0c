package static

import (
	"bytes"
	"html/template"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/devserve-go/devserve/core/handler"
)

// Entry is a single directory entry as rendered in a generated listing.
// Entries are transient, recomputed on every request in os.ReadDir order.
type Entry struct {
	// Name is the base name used as the link text.
	Name string
	// Path is the href: the entry's filesystem path with the serving root
	// prefix stripped.
	Path string
	// IsDir reports whether the entry is a subdirectory.
	IsDir bool
}

// The listing keeps the <ul> on a single line so an empty directory renders
// an empty <ul></ul> rather than an error.
var listingTmpl = template.Must(template.New("listing").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Directory listing</title></head>
<body>
<h1>Directory listing</h1>
<ul>{{ range . }}<li><a href="{{ .Path }}">{{ .Name }}</a></li>{{ end }}</ul>
</body>
</html>
`))

// Listing creates a text/html response rendering the given entries.
// The template output is buffered before writing, so a render failure never
// produces partial output.
func Listing(entries []Entry) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		var buf bytes.Buffer
		if err := listingTmpl.Execute(&buf, entries); err != nil {
			return err
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, err := w.Write(buf.Bytes())
		return err
	}
}

// findIndex reports the entry whose name equals index.html or index.htm,
// compared case-insensitively. When both exist, index.html wins.
func findIndex(entries []os.DirEntry) (string, bool) {
	var htm string
	for _, entry := range entries {
		switch strings.ToLower(entry.Name()) {
		case "index.html":
			return entry.Name(), true
		case "index.htm":
			if htm == "" {
				htm = entry.Name()
			}
		}
	}
	return htm, htm != ""
}

// listEntries converts a directory read into listing entries. The href is
// the directory path relative to the serving root joined with the entry
// name; TrimPrefix keeps this safe when dirPath equals root.
func listEntries(root, dirPath string, entries []os.DirEntry) []Entry {
	base := strings.TrimPrefix(filepath.ToSlash(dirPath), filepath.ToSlash(root))
	listed := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		listed = append(listed, Entry{
			Name:  entry.Name(),
			Path:  path.Join("/", base, entry.Name()),
			IsDir: entry.IsDir(),
		})
	}
	return listed
}
