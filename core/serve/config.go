package serve

// Config is the configuration record of the development server, constructed
// once per invocation and read-only thereafter. At most one of Handler, Dir,
// and the bundled resources determines the active serving chain, selected by
// priority: Handler wins over Dir, Dir wins over resources. The fields of
// the losing candidates are ignored, not rejected.
type Config struct {
	// Handler names a registered custom handler that overrides all serving
	// chains.
	Handler string `env:"SERVE_HANDLER"`

	// Reload wraps the custom handler with live-reload behavior.
	Reload bool `env:"SERVE_RELOAD" envDefault:"false"`

	// WatchDirs are the directories observed for changes under Reload.
	WatchDirs []string `env:"SERVE_WATCH_DIRS" envDefault:"src"`

	// Dir is the filesystem root to serve; empty disables directory serving.
	Dir string `env:"SERVE_DIR"`

	// ResourceRoot is a sub-path within the bundled resource filesystem;
	// empty serves from the bundled root.
	ResourceRoot string `env:"SERVE_RESOURCE_ROOT"`

	// NotFound names a registered handler replacing the plain-text 404.
	NotFound string `env:"SERVE_NOT_FOUND"`

	// Port is the plaintext listen port.
	Port int `env:"SERVE_PORT" envDefault:"3000"`

	// Engine selects the backend: "nethttp" (default) or "fasthttp".
	Engine string `env:"SERVE_ENGINE" envDefault:"nethttp"`

	// TLS material; when both files are set, plaintext HTTP is disabled and
	// the server listens exclusively on SSLPort.
	SSLPort  int    `env:"SERVE_SSL_PORT" envDefault:"8443"`
	CertFile string `env:"SERVE_TLS_CERT_FILE"`
	KeyFile  string `env:"SERVE_TLS_KEY_FILE"`
}
