package engine

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
)

var (
	// ErrStart is returned when the selected engine fails to bind its
	// listener (for example, address already in use). No retry is attempted.
	ErrStart = errors.New("engine failed to start")

	// ErrUnknownEngine is returned when configuration names an engine that
	// is not registered.
	ErrUnknownEngine = errors.New("unknown engine")
)

// Engine names accepted in configuration.
const (
	NetHTTPName = "nethttp"
	FiberName   = "fasthttp"
)

// Engine starts an HTTP listener serving the given handler. Start must be
// non-blocking: it binds synchronously, serves in a goroutine, and returns
// a Handle immediately.
type Engine interface {
	Start(ctx context.Context, h http.Handler, opts Options) (*Handle, error)
}

// TLS carries the optional TLS material. When present it fully replaces the
// plaintext listener: the server serves exclusively on the SSL port.
type TLS struct {
	Port     int
	CertFile string
	KeyFile  string
}

// Enabled reports whether TLS material was supplied.
func (t TLS) Enabled() bool {
	return t.CertFile != "" && t.KeyFile != ""
}

// Options are the normalized launch options handed to an engine.
type Options struct {
	Port        int
	HTTPEnabled bool
	SSLEnabled  bool
	SSLPort     int
	CertFile    string
	KeyFile     string
}

// BuildOptions normalizes configuration into launch options. Without TLS
// the engine binds plaintext HTTP on port; with TLS the plaintext listener
// is disabled entirely and only the SSL port is served.
func BuildOptions(port int, t TLS) Options {
	if t.Enabled() {
		return Options{
			HTTPEnabled: false,
			SSLEnabled:  true,
			SSLPort:     t.Port,
			CertFile:    t.CertFile,
			KeyFile:     t.KeyFile,
		}
	}
	return Options{Port: port, HTTPEnabled: true}
}

// Handle describes a running listener. Stop terminates it; calling Stop
// more than once is not guaranteed safe and is the caller's responsibility.
type Handle struct {
	// Name is the human-readable engine name.
	Name string
	// Port is the bound local port.
	Port int

	stop func() error
}

// Stop shuts the listener down.
func (h *Handle) Stop() error {
	return h.stop()
}

// constructors build engines lazily: only the selected engine is
// instantiated, so an unused engine costs nothing at runtime.
var constructors = map[string]func() Engine{
	NetHTTPName: func() Engine { return NewNetHTTP() },
	FiberName:   func() Engine { return NewFiber() },
}

// Select returns the engine registered under name. An empty name selects
// the net/http engine.
func Select(name string) (Engine, error) {
	if name == "" {
		name = NetHTTPName
	}
	ctor, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, name)
	}
	return ctor(), nil
}

// listen binds the listener described by opts. TLS material is loaded
// before binding so a bad keypair surfaces as a startup error too.
func listen(opts Options) (net.Listener, error) {
	if opts.SSLEnabled {
		cert, err := tls.LoadX509KeyPair(opts.CertFile, opts.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("%w: loading keypair: %v", ErrStart, err)
		}
		ln, err := net.Listen("tcp", fmt.Sprintf(":%d", opts.SSLPort))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStart, err)
		}
		return tls.NewListener(ln, &tls.Config{Certificates: []tls.Certificate{cert}}), nil
	}

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", opts.Port))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStart, err)
	}
	return ln, nil
}

// boundPort extracts the local port from a listener.
func boundPort(ln net.Listener) int {
	if addr, ok := ln.Addr().(*net.TCPAddr); ok {
		return addr.Port
	}
	return 0
}
