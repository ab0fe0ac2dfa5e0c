package resolver

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
)

// ErrNotRegistered is returned when a configured handler name cannot be
// resolved. It is fatal at startup: the server cannot run with an
// unresolved required handler.
var ErrNotRegistered = errors.New("handler is not registered")

var registry = struct {
	mu       sync.RWMutex
	handlers map[string]http.Handler
}{
	handlers: make(map[string]http.Handler),
}

// Register makes a handler resolvable under the given name. Registering an
// existing name replaces the previous handler, which is what the reloading
// provider relies on.
func Register(name string, h http.Handler) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.handlers[name] = h
}

// Unregister removes a named handler.
func Unregister(name string) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	delete(registry.handlers, name)
}

// Lookup resolves a name to its registered handler.
func Lookup(name string) (http.Handler, error) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	h, ok := registry.handlers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotRegistered, name)
	}
	return h, nil
}

// Provider yields the current handler for a configured name. The two
// implementations differ in when resolution happens: once at startup or on
// every call.
type Provider interface {
	Resolve() (http.Handler, error)
}

// Static resolves the name once and caches the result for the lifetime of
// the provider.
type Static struct {
	once    sync.Once
	name    string
	handler http.Handler
	err     error
}

// NewStatic creates a provider that resolves name on first use and caches
// the outcome, including a resolution failure.
func NewStatic(name string) *Static {
	return &Static{name: name}
}

func (s *Static) Resolve() (http.Handler, error) {
	s.once.Do(func() {
		s.handler, s.err = Lookup(s.name)
	})
	return s.handler, s.err
}

// Reloading resolves the name on every call, so a handler re-registered
// under the same name takes effect without a restart.
type Reloading struct {
	name string
}

// NewReloading creates a provider that consults the registry on each call.
func NewReloading(name string) *Reloading {
	return &Reloading{name: name}
}

func (r *Reloading) Resolve() (http.Handler, error) {
	return Lookup(r.name)
}
