// Package resolver maps configured handler names to callable http.Handler
// values through a process-wide registry.
//
// Handlers register themselves (typically from an init function or during
// application wiring) and configuration refers to them by name:
//
//	resolver.Register("app.api", apiHandler)
//
// A Provider turns a name into a handler. The Static provider resolves
// once and caches; the Reloading provider resolves on every call, so
// swapping a registration under the same name takes effect immediately —
// the mechanism behind edit-without-restart serving.
package resolver
