// Package serve composes the development server: it resolves the effective
// request handler from configuration, wraps it with the generic middleware
// stack, and launches the configured backend engine.
//
// Handler selection follows a strict priority: a registered custom handler
// (optionally live-reloading) overrides directory serving, which overrides
// bundled-resource serving. Exactly one chain is built per invocation.
//
//	cfg := serve.Config{Dir: "./public", Port: 3000}
//	handle, err := serve.Start(ctx, cfg, serve.WithResources(bundled))
//	if err != nil {
//		return err
//	}
//	defer handle.Stop()
//
// Start is non-blocking; the handle's Stop action is owned by the caller
// and should be invoked exactly once on shutdown.
package serve
