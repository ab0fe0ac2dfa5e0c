// Package engine abstracts the backend HTTP servers the development server
// can run on. Two interchangeable implementations exist: the standard
// library's net/http and gofiber (fasthttp). Configuration selects one by
// name; engines are constructed lazily, so only the selected one is
// instantiated.
//
//	eng, err := engine.Select(engine.FiberName)
//	handle, err := eng.Start(ctx, h, engine.BuildOptions(3000, engine.TLS{}))
//	defer handle.Stop()
//
// Start is non-blocking: it binds the listener synchronously (so bind
// failures are returned to the caller) and serves in a goroutine. The
// returned Handle exposes the human-readable engine name, the bound port,
// and a Stop action owned by the caller.
//
// When TLS material is configured, BuildOptions disables the plaintext
// listener entirely and the engine serves exclusively on the SSL port.
package engine
