// Package reload wraps a user-supplied handler with edit-without-restart
// semantics for development.
//
// Three mechanisms cooperate:
//
//   - The handler name is re-resolved through its resolver.Provider on
//     every request, so re-registering a handler under the same name takes
//     effect immediately.
//   - Served text/html responses get a small websocket client appended
//     that refreshes the page when notified. Injection keys off the
//     Content-Type header, so handlers must set it explicitly for HTML.
//   - Watch observes the configured directories with fsnotify and pushes a
//     coalesced reload notification to connected browsers on change.
//
// Typical wiring:
//
//	rl := reload.New(resolver.NewReloading("app.handler"),
//		reload.WithWatchDirs("src"))
//	go rl.Watch(ctx)
//	http.ListenAndServe(addr, rl.Handler())
package reload
