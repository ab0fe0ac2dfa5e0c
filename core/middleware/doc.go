// Package middleware provides the generic HTTP middleware applied around
// the effective serving handler: Content-Type inference from the request
// path extension, conditional-GET downgrading to 304 Not Modified,
// request-ID generation, and structured request logging via slog.
//
// Middleware values are plain func(http.Handler) http.Handler wrappers and
// compose with handler.Wrap:
//
//	h = handler.Wrap(h,
//		middleware.Logging(),
//		middleware.ContentType(),
//		middleware.NotModified(),
//	)
package middleware
