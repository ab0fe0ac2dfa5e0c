package handler

import "net/http"

// Response is a function that renders HTTP responses.
// It sets headers, status code, and writes the response body.
type Response func(w http.ResponseWriter, r *http.Request) error

// Stage is a single step of a serving chain. It inspects the request and
// either produces a Response or returns nil to decline, in which case the
// next stage in the chain is consulted.
type Stage func(r *http.Request) Response

// Middleware wraps an http.Handler to add cross-cutting functionality.
type Middleware func(next http.Handler) http.Handler
