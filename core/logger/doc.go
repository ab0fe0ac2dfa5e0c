// Package logger provides structured logging attribute helpers built on
// Go's standard slog package. Helpers return an empty slog.Attr for nil
// input, so call sites never need explicit nil checks.
package logger
