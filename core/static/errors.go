package static

import "errors"

var (
	// ErrCreateDir is returned when the configured serve directory does not
	// exist and cannot be created.
	ErrCreateDir = errors.New("failed to create serve directory")
)
