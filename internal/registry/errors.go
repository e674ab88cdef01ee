package registry

import "errors"

// Error kinds surfaced by registry operations. Callers match them with errors.Is.
var (
	// ErrMalformedDocument means the existing registry file could not be parsed
	// or does not have the expected shape.
	ErrMalformedDocument = errors.New("malformed registry document")
	// ErrInvalidEntry means a caller-supplied entry failed validation. It is
	// always returned before the registry file is read or written.
	ErrInvalidEntry = errors.New("invalid extension entry")
	// ErrIO wraps permission and disk failures.
	ErrIO = errors.New("registry i/o error")
	// ErrNotFound means the named extension is not registered.
	ErrNotFound = errors.New("extension not found")
)
