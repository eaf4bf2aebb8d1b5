package domain

import "errors"

// Failure kinds surfaced to callers. Wrap with fmt.Errorf("...: %w", kind)
// so call sites can classify with errors.Is.
var (
	// ErrInvalid marks a request rejected before any work was done.
	ErrInvalid = errors.New("invalid request")

	// ErrNotFound marks a missing hub or hub route.
	ErrNotFound = errors.New("not found")

	// ErrForbidden marks an operation attempted without the required role.
	ErrForbidden = errors.New("forbidden")

	// ErrExternal marks a failed or malformed navigation-oracle interaction.
	// A failed leg never degrades to a zero-distance result.
	ErrExternal = errors.New("external dependency failure")
)
