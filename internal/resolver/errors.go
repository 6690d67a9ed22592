package resolver

import (
	"fmt"
	"strings"
)

// NotFoundError is returned by a Locator when a reference cannot be located.
type NotFoundError struct {
	Reference string
	Tried     []string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if len(e.Tried) == 0 {
		return fmt.Sprintf("cannot find %q", e.Reference)
	}
	return fmt.Sprintf("cannot find %q (tried %s)", e.Reference, strings.Join(e.Tried, ", "))
}

// ResolutionError reports a library reference that could not be turned into
// a descriptor.
type ResolutionError struct {
	Reference string
	Err       error
}

// Error implements the error interface.
func (e *ResolutionError) Error() string {
	if e.Reference == "" {
		return fmt.Sprintf("library resolution failed: %v", e.Err)
	}
	return fmt.Sprintf("library resolution failed for %q: %v", e.Reference, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *ResolutionError) Unwrap() error {
	return e.Err
}
