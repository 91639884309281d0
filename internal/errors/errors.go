// Package errors provides sentinel errors for the scaffold CLI.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for known conditions.
var (
	// ErrInvalidIdentifier indicates the project identifier failed validation.
	ErrInvalidIdentifier = errors.New("invalid identifier")

	// ErrMissingVariable indicates a template referenced a variable that was
	// not present in the resolved variable set.
	ErrMissingVariable = errors.New("missing template variable")

	// ErrFilesystem indicates a filesystem operation failed (permission,
	// disk space, path length).
	ErrFilesystem = errors.New("filesystem error")

	// ErrExternalTool indicates an invoked external tool exited non-zero.
	ErrExternalTool = errors.New("external tool error")

	// ErrRegistry indicates the artifact registry failed its construction
	// validation (duplicate resolved paths, unresolvable variables).
	ErrRegistry = errors.New("registry validation error")
)

// DetailError captures structured error information for operator-facing
// diagnostics: what failed, where, and what to do about it.
type DetailError struct {
	// Type is the error category (required).
	Type string

	// Message is the specific description (required).
	Message string

	// Location is the offending path, if any (optional).
	Location string

	// Stage is the pipeline stage that was executing (optional).
	Stage string

	// Hint provides actionable guidance (optional).
	Hint string

	// Cause is the underlying error (optional).
	Cause error
}

// Error implements the error interface.
func (e *DetailError) Error() string {
	var b strings.Builder

	b.WriteString("Error: ")
	b.WriteString(e.Type)
	b.WriteString("\n")

	if e.Stage != "" {
		b.WriteString("  Stage: ")
		b.WriteString(e.Stage)
		b.WriteString("\n")
	}
	if e.Location != "" {
		b.WriteString("  Location: ")
		b.WriteString(e.Location)
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(e.Message)
	b.WriteString("\n")

	if e.Hint != "" {
		b.WriteString("\nHint: ")
		b.WriteString(e.Hint)
		b.WriteString("\n")
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *DetailError) Unwrap() error {
	return e.Cause
}

// NewIdentifierError creates an invalid-identifier error with details.
func NewIdentifierError(message, hint string) error {
	return &DetailError{
		Type:    "invalid identifier",
		Message: message,
		Hint:    hint,
		Cause:   ErrInvalidIdentifier,
	}
}

// NewFilesystemError creates a filesystem error pinned to a path.
func NewFilesystemError(message, location string, cause error) error {
	return &DetailError{
		Type:     "filesystem operation failed",
		Message:  message,
		Location: location,
		Cause:    fmt.Errorf("%w: %w", ErrFilesystem, cause),
	}
}

// Wrap wraps an error with a sentinel error type.
func Wrap(sentinel error, message string) error {
	return fmt.Errorf("%s: %w", message, sentinel)
}
