package errors

import "errors"

// Exit codes for the scaffold CLI.
const (
	// ExitSuccess indicates the command completed successfully. A canceled
	// teardown (mismatched confirmation) also exits with this code.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitValidationError indicates identifier or registry validation failed.
	ExitValidationError = 2

	// ExitExternalToolError indicates an invoked external tool failed.
	ExitExternalToolError = 3

	// ExitFilesystemError indicates a filesystem operation failed.
	ExitFilesystemError = 4

	// ExitTeardownIncomplete indicates teardown finished with per-path
	// removal failures.
	ExitTeardownIncomplete = 5
)

// ExitError wraps an error with an exit code.
type ExitError struct {
	Err  error
	Code int

	// Printed records whether the command layer already reported the error,
	// so main does not print it twice.
	Printed bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given error and exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

// ExitCodeFromError determines the appropriate exit code for an error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, ErrInvalidIdentifier), errors.Is(err, ErrRegistry), errors.Is(err, ErrMissingVariable):
		return ExitValidationError
	case errors.Is(err, ErrExternalTool):
		return ExitExternalToolError
	case errors.Is(err, ErrFilesystem):
		return ExitFilesystemError
	default:
		return ExitGeneralError
	}
}
