package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetailError_Format(t *testing.T) {
	err := &DetailError{
		Type:     "filesystem operation failed",
		Message:  "permission denied",
		Location: "tests/__init__.py",
		Stage:    "structure generation",
		Hint:     "Check directory permissions.",
	}

	got := err.Error()
	assert.Contains(t, got, "Error: filesystem operation failed")
	assert.Contains(t, got, "Stage: structure generation")
	assert.Contains(t, got, "Location: tests/__init__.py")
	assert.Contains(t, got, "permission denied")
	assert.Contains(t, got, "Hint: Check directory permissions.")
}

func TestDetailError_OptionalFieldsOmitted(t *testing.T) {
	err := &DetailError{Type: "invalid identifier", Message: "empty input"}

	got := err.Error()
	assert.NotContains(t, got, "Stage:")
	assert.NotContains(t, got, "Location:")
	assert.NotContains(t, got, "Hint:")
}

func TestNewIdentifierError_UnwrapsToSentinel(t *testing.T) {
	err := NewIdentifierError("contains a path separator", "Use letters, digits, and underscores.")
	assert.ErrorIs(t, err, ErrInvalidIdentifier)

	var detail *DetailError
	require.ErrorAs(t, err, &detail)
	assert.Equal(t, "contains a path separator", detail.Message)
}

func TestNewFilesystemError_KeepsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := NewFilesystemError("writing file", "setup.py", cause)

	assert.ErrorIs(t, err, ErrFilesystem)
	assert.ErrorIs(t, err, cause)
}

func TestExitCodeFromError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"invalid identifier", Wrap(ErrInvalidIdentifier, "bad name"), ExitValidationError},
		{"registry", Wrap(ErrRegistry, "duplicate path"), ExitValidationError},
		{"missing variable", Wrap(ErrMissingVariable, "Goal"), ExitValidationError},
		{"external tool", Wrap(ErrExternalTool, "pip"), ExitExternalToolError},
		{"filesystem", Wrap(ErrFilesystem, "mkdir"), ExitFilesystemError},
		{"unknown", errors.New("something else"), ExitGeneralError},
		{"explicit exit error", NewExitError(errors.New("boom"), ExitTeardownIncomplete), ExitTeardownIncomplete},
		{"wrapped exit error", fmt.Errorf("context: %w", NewExitError(errors.New("boom"), ExitExternalToolError)), ExitExternalToolError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExitCodeFromError(tc.err))
		})
	}
}

func TestExitError_Unwrap(t *testing.T) {
	inner := Wrap(ErrExternalTool, "git init")
	err := NewExitError(inner, ExitExternalToolError)

	assert.ErrorIs(t, err, ErrExternalTool)
	assert.Equal(t, inner.Error(), err.Error())
}
