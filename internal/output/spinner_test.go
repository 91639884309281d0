package output

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test binaries run without a TTY, so the spinner path degrades to a direct
// call.
func TestRunWithSpinner_NonTTY(t *testing.T) {
	ran := false
	err := RunWithSpinner(context.Background(), func() error {
		ran = true
		return nil
	}, WithTitle("Installing..."))

	require.NoError(t, err)
	assert.True(t, ran)
}

func TestRunWithSpinner_PropagatesActionError(t *testing.T) {
	boom := errors.New("pip failed")
	err := RunWithSpinner(context.Background(), func() error { return boom })
	assert.ErrorIs(t, err, boom)
}
