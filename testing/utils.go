package ibctesting

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// RequireErrorIsOrContains verifies that the passed error is either a target error or contains its error message.
func RequireErrorIsOrContains(t *testing.T, err, targetError error, msgAndArgs ...interface{}) {
	t.Helper()
	require.Error(t, err)
	require.True(
		t,
		errors.Is(err, targetError) ||
			strings.Contains(err.Error(), targetError.Error()),
		msgAndArgs...)
}
