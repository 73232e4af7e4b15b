package tools

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecRunner_Run(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	runner := NewExecRunner()

	t.Run("captures stdout", func(t *testing.T) {
		res, err := runner.Run(context.Background(), "sh", "-c", "echo hello")
		require.NoError(t, err)
		assert.True(t, res.Success())
		assert.Equal(t, "hello\n", res.Stdout)
	})

	t.Run("non-zero exit is not an error", func(t *testing.T) {
		res, err := runner.Run(context.Background(), "sh", "-c", "echo oops >&2; exit 3")
		require.NoError(t, err)
		assert.Equal(t, 3, res.ExitCode)
		assert.Equal(t, "oops\n", res.Stderr)
	})

	t.Run("missing binary is an error", func(t *testing.T) {
		_, err := runner.Run(context.Background(), "definitely-not-a-real-binary-4711")
		require.Error(t, err)
		assert.True(t, errors.Is(err, exec.ErrNotFound))
	})
}

func TestExecRunner_Start(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	runner := NewExecRunner()

	require.NoError(t, runner.Start(context.Background(), "sh", "-c", "exit 0"))
	assert.Error(t, runner.Start(context.Background(), "definitely-not-a-real-binary-4711"))
}
