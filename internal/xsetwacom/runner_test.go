package xsetwacom

import (
	"bytes"
	"context"
	"syscall"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewExecRunnerSplitsCommand(t *testing.T) {
	r, err := NewExecRunner(`flatpak-spawn --host "xsetwacom"`)
	require.NoError(t, err)
	require.Equal(t, []string{"flatpak-spawn", "--host", "xsetwacom"}, r.Command)

	_, err = NewExecRunner("   ")
	require.Error(t, err)
}

func TestExecRunnerAppendsArgs(t *testing.T) {
	r, err := NewExecRunner("echo prefix")
	require.NoError(t, err)

	out, err := r.Run(context.Background(), "--get", "10", "area")
	require.NoError(t, err)
	require.Equal(t, "prefix --get 10 area\n", string(out))
}

func TestExecRunnerExitCode(t *testing.T) {
	var stderr bytes.Buffer
	r := &ExecRunner{Command: []string{"sh", "-c", "echo oops >&2; exit 3"}, Stderr: &stderr}

	_, err := r.Run(context.Background(), "--list", "devices")

	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	require.Equal(t, 3, cmdErr.ExitCode)
	require.Equal(t, "oops\n", stderr.String())
}

func TestExecRunnerMissingBinary(t *testing.T) {
	r := &ExecRunner{Command: []string{"stylus-zoom-no-such-binary"}}

	_, err := r.Run(context.Background(), "--list", "devices")

	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	require.Equal(t, exitCodeNotExecutable, cmdErr.ExitCode)
}

func TestExecRunnerKilledBySignal(t *testing.T) {
	r := &ExecRunner{Command: []string{"sh", "-c", "kill -TERM $$"}}

	_, err := r.Run(context.Background(), "--list", "devices")

	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	require.Equal(t, 128+int(syscall.SIGTERM), cmdErr.ExitCode)
}

func TestExecRunnerCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := &ExecRunner{Command: []string{"sleep", "5"}}

	_, err := r.Run(ctx)

	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	require.Equal(t, 128+int(syscall.SIGINT), cmdErr.ExitCode)
	require.ErrorIs(t, err, context.Canceled)
}
