package xsetwacom

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/char5742/stylus-zoom/internal/area"
	"github.com/stretchr/testify/require"
)

type scriptedRunner struct {
	calls   [][]string
	outputs map[string]string
	err     error
}

func (r *scriptedRunner) Run(ctx context.Context, args ...string) ([]byte, error) {
	r.calls = append(r.calls, args)
	if r.err != nil {
		return nil, r.err
	}
	return []byte(r.outputs[strings.Join(args, " ")]), nil
}

func TestClientCommands(t *testing.T) {
	ctx := context.Background()
	runner := &scriptedRunner{outputs: map[string]string{
		"--list devices": "Pen stylus id: 10 type: STYLUS\n",
		"--get 10 area":  "0 0 15200 9500\n",
	}}
	c := NewClient(runner)

	list, err := c.ListDevices(ctx)
	require.NoError(t, err)
	require.Equal(t, "Pen stylus id: 10 type: STYLUS\n", list)

	r, err := c.GetArea(ctx, "10")
	require.NoError(t, err)
	require.Equal(t, area.Rect{X1: 0, Y1: 0, X2: 15200, Y2: 9500}, r)

	require.NoError(t, c.SetArea(ctx, "10", area.Rect{X1: -15200, Y1: -9500, X2: 15200, Y2: 9500}))
	require.NoError(t, c.ResetArea(ctx, "10"))

	require.Equal(t, [][]string{
		{"--list", "devices"},
		{"--get", "10", "area"},
		{"--set", "10", "area", "-15200", "-9500", "15200", "9500"},
		{"--set", "10", "resetarea"},
	}, runner.calls)
}

func TestClientGetAreaMalformed(t *testing.T) {
	runner := &scriptedRunner{outputs: map[string]string{
		"--get 10 area": "Property 'Area' does not exist on device.\n",
	}}
	_, err := NewClient(runner).GetArea(context.Background(), "10")
	require.ErrorIs(t, err, area.ErrMalformedArea)
}

func TestClientPropagatesRunnerError(t *testing.T) {
	failure := &CommandError{Args: []string{"xsetwacom", "--set", "10", "resetarea"}, ExitCode: 4, Err: errors.New("exit status 4")}
	err := NewClient(&scriptedRunner{err: failure}).ResetArea(context.Background(), "10")

	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	require.Equal(t, 4, cmdErr.ExitCode)
}
