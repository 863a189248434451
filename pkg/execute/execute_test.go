package execute

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap/zaptest"
)

func setupLogger(t *testing.T) {
	t.Helper()
	undo := otelzap.ReplaceGlobals(otelzap.New(zaptest.NewLogger(t)))
	t.Cleanup(undo)
}

func TestExecSuccessCapturesStreams(t *testing.T) {
	setupLogger(t)

	res, err := Exec(context.Background(), Options{
		Command: "/bin/sh",
		Args:    []string{"-c", "echo out; echo err >&2"},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "out\n", res.Stdout)
	assert.Equal(t, "err\n", res.Stderr)
	assert.Equal(t, "err", res.Message(), "stderr wins over stdout")
}

func TestExecNonZeroExit(t *testing.T) {
	setupLogger(t)

	res, err := Exec(context.Background(), Options{
		Command: "/bin/sh",
		Args:    []string{"-c", "echo 'Unit foo.service not loaded.' >&2; exit 5"},
	})
	require.Error(t, err)
	assert.Equal(t, 5, res.ExitCode)
	assert.Equal(t, 5, ExitCode(err))
	assert.Contains(t, err.Error(), "exited with code 5")
	assert.Equal(t, "Unit foo.service not loaded.", res.Message())
}

func TestExecMessageFallsBackToStdout(t *testing.T) {
	setupLogger(t)

	res, err := Exec(context.Background(), Options{
		Command: "/bin/sh",
		Args:    []string{"-c", "echo '  only stdout  '; exit 1"},
	})
	require.Error(t, err)
	assert.Equal(t, "only stdout", res.Message())
}

func TestExecNotFound(t *testing.T) {
	setupLogger(t)

	res, err := Exec(context.Background(), Options{Command: "quell-definitely-missing-binary"})
	require.Error(t, err)
	assert.Equal(t, ExitCodeNotStarted, res.ExitCode)
	assert.Contains(t, err.Error(), "could not be started")
}

func TestExecEmptyCommand(t *testing.T) {
	res, err := Exec(context.Background(), Options{})
	require.Error(t, err)
	assert.Equal(t, ExitCodeNotStarted, res.ExitCode)
}

func TestExecTimeout(t *testing.T) {
	setupLogger(t)

	res, err := Exec(context.Background(), Options{
		Command: "/bin/sh",
		Args:    []string{"-c", "exec sleep 5"},
		Timeout: 50 * time.Millisecond,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
	assert.Less(t, res.Duration, 5*time.Second)
}

func TestExecArgumentsAreNotShellInterpreted(t *testing.T) {
	setupLogger(t)

	res, err := Exec(context.Background(), Options{
		Command: "/bin/echo",
		Args:    []string{"ssh; id", "$(whoami)", "`id`"},
	})
	require.NoError(t, err)
	assert.Equal(t, "ssh; id $(whoami) `id`\n", res.Stdout)
}

func TestLocalRunner(t *testing.T) {
	setupLogger(t)

	var r Runner = Local{}
	res, err := r.Exec(context.Background(), Options{Command: "/bin/sh", Args: []string{"-c", "exit 0"}})
	require.NoError(t, err)
	assert.Equal(t, "/bin/sh -c 'exit 0'", res.Command)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, ExitCodeNotStarted, ExitCode(assert.AnError))
}

func TestResultMessageNil(t *testing.T) {
	var r *Result
	assert.Empty(t, r.Message())
}

func TestBuildCommandString(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no_args", nil, "systemctl"},
		{"plain", []string{"stop", "ssh.service"}, "systemctl stop ssh.service"},
		{"spaces", []string{"-c", "exit 0"}, "systemctl -c 'exit 0'"},
		{"empty", []string{""}, "systemctl ''"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildCommandString("systemctl", tt.args...))
		})
	}
}
