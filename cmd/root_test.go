package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/CodeMonkeyCybersecurity/quell/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/quell/pkg/quell_err"
	"github.com/CodeMonkeyCybersecurity/quell/pkg/systemctl"
	"github.com/CodeMonkeyCybersecurity/quell/pkg/telemetry"
	cerr "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportErrorSystemctlMissing(t *testing.T) {
	var buf bytes.Buffer
	err := quell_err.NewDependencyError("systemctl", "service hardening", cerr.Mark(errors.New("not in PATH"), systemctl.ErrNotFound))

	reportError(&buf, cerr.WithStack(err))
	assert.Equal(t, "❌ systemctl not found. This tool requires systemd (Ubuntu default).\n", buf.String())
}

func TestReportErrorGeneric(t *testing.T) {
	var buf bytes.Buffer
	reportError(&buf, errors.New("boom"))
	assert.Contains(t, buf.String(), "❌ Error: quell: boom")
}

func TestRootCommandTree(t *testing.T) {
	root := NewRootCmd()
	assert.Equal(t, "quell", root.Name())
	for _, name := range []string{"config", "env-file", "log-level", "sudo", "command-timeout", "output", "telemetry"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(name), name)
	}
}

func TestFlagErrorsAreValidationErrors(t *testing.T) {
	root := NewRootCmd()
	root.SetArgs([]string{"--no-such-flag"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})

	err := root.Execute()
	require.Error(t, err)
	assert.Equal(t, 2, quell_err.GetExitCode(err))
}

func TestSetupSurvivesTelemetryFailureWithoutLogger(t *testing.T) {
	prevLogger := logger.L()
	prevInit := initTelemetry
	t.Cleanup(func() {
		logger.SetLogger(prevLogger)
		initTelemetry = prevInit
	})
	logger.SetLogger(nil)
	initTelemetry = func(string, bool) (telemetry.ShutdownFunc, error) {
		return nil, errors.New("telemetry file not writable")
	}

	path := filepath.Join(t.TempDir(), "quell.yaml")
	require.NoError(t, os.WriteFile(path, []byte("telemetry: true\n"), 0600))
	root := NewRootCmd()
	require.NoError(t, root.ParseFlags([]string{"--config", path}))
	root.SetContext(context.Background())

	assert.NotPanics(t, func() {
		assert.NoError(t, setup(root, nil))
	})
	assert.NotNil(t, logger.L(), "a fallback logger is installed on demand")
}
