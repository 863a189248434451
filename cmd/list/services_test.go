package list

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/CodeMonkeyCybersecurity/quell/pkg/config"
	"github.com/CodeMonkeyCybersecurity/quell/pkg/execute"
	"github.com/CodeMonkeyCybersecurity/quell/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/quell/pkg/privilege"
	"github.com/CodeMonkeyCybersecurity/quell/pkg/quell_cli"
	"github.com/CodeMonkeyCybersecurity/quell/pkg/systemctl"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gopkg.in/yaml.v3"
)

type stubRunner struct {
	calls     []string
	responses map[string]*execute.Result
	errs      map[string]error
}

func (r *stubRunner) Exec(_ context.Context, opts execute.Options) (*execute.Result, error) {
	line := strings.Join(append([]string{opts.Command}, opts.Args...), " ")
	r.calls = append(r.calls, line)
	if res, ok := r.responses[line]; ok {
		return res, r.errs[line]
	}
	return &execute.Result{Command: line}, nil
}

func newStub() *stubRunner {
	return &stubRunner{
		responses: map[string]*execute.Result{
			"systemctl list-unit-files --type=service --all --no-legend --no-pager": {
				Stdout: "ssh.service enabled enabled\navahi-daemon.service masked enabled\n",
			},
			"systemctl is-active ssh.service":           {Stdout: "active\n"},
			"systemctl is-enabled ssh.service":          {Stdout: "enabled\n"},
			"systemctl is-active avahi-daemon.service":  {Stdout: "inactive\n", ExitCode: 3},
			"systemctl is-enabled avahi-daemon.service": {Stdout: "masked\n", ExitCode: 1},
		},
		errs: map[string]error{
			"systemctl is-active avahi-daemon.service":  errors.New("exit status 3"),
			"systemctl is-enabled avahi-daemon.service": errors.New("exit status 1"),
		},
	}
}

func run(t *testing.T, runner *stubRunner, argv ...string) (string, error) {
	t.Helper()
	prevLogger := logger.L()
	logger.SetLogger(zaptest.NewLogger(t))
	t.Cleanup(func() { logger.SetLogger(prevLogger) })

	prev := newController
	newController = func(cfg *config.Config) (systemctl.Controller, error) {
		return systemctl.New(
			systemctl.WithRunner(runner),
			systemctl.WithLookPath(func(string) (string, error) { return "/usr/bin/systemctl", nil }),
			systemctl.WithEscalator(privilege.NewWith(privilege.ModeAuto, func() int { return 1000 }, func() bool { return false })),
		), nil
	}
	t.Cleanup(func() { newController = prev })

	cfgPath := filepath.Join(t.TempDir(), "quell.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("services: [ssh, vsftpd, avahi-daemon]\n"), 0600))

	root := &cobra.Command{
		Use:           "quell",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			_, err := quell_cli.LoadSettings(cmd)
			return err
		},
	}
	quell_cli.AddGlobalFlags(root)
	root.AddCommand(NewListCmd())

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"list", "services", "--config", cfgPath}, argv...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestListServicesTable(t *testing.T) {
	runner := newStub()

	out, err := run(t, runner)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, []string{"ssh", "ssh.service", "yes", "enabled", "active", "enabled"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"vsftpd", "vsftpd.service", "no", "-", "-", "-"}, strings.Fields(lines[3]))
	assert.Equal(t, []string{"avahi-daemon", "avahi-daemon.service", "yes", "masked", "inactive", "masked"}, strings.Fields(lines[4]))

	for _, c := range runner.calls {
		assert.NotContains(t, c, "sudo", "inventory never escalates")
		assert.NotContains(t, c, " stop ")
		assert.NotContains(t, c, " disable ")
	}
}

func TestListServicesYAML(t *testing.T) {
	out, err := run(t, newStub(), "-o", "yaml", "--keep", "vsftpd")
	require.NoError(t, err)

	var inv struct {
		Services []struct {
			Service   string `yaml:"service"`
			Installed bool   `yaml:"installed"`
			Active    string `yaml:"active"`
		} `yaml:"services"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &inv))
	require.Len(t, inv.Services, 2)
	assert.Equal(t, "ssh", inv.Services[0].Service)
	assert.Equal(t, "active", inv.Services[0].Active)
	assert.Equal(t, "avahi-daemon", inv.Services[1].Service)
}
