// pkg/systemctl/client.go

// Package systemctl drives the systemd service manager through the systemctl binary.
package systemctl

import (
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/CodeMonkeyCybersecurity/quell/pkg/execute"
	"github.com/CodeMonkeyCybersecurity/quell/pkg/privilege"
	"github.com/CodeMonkeyCybersecurity/quell/pkg/quell_err"
	"github.com/CodeMonkeyCybersecurity/quell/pkg/shared"
	cerr "github.com/cockroachdb/errors"
	"github.com/hashicorp/go-version"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// ErrNotFound marks the error Available returns when systemctl is not on PATH.
var ErrNotFound = cerr.New("systemctl not found")

// Controller abstracts the service manager for testability.
// Stop and Disable are idempotent on the systemd side: repeating them on an
// already stopped or disabled unit succeeds.
type Controller interface {
	// Available returns a dependency error when systemctl is not installed.
	Available(ctx context.Context) error
	Version(ctx context.Context) (*version.Version, error)
	ListUnitFiles(ctx context.Context) (UnitFiles, error)
	Stop(ctx context.Context, unit string) (*execute.Result, error)
	Disable(ctx context.Context, unit string) (*execute.Result, error)
	// IsActive and IsEnabled return the state word systemctl prints; the
	// error is non-nil only when systemctl could not be run at all.
	IsActive(ctx context.Context, unit string) (string, error)
	IsEnabled(ctx context.Context, unit string) (string, error)
}

// Client implements Controller with the real systemctl binary.
type Client struct {
	runner    execute.Runner
	escalator *privilege.Escalator
	lookPath  func(string) (string, error)
	timeout   time.Duration
}

var _ Controller = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithRunner replaces the command runner.
func WithRunner(r execute.Runner) Option {
	return func(c *Client) { c.runner = r }
}

// WithEscalator sets how stop/disable are escalated.
func WithEscalator(e *privilege.Escalator) Option {
	return func(c *Client) { c.escalator = e }
}

// WithLookPath replaces the PATH lookup used by Available.
func WithLookPath(fn func(string) (string, error)) Option {
	return func(c *Client) { c.lookPath = fn }
}

// WithTimeout bounds each systemctl invocation. Zero means no bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// New returns a Client using the local host, auto sudo and no timeout unless overridden.
func New(opts ...Option) *Client {
	c := &Client{
		runner:    execute.Default,
		escalator: privilege.New(privilege.ModeAuto),
		lookPath:  exec.LookPath,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Available checks that systemctl is on PATH.
func (c *Client) Available(ctx context.Context) error {
	logger := otelzap.Ctx(ctx)

	path, err := c.lookPath(shared.SystemctlBinary)
	if err != nil {
		logger.Error("systemctl not found", zap.Error(err))
		return quell_err.NewDependencyError(shared.SystemctlBinary, "service hardening", cerr.Mark(err, ErrNotFound),
			"This tool requires systemd (Ubuntu default)",
			"Check that systemctl is in your PATH")
	}

	logger.Debug("systemctl found", zap.String("path", path))
	return nil
}

// Version runs `systemctl --version` and parses the systemd release number.
func (c *Client) Version(ctx context.Context) (*version.Version, error) {
	res, err := c.run(ctx, CmdVersion)
	if err != nil {
		return nil, cerr.Wrap(err, "systemctl --version")
	}
	return ParseVersion(res.Stdout)
}

// ListUnitFiles lists every installed service unit file.
func (c *Client) ListUnitFiles(ctx context.Context) (UnitFiles, error) {
	logger := otelzap.Ctx(ctx)

	res, err := c.run(ctx, CmdListUnitFiles, "--type=service", "--all", "--no-legend", "--no-pager")
	if err != nil {
		logger.Warn("Listing unit files failed",
			zap.Int("exit_code", res.ExitCode),
			zap.String("meaning", InterpretExitCode(CmdListUnitFiles, res.ExitCode)),
			zap.String("output", res.Message()),
			zap.Error(err))
		return UnitFiles{}, cerr.Wrap(err, "list unit files")
	}

	units := ParseUnitFiles(res.Stdout)
	logger.Debug("Unit files listed", zap.Int("count", len(units)))
	return units, nil
}

// Stop stops unit immediately. Stopping an inactive unit succeeds.
func (c *Client) Stop(ctx context.Context, unit string) (*execute.Result, error) {
	return c.change(ctx, CmdStop, unit)
}

// Disable removes unit's boot-time activation without touching its running state.
func (c *Client) Disable(ctx context.Context, unit string) (*execute.Result, error) {
	return c.change(ctx, CmdDisable, unit)
}

// IsActive returns the active state of unit ("active", "inactive", "failed", ...).
func (c *Client) IsActive(ctx context.Context, unit string) (string, error) {
	return c.query(ctx, CmdIsActive, unit)
}

// IsEnabled returns the enablement state of unit ("enabled", "disabled", "masked", ...).
func (c *Client) IsEnabled(ctx context.Context, unit string) (string, error) {
	return c.query(ctx, CmdIsEnabled, unit)
}

func (c *Client) change(ctx context.Context, cmd Command, unit string) (*execute.Result, error) {
	logger := otelzap.Ctx(ctx)

	res, err := c.run(ctx, cmd, unit)
	if err != nil {
		logger.Warn("systemctl action failed",
			zap.String("action", string(cmd)),
			zap.String("unit", unit),
			zap.Int("exit_code", res.ExitCode),
			zap.String("output", res.Message()),
			zap.Error(err))
		if strings.Contains(res.Message(), "authentication required") ||
			strings.Contains(res.Message(), "Authentication is required") {
			logger.Warn("Insufficient privileges for systemctl",
				zap.String("recommendation", "run as root or allow sudo for systemctl"),
				zap.String("sudo_mode", string(c.escalator.Mode())))
		}
		return res, cerr.Wrapf(err, "systemctl %s %s", cmd, unit)
	}

	logger.Info("systemd unit action succeeded",
		zap.String("action", string(cmd)),
		zap.String("unit", unit))
	return res, nil
}

func (c *Client) query(ctx context.Context, cmd Command, unit string) (string, error) {
	res, err := c.run(ctx, cmd, unit)
	if res.ExitCode == execute.ExitCodeNotStarted {
		return "", cerr.Wrapf(err, "systemctl %s %s", cmd, unit)
	}
	if state := strings.TrimSpace(firstLine(res.Stdout)); state != "" {
		return state, nil
	}
	return InterpretExitCode(cmd, res.ExitCode), nil
}

func (c *Client) run(ctx context.Context, cmd Command, args ...string) (*execute.Result, error) {
	argv := append([]string{string(cmd)}, args...)
	name := shared.SystemctlBinary
	if cmd.Privileged() {
		name, argv = c.escalator.Wrap(name, argv)
	}

	res, err := c.runner.Exec(ctx, execute.Options{
		Command: name,
		Args:    argv,
		Timeout: c.timeout,
	})
	if res == nil {
		res = &execute.Result{Command: name + " " + strings.Join(argv, " "), ExitCode: execute.ExitCodeNotStarted}
	}
	return res, err
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
