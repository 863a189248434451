// cmd/disable/services.go

package disable

import (
	"strconv"

	"github.com/CodeMonkeyCybersecurity/quell/pkg/config"
	"github.com/CodeMonkeyCybersecurity/quell/pkg/hardening"
	"github.com/CodeMonkeyCybersecurity/quell/pkg/output"
	"github.com/CodeMonkeyCybersecurity/quell/pkg/quell_cli"
	"github.com/CodeMonkeyCybersecurity/quell/pkg/quell_err"
	"github.com/CodeMonkeyCybersecurity/quell/pkg/quell_io"
	"github.com/CodeMonkeyCybersecurity/quell/pkg/systemctl"
	cerr "github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

var newController = func(cfg *config.Config) (systemctl.Controller, error) {
	return quell_cli.NewController(cfg)
}

// NewServicesCmd builds "quell disable services".
func NewServicesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "services [SERVICE...]",
		Short: "Stop and disable unwanted network-facing services",
		Long: `Stops and disables each target service that is installed on this host.

By default the targets are vsftpd, proftpd, ssh, postfix, apache2, rpcbind,
exim4, avahi-daemon and ModemManager. Services that are not installed are
skipped. A failed stop never prevents the disable attempt, and failures are
reported without aborting the run.

WARNING: disabling ssh on a remote host can lock you out. Use --keep ssh.`,
		Example: `  sudo quell disable services
  sudo quell disable services --keep ssh
  quell disable services --dry-run -o json
  sudo quell disable services cups bluetooth`,
		Args: cobra.ArbitraryArgs,
		RunE: quell_cli.Wrap(runDisableServices),
	}
	quell_cli.AddTargetFlags(cmd)
	cmd.Flags().Bool(quell_cli.FlagDryRun, false, "show what would be stopped and disabled without changing anything")
	return cmd
}

func runDisableServices(rc *quell_io.RuntimeContext, cmd *cobra.Command, args []string) error {
	logger := otelzap.Ctx(rc.Ctx)

	cfg := config.FromContext(rc.Ctx)
	if cfg == nil {
		return quell_err.NewInternalError("configuration was not loaded", nil)
	}
	format, err := output.ParseFormat(cfg.Output)
	if err != nil {
		return quell_err.NewValidationError("invalid output format", err)
	}

	targets, err := quell_cli.Targets(cmd, cfg, args)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		return quell_err.NewExpectedError(cerr.New("no services left to disable after applying keep"))
	}

	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	if warning := quell_cli.LockoutWarning(targets); warning != "" {
		logger.Warn("Remote lockout risk", zap.Strings("targets", targets))
		output.NewConsole(stderr, output.IsTerminal(stderr)).Warn("%s", warning)
	}

	ctl, err := newController(cfg)
	if err != nil {
		return err
	}

	opts := []hardening.Option{
		hardening.WithDryRun(cfg.DryRun),
		hardening.WithRunID(rc.RunID),
	}
	var console *output.Console
	if !format.Structured() {
		console = output.NewConsole(stdout, output.IsTerminal(stdout))
		opts = append(opts, hardening.WithObserver(console))
	}

	logger.Info("Disabling services",
		zap.Strings("targets", targets),
		zap.String("sudo", cfg.Sudo),
		zap.Bool("dry_run", cfg.DryRun))

	report, runErr := hardening.New(ctl, opts...).Run(rc.Ctx, targets)
	if report == nil {
		return runErr
	}

	summary := report.Summary()
	rc.Attributes["targets"] = strconv.Itoa(summary.Targets)
	rc.Attributes["failed_steps"] = strconv.Itoa(summary.Failed)

	switch {
	case console != nil && runErr != nil:
		console.Interrupted(report, len(targets))
	case console != nil:
		console.Done(report)
	default:
		if err := output.Structured(stdout, format, report); err != nil {
			return quell_err.NewInternalError("cannot render report", err)
		}
	}
	return runErr
}
