// cmd/list/services.go

package list

import (
	"github.com/CodeMonkeyCybersecurity/quell/pkg/config"
	"github.com/CodeMonkeyCybersecurity/quell/pkg/hardening"
	"github.com/CodeMonkeyCybersecurity/quell/pkg/output"
	"github.com/CodeMonkeyCybersecurity/quell/pkg/quell_cli"
	"github.com/CodeMonkeyCybersecurity/quell/pkg/quell_err"
	"github.com/CodeMonkeyCybersecurity/quell/pkg/quell_io"
	"github.com/CodeMonkeyCybersecurity/quell/pkg/systemctl"
	"github.com/spf13/cobra"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

var newController = func(cfg *config.Config) (systemctl.Controller, error) {
	return quell_cli.NewController(cfg)
}

// NewServicesCmd builds "quell list services".
func NewServicesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "services [SERVICE...]",
		Short: "Show whether each target service is installed, active and enabled",
		Example: `  quell list services
  quell list services -o yaml --keep ssh`,
		Args: cobra.ArbitraryArgs,
		RunE: quell_cli.Wrap(runListServices),
	}
	quell_cli.AddTargetFlags(cmd)
	return cmd
}

func runListServices(rc *quell_io.RuntimeContext, cmd *cobra.Command, args []string) error {
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

	ctl, err := newController(cfg)
	if err != nil {
		return err
	}

	inv, err := hardening.New(ctl, hardening.WithRunID(rc.RunID)).Inventory(rc.Ctx, targets)
	if err != nil {
		return err
	}
	otelzap.Ctx(rc.Ctx).Debug("Rendering inventory", zap.String("format", string(format)))

	stdout := cmd.OutOrStdout()
	if format.Structured() {
		err = output.Structured(stdout, format, inv)
	} else {
		err = output.InventoryTable(stdout, inv)
	}
	if err != nil {
		return quell_err.NewInternalError("cannot render inventory", err)
	}
	return nil
}
