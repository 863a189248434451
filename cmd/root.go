/* cmd/root.go */

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/CodeMonkeyCybersecurity/quell/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/quell/pkg/quell_cli"
	"github.com/CodeMonkeyCybersecurity/quell/pkg/quell_err"
	"github.com/CodeMonkeyCybersecurity/quell/pkg/shared"
	"github.com/CodeMonkeyCybersecurity/quell/pkg/systemctl"
	"github.com/CodeMonkeyCybersecurity/quell/pkg/telemetry"
	cerr "github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	// Subcommands
	"github.com/CodeMonkeyCybersecurity/quell/cmd/disable"
	"github.com/CodeMonkeyCybersecurity/quell/cmd/list"
)

var (
	initTelemetry     = telemetry.Init
	shutdownTelemetry telemetry.ShutdownFunc
)

// RootCmd is the base command for quell.
var RootCmd = NewRootCmd()

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   shared.AppName,
		Short: "Ubuntu service hardening",
		Long: `quell reduces the attack surface of an Ubuntu host by stopping and
disabling network-facing services it does not need. It is safe to re-run.`,
		Version:           shared.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	quell_cli.AddGlobalFlags(root)
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return quell_err.NewValidationError(err.Error(), nil, "Run '"+cmd.CommandPath()+" --help' for usage")
	})
	return root
}

// RegisterCommands adds all subcommands to the root command.
func RegisterCommands() {
	for _, subCmd := range []*cobra.Command{
		disable.DisableCmd,
		list.ListCmd,
	} {
		RootCmd.AddCommand(subCmd)
	}
}

func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := quell_cli.LoadSettings(cmd)
	if err != nil {
		return err
	}

	shutdown, err := initTelemetry(shared.AppName, cfg.Telemetry)
	if err != nil {
		// Telemetry never blocks hardening.
		logger.GetLogger().Warn("Telemetry disabled", zap.Error(err))
		return nil
	}
	shutdownTelemetry = shutdown
	return nil
}

// Execute runs the root command and exits with the classified exit code.
func Execute() {
	RegisterCommands()

	err := RootCmd.ExecuteContext(context.Background())
	code := quell_err.GetExitCode(err)
	if err != nil {
		logger.GetLogger().Debug("Command returned error", zap.Error(err), zap.Int("exit_code", code))
		reportError(os.Stderr, err)
	}

	if shutdownTelemetry != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if serr := shutdownTelemetry(ctx); serr != nil {
			fmt.Fprintf(os.Stderr, "⚠️  Failed to flush telemetry: %v\n", serr)
		}
		cancel()
	}
	_ = logger.Sync()

	os.Exit(code)
}

func reportError(w io.Writer, err error) {
	if cerr.Is(err, systemctl.ErrNotFound) {
		fmt.Fprintln(w, "❌ systemctl not found. This tool requires systemd (Ubuntu default).")
		return
	}
	quell_err.PrintError(w, shared.AppName, err)
}
