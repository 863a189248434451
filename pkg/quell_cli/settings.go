// pkg/quell_cli/settings.go

package quell_cli

import (
	"os"

	"github.com/CodeMonkeyCybersecurity/quell/pkg/cli"
	"github.com/CodeMonkeyCybersecurity/quell/pkg/config"
	"github.com/CodeMonkeyCybersecurity/quell/pkg/hardening"
	"github.com/CodeMonkeyCybersecurity/quell/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/quell/pkg/privilege"
	"github.com/CodeMonkeyCybersecurity/quell/pkg/quell_err"
	"github.com/CodeMonkeyCybersecurity/quell/pkg/systemctl"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Flag names shared across commands.
const (
	FlagConfig         = "config"
	FlagEnvFile        = "env-file"
	FlagLogLevel       = "log-level"
	FlagSudo           = "sudo"
	FlagCommandTimeout = "command-timeout"
	FlagOutput         = "output"
	FlagTelemetry      = "telemetry"
	FlagService        = "service"
	FlagKeep           = "keep"
	FlagDryRun         = "dry-run"
)

// AddGlobalFlags registers the persistent flags every command understands.
func AddGlobalFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.String(FlagConfig, "", "config file (default: quell.yaml in /etc/quell, ~/.config/quell or .)")
	pf.String(FlagEnvFile, "", "env file loaded before QUELL_* variables are read (default /etc/quell/quell.env)")
	pf.String(FlagLogLevel, "", "console log level: debug, info, warn, error (default warn)")
	pf.String(FlagSudo, string(privilege.ModeAuto), "sudo use for stop/disable: auto, always or never")
	pf.Duration(FlagCommandTimeout, 0, "timeout for each systemctl call (0 = none)")
	pf.StringP(FlagOutput, "o", "text", "output format: text, json or yaml")
	pf.Bool(FlagTelemetry, false, "write OpenTelemetry spans to the local telemetry file")
}

// AddTargetFlags registers --service and --keep on a command that acts on services.
func AddTargetFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceP(FlagService, "s", nil, "service to target instead of the configured list (repeatable)")
	cmd.Flags().StringSliceP(FlagKeep, "k", nil, "service to leave untouched (repeatable), e.g. --keep ssh")
}

// LoadSettings loads the env file and configuration for cmd, applies the log
// level and stores the config in cmd's context.
func LoadSettings(cmd *cobra.Command) (*config.Config, error) {
	if _, err := config.LoadEnvFile(cli.GetStringOrEmpty(cmd, FlagEnvFile)); err != nil {
		return nil, err
	}

	v := viper.New()
	if err := cli.BindFlagsToViper(cmd, v, flagBoundKeys()...); err != nil {
		return nil, quell_err.NewInternalError("cannot bind flags to configuration", err)
	}

	cfg, err := config.Load(v, cli.GetStringOrEmpty(cmd, FlagConfig))
	if err != nil {
		return nil, err
	}

	if cfg.LogLevel != "" {
		logger.SetLevel(cfg.LogLevel)
	}
	cmd.SetContext(config.WithConfig(cmd.Context(), cfg))
	return cfg, nil
}

// flagBoundKeys are the config keys a flag overrides. keep is left out: the
// --keep flag adds to the configured keep list instead of replacing it.
func flagBoundKeys() []string {
	keys := make([]string, 0, len(config.Keys()))
	for _, k := range config.Keys() {
		if k != config.KeyKeep {
			keys = append(keys, k)
		}
	}
	return keys
}

// Targets resolves the services a command acts on. Positional args and
// --service together replace the configured list; --keep and the configured
// keep list both remove names from it.
func Targets(cmd *cobra.Command, cfg *config.Config, args []string) ([]string, error) {
	override, err := cli.GetStringSlice(cmd, FlagService)
	if err != nil {
		return nil, quell_err.NewInternalError("cannot read --service", err)
	}
	override = append(override, args...)
	if err := config.ValidateNames(override); err != nil {
		return nil, err
	}

	keep, err := cli.GetStringSlice(cmd, FlagKeep)
	if err != nil {
		return nil, quell_err.NewInternalError("cannot read --keep", err)
	}
	if err := config.ValidateNames(keep); err != nil {
		return nil, err
	}
	keep = append(append([]string(nil), cfg.Keep...), keep...)
	return hardening.SelectTargets(cfg.Services, override, keep), nil
}

// NewController builds the systemctl client described by cfg.
func NewController(cfg *config.Config) (*systemctl.Client, error) {
	mode, err := privilege.ParseMode(cfg.Sudo)
	if err != nil {
		return nil, quell_err.NewValidationError("invalid sudo mode", err)
	}
	return systemctl.New(
		systemctl.WithEscalator(privilege.New(mode)),
		systemctl.WithTimeout(cfg.CommandTimeout),
	), nil
}

// LockoutWarning returns a warning when targets would stop sshd under the
// current SSH session, or "".
func LockoutWarning(targets []string) string {
	if !hardening.RemoteLockoutRisk(targets, os.Getenv) {
		return ""
	}
	return "ssh is targeted and this is an SSH session: you may lose remote access (use --keep ssh to skip it)"
}
