// pkg/cli/cli.go

// Package cli holds flag helpers shared by quell commands.
package cli

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ConfigKey maps a flag name onto its configuration key: dry-run -> dry_run.
func ConfigKey(flagName string) string {
	return strings.ReplaceAll(flagName, "-", "_")
}

// BindFlagsToViper binds every flag named in keys to v under its config key.
// Flags not listed are left alone so they never shadow config values.
func BindFlagsToViper(cmd *cobra.Command, v *viper.Viper, keys ...string) error {
	wanted := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		wanted[k] = struct{}{}
	}

	var result error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key := ConfigKey(f.Name)
		if _, ok := wanted[key]; !ok {
			return
		}
		if err := v.BindPFlag(key, f); err != nil {
			result = multierror.Append(result, fmt.Errorf("bind --%s: %w", f.Name, err))
		}
	})
	return result
}

// SetViperEnvPrefix lets Viper read env with prefix: QUELL_DRY_RUN for dry_run.
func SetViperEnvPrefix(v *viper.Viper, prefix string) {
	v.SetEnvPrefix(prefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
}

// GetStringSlice returns a string slice flag, dropping blanks.
func GetStringSlice(cmd *cobra.Command, name string) ([]string, error) {
	vals, err := cmd.Flags().GetStringSlice(name)
	if err != nil {
		return nil, fmt.Errorf("flag error for --%s: %w", name, err)
	}
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out, nil
}

// GetStringOrEmpty returns the string value or empty string if the flag is undefined.
func GetStringOrEmpty(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return val
}
