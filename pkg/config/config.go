// pkg/config/config.go

// Package config loads quell settings from flags, QUELL_* environment
// variables, an optional env file and an optional YAML file.
package config

import (
	"strings"
	"time"

	"github.com/CodeMonkeyCybersecurity/quell/pkg/cli"
	"github.com/CodeMonkeyCybersecurity/quell/pkg/hardening"
	"github.com/CodeMonkeyCybersecurity/quell/pkg/quell_err"
	"github.com/CodeMonkeyCybersecurity/quell/pkg/shared"
	"github.com/CodeMonkeyCybersecurity/quell/pkg/xdg"
	cerr "github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// Keys
const (
	KeyServices       = "services"
	KeyKeep           = "keep"
	KeySudo           = "sudo"
	KeyDryRun         = "dry_run"
	KeyOutput         = "output"
	KeyCommandTimeout = "command_timeout"
	KeyTelemetry      = "telemetry"
	KeyLogLevel       = "log_level"
)

const configName = "quell"

// Keys lists every configuration key.
func Keys() []string {
	return []string{KeyServices, KeyKeep, KeySudo, KeyDryRun, KeyOutput, KeyCommandTimeout, KeyTelemetry, KeyLogLevel}
}

// Config is the decoded, validated configuration.
type Config struct {
	Services       []string      `mapstructure:"services" yaml:"services" validate:"dive,unitname"`
	Keep           []string      `mapstructure:"keep" yaml:"keep" validate:"dive,unitname"`
	Sudo           string        `mapstructure:"sudo" yaml:"sudo" validate:"oneof=auto always never"`
	DryRun         bool          `mapstructure:"dry_run" yaml:"dry_run"`
	Output         string        `mapstructure:"output" yaml:"output" validate:"oneof=text json yaml"`
	CommandTimeout time.Duration `mapstructure:"command_timeout" yaml:"command_timeout" validate:"gte=0"`
	Telemetry      bool          `mapstructure:"telemetry" yaml:"telemetry"`
	LogLevel       string        `mapstructure:"log_level" yaml:"log_level" validate:"omitempty,oneof=debug info warn warning error"`
}

// SetDefaults registers every key so environment overrides are picked up by Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyServices, hardening.DefaultServices())
	v.SetDefault(KeyKeep, []string{})
	v.SetDefault(KeySudo, "auto")
	v.SetDefault(KeyDryRun, false)
	v.SetDefault(KeyOutput, "text")
	v.SetDefault(KeyCommandTimeout, time.Duration(0))
	v.SetDefault(KeyTelemetry, false)
	v.SetDefault(KeyLogLevel, "")
}

// SearchPaths returns the directories searched for quell.yaml, in order.
func SearchPaths() []string {
	paths := []string{shared.QuellConfigDir}
	if dir := xdg.XDGConfigDir(shared.AppName); dir != "" {
		paths = append(paths, dir)
	}
	return append(paths, ".")
}

// Load reads configuration into v and decodes it. configFile, when set, must
// exist; otherwise quell.yaml is looked up in SearchPaths and may be absent.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	SetDefaults(v)
	cli.SetViperEnvPrefix(v, shared.EnvPrefix)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, quell_err.NewValidationError("cannot read config file "+configFile,
				quell_err.WrapConfigError(err), "Check the path given to --config")
		}
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		for _, p := range SearchPaths() {
			v.AddConfigPath(p)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !cerr.As(err, &notFound) {
				return nil, quell_err.NewValidationError("cannot parse config file "+v.ConfigFileUsed(),
					quell_err.WrapConfigError(err))
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, quell_err.NewValidationError("invalid configuration", quell_err.WrapConfigError(err))
	}
	cfg.normalize()

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.Sudo = strings.ToLower(strings.TrimSpace(c.Sudo))
	c.Output = strings.ToLower(strings.TrimSpace(c.Output))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.Services = trimAll(c.Services)
	c.Keep = trimAll(c.Keep)
}

// trimAll also splits comma lists, which is how QUELL_SERVICES arrives.
func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
