// pkg/shared/constants.go

package shared

const (
	AppName = "quell"

	QuellConfigDir = "/etc/quell/"
	QuellEnvFile   = QuellConfigDir + "quell.env"
	QuellLogDir    = "/var/log/quell/"
	QuellLogs      = QuellLogDir + "quell.log"
	// Fallback when neither the system nor the user state dir is writable.
	QuellLogsPWD = "./quell.log"

	TelemetryFile   = "telemetry.jsonl"
	TelemetryMarker = "telemetry_on"

	// EnvPrefix is the prefix viper uses for environment overrides (QUELL_SERVICES, ...).
	EnvPrefix = "QUELL"
)

const (
	// Permission modes (in octal)
	DirPermStandard        = 0755
	FilePermOwnerRWX       = 0700
	FilePermStandard       = 0644
	FilePermOwnerReadWrite = 0600
)

// Systemd
const (
	SystemctlBinary = "systemctl"
	SudoBinary      = "sudo"
	ServiceSuffix   = ".service"
)
