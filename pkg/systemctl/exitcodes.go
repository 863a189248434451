// pkg/systemctl/exitcodes.go

package systemctl

import "fmt"

// Systemctl Exit Codes
// Reference: systemctl(1) man page
// Different systemctl subcommands return different exit codes with different meanings
const (
	// Generic exit codes (all commands)
	ExitSuccess     = 0
	ExitGenericFail = 1

	// is-active, is-enabled, is-failed exit codes
	ExitInactive  = 3 // Service is inactive/dead/failed
	ExitUnknown   = 4 // Service state is unknown
	ExitNotLoaded = 5 // Unit file is not loaded
)

// Command represents the systemctl subcommands quell issues.
type Command string

const (
	CmdIsActive      Command = "is-active"
	CmdIsEnabled     Command = "is-enabled"
	CmdStop          Command = "stop"
	CmdDisable       Command = "disable"
	CmdListUnitFiles Command = "list-unit-files"
	CmdVersion       Command = "--version"
)

// Privileged reports whether the subcommand changes system state and so needs escalation.
func (c Command) Privileged() bool {
	return c == CmdStop || c == CmdDisable
}

// InterpretExitCode interprets exit codes based on the systemctl command
func InterpretExitCode(cmd Command, exitCode int) string {
	switch cmd {
	case CmdIsActive:
		switch exitCode {
		case ExitSuccess:
			return "active"
		case ExitInactive:
			return "inactive"
		case ExitUnknown:
			return "unknown"
		case ExitNotLoaded:
			return "not loaded"
		default:
			return fmt.Sprintf("unknown exit code %d", exitCode)
		}

	case CmdIsEnabled:
		switch exitCode {
		case ExitSuccess:
			return "enabled"
		case ExitGenericFail:
			return "disabled"
		case ExitUnknown:
			return "not found"
		default:
			return fmt.Sprintf("unknown exit code %d", exitCode)
		}

	case CmdListUnitFiles:
		switch exitCode {
		case ExitSuccess:
			return "unit files found"
		case ExitGenericFail:
			return "no unit files matched"
		default:
			return fmt.Sprintf("unknown exit code %d", exitCode)
		}

	default:
		if exitCode == ExitSuccess {
			return "success"
		}
		return fmt.Sprintf("failed with exit code %d", exitCode)
	}
}
