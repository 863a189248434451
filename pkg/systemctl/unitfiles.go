// pkg/systemctl/unitfiles.go

package systemctl

import (
	"sort"
	"strings"

	"github.com/CodeMonkeyCybersecurity/quell/pkg/shared"
)

// UnitFiles maps installed unit names to their unit-file state (enabled, disabled, masked, static, ...).
type UnitFiles map[string]string

// ParseUnitFiles parses `systemctl list-unit-files --no-legend` output. The
// first whitespace-separated field of each line is the unit name; the second,
// when present, is its state.
func ParseUnitFiles(output string) UnitFiles {
	units := UnitFiles{}
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		state := ""
		if len(fields) > 1 {
			state = fields[1]
		}
		units[fields[0]] = state
	}
	return units
}

// Has reports whether unit is installed. The match is exact.
func (u UnitFiles) Has(unit string) bool {
	_, ok := u[unit]
	return ok
}

// State returns the unit-file state, or "" when the unit is not installed.
func (u UnitFiles) State(unit string) string {
	return u[unit]
}

// Names returns the installed unit names, sorted.
func (u UnitFiles) Names() []string {
	names := make([]string, 0, len(u))
	for n := range u {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// UnitName returns the service unit name for a service: "ssh" -> "ssh.service".
// Names that already carry the suffix are returned unchanged.
func UnitName(service string) string {
	service = strings.TrimSpace(service)
	if strings.HasSuffix(service, shared.ServiceSuffix) {
		return service
	}
	return service + shared.ServiceSuffix
}

// ServiceName strips the .service suffix: "ssh.service" -> "ssh".
func ServiceName(unit string) string {
	return strings.TrimSuffix(strings.TrimSpace(unit), shared.ServiceSuffix)
}
