// pkg/systemctl/version.go

package systemctl

import (
	"strings"

	cerr "github.com/cockroachdb/errors"
	"github.com/hashicorp/go-version"
)

// ParseVersion extracts the systemd version from `systemctl --version`,
// whose first line reads "systemd 255 (255.4-1ubuntu8)".
func ParseVersion(output string) (*version.Version, error) {
	line := strings.TrimSpace(strings.SplitN(strings.TrimSpace(output), "\n", 2)[0])
	fields := strings.Fields(line)
	if len(fields) < 2 || fields[0] != "systemd" {
		return nil, cerr.Newf("unrecognised systemctl --version output: %q", line)
	}
	v, err := version.NewVersion(fields[1])
	if err != nil {
		return nil, cerr.Wrapf(err, "parse systemd version %q", fields[1])
	}
	return v, nil
}
