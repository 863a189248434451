// pkg/config/env.go

package config

import (
	"os"

	"github.com/CodeMonkeyCybersecurity/quell/pkg/quell_err"
	"github.com/CodeMonkeyCybersecurity/quell/pkg/shared"
	cerr "github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
)

// LoadEnvFile loads KEY=VALUE pairs from path into the process environment
// without overriding variables that are already set. An empty path means the
// default /etc/quell/quell.env, which may be absent; an explicit path must exist.
func LoadEnvFile(path string) (string, error) {
	explicit := path != ""
	if !explicit {
		path = shared.QuellEnvFile
	}

	if _, err := os.Stat(path); err != nil {
		if !explicit && os.IsNotExist(err) {
			return "", nil
		}
		return "", quell_err.NewValidationError("cannot read env file "+path,
			cerr.WithStack(err), "Check the path given to --env-file")
	}

	if err := godotenv.Load(path); err != nil {
		if os.IsPermission(err) {
			return "", quell_err.NewPermissionError(path, "read",
				"Run quell with sudo or make the env file readable")
		}
		return "", quell_err.NewValidationError("cannot parse env file "+path, quell_err.WrapConfigError(err))
	}
	return path, nil
}
