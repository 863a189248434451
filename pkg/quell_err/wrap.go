// pkg/quell_err/wrap.go

package quell_err

import (
	cerr "github.com/cockroachdb/errors"
)

func WrapValidationError(err error) error {
	return cerr.WithHint(cerr.WithStack(err), "validation failed")
}

func WrapConfigError(err error) error {
	return cerr.WithHint(cerr.WithStack(err), "check the quell configuration file and QUELL_* environment")
}
