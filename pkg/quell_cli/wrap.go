// pkg/quell_cli/wrap.go

package quell_cli

import (
	"context"

	"github.com/CodeMonkeyCybersecurity/quell/pkg/quell_err"
	"github.com/CodeMonkeyCybersecurity/quell/pkg/quell_io"
	cerr "github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RunFunc is a command body that receives the per-invocation runtime context.
type RunFunc func(rc *quell_io.RuntimeContext, cmd *cobra.Command, args []string) error

// Wrap ensures panic recovery, signal handling, telemetry and logging.
func Wrap(fn RunFunc) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		parent := cmd.Context()
		if parent == nil {
			parent = context.Background()
		}

		signals := NewSignalHandler(parent)
		defer signals.Stop()

		rc := quell_io.NewContext(signals.Context(), cmd.CommandPath())
		defer rc.End(&err)

		// Packages log through otelzap.Ctx; point it at the run-scoped logger.
		undo := otelzap.ReplaceGlobals(otelzap.New(rc.Log, otelzap.WithMinLevel(zapcore.DebugLevel)))
		defer undo()

		defer func() {
			if r := recover(); r != nil {
				err = quell_err.NewInternalError("unexpected panic", cerr.AssertionFailedf("panic: %v", r))
				rc.Log.Error("Panic recovered", zap.Any("panic", r))
			}
		}()

		rc.Log.Debug("Command started", zap.Strings("args", args))

		err = fn(rc, cmd, args)
		if err != nil && !quell_err.IsExpectedUserError(err) {
			err = cerr.WithStack(err)
		}
		return err
	}
}
