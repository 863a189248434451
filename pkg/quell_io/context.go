// pkg/quell_io/context.go

package quell_io

import (
	"context"
	"os"
	"os/user"
	"runtime"
	"time"

	"github.com/CodeMonkeyCybersecurity/quell/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/quell/pkg/quell_err"
	"github.com/CodeMonkeyCybersecurity/quell/pkg/shared"
	"github.com/CodeMonkeyCybersecurity/quell/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// RuntimeContext carries what one command invocation needs: a cancellable
// context, a logger scoped to the run, and the command's span.
type RuntimeContext struct {
	Ctx        context.Context
	Log        *zap.Logger
	Span       trace.Span
	Timestamp  time.Time
	Command    string
	Component  string
	RunID      string
	Attributes map[string]string
}

// NewContext starts the command span and scopes the logger to this run.
func NewContext(parent context.Context, cmdPath string) *RuntimeContext {
	runID := logger.GenerateRunID()
	ctx, span := telemetry.Start(parent, cmdPath,
		attribute.String("run_id", runID),
		attribute.String("version", shared.Version))

	log := logger.GetLogger().With(
		zap.String("run_id", runID),
		zap.String("command", cmdPath),
		zap.String("trace_id", span.SpanContext().TraceID().String()),
	).Named(shared.AppName)

	logEnv(log)

	return &RuntimeContext{
		Ctx:        ctx,
		Log:        log,
		Span:       span,
		Timestamp:  time.Now(),
		Command:    cmdPath,
		Component:  shared.AppName,
		RunID:      runID,
		Attributes: make(map[string]string),
	}
}

// End logs the outcome, finishes the span and flushes the logger.
func (rc *RuntimeContext) End(errPtr *error) {
	defer shared.SafeSync()
	defer rc.Span.End()

	var err error
	if errPtr != nil {
		err = *errPtr
	}
	duration := time.Since(rc.Timestamp)

	if err == nil {
		rc.Log.Info("Command completed", zap.Duration("duration", duration))
	} else if quell_err.IsExpectedUserError(err) || quell_err.Category(err) == quell_err.CategoryUser {
		rc.Log.Warn("Command stopped", zap.Duration("duration", duration), zap.Error(err))
	} else {
		rc.Log.Error("Command failed", zap.Duration("duration", duration), zap.Error(err))
	}

	attrs := []attribute.KeyValue{
		attribute.Bool("success", err == nil),
		attribute.Int64("duration_ms", duration.Milliseconds()),
		attribute.String("os", runtime.GOOS),
		attribute.String("args", telemetry.TruncateArgs(os.Args[1:])),
		attribute.Int("exit_code", quell_err.GetExitCode(err)),
	}
	if err != nil {
		attrs = append(attrs, attribute.String("error_type", quell_err.Category(err).String()))
		rc.Span.RecordError(err)
		rc.Span.SetStatus(codes.Error, err.Error())
	}
	for k, v := range rc.Attributes {
		attrs = append(attrs, attribute.String(k, v))
	}
	rc.Span.SetAttributes(attrs...)
}

func logEnv(log *zap.Logger) {
	if u, err := user.Current(); err == nil {
		log.Debug("user context",
			zap.String("username", u.Username),
			zap.String("uid", u.Uid),
			zap.Int("euid", os.Geteuid()),
		)
	}
	if exe, err := os.Executable(); err == nil {
		log.Debug("executable path", zap.String("path", exe))
	}
}
