// pkg/execute/execute.go

// Package execute runs external commands without a shell, capturing stdout
// and stderr separately and recording one span per invocation.
package execute

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/CodeMonkeyCybersecurity/quell/pkg/quell_err"
	"github.com/CodeMonkeyCybersecurity/quell/pkg/telemetry"
	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// ExitCodeNotStarted is reported when the process could not be started at all.
const ExitCodeNotStarted = -1

const waitDelay = 2 * time.Second

// Options describes one command invocation.
type Options struct {
	Command string
	Args    []string
	Dir     string
	Env     []string
	// Timeout bounds the invocation; zero or negative means no timeout.
	Timeout time.Duration
}

// Result is the outcome of one invocation. It is populated even when the command fails.
type Result struct {
	Command  string        `json:"command"`
	Stdout   string        `json:"stdout,omitempty"`
	Stderr   string        `json:"stderr,omitempty"`
	ExitCode int           `json:"exit_code"`
	Duration time.Duration `json:"duration"`
}

// Message returns trimmed stderr, falling back to trimmed stdout.
func (r *Result) Message() string {
	if r == nil {
		return ""
	}
	if s := strings.TrimSpace(r.Stderr); s != "" {
		return s
	}
	return strings.TrimSpace(r.Stdout)
}

// Runner executes commands. Packages that shell out take a Runner so tests can fake the host.
type Runner interface {
	Exec(ctx context.Context, opts Options) (*Result, error)
}

// Local runs commands on this host.
type Local struct{}

func (Local) Exec(ctx context.Context, opts Options) (*Result, error) {
	return Exec(ctx, opts)
}

// Default is the Runner used when callers do not supply one.
var Default Runner = Local{}

// Exec runs a command and returns its captured result. A non-nil error means
// the command could not be started, timed out, or exited nonzero.
func Exec(ctx context.Context, opts Options) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cmdStr := buildCommandString(opts.Command, opts.Args...)
	res := &Result{Command: cmdStr, ExitCode: ExitCodeNotStarted}

	if opts.Command == "" {
		return res, cerr.New("execute: empty command")
	}

	rc, cancel := withTimeout(ctx, opts.Timeout)
	defer cancel()

	rc, span := telemetry.Start(rc, "execute.Exec",
		attribute.String("command", opts.Command),
		attribute.String("args", telemetry.TruncateArgs(opts.Args)),
	)
	defer span.End()

	logger := otelzap.Ctx(rc)
	logger.Debug("Starting execution", zap.String("command", cmdStr))

	cmd := exec.CommandContext(rc, opts.Command, opts.Args...)
	// Bound how long Wait blocks on pipes held open by orphaned grandchildren after a kill.
	cmd.WaitDelay = waitDelay
	if opts.Dir != "" {
		cmd.Dir = opts.Dir
	}
	if len(opts.Env) > 0 {
		cmd.Env = opts.Env
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	res.Duration = time.Since(start)
	res.Stdout = stdout.String()
	res.Stderr = stderr.String()
	res.ExitCode = ExitCode(err)

	span.SetAttributes(attribute.Int("exit_code", res.ExitCode))

	if err == nil {
		logger.Debug("Execution succeeded",
			zap.String("command", cmdStr),
			zap.Duration("duration", res.Duration))
		return res, nil
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	var exitErr *exec.ExitError
	switch {
	case errors.Is(rc.Err(), context.DeadlineExceeded):
		err = cerr.Wrapf(rc.Err(), "%s timed out after %s", cmdStr, opts.Timeout)
	case !errors.As(err, &exitErr):
		err = cerr.Wrapf(err, "%s could not be started", cmdStr)
	case res.ExitCode == ExitCodeNotStarted:
		err = cerr.Wrapf(err, "%s was terminated", cmdStr)
	default:
		err = cerr.Wrapf(err, "%s exited with code %d", cmdStr, res.ExitCode)
	}

	logger.Debug("Execution failed",
		zap.String("command", cmdStr),
		zap.Int("exit_code", res.ExitCode),
		zap.String("summary", quell_err.ExtractSummary(res.Stderr+"\n"+res.Stdout, 2)),
		zap.Error(err))

	return res, err
}

// ExitCode extracts the process exit status from an error returned by os/exec.
// nil maps to 0 and errors that carry no exit status map to ExitCodeNotStarted.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code >= 0 {
			return code
		}
	}
	return ExitCodeNotStarted
}
