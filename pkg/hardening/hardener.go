// pkg/hardening/hardener.go

// Package hardening stops and disables unwanted systemd services.
//
// A run is strictly sequential: list unit files once, then for each target
// in order either skip it (not installed) or issue one stop followed by one
// disable. Failed steps are recorded and never abort the run; only a missing
// systemctl binary does.
package hardening

import (
	"context"
	"os"
	"time"

	"github.com/CodeMonkeyCybersecurity/quell/pkg/quell_err"
	"github.com/CodeMonkeyCybersecurity/quell/pkg/systemctl"
	"github.com/CodeMonkeyCybersecurity/quell/pkg/telemetry"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Observer is told about progress as it happens, so text output can stream.
type Observer interface {
	Checking(service string)
	Missing(service string)
	Found(service string)
	Step(service string, action Action, result StepResult)
}

type nopObserver struct{}

func (nopObserver) Checking(string) {}
func (nopObserver) Missing(string) {}
func (nopObserver) Found(string) {}
func (nopObserver) Step(string, Action, StepResult) {}

// Hardener runs the stop/disable procedure against a service manager.
type Hardener struct {
	ctl      systemctl.Controller
	dryRun   bool
	runID    string
	observer Observer
	now      func() time.Time
}

// Option configures a Hardener.
type Option func(*Hardener)

// WithDryRun records stop/disable as planned instead of executing them.
func WithDryRun(dryRun bool) Option {
	return func(h *Hardener) { h.dryRun = dryRun }
}

// WithObserver streams progress to o.
func WithObserver(o Observer) Option {
	return func(h *Hardener) {
		if o != nil {
			h.observer = o
		}
	}
}

// WithRunID stamps reports with id.
func WithRunID(id string) Option {
	return func(h *Hardener) { h.runID = id }
}

// New returns a Hardener driving ctl.
func New(ctl systemctl.Controller, opts ...Option) *Hardener {
	h := &Hardener{
		ctl:      ctl,
		observer: nopObserver{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run processes services in order and returns the report. The error is
// non-nil only when the service manager is unavailable or ctx is cancelled;
// in the latter case the partial report is returned alongside it.
func (h *Hardener) Run(ctx context.Context, services []string) (*Report, error) {
	ctx, span := telemetry.Start(ctx, "hardening.Run",
		attribute.Int("targets", len(services)),
		attribute.Bool("dry_run", h.dryRun))
	defer span.End()
	logger := otelzap.Ctx(ctx)

	if err := h.ctl.Available(ctx); err != nil {
		span.RecordError(err)
		return nil, err
	}

	report := &Report{
		RunID:     h.runID,
		Host:      hostname(),
		StartedAt: h.now(),
		DryRun:    h.dryRun,
		Services:  make([]ServiceOutcome, 0, len(services)),
	}

	if v, err := h.ctl.Version(ctx); err != nil {
		logger.Warn("Could not determine systemd version", zap.Error(err))
	} else {
		report.SystemdVersion = v.String()
		logger.Info("Service manager detected", zap.String("systemd_version", report.SystemdVersion))
	}

	units, err := h.ctl.ListUnitFiles(ctx)
	if err != nil {
		// Nothing can be confirmed installed, so every target is skipped.
		report.ListError = err.Error()
		logger.Warn("Unit file listing failed; treating all services as not installed", zap.Error(err))
	}

	logger.Debug("Installed service units", zap.Strings("units", units.Names()))
	logger.Info("Starting service hardening",
		zap.Strings("services", services),
		zap.Int("installed_units", len(units)),
		zap.Bool("dry_run", h.dryRun))

	for _, svc := range services {
		if err := ctx.Err(); err != nil {
			report.FinishedAt = h.now()
			logger.Warn("Service hardening interrupted",
				zap.Int("processed", len(report.Services)),
				zap.Int("total", len(services)),
				zap.Error(err))
			return report, quell_err.NewUserCancelledError("disable services")
		}
		report.Services = append(report.Services, h.process(ctx, svc, units))
	}

	report.FinishedAt = h.now()
	summary := report.Summary()
	logger.Info("All specified services have been processed",
		zap.Int("targets", summary.Targets),
		zap.Int("installed", summary.Installed),
		zap.Int("stopped", summary.Stopped),
		zap.Int("disabled", summary.Disabled),
		zap.Int("failed", summary.Failed),
		zap.Duration("duration", report.FinishedAt.Sub(report.StartedAt)))
	if errs := report.Errors(); errs != nil {
		logger.Warn("Some services could not be fully hardened", zap.Error(errs))
	}
	return report, nil
}

func (h *Hardener) process(ctx context.Context, svc string, units systemctl.UnitFiles) ServiceOutcome {
	logger := otelzap.Ctx(ctx)
	unit := systemctl.UnitName(svc)
	outcome := ServiceOutcome{Service: svc, Unit: unit}

	h.observer.Checking(svc)
	if !units.Has(unit) {
		logger.Info("Service not installed; skipping", zap.String("service", svc), zap.String("unit", unit))
		h.observer.Missing(svc)
		return outcome
	}

	outcome.Installed = true
	h.observer.Found(svc)
	logger.Info("Service installed; stopping and disabling",
		zap.String("service", svc),
		zap.String("unit_file_state", units.State(unit)))

	// Once a service is started on, both steps run to completion even if the
	// run is interrupted; cancellation is only honoured between services.
	// Disable is attempted whatever the stop outcome.
	stepCtx := context.WithoutCancel(ctx)
	outcome.Stop = h.step(stepCtx, svc, unit, ActionStop)
	outcome.Disable = h.step(stepCtx, svc, unit, ActionDisable)
	return outcome
}

func (h *Hardener) step(ctx context.Context, svc, unit string, action Action) *StepResult {
	var result *StepResult
	switch {
	case h.dryRun:
		result = &StepResult{Status: StepPlanned}
		otelzap.Ctx(ctx).Info("Dry run: skipping systemctl action",
			zap.String("action", string(action)),
			zap.String("unit", unit))
	case action == ActionStop:
		result = stepFromResult(h.ctl.Stop(ctx, unit))
	default:
		result = stepFromResult(h.ctl.Disable(ctx, unit))
	}
	h.observer.Step(svc, action, *result)
	return result
}

func hostname() string {
	if h, err := os.Hostname(); err == nil {
		return h
	}
	return "unknown"
}
