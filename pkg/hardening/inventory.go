// pkg/hardening/inventory.go

package hardening

import (
	"context"
	"time"

	"github.com/CodeMonkeyCybersecurity/quell/pkg/systemctl"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

const stateUnknown = "unknown"

// ServiceState is the read-only view of one target.
type ServiceState struct {
	Service       string `json:"service" yaml:"service"`
	Unit          string `json:"unit" yaml:"unit"`
	Installed     bool   `json:"installed" yaml:"installed"`
	UnitFileState string `json:"unit_file_state,omitempty" yaml:"unit_file_state,omitempty"`
	Active        string `json:"active,omitempty" yaml:"active,omitempty"`
	Enabled       string `json:"enabled,omitempty" yaml:"enabled,omitempty"`
}

// Inventory is the result of a read-only pass over the targets.
type Inventory struct {
	RunID      string         `json:"run_id" yaml:"run_id"`
	Host       string         `json:"host" yaml:"host"`
	CapturedAt time.Time      `json:"captured_at" yaml:"captured_at"`
	ListError  string         `json:"list_error,omitempty" yaml:"list_error,omitempty"`
	Services   []ServiceState `json:"services" yaml:"services"`
}

// Inventory reports installation, activity and enablement for each target
// without changing anything.
func (h *Hardener) Inventory(ctx context.Context, services []string) (*Inventory, error) {
	logger := otelzap.Ctx(ctx)

	if err := h.ctl.Available(ctx); err != nil {
		return nil, err
	}

	inv := &Inventory{
		RunID:      h.runID,
		Host:       hostname(),
		CapturedAt: h.now(),
		Services:   make([]ServiceState, 0, len(services)),
	}

	units, err := h.ctl.ListUnitFiles(ctx)
	if err != nil {
		inv.ListError = err.Error()
		logger.Warn("Unit file listing failed; treating all services as not installed", zap.Error(err))
	}

	for _, svc := range services {
		unit := systemctl.UnitName(svc)
		state := ServiceState{Service: svc, Unit: unit}
		if units.Has(unit) {
			state.Installed = true
			state.UnitFileState = units.State(unit)
			state.Active = h.query(ctx, unit, h.ctl.IsActive)
			state.Enabled = h.query(ctx, unit, h.ctl.IsEnabled)
		}
		inv.Services = append(inv.Services, state)
	}

	logger.Info("Inventory captured", zap.Int("targets", len(inv.Services)))
	return inv, nil
}

func (h *Hardener) query(ctx context.Context, unit string, fn func(context.Context, string) (string, error)) string {
	state, err := fn(ctx, unit)
	if err != nil {
		otelzap.Ctx(ctx).Warn("State query failed", zap.String("unit", unit), zap.Error(err))
		return stateUnknown
	}
	return state
}
