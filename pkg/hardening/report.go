// pkg/hardening/report.go

package hardening

import (
	"time"

	"github.com/CodeMonkeyCybersecurity/quell/pkg/execute"
	cerr "github.com/cockroachdb/errors"
	"github.com/hashicorp/go-multierror"
)

// Action is a state change applied to an installed service.
type Action string

const (
	ActionStop    Action = "stop"
	ActionDisable Action = "disable"
)

// StepStatus is the outcome of one action.
type StepStatus string

const (
	StepSucceeded StepStatus = "succeeded"
	StepFailed    StepStatus = "failed"
	// StepPlanned marks an action a dry run would have taken.
	StepPlanned StepStatus = "planned"
)

// StepResult records one stop or disable attempt.
type StepResult struct {
	Status   StepStatus    `json:"status" yaml:"status"`
	ExitCode int           `json:"exit_code" yaml:"exit_code"`
	Message  string        `json:"message,omitempty" yaml:"message,omitempty"`
	Duration time.Duration `json:"duration_ns" yaml:"duration"`
}

// Failed reports whether the step was attempted and did not succeed.
func (s *StepResult) Failed() bool {
	return s != nil && s.Status == StepFailed
}

func stepFromResult(res *execute.Result, err error) *StepResult {
	step := &StepResult{Status: StepSucceeded}
	if res != nil {
		step.ExitCode = res.ExitCode
		step.Message = res.Message()
		step.Duration = res.Duration
	}
	if err != nil {
		step.Status = StepFailed
		if step.Message == "" {
			step.Message = err.Error()
		}
	}
	return step
}

// ServiceOutcome is what happened to one target. Stop and Disable are nil
// when the service is not installed.
type ServiceOutcome struct {
	Service   string      `json:"service" yaml:"service"`
	Unit      string      `json:"unit" yaml:"unit"`
	Installed bool        `json:"installed" yaml:"installed"`
	Stop      *StepResult `json:"stop,omitempty" yaml:"stop,omitempty"`
	Disable   *StepResult `json:"disable,omitempty" yaml:"disable,omitempty"`
}

// Report is the result of one hardening run.
type Report struct {
	RunID          string           `json:"run_id" yaml:"run_id"`
	Host           string           `json:"host" yaml:"host"`
	StartedAt      time.Time        `json:"started_at" yaml:"started_at"`
	FinishedAt     time.Time        `json:"finished_at" yaml:"finished_at"`
	DryRun         bool             `json:"dry_run" yaml:"dry_run"`
	SystemdVersion string           `json:"systemd_version,omitempty" yaml:"systemd_version,omitempty"`
	ListError      string           `json:"list_error,omitempty" yaml:"list_error,omitempty"`
	Services       []ServiceOutcome `json:"services" yaml:"services"`
}

// Summary counts outcomes across a report.
type Summary struct {
	Targets   int `json:"targets" yaml:"targets"`
	Installed int `json:"installed" yaml:"installed"`
	Missing   int `json:"missing" yaml:"missing"`
	Stopped   int `json:"stopped" yaml:"stopped"`
	Disabled  int `json:"disabled" yaml:"disabled"`
	Planned   int `json:"planned" yaml:"planned"`
	Failed    int `json:"failed" yaml:"failed"`
}

// Summary tallies the report.
func (r *Report) Summary() Summary {
	s := Summary{Targets: len(r.Services)}
	for _, o := range r.Services {
		if !o.Installed {
			s.Missing++
			continue
		}
		s.Installed++
		for _, step := range []struct {
			res     *StepResult
			counter *int
		}{{o.Stop, &s.Stopped}, {o.Disable, &s.Disabled}} {
			if step.res == nil {
				continue
			}
			switch step.res.Status {
			case StepSucceeded:
				*step.counter++
			case StepPlanned:
				s.Planned++
			case StepFailed:
				s.Failed++
			}
		}
	}
	return s
}

// Errors aggregates every failed step. It is informational: failed steps
// never abort a run.
func (r *Report) Errors() error {
	var result *multierror.Error
	for _, o := range r.Services {
		if o.Stop.Failed() {
			result = multierror.Append(result, cerr.Newf("%s %s: %s", ActionStop, o.Service, o.Stop.Message))
		}
		if o.Disable.Failed() {
			result = multierror.Append(result, cerr.Newf("%s %s: %s", ActionDisable, o.Service, o.Disable.Message))
		}
	}
	return result.ErrorOrNil()
}
