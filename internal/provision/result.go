package provision

import (
	"fmt"

	verrors "github.com/ksyq12/vhostsync/internal/errors"
)

// Step names one stage of CreateSite.
type Step string

// Steps in execution order.
const (
	StepPlatform    Step = "platform"
	StepConfig      Step = "config"
	StepServer      Step = "server"
	StepDeclaration Step = "declaration"
	StepDirectory   Step = "directory"
	StepHosts       Step = "hosts"
	StepReload      Step = "reload"
)

// Status is the outcome of a step.
type Status string

// Step outcomes.
const (
	StatusOK      Status = "ok"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// StepError is a failure attributed to the step it happened in.
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s step failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// StepResult records what happened in one step. A failed step marked as
// a warning did not stop the run.
type StepResult struct {
	Step    Step   `json:"step"`
	Status  Status `json:"status"`
	Warning bool   `json:"warning,omitempty"`
	Detail  string `json:"detail,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
	Err     error  `json:"-"`
}

// Result is the outcome of CreateSite. Completed steps are never undone,
// so a failed Result can describe a partially provisioned site.
type Result struct {
	Domain string       `json:"domain"`
	SiteID string       `json:"site_id"`
	Steps  []StepResult `json:"steps"`
}

func newStepResult(step Step, status Status, detail string, err error) StepResult {
	sr := StepResult{Step: step, Status: status, Detail: detail, Err: err}
	if err != nil {
		sr.Error = err.Error()
		sr.Code = string(verrors.CodeOf(err))
	}
	return sr
}

func (r *Result) record(step Step, status Status, detail string, err error) {
	r.Steps = append(r.Steps, newStepResult(step, status, detail, err))
}

func (r *Result) warn(step Step, err error) {
	sr := newStepResult(step, StatusFailed, "", err)
	sr.Warning = true
	r.Steps = append(r.Steps, sr)
}

func (r *Result) skip(steps ...Step) {
	for _, s := range steps {
		r.record(s, StatusSkipped, "", nil)
	}
}

// Step returns the result of step s.
func (r *Result) Step(s Step) (StepResult, bool) {
	for _, sr := range r.Steps {
		if sr.Step == s {
			return sr, true
		}
	}
	return StepResult{}, false
}

// Err returns the failure that stopped the run, or nil. Warnings are not
// returned.
func (r *Result) Err() error {
	for _, sr := range r.Steps {
		if sr.Status == StatusFailed && !sr.Warning {
			return &StepError{Step: sr.Step, Err: sr.Err}
		}
	}
	return nil
}

// Warnings returns the failures that did not stop the run.
func (r *Result) Warnings() []*StepError {
	var out []*StepError
	for _, sr := range r.Steps {
		if sr.Status == StatusFailed && sr.Warning {
			out = append(out, &StepError{Step: sr.Step, Err: sr.Err})
		}
	}
	return out
}

// Partial reports whether the declaration was written and a later step
// failed, leaving declaration, directory and host table out of step.
func (r *Result) Partial() bool {
	written := false
	for _, sr := range r.Steps {
		if sr.Step == StepDeclaration && sr.Status == StatusOK {
			written = true
			continue
		}
		if written && sr.Status == StatusFailed && sr.Step != StepReload {
			return true
		}
	}
	return false
}

// OK reports whether every step that ran succeeded.
func (r *Result) OK() bool {
	for _, sr := range r.Steps {
		if sr.Status == StatusFailed {
			return false
		}
	}
	return true
}

// Code returns the error code of the stopping failure, or of the first
// warning when the run was not stopped.
func (r *Result) Code() verrors.ErrorCode {
	if err := r.Err(); err != nil {
		return verrors.CodeOf(err)
	}
	if w := r.Warnings(); len(w) > 0 {
		return verrors.CodeOf(w[0])
	}
	return ""
}
