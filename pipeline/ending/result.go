// Package ending collects per-step outcomes during a provisioning run and
// renders the final report.
package ending

import (
	"fmt"
	"strings"
	"sync"
	gotime "time"

	"github.com/cloudenochcsis/Volatility-Script/common"
	"github.com/cloudenochcsis/Volatility-Script/time"
)

// RunStatus is the overall outcome of a pipeline run.
type RunStatus int

const (
	RunPending RunStatus = iota
	RunSucceeded
	RunFailed
	RunAborted
)

func (s RunStatus) String() string {
	switch s {
	case RunSucceeded:
		return "SUCCEEDED"
	case RunFailed:
		return "FAILED"
	case RunAborted:
		return "ABORTED"
	default:
		return "PENDING"
	}
}

// StepResult is the recorded outcome of one step.
type StepResult struct {
	Module  string
	Task    string
	Step    string
	State   common.OperationState
	Output  string
	Err     error
	Elapsed gotime.Duration
}

// StateLabel renders the state for the report table.
func (r StepResult) StateLabel() string {
	return strings.ToUpper(r.State.String())
}

// Warning is an advisory collected during the run that did not fail it.
type Warning struct {
	Source  string
	Message string
}

// Report accumulates step results, warnings and timing for one run.
// Recording is serialized so steps can report from verification goroutines.
type Report struct {
	mu sync.Mutex

	RunID      string
	Status     RunStatus
	StartedAt  gotime.Time
	FinishedAt gotime.Time

	results  []StepResult
	warnings []Warning
	failure  error
}

func NewReport(runID string, startedAt gotime.Time) *Report {
	return &Report{
		RunID:     runID,
		Status:    RunPending,
		StartedAt: startedAt,
	}
}

// RecordStep appends one step outcome.
func (r *Report) RecordStep(result StepResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, result)
}

// RecordWarning appends an advisory that will be echoed in the summary.
func (r *Report) RecordWarning(source, format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnings = append(r.warnings, Warning{Source: source, Message: fmt.Sprintf(format, args...)})
}

// Finish stamps the end time and final status. The first recorded failure
// wins; later calls cannot flip a failed run back to success.
func (r *Report) Finish(status RunStatus, finishedAt gotime.Time, failure error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.FinishedAt = finishedAt
	if r.Status == RunFailed || r.Status == RunAborted {
		return
	}
	r.Status = status
	if r.failure == nil {
		r.failure = failure
	}
}

// Results returns a copy of the recorded step outcomes.
func (r *Report) Results() []StepResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]StepResult, len(r.results))
	copy(out, r.results)
	return out
}

// Warnings returns a copy of the recorded advisories.
func (r *Report) Warnings() []Warning {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Warning, len(r.warnings))
	copy(out, r.warnings)
	return out
}

// Failure returns the error that failed the run, nil for clean runs.
func (r *Report) Failure() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.failure
}

// Elapsed is the wall time of the run; zero until Finish is called.
func (r *Report) Elapsed() gotime.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Counts tallies results by state for the summary line.
func (r *Report) Counts() (succeeded, failed, skipped int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, res := range r.results {
		switch res.State {
		case common.StateSuccess:
			succeeded++
		case common.StateFailed:
			failed++
		case common.StateSkipped:
			skipped++
		}
	}
	return succeeded, failed, skipped
}

// SummaryLine is the one-line closer under the report table.
func (r *Report) SummaryLine() string {
	succeeded, failed, skipped := r.Counts()
	return fmt.Sprintf("%s in %s: %d succeeded, %d failed, %d skipped, %d warning(s)",
		r.Status, time.HumanDur(r.Elapsed()), succeeded, failed, skipped, len(r.Warnings()))
}
