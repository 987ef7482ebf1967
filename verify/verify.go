// Package verify runs the post-install smoke checks and collects their
// outcomes, keeping critical failures apart from advisory ones.
package verify

import (
	"context"

	"github.com/cloudenochcsis/Volatility-Script/common"
	"github.com/cloudenochcsis/Volatility-Script/logger"
)

// Check is one smoke check. Non-critical checks produce warnings only.
type Check struct {
	Name     string
	Critical bool
	Run      func(ctx context.Context) error
}

// CheckResult pairs a check with its outcome.
type CheckResult struct {
	Name     string
	Critical bool
	Err      error
}

func (r CheckResult) Passed() bool {
	return r.Err == nil
}

// VerificationReport aggregates check results for the run report.
type VerificationReport struct {
	Results []CheckResult
}

// Passed reports whether every critical check succeeded.
func (r *VerificationReport) Passed() bool {
	for _, res := range r.Results {
		if res.Critical && res.Err != nil {
			return false
		}
	}
	return true
}

// Warnings returns the failed non-critical results.
func (r *VerificationReport) Warnings() []CheckResult {
	var warnings []CheckResult
	for _, res := range r.Results {
		if !res.Critical && res.Err != nil {
			warnings = append(warnings, res)
		}
	}
	return warnings
}

// CriticalFailures returns the failed critical results.
func (r *VerificationReport) CriticalFailures() []CheckResult {
	var failures []CheckResult
	for _, res := range r.Results {
		if res.Critical && res.Err != nil {
			failures = append(failures, res)
		}
	}
	return failures
}

// RunChecks executes every check in order, never short-circuiting: a failed
// check still lets the remaining checks report their state. The returned
// error is non-nil only when a critical check failed.
func RunChecks(ctx context.Context, checks []Check) (*VerificationReport, error) {
	report := &VerificationReport{}
	for _, check := range checks {
		if err := ctx.Err(); err != nil {
			return report, common.WrapError(err, common.KindInterrupted,
				"verification interrupted before %s", check.Name)
		}

		entry := logger.Log.ForCheck(check.Name)
		err := check.Run(ctx)
		result := CheckResult{Name: check.Name, Critical: check.Critical, Err: err}
		report.Results = append(report.Results, result)

		switch {
		case err == nil:
			entry.Info("check passed")
		case check.Critical:
			entry.Errorf("check failed: %v", err)
		default:
			entry.Warnf("check failed (non-critical): %v", err)
		}
	}

	if failures := report.CriticalFailures(); len(failures) > 0 {
		return report, common.NewError(common.KindVerificationFailed,
			"%d critical verification check(s) failed, first: %s", len(failures), failures[0].Name)
	}
	return report, nil
}
