package ending

import (
	"bytes"
	"testing"
	gotime "time"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/cloudenochcsis/Volatility-Script/common"
)

func TestReportCountsAndSummary(t *testing.T) {
	clock := clockwork.NewFakeClockAt(gotime.Date(2024, 5, 1, 12, 0, 0, 0, gotime.UTC))
	report := NewReport("run-1", clock.Now())

	report.RecordStep(StepResult{Module: "dependencies", Step: "install system packages", State: common.StateSuccess})
	report.RecordStep(StepResult{Module: "toolkit", Step: "backup existing install", State: common.StateSkipped})
	report.RecordStep(StepResult{Module: "toolkit", Step: "clone toolkit", State: common.StateFailed, Err: errors.New("clone failed")})
	report.RecordWarning("yara binding", "import yara failed")

	clock.Advance(90 * gotime.Second)
	report.Finish(RunFailed, clock.Now(), errors.New("clone failed"))

	succeeded, failed, skipped := report.Counts()
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, failed)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, 90*gotime.Second, report.Elapsed())
	assert.Contains(t, report.SummaryLine(), "FAILED")
	assert.Contains(t, report.SummaryLine(), "1 warning(s)")
}

func TestReportFinishDoesNotOverwriteFailure(t *testing.T) {
	now := gotime.Now()
	report := NewReport("run-2", now)

	report.Finish(RunFailed, now, errors.New("boom"))
	report.Finish(RunSucceeded, now.Add(gotime.Second), nil)

	assert.Equal(t, RunFailed, report.Status)
	assert.EqualError(t, report.Failure(), "boom")
}

func TestRenderIncludesStatesAndWarnings(t *testing.T) {
	now := gotime.Now()
	report := NewReport("run-3", now)
	report.RecordStep(StepResult{Module: "wrapping", Step: "generate wrapper", State: common.StateSuccess, Output: "/usr/local/bin/vol.py"})
	report.RecordStep(StepResult{Module: "verification", Step: "run smoke checks", State: common.StateFailed, Err: errors.New("2 checks failed")})
	report.RecordWarning("yara binding", "libyara missing")
	report.Finish(RunFailed, now.Add(5*gotime.Second), errors.New("2 checks failed"))

	var buf bytes.Buffer
	assert.NoError(t, Render(&buf, report))

	out := buf.String()
	assert.Contains(t, out, "generate wrapper")
	assert.Contains(t, out, "SUCCESS")
	assert.Contains(t, out, "FAILED")
	assert.Contains(t, out, "libyara missing")
}
