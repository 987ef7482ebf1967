// Package smoke contains the post-install verification step.
package smoke

import (
	"context"
	"fmt"

	"github.com/cloudenochcsis/Volatility-Script/common"
	"github.com/cloudenochcsis/Volatility-Script/step"
	"github.com/cloudenochcsis/Volatility-Script/verify"
)

// RunChecksStep executes the full smoke battery against the finished
// install. Critical check failures fail the run; advisory ones are folded
// into the report as warnings.
type RunChecksStep struct {
	step.BaseStep
}

func NewRunChecksStep() *RunChecksStep {
	return &RunChecksStep{
		BaseStep: step.NewBaseStep(
			"run smoke checks",
			"verify the installed toolkit actually works",
			true),
	}
}

func (s *RunChecksStep) Execute(ctx context.Context) (string, error) {
	target := s.Runtime.Target()
	exec := s.Runtime.Executor()

	entryPoint, ok := s.Runtime.Facts().Get(common.FactEntryPoint)
	if !ok {
		return "", common.NewError(common.KindNotFound,
			"entry point path not recorded; earlier steps must resolve it")
	}
	wrapperPath := s.Runtime.Facts().GetOrDefault(common.FactWrapperPath, target.WrapperPath)

	checks := []verify.Check{
		verify.DirectInvocation(exec, target.Interpreter, entryPoint),
		verify.WrapperInvocation(exec, wrapperPath),
		verify.PluginPresence(exec, target.Interpreter, entryPoint, target.ExpectedPlugins),
		verify.YaraVersion(exec, target.Interpreter),
		verify.CombinedImports(exec, target.Interpreter, target.ImportModules),
	}
	checks = append(checks, verify.ImportBattery(exec, target.Interpreter, target.ImportModules)...)

	report, err := verify.RunChecks(ctx, checks)
	for _, warning := range report.Warnings() {
		s.Runtime.Report().RecordWarning(warning.Name, "%v", warning.Err)
	}
	if err != nil {
		return "", err
	}

	passed := 0
	for _, res := range report.Results {
		if res.Passed() {
			passed++
		}
	}
	return fmt.Sprintf("%d/%d checks passed, %d warning(s)",
		passed, len(report.Results), len(report.Warnings())), nil
}
