// Package wrap contains the step that exposes the toolkit on PATH.
package wrap

import (
	"context"

	"github.com/cloudenochcsis/Volatility-Script/common"
	"github.com/cloudenochcsis/Volatility-Script/file"
	"github.com/cloudenochcsis/Volatility-Script/step"
	"github.com/cloudenochcsis/Volatility-Script/util"
	"github.com/cloudenochcsis/Volatility-Script/wrapper"
)

// GenerateWrapperStep resolves the installed entry point and writes the
// launcher script at the fixed wrapper path. An existing wrapper is moved
// aside first, never overwritten in place.
type GenerateWrapperStep struct {
	step.BaseStep
}

func NewGenerateWrapperStep() *GenerateWrapperStep {
	return &GenerateWrapperStep{
		BaseStep: step.NewBaseStep(
			"generate wrapper",
			"install the launcher script that runs the toolkit from PATH",
			true),
	}
}

func (s *GenerateWrapperStep) Execute(ctx context.Context) (string, error) {
	target := s.Runtime.Target()

	// Prefer the path the clone step recorded; fall back to searching when
	// provisioning against a pre-existing install.
	entryPoint, ok := s.Runtime.Facts().Get(common.FactEntryPoint)
	if !ok {
		locator := wrapper.NewLocator(target.EntryPoint, target.CandidateLocations, target.SearchRoots)
		located, err := locator.Locate(ctx)
		if err != nil {
			return "", err
		}
		entryPoint = located
		s.Runtime.Facts().Set(common.FactEntryPoint, entryPoint)
	}

	backupPath, err := file.Backup(target.WrapperPath, s.Runtime.Clock())
	if err != nil {
		return "", err
	}
	if backupPath != "" {
		s.Logger.Infof("previous wrapper moved to %s", backupPath)
		s.Runtime.Facts().Set(common.FactWrapperBackup, backupPath)
	}

	// The freshly resolved path goes first so the launcher finds this
	// install before any stale candidate.
	spec := wrapper.LauncherSpec{
		Interpreter: target.Interpreter,
		EntryPoint:  target.EntryPoint,
		Candidates:  util.UniqueStrings(append([]string{entryPoint}, target.CandidateLocations...)),
		SearchRoots: target.SearchRoots,
	}
	generator := wrapper.NewGenerator(s.Runtime.Executor(), target.WrapperPath)
	if err := generator.Generate(spec); err != nil {
		return "", err
	}

	s.Runtime.Facts().Set(common.FactWrapperPath, target.WrapperPath)
	return target.WrapperPath + " -> " + entryPoint, nil
}

func (s *GenerateWrapperStep) Verify(ctx context.Context) error {
	wrapperPath := s.Runtime.Target().WrapperPath
	executable, err := file.IsExecutable(wrapperPath)
	if err != nil {
		return err
	}
	if !executable {
		return common.NewError(common.KindVerificationFailed,
			"%s missing or not executable after generation", wrapperPath)
	}
	return nil
}
