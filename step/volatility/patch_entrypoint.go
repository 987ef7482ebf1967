package volatility

import (
	"context"

	"github.com/cloudenochcsis/Volatility-Script/common"
	"github.com/cloudenochcsis/Volatility-Script/patch"
	"github.com/cloudenochcsis/Volatility-Script/step"
)

// PatchEntryPointStep rewrites the entry point's interpreter line so the
// script never resolves to the system default python, which is python 3 on
// every modern distribution.
type PatchEntryPointStep struct {
	step.BaseStep
}

func NewPatchEntryPointStep() *PatchEntryPointStep {
	return &PatchEntryPointStep{
		BaseStep: step.NewBaseStep(
			"patch entry point",
			"pin the entry point's interpreter directive to the legacy interpreter",
			true),
	}
}

func (s *PatchEntryPointStep) entryPoint() (string, error) {
	entryPoint, ok := s.Runtime.Facts().Get(common.FactEntryPoint)
	if !ok {
		return "", common.NewError(common.KindNotFound,
			"entry point path not recorded; clone step must run first")
	}
	return entryPoint, nil
}

func (s *PatchEntryPointStep) Execute(ctx context.Context) (string, error) {
	entryPoint, err := s.entryPoint()
	if err != nil {
		return "", err
	}

	target := s.Runtime.Target()
	changed, err := patch.PatchFirstLine(entryPoint, target.ShebangPattern, target.ShebangReplacement)
	if err != nil {
		return "", err
	}
	if !changed {
		s.Logger.Infof("interpreter line of %s already correct", entryPoint)
		return "already pinned", nil
	}
	return "rewrote interpreter line of " + entryPoint, nil
}

func (s *PatchEntryPointStep) Verify(ctx context.Context) error {
	entryPoint, err := s.entryPoint()
	if err != nil {
		return err
	}
	return patch.VerifyFirstLine(entryPoint, s.Runtime.Target().ShebangReplacement)
}
