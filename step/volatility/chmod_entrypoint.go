package volatility

import (
	"context"
	"os"

	"github.com/pkg/errors"

	"github.com/cloudenochcsis/Volatility-Script/common"
	"github.com/cloudenochcsis/Volatility-Script/file"
	"github.com/cloudenochcsis/Volatility-Script/step"
)

// ChmodEntryPointStep marks the entry point executable. Upstream archives
// do not always preserve the execute bit.
type ChmodEntryPointStep struct {
	step.BaseStep
}

func NewChmodEntryPointStep() *ChmodEntryPointStep {
	return &ChmodEntryPointStep{
		BaseStep: step.NewBaseStep(
			"chmod entry point",
			"mark the toolkit entry point executable",
			true),
	}
}

func (s *ChmodEntryPointStep) entryPoint() (string, error) {
	entryPoint, ok := s.Runtime.Facts().Get(common.FactEntryPoint)
	if !ok {
		return "", common.NewError(common.KindNotFound,
			"entry point path not recorded; clone step must run first")
	}
	return entryPoint, nil
}

// Precondition skips when the execute bit is already set.
func (s *ChmodEntryPointStep) Precondition(ctx context.Context) (bool, error) {
	entryPoint, err := s.entryPoint()
	if err != nil {
		return false, err
	}
	executable, err := file.IsExecutable(entryPoint)
	if err != nil {
		return false, err
	}
	return !executable, nil
}

func (s *ChmodEntryPointStep) Execute(ctx context.Context) (string, error) {
	entryPoint, err := s.entryPoint()
	if err != nil {
		return "", err
	}
	if err := os.Chmod(entryPoint, common.FileMode0755); err != nil {
		return "", errors.Wrapf(err, "could not chmod %s", entryPoint)
	}
	return entryPoint + " marked executable", nil
}

func (s *ChmodEntryPointStep) Verify(ctx context.Context) error {
	entryPoint, err := s.entryPoint()
	if err != nil {
		return err
	}
	executable, err := file.IsExecutable(entryPoint)
	if err != nil {
		return err
	}
	if !executable {
		return common.NewError(common.KindVerificationFailed,
			"%s still not executable", entryPoint)
	}
	return nil
}
