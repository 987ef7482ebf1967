package sysdeps

import (
	"context"
	"io"

	"github.com/cloudenochcsis/Volatility-Script/common"
	"github.com/cloudenochcsis/Volatility-Script/pkginstall"
	"github.com/cloudenochcsis/Volatility-Script/step"
)

// EnsurePipStep bootstraps pip for the legacy interpreter. Modern
// distributions ship no package manager for it, so pip comes from the
// upstream bootstrap script.
type EnsurePipStep struct {
	step.BaseStep
	depsLog io.Writer
	manager *pkginstall.PipManager
}

func NewEnsurePipStep(depsLog io.Writer) *EnsurePipStep {
	return &EnsurePipStep{
		BaseStep: step.NewBaseStep(
			"ensure pip",
			"bootstrap pip for the legacy interpreter",
			true),
		depsLog: depsLog,
	}
}

func (s *EnsurePipStep) pip() *pkginstall.PipManager {
	if s.manager == nil {
		s.manager = pkginstall.NewPipManager(
			s.Runtime.Executor(), s.Runtime.Target().Interpreter, s.depsLog)
	}
	return s.manager
}

// Precondition skips the bootstrap when the interpreter already has pip.
func (s *EnsurePipStep) Precondition(ctx context.Context) (bool, error) {
	interpreter := s.Runtime.Target().Interpreter
	if s.Runtime.Executor().LookPath(interpreter) == "" {
		return false, common.NewError(common.KindNotFound,
			"interpreter %s not found; system packages must install it first", interpreter)
	}

	hasPip, err := s.pip().HasPip(ctx)
	if err != nil {
		return false, err
	}
	return !hasPip, nil
}

func (s *EnsurePipStep) Execute(ctx context.Context) (string, error) {
	url := s.Runtime.Target().PipBootstrapURL
	s.Logger.Infof("bootstrapping pip from %s", url)
	if err := s.pip().Bootstrap(ctx, url); err != nil {
		return "", err
	}
	return "pip bootstrapped from " + url, nil
}

func (s *EnsurePipStep) Verify(ctx context.Context) error {
	hasPip, err := s.pip().HasPip(ctx)
	if err != nil {
		return err
	}
	if !hasPip {
		return common.NewError(common.KindVerificationFailed,
			"pip still unavailable for %s after bootstrap", s.Runtime.Target().Interpreter)
	}
	return nil
}
