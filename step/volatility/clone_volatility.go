package volatility

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/cloudenochcsis/Volatility-Script/common"
	"github.com/cloudenochcsis/Volatility-Script/fetch"
	"github.com/cloudenochcsis/Volatility-Script/file"
	"github.com/cloudenochcsis/Volatility-Script/step"
)

// CloneToolkitStep clones the toolkit repository and pins the configured
// revision.
type CloneToolkitStep struct {
	step.BaseStep
	teeLog io.Writer
}

func NewCloneToolkitStep(teeLog io.Writer) *CloneToolkitStep {
	return &CloneToolkitStep{
		BaseStep: step.NewBaseStep(
			"clone toolkit",
			"clone the toolkit repository at the pinned revision",
			true),
		teeLog: teeLog,
	}
}

func (s *CloneToolkitStep) Precondition(ctx context.Context) (bool, error) {
	if s.Runtime.Executor().LookPath("git") == "" {
		return false, common.NewError(common.KindNotFound,
			"git not found on PATH; system packages must install it first")
	}
	return true, nil
}

func (s *CloneToolkitStep) Execute(ctx context.Context) (string, error) {
	target := s.Runtime.Target()

	fetcher := fetch.NewGitFetcher(s.Runtime.Executor(), target.RepoURL, target.Revision, s.teeLog)
	if err := fetcher.Fetch(ctx, target.InstallDir); err != nil {
		return "", err
	}

	s.Runtime.Facts().Set(common.FactInstallDir, target.InstallDir)
	return fmt.Sprintf("%s @ %s -> %s", target.RepoURL, target.Revision, target.InstallDir), nil
}

// Verify confirms the entry point arrived with the clone and records its
// path for the patch and wrapper steps.
func (s *CloneToolkitStep) Verify(ctx context.Context) error {
	target := s.Runtime.Target()
	entryPoint := filepath.Join(target.InstallDir, target.EntryPoint)

	exists, err := file.PathExists(entryPoint)
	if err != nil {
		return err
	}
	if !exists {
		return common.NewError(common.KindVerificationFailed,
			"%s missing after clone of %s", entryPoint, target.RepoURL)
	}

	s.Runtime.Facts().Set(common.FactEntryPoint, entryPoint)
	return nil
}
