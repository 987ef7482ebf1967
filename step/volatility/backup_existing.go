// Package volatility contains the steps that fetch, patch and prepare the
// toolkit source tree itself.
package volatility

import (
	"context"

	"github.com/cloudenochcsis/Volatility-Script/common"
	"github.com/cloudenochcsis/Volatility-Script/file"
	"github.com/cloudenochcsis/Volatility-Script/step"
)

// BackupExistingStep moves a previous install aside instead of deleting it,
// so a broken re-provision never destroys the only working copy.
type BackupExistingStep struct {
	step.BaseStep
}

func NewBackupExistingStep() *BackupExistingStep {
	return &BackupExistingStep{
		BaseStep: step.NewBaseStep(
			"backup existing install",
			"move a previous toolkit install aside with a timestamped suffix",
			true),
	}
}

// Precondition skips when there is nothing to back up.
func (s *BackupExistingStep) Precondition(ctx context.Context) (bool, error) {
	return file.PathExists(s.Runtime.Target().InstallDir)
}

func (s *BackupExistingStep) Execute(ctx context.Context) (string, error) {
	backupPath, err := file.Backup(s.Runtime.Target().InstallDir, s.Runtime.Clock())
	if err != nil {
		return "", err
	}
	if backupPath == "" {
		return "nothing to back up", nil
	}
	s.Runtime.Facts().Set(common.FactBackupPath, backupPath)
	s.Logger.Infof("previous install moved to %s", backupPath)
	return "moved to " + backupPath, nil
}

func (s *BackupExistingStep) Verify(ctx context.Context) error {
	exists, err := file.PathExists(s.Runtime.Target().InstallDir)
	if err != nil {
		return err
	}
	if exists {
		return common.NewError(common.KindVerificationFailed,
			"%s still present after backup", s.Runtime.Target().InstallDir)
	}
	return nil
}
