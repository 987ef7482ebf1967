package common

import (
	"io/fs"
	"path/filepath"
)

const (
	AppName    = "volprovision"
	TmpDirBase = "/tmp/"

	// WorkDirEnv overrides the default working directory; the --work-dir
	// flag wins over both.
	WorkDirEnv = "VOLPROVISION_WORK_DIR"
)

// GetTmpDir returns the well-known temporary directory used for logs and
// downloaded artifacts.
func GetTmpDir() string {
	return filepath.Join(TmpDirBase, AppName) + "/"
}

// Well-known log file names under GetTmpDir, see logger.InitGlobalLogger.
const (
	InstallLogName = "install.log"
	DepsLogName    = "deps.log"
)

// Logger field keys, ordered by scope.
const (
	PipelineName = "Pipeline"
	ModuleName   = "Module"
	TaskName     = "Task"
	StepName     = "Step"
	CheckName    = "Check"
	RunID        = "RunID"
)

const (
	// FileMode0755 represents rwxr-xr-x
	FileMode0755 fs.FileMode = 0755
	// FileMode0644 represents rw-r--r--
	FileMode0644 fs.FileMode = 0644
	// FileMode0600 represents rw-------
	FileMode0600 fs.FileMode = 0600
	// FileMode0700 represents rwx------
	FileMode0700 fs.FileMode = 0700
)

// Fact keys shared between steps through the runtime facts cache.
const (
	FactEntryPoint    = "entrypoint.path"
	FactInstallDir    = "install.dir"
	FactBackupPath    = "backup.path"
	FactWrapperBackup = "backup.wrapper"
	FactWrapperPath   = "wrapper.path"
	FactLibyaraPath   = "libyara.path"
)

// Process exit codes. A fatal step failure and a missing-privilege
// precondition are distinguishable by exit code alone.
const (
	ExitSuccess          = 0
	ExitAborted          = 1
	ExitPermissionDenied = 2
)

// BackupSuffixFormat is the timestamp layout appended to renamed prior
// installations, e.g. "volatility_backup_20240131T154503".
const BackupSuffixFormat = "20060102T150405"

// OperationState tracks the lifecycle of a provisioning step.
type OperationState int

const (
	StatePending OperationState = iota
	StateRunning
	StateSuccess
	StateFailed
	StateSkipped
)

func (s OperationState) String() string {
	switch s {
	case StatePending:
		return "Pending"
	case StateRunning:
		return "Running"
	case StateSuccess:
		return "Success"
	case StateFailed:
		return "Failed"
	case StateSkipped:
		return "Skipped"
	default:
		return "Unknown"
	}
}
