package pkginstall

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/cloudenochcsis/Volatility-Script/executor"
)

const aptTimeout = 10 * time.Minute

// AptManager installs Debian packages non-interactively. Installer output is
// teed to the dependency log so a failed apt run can be diagnosed after the
// fact.
type AptManager struct {
	exec    executor.Executor
	depsLog io.Writer
}

func NewAptManager(exec executor.Executor, depsLog io.Writer) *AptManager {
	return &AptManager{exec: exec, depsLog: depsLog}
}

func (m *AptManager) Name() string {
	return "apt"
}

// IsInstalled asks dpkg for the package state rather than parsing apt output;
// dpkg-query exits non-zero for unknown packages, which is a clean "absent".
func (m *AptManager) IsInstalled(ctx context.Context, pkg string) (bool, error) {
	res, err := m.exec.Run(ctx, "dpkg-query", []string{"-W", "-f=${Status}", pkg}, executor.Options{})
	if err != nil {
		return false, err
	}
	if res.ExitCode != 0 {
		return false, nil
	}
	return strings.Contains(res.Stdout, "install ok installed"), nil
}

func (m *AptManager) Install(ctx context.Context, pkg string) error {
	opts := executor.Options{
		Env:     []string{"DEBIAN_FRONTEND=noninteractive"},
		Timeout: aptTimeout,
		Tee:     m.depsLog,
	}
	res, err := m.exec.Run(ctx, "apt-get", []string{"install", "-y", pkg}, opts)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return classifyInstallFailure("apt-get", pkg, res.ExitCode, res.Combined())
	}
	return nil
}

// UpdateIndex refreshes the apt package index once before the install loop.
func (m *AptManager) UpdateIndex(ctx context.Context) error {
	opts := executor.Options{
		Env:     []string{"DEBIAN_FRONTEND=noninteractive"},
		Timeout: aptTimeout,
		Tee:     m.depsLog,
	}
	res, err := m.exec.Run(ctx, "apt-get", []string{"update"}, opts)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return classifyInstallFailure("apt-get update", "package index", res.ExitCode, res.Combined())
	}
	return nil
}
