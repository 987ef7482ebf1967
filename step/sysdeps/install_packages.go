// Package sysdeps contains the steps that put the system and interpreter
// dependencies of the toolkit in place.
package sysdeps

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/cloudenochcsis/Volatility-Script/common"
	"github.com/cloudenochcsis/Volatility-Script/config"
	"github.com/cloudenochcsis/Volatility-Script/pkginstall"
	"github.com/cloudenochcsis/Volatility-Script/runtime"
	"github.com/cloudenochcsis/Volatility-Script/step"
)

// InstallSystemPackagesStep installs the OS-level packages. Critical
// packages abort the run on failure; the rest degrade to warnings.
type InstallSystemPackagesStep struct {
	step.BaseStep
	depsLog io.Writer
}

func NewInstallSystemPackagesStep(depsLog io.Writer) *InstallSystemPackagesStep {
	return &InstallSystemPackagesStep{
		BaseStep: step.NewBaseStep(
			"install system packages",
			"install OS packages required to build and run the toolkit",
			true),
		depsLog: depsLog,
	}
}

// Precondition requires apt-get; there is no fallback package manager.
func (s *InstallSystemPackagesStep) Precondition(ctx context.Context) (bool, error) {
	if s.Runtime.Executor().LookPath("apt-get") == "" {
		return false, common.NewError(common.KindNotFound,
			"apt-get not found on PATH; only apt-based systems are supported")
	}
	return true, nil
}

func (s *InstallSystemPackagesStep) Execute(ctx context.Context) (string, error) {
	manager := pkginstall.NewAptManager(s.Runtime.Executor(), s.depsLog)

	s.Logger.Info("refreshing package index")
	if err := manager.UpdateIndex(ctx); err != nil {
		return "", err
	}

	return installAll(ctx, s.Runtime, s.Logger, manager, s.Runtime.Target().SystemPackages, s.Name())
}

// installAll drives EnsureInstalled over a package list, applying the
// per-package criticality policy. Shared with the pip packages step.
func installAll(ctx context.Context, rt runtime.Runtime, logger *logrus.Entry,
	manager pkginstall.Manager, packages []config.PackageSpec, source string) (string, error) {

	var installed, present int
	var failed []string

	for _, pkg := range packages {
		if rt.Interrupted() {
			return "", common.NewError(common.KindInterrupted,
				"interrupted before installing %s", pkg.Name)
		}

		outcome, err := pkginstall.EnsureInstalled(ctx, manager, pkg.Name)
		switch {
		case err == nil && outcome == pkginstall.OutcomeAlreadyPresent:
			logger.Infof("%s already present", pkg.Name)
			present++
		case err == nil:
			logger.Infof("%s installed", pkg.Name)
			installed++
		case pkg.Critical:
			return "", err
		default:
			logger.Warnf("optional package %s failed: %v", pkg.Name, err)
			rt.Report().RecordWarning(source, "optional package %s failed: %v", pkg.Name, err)
			failed = append(failed, pkg.Name)
		}
	}

	summary := fmt.Sprintf("%d installed, %d already present", installed, present)
	if len(failed) > 0 {
		summary += fmt.Sprintf(", optional failures: %s", strings.Join(failed, ", "))
	}
	return summary, nil
}
