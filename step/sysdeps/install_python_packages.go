package sysdeps

import (
	"context"
	"io"

	"github.com/cloudenochcsis/Volatility-Script/pkginstall"
	"github.com/cloudenochcsis/Volatility-Script/step"
)

// InstallPythonPackagesStep installs the toolkit's interpreter libraries
// with the same criticality policy as the system packages.
type InstallPythonPackagesStep struct {
	step.BaseStep
	depsLog io.Writer
}

func NewInstallPythonPackagesStep(depsLog io.Writer) *InstallPythonPackagesStep {
	return &InstallPythonPackagesStep{
		BaseStep: step.NewBaseStep(
			"install python packages",
			"install the interpreter libraries the toolkit imports",
			true),
		depsLog: depsLog,
	}
}

func (s *InstallPythonPackagesStep) Execute(ctx context.Context) (string, error) {
	manager := pkginstall.NewPipManager(
		s.Runtime.Executor(), s.Runtime.Target().Interpreter, s.depsLog)
	return installAll(ctx, s.Runtime, s.Logger, manager, s.Runtime.Target().PythonPackages, s.Name())
}
