// Package dependencies is the provisioning phase that installs everything
// the toolkit needs before its own source arrives: OS packages, pip for the
// legacy interpreter, the interpreter libraries and the yara library link.
package dependencies

import (
	"io"

	"github.com/cloudenochcsis/Volatility-Script/module"
	"github.com/cloudenochcsis/Volatility-Script/step/sysdeps"
	"github.com/cloudenochcsis/Volatility-Script/task"
)

type DependenciesModule struct {
	module.BaseModule
}

// NewDependenciesModule assembles the dependency phase. Installer output is
// teed to depsLog for postmortem diagnosis.
func NewDependenciesModule(depsLog io.Writer) *DependenciesModule {
	m := &DependenciesModule{
		BaseModule: module.NewBaseModule(
			"dependencies",
			"install system and interpreter dependencies"),
	}

	systemTask := task.NewBaseTask("system packages", "install OS-level build and runtime packages")
	systemTask.AddStep(sysdeps.NewInstallSystemPackagesStep(depsLog))
	m.AddTask(&systemTask)

	pythonTask := task.NewBaseTask("interpreter packages", "bootstrap pip and install interpreter libraries")
	pythonTask.AddStep(sysdeps.NewEnsurePipStep(depsLog))
	pythonTask.AddStep(sysdeps.NewInstallPythonPackagesStep(depsLog))
	pythonTask.AddStep(sysdeps.NewLinkYaraStep())
	m.AddTask(&pythonTask)

	return m
}
