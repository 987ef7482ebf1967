// Package toolkit is the provisioning phase that places the toolkit source
// on disk at the pinned revision and prepares its entry point.
package toolkit

import (
	"io"

	"github.com/cloudenochcsis/Volatility-Script/module"
	"github.com/cloudenochcsis/Volatility-Script/step/volatility"
	"github.com/cloudenochcsis/Volatility-Script/task"
)

type ToolkitModule struct {
	module.BaseModule
}

func NewToolkitModule(teeLog io.Writer) *ToolkitModule {
	m := &ToolkitModule{
		BaseModule: module.NewBaseModule(
			"toolkit",
			"fetch the toolkit source and prepare its entry point"),
	}

	fetchTask := task.NewBaseTask("fetch source", "back up any previous install and clone the pinned revision")
	fetchTask.AddStep(volatility.NewBackupExistingStep())
	fetchTask.AddStep(volatility.NewCloneToolkitStep(teeLog))
	m.AddTask(&fetchTask)

	prepareTask := task.NewBaseTask("prepare entry point", "pin the interpreter directive and mark the entry point executable")
	prepareTask.AddStep(volatility.NewPatchEntryPointStep())
	prepareTask.AddStep(volatility.NewChmodEntryPointStep())
	m.AddTask(&prepareTask)

	return m
}
