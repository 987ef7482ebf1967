// Package wrapping is the provisioning phase that exposes the installed
// toolkit on PATH through the generated launcher.
package wrapping

import (
	"github.com/cloudenochcsis/Volatility-Script/module"
	"github.com/cloudenochcsis/Volatility-Script/step/wrap"
	"github.com/cloudenochcsis/Volatility-Script/task"
)

type WrappingModule struct {
	module.BaseModule
}

func NewWrappingModule() *WrappingModule {
	m := &WrappingModule{
		BaseModule: module.NewBaseModule(
			"wrapping",
			"install the system-wide launcher for the toolkit"),
	}

	wrapperTask := task.NewBaseTask("install launcher", "resolve the entry point and write the launcher script")
	wrapperTask.AddStep(wrap.NewGenerateWrapperStep())
	m.AddTask(&wrapperTask)

	return m
}
