// Package verification is the final provisioning phase: smoke checks
// against the finished install.
package verification

import (
	"github.com/cloudenochcsis/Volatility-Script/module"
	"github.com/cloudenochcsis/Volatility-Script/step/smoke"
	"github.com/cloudenochcsis/Volatility-Script/task"
)

type VerificationModule struct {
	module.BaseModule
}

func NewVerificationModule() *VerificationModule {
	m := &VerificationModule{
		BaseModule: module.NewBaseModule(
			"verification",
			"verify the installed toolkit works end to end"),
	}

	checksTask := task.NewBaseTask("smoke checks", "run the post-install check battery")
	checksTask.AddStep(smoke.NewRunChecksStep())
	m.AddTask(&checksTask)

	return m
}
