package module

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/cloudenochcsis/Volatility-Script/runtime"
	"github.com/cloudenochcsis/Volatility-Script/task"
)

// Module is a collection of tasks forming one phase of the provisioning
// run, e.g. the dependency installation phase.
type Module interface {
	// Name returns the short name of the module.
	Name() string

	// Description returns a human-readable description of what the module does.
	Description() string

	// Tasks returns the tasks this module will execute.
	Tasks() []task.Task

	// Init initializes the module and all its tasks.
	Init(rt runtime.Runtime, logger *logrus.Entry) error

	// Execute runs the module's tasks in order.
	Execute(ctx context.Context, rt runtime.Runtime, logger *logrus.Entry) error
}
