package task

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/cloudenochcsis/Volatility-Script/runtime"
	"github.com/cloudenochcsis/Volatility-Script/step"
)

// Task groups an ordered list of steps into a unit of work within a Module.
type Task interface {
	// Name returns the unique name of the task.
	Name() string

	// Description provides a human-readable summary of what the task does.
	Description() string

	// Steps returns the steps the task will execute, in order.
	Steps() []step.Step

	// Init initializes the task and all its steps.
	Init(rt runtime.Runtime, logger *logrus.Entry) error

	// Execute drives each step through its lifecycle, recording every
	// outcome on the runtime's report.
	Execute(ctx context.Context, rt runtime.Runtime, logger *logrus.Entry) error
}
