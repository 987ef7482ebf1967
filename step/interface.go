package step

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/cloudenochcsis/Volatility-Script/runtime"
)

// Step is an individual unit of provisioning work within a Task. The task
// drives the lifecycle: Init once, then Precondition, Execute, Verify.
type Step interface {
	// Name returns the short name of the step.
	Name() string

	// Description returns a human-readable description of what the step does.
	Description() string

	// Fatal reports whether a failure of this step must stop the run.
	// Non-fatal steps degrade to a recorded warning.
	Fatal() bool

	// Init stores the runtime and scoped logger and validates the step can
	// run at all.
	Init(rt runtime.Runtime, logger *logrus.Entry) error

	// Precondition reports whether the step needs to run. False means the
	// step is skipped, which is a normal outcome, not a failure.
	Precondition(ctx context.Context) (bool, error)

	// Execute performs the step's action. The returned output is a short
	// human-readable result for the report.
	Execute(ctx context.Context) (output string, err error)

	// Verify confirms the action took effect. Runs only after a successful
	// Execute; a verification failure fails the step.
	Verify(ctx context.Context) error
}
