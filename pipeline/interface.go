package pipeline

import (
	"context"

	"github.com/cloudenochcsis/Volatility-Script/module"
	"github.com/cloudenochcsis/Volatility-Script/runtime"
)

// Pipeline is a high-level workflow orchestrating a series of modules
// against one runtime.
type Pipeline interface {
	Name() string
	Description() string

	// Modules returns the modules the pipeline will execute, in order.
	Modules() []module.Module

	// Start runs the whole pipeline and finalizes the runtime's report.
	// The returned error is the run's failure, nil for clean runs.
	Start(ctx context.Context, rt runtime.Runtime) error
}
