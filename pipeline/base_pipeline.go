package pipeline

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/cloudenochcsis/Volatility-Script/common"
	"github.com/cloudenochcsis/Volatility-Script/hook"
	"github.com/cloudenochcsis/Volatility-Script/logger"
	"github.com/cloudenochcsis/Volatility-Script/module"
	"github.com/cloudenochcsis/Volatility-Script/pipeline/ending"
	"github.com/cloudenochcsis/Volatility-Script/runtime"
)

// BasePipeline provides the standard Pipeline implementation. Concrete
// pipelines embed it and add their modules at construction time.
type BasePipeline struct {
	name        string
	description string
	modules     []module.Module
}

// NewBasePipeline creates a new BasePipeline. Modules are added via AddModule.
func NewBasePipeline(name, description string) BasePipeline {
	return BasePipeline{
		name:        name,
		description: description,
		modules:     make([]module.Module, 0),
	}
}

func (bp *BasePipeline) Name() string {
	return bp.name
}

func (bp *BasePipeline) Description() string {
	return bp.description
}

// Modules returns a copy of the pipeline's module list.
func (bp *BasePipeline) Modules() []module.Module {
	m := make([]module.Module, len(bp.modules))
	copy(m, bp.modules)
	return m
}

// AddModule appends a module to the pipeline's execution list.
func (bp *BasePipeline) AddModule(m module.Module) {
	bp.modules = append(bp.modules, m)
}

// Start initializes and executes every module, then finalizes the report.
// The run hook guarantees a panicking module still surfaces as an error
// instead of crashing the process.
func (bp *BasePipeline) Start(ctx context.Context, rt runtime.Runtime) error {
	log := logger.Log.ForPipeline(bp.name).WithField(common.RunID, rt.RunID())
	err := hook.Call(&runHook{pipeline: bp, ctx: ctx, rt: rt, log: log})

	report := rt.Report()
	switch {
	case err == nil:
		report.Finish(ending.RunSucceeded, rt.Clock().Now(), nil)
	case report.Status == ending.RunPending:
		// recovered panic, Catch never saw it
		report.Finish(ending.RunFailed, rt.Clock().Now(), err)
	}
	return err
}

// runHook adapts a pipeline run to the try/catch/finally protocol.
type runHook struct {
	pipeline *BasePipeline
	ctx      context.Context
	rt       runtime.Runtime
	log      *logrus.Entry
}

func (h *runHook) Try() error {
	h.log.Infof("starting pipeline: %s", h.pipeline.description)

	for _, mod := range h.pipeline.modules {
		moduleLog := h.log.WithField(common.ModuleName, mod.Name())
		if err := mod.Init(h.rt, moduleLog); err != nil {
			return errors.Wrapf(err, "pipeline %s failed to initialize module %s",
				h.pipeline.name, mod.Name())
		}
	}

	for _, mod := range h.pipeline.modules {
		if h.rt.Interrupted() {
			return common.NewError(common.KindInterrupted,
				"pipeline %s interrupted before module %s", h.pipeline.name, mod.Name())
		}
		moduleLog := h.log.WithField(common.ModuleName, mod.Name())
		if err := mod.Execute(h.ctx, h.rt, moduleLog); err != nil {
			return err
		}
	}
	return nil
}

func (h *runHook) Catch(err error) error {
	status := ending.RunFailed
	if common.IsKind(err, common.KindInterrupted) || h.rt.Interrupted() {
		status = ending.RunAborted
	}
	h.rt.Report().Finish(status, h.rt.Clock().Now(), err)
	h.log.Errorf("pipeline failed: %v", err)
	return err
}

func (h *runHook) Finally() {
	h.log.Infof("pipeline %s finished with %d step result(s)",
		h.pipeline.name, len(h.rt.Report().Results()))
}
