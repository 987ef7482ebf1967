package task

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/cloudenochcsis/Volatility-Script/common"
	"github.com/cloudenochcsis/Volatility-Script/pipeline/ending"
	"github.com/cloudenochcsis/Volatility-Script/runtime"
	"github.com/cloudenochcsis/Volatility-Script/step"
)

// BaseTask provides the standard Task implementation. Concrete tasks embed
// it and add their steps at construction time.
type BaseTask struct {
	name        string
	description string
	moduleName  string
	steps       []step.Step
}

// NewBaseTask creates a new BaseTask. Steps are added via AddStep.
func NewBaseTask(name, description string) BaseTask {
	return BaseTask{
		name:        name,
		description: description,
		steps:       make([]step.Step, 0),
	}
}

func (bt *BaseTask) Name() string {
	return bt.name
}

func (bt *BaseTask) Description() string {
	return bt.description
}

// SetModuleName records the owning module for report attribution.
func (bt *BaseTask) SetModuleName(name string) {
	bt.moduleName = name
}

// Steps returns a copy of the task's step list.
func (bt *BaseTask) Steps() []step.Step {
	s := make([]step.Step, len(bt.steps))
	copy(s, bt.steps)
	return s
}

// AddStep appends a step to the task's execution list.
func (bt *BaseTask) AddStep(s step.Step) {
	bt.steps = append(bt.steps, s)
}

// Init initializes all added steps.
func (bt *BaseTask) Init(rt runtime.Runtime, log *logrus.Entry) error {
	for i, s := range bt.steps {
		stepLog := log.WithField(common.StepName, s.Name())
		if err := s.Init(rt, stepLog); err != nil {
			return errors.Wrapf(err, "failed to initialize step %s (%d/%d) in task %s",
				s.Name(), i+1, len(bt.steps), bt.name)
		}
	}
	return nil
}

// Execute runs the steps in order. Each step moves through the precondition,
// execute, verify lifecycle and its outcome lands on the run report. A
// fatal step failure halts the task unless IgnoreError is set; non-fatal
// failures always degrade to warnings. An interrupt request stops the task
// between steps, never mid-step.
func (bt *BaseTask) Execute(ctx context.Context, rt runtime.Runtime, log *logrus.Entry) error {
	for i, currentStep := range bt.steps {
		stepLog := log.WithFields(logrus.Fields{
			common.StepName: currentStep.Name(),
			"step_index":    fmt.Sprintf("%d/%d", i+1, len(bt.steps)),
		})

		if rt.Interrupted() {
			stepLog.Warn("interrupt requested, not starting step")
			interrupted := common.NewError(common.KindInterrupted,
				"task %s interrupted before step %s", bt.name, currentStep.Name())
			rt.Report().RecordStep(ending.StepResult{
				Module: bt.moduleName,
				Task:   bt.name,
				Step:   currentStep.Name(),
				State:  common.StateFailed,
				Err:    interrupted,
			})
			return interrupted
		}

		result := bt.runStep(ctx, rt, stepLog, currentStep)
		rt.Report().RecordStep(result)

		if result.Err == nil {
			continue
		}
		if !currentStep.Fatal() {
			stepLog.Warnf("non-fatal step failed: %v", result.Err)
			rt.Report().RecordWarning(currentStep.Name(), "%v", result.Err)
			continue
		}
		if rt.IgnoreError() {
			stepLog.Warnf("step failed but errors are ignored: %v", result.Err)
			continue
		}
		stepLog.Errorf("step failed: %v", result.Err)
		return errors.Wrapf(result.Err, "task %s failed at step %s", bt.name, currentStep.Name())
	}
	return nil
}

// runStep drives one step through its lifecycle and builds its result.
func (bt *BaseTask) runStep(ctx context.Context, rt runtime.Runtime, log *logrus.Entry, s step.Step) ending.StepResult {
	result := ending.StepResult{
		Module: bt.moduleName,
		Task:   bt.name,
		Step:   s.Name(),
	}
	started := rt.Clock().Now()
	finish := func(state common.OperationState) ending.StepResult {
		result.State = state
		result.Elapsed = rt.Clock().Now().Sub(started)
		return result
	}

	run, err := s.Precondition(ctx)
	if err != nil {
		result.Err = errors.Wrapf(err, "precondition of %s failed", s.Name())
		return finish(common.StateFailed)
	}
	if !run {
		log.Infof("skipping %s, precondition not met", s.Name())
		result.Output = "precondition not met"
		return finish(common.StateSkipped)
	}

	log.Infof("executing: %s", s.Description())
	output, err := s.Execute(ctx)
	result.Output = output
	if err != nil {
		result.Err = err
		return finish(common.StateFailed)
	}

	if err := s.Verify(ctx); err != nil {
		result.Err = errors.Wrapf(err, "verification of %s failed", s.Name())
		return finish(common.StateFailed)
	}

	log.Info("step succeeded")
	return finish(common.StateSuccess)
}
