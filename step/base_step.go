package step

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/cloudenochcsis/Volatility-Script/common"
	"github.com/cloudenochcsis/Volatility-Script/runtime"
)

// BaseStep provides common fields and default method implementations for
// steps. Concrete steps embed it and override Execute plus whichever of
// Precondition and Verify they need.
type BaseStep struct {
	NameField        string
	DescriptionField string
	FatalField       bool

	Runtime runtime.Runtime
	Logger  *logrus.Entry
}

// NewBaseStep is a helper constructor for initializing common BaseStep
// fields. Concrete steps call this in their own constructors.
func NewBaseStep(name, description string, fatal bool) BaseStep {
	return BaseStep{
		NameField:        name,
		DescriptionField: description,
		FatalField:       fatal,
	}
}

func (bs *BaseStep) Name() string {
	return bs.NameField
}

func (bs *BaseStep) Description() string {
	return bs.DescriptionField
}

func (bs *BaseStep) Fatal() bool {
	return bs.FatalField
}

// Init stores the runtime and scopes the logger to the step. Concrete steps
// that override Init should call this first.
func (bs *BaseStep) Init(rt runtime.Runtime, logger *logrus.Entry) error {
	if rt == nil {
		return errors.Errorf("runtime cannot be nil for step %s", bs.NameField)
	}
	bs.Runtime = rt
	if logger == nil {
		logger = logrus.NewEntry(logrus.New())
	}
	bs.Logger = logger.WithField(common.StepName, bs.NameField)
	return nil
}

// Precondition defaults to "always run".
func (bs *BaseStep) Precondition(ctx context.Context) (bool, error) {
	return true, nil
}

// Execute must be overridden by concrete steps.
func (bs *BaseStep) Execute(ctx context.Context) (string, error) {
	return "", errors.Errorf("Execute not implemented for step %s", bs.NameField)
}

// Verify defaults to a no-op for steps whose Execute is self-verifying.
func (bs *BaseStep) Verify(ctx context.Context) error {
	return nil
}
