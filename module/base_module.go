package module

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/cloudenochcsis/Volatility-Script/common"
	"github.com/cloudenochcsis/Volatility-Script/runtime"
	"github.com/cloudenochcsis/Volatility-Script/task"
)

// BaseModule provides the standard Module implementation.
type BaseModule struct {
	name        string
	description string
	tasks       []task.Task
}

// NewBaseModule creates a new BaseModule. Tasks are added via AddTask.
func NewBaseModule(name, description string) BaseModule {
	return BaseModule{
		name:        name,
		description: description,
		tasks:       make([]task.Task, 0),
	}
}

func (bm *BaseModule) Name() string {
	return bm.name
}

func (bm *BaseModule) Description() string {
	return bm.description
}

// Tasks returns a copy of the module's task list.
func (bm *BaseModule) Tasks() []task.Task {
	t := make([]task.Task, len(bm.tasks))
	copy(t, bm.tasks)
	return t
}

// AddTask appends a task and stamps it with this module's name for report
// attribution.
func (bm *BaseModule) AddTask(t task.Task) {
	type moduleAware interface {
		SetModuleName(string)
	}
	if ma, ok := t.(moduleAware); ok {
		ma.SetModuleName(bm.name)
	}
	bm.tasks = append(bm.tasks, t)
}

// Init initializes all added tasks.
func (bm *BaseModule) Init(rt runtime.Runtime, log *logrus.Entry) error {
	for i, t := range bm.tasks {
		taskLog := log.WithField(common.TaskName, t.Name())
		if err := t.Init(rt, taskLog); err != nil {
			return errors.Wrapf(err, "failed to initialize task %s (%d/%d) in module %s",
				t.Name(), i+1, len(bm.tasks), bm.name)
		}
	}
	return nil
}

// Execute runs all tasks sequentially. The first failing task halts the
// module; the task layer has already applied the fatal/ignore policy to its
// steps, so an error here is always final.
func (bm *BaseModule) Execute(ctx context.Context, rt runtime.Runtime, log *logrus.Entry) error {
	log.Infof("executing module: %s", bm.description)
	for _, currentTask := range bm.tasks {
		taskLog := log.WithField(common.TaskName, currentTask.Name())
		if err := currentTask.Execute(ctx, rt, taskLog); err != nil {
			return errors.Wrapf(err, "module %s failed at task %s", bm.name, currentTask.Name())
		}
	}
	log.Infof("module %s completed", bm.name)
	return nil
}
