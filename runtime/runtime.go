package runtime

import (
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"

	"github.com/cloudenochcsis/Volatility-Script/cache"
	"github.com/cloudenochcsis/Volatility-Script/common"
	"github.com/cloudenochcsis/Volatility-Script/config"
	"github.com/cloudenochcsis/Volatility-Script/executor"
	"github.com/cloudenochcsis/Volatility-Script/pipeline/ending"
)

// baseRuntime implements the Runtime interface.
type baseRuntime struct {
	exec           executor.Executor
	clock          clockwork.Clock
	runID          string
	workDir        string
	verbose        bool
	ignoreError    bool
	nonInteractive bool
	invokingUser   string
	targetHome     string
	target         config.InstallTarget
	facts          *cache.Cache[string, string]
	report         *ending.Report

	interrupted atomic.Bool
}

// Config for creating a new runtime.
type Config struct {
	Executor       executor.Executor
	Clock          clockwork.Clock
	WorkDir        string
	Verbose        bool
	IgnoreError    bool
	NonInteractive bool
	InvokingUser   string
	TargetHome     string
	Target         config.InstallTarget
}

// NewRuntime creates a runtime for one provisioning run. A fresh run ID and
// report are minted here; the target must already have its defaults applied.
func NewRuntime(cfg Config) (Runtime, error) {
	if cfg.Executor == nil {
		return nil, errors.New("runtime: executor is required")
	}
	if cfg.TargetHome == "" {
		return nil, errors.New("runtime: target home is required")
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.WorkDir == "" {
		cfg.WorkDir = common.GetTmpDir()
	}

	runID := uuid.New().String()
	return &baseRuntime{
		exec:           cfg.Executor,
		clock:          cfg.Clock,
		runID:          runID,
		workDir:        cfg.WorkDir,
		verbose:        cfg.Verbose,
		ignoreError:    cfg.IgnoreError,
		nonInteractive: cfg.NonInteractive,
		invokingUser:   cfg.InvokingUser,
		targetHome:     cfg.TargetHome,
		target:         cfg.Target,
		facts:          cache.NewCache[string, string](),
		report:         ending.NewReport(runID, cfg.Clock.Now()),
	}, nil
}

func (r *baseRuntime) Executor() executor.Executor      { return r.exec }
func (r *baseRuntime) Clock() clockwork.Clock           { return r.clock }
func (r *baseRuntime) RunID() string                    { return r.runID }
func (r *baseRuntime) WorkDir() string                  { return r.workDir }
func (r *baseRuntime) Verbose() bool                    { return r.verbose }
func (r *baseRuntime) IgnoreError() bool                { return r.ignoreError }
func (r *baseRuntime) NonInteractive() bool             { return r.nonInteractive }
func (r *baseRuntime) InvokingUser() string             { return r.invokingUser }
func (r *baseRuntime) TargetHome() string               { return r.targetHome }
func (r *baseRuntime) Target() config.InstallTarget     { return r.target }
func (r *baseRuntime) Facts() *cache.Cache[string, string] { return r.facts }
func (r *baseRuntime) Report() *ending.Report           { return r.report }

func (r *baseRuntime) Interrupt() {
	r.interrupted.Store(true)
}

func (r *baseRuntime) Interrupted() bool {
	return r.interrupted.Load()
}
