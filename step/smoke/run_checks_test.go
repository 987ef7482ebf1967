package smoke

import (
	"context"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/cloudenochcsis/Volatility-Script/common"
	"github.com/cloudenochcsis/Volatility-Script/config"
	"github.com/cloudenochcsis/Volatility-Script/executor"
	"github.com/cloudenochcsis/Volatility-Script/runtime"
)

const volInfoOutput = `Volatility Foundation Volatility Framework 2.6.1
pslist pstree psscan imageinfo malfind netscan connscan filescan dlllist handles
`

func newSmokeRuntime(t *testing.T, exec executor.Executor) runtime.Runtime {
	t.Helper()
	home := t.TempDir()
	rt, err := runtime.NewRuntime(runtime.Config{
		Executor:   exec,
		Clock:      clockwork.NewFakeClock(),
		WorkDir:    t.TempDir(),
		TargetHome: home,
		Target:     config.NewDefaultTarget(home),
	})
	assert.NoError(t, err)
	return rt
}

func initStep(t *testing.T, s *RunChecksStep, rt runtime.Runtime) {
	t.Helper()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	assert.NoError(t, s.Init(rt, logrus.NewEntry(log)))
}

func TestRunChecksAllPassing(t *testing.T) {
	fake := executor.NewFakeExecutor()
	fake.Respond("--info", executor.Result{Stdout: volInfoOutput, ExitCode: 0})
	fake.Respond("import", executor.Result{ExitCode: 0})

	rt := newSmokeRuntime(t, fake)
	rt.Facts().Set(common.FactEntryPoint, "/opt/volatility/vol.py")
	rt.Facts().Set(common.FactWrapperPath, "/usr/local/bin/vol.py")

	s := NewRunChecksStep()
	initStep(t, s, rt)

	output, err := s.Execute(context.Background())
	assert.NoError(t, err)
	assert.Contains(t, output, "checks passed")
	assert.Contains(t, output, "0 warning(s)")
}

func TestRunChecksAdvisoryFailuresBecomeWarnings(t *testing.T) {
	fake := executor.NewFakeExecutor()
	fake.Respond("--info", executor.Result{Stdout: volInfoOutput, ExitCode: 0})
	fake.Respond("import yara", executor.Result{Stderr: "ImportError", ExitCode: 1})
	fake.Respond("import", executor.Result{ExitCode: 0})

	rt := newSmokeRuntime(t, fake)
	rt.Facts().Set(common.FactEntryPoint, "/opt/volatility/vol.py")

	s := NewRunChecksStep()
	initStep(t, s, rt)

	output, err := s.Execute(context.Background())
	assert.NoError(t, err)
	assert.Contains(t, output, "1 warning(s)")
	assert.NotEmpty(t, rt.Report().Warnings())
}

func TestRunChecksCriticalFailureFailsStep(t *testing.T) {
	fake := executor.NewFakeExecutor()
	fake.Respond("--info", executor.Result{Stderr: "SyntaxError", ExitCode: 1})

	rt := newSmokeRuntime(t, fake)
	rt.Facts().Set(common.FactEntryPoint, "/opt/volatility/vol.py")

	s := NewRunChecksStep()
	initStep(t, s, rt)

	_, err := s.Execute(context.Background())
	assert.Error(t, err)
	assert.True(t, common.IsKind(err, common.KindVerificationFailed))
}

func TestRunChecksRequiresEntryPointFact(t *testing.T) {
	rt := newSmokeRuntime(t, executor.NewFakeExecutor())
	s := NewRunChecksStep()
	initStep(t, s, rt)

	_, err := s.Execute(context.Background())
	assert.Error(t, err)
	assert.True(t, common.IsKind(err, common.KindNotFound))
}
