package pkginstall

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/cloudenochcsis/Volatility-Script/common"
	"github.com/cloudenochcsis/Volatility-Script/executor"
)

const pipTimeout = 15 * time.Minute

// PipManager installs packages for a legacy interpreter via its module-mode
// pip. The interpreter is configurable because the binary name varies across
// distributions.
type PipManager struct {
	exec        executor.Executor
	interpreter string
	depsLog     io.Writer
}

func NewPipManager(exec executor.Executor, interpreter string, depsLog io.Writer) *PipManager {
	return &PipManager{exec: exec, interpreter: interpreter, depsLog: depsLog}
}

func (m *PipManager) Name() string {
	return "pip"
}

func (m *PipManager) IsInstalled(ctx context.Context, pkg string) (bool, error) {
	res, err := m.exec.Run(ctx, m.interpreter, []string{"-m", "pip", "show", pkg}, executor.Options{})
	if err != nil {
		return false, err
	}
	return res.ExitCode == 0, nil
}

func (m *PipManager) Install(ctx context.Context, pkg string) error {
	opts := executor.Options{
		Timeout: pipTimeout,
		Tee:     m.depsLog,
	}
	res, err := m.exec.Run(ctx, m.interpreter, []string{"-m", "pip", "install", pkg}, opts)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return classifyInstallFailure("pip", pkg, res.ExitCode, res.Combined())
	}
	return nil
}

// HasPip reports whether the interpreter already carries a working pip module.
func (m *PipManager) HasPip(ctx context.Context) (bool, error) {
	res, err := m.exec.Run(ctx, m.interpreter, []string{"-m", "pip", "--version"}, executor.Options{})
	if err != nil {
		return false, err
	}
	return res.ExitCode == 0, nil
}

// Bootstrap installs pip itself by downloading the bootstrap script and
// feeding it to the interpreter on stdin, avoiding a temp file.
func (m *PipManager) Bootstrap(ctx context.Context, bootstrapURL string) error {
	script := fmt.Sprintf("curl -fsSL %s | %s", bootstrapURL, m.interpreter)
	opts := executor.Options{
		Timeout: pipTimeout,
		Tee:     m.depsLog,
	}
	res, err := m.exec.RunShell(ctx, script, opts)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return common.NewError(common.KindNonZeroExit,
			"pip bootstrap from %s failed (exit %d)", bootstrapURL, res.ExitCode).
			WithOutput(res.ExitCode, res.Combined())
	}
	return nil
}
