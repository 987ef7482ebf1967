package runtime

import (
	"github.com/jonboulle/clockwork"

	"github.com/cloudenochcsis/Volatility-Script/cache"
	"github.com/cloudenochcsis/Volatility-Script/config"
	"github.com/cloudenochcsis/Volatility-Script/executor"
	"github.com/cloudenochcsis/Volatility-Script/pipeline/ending"
)

// Runtime is the shared execution context threaded through every pipeline
// layer. One runtime describes one provisioning run.
type Runtime interface {
	// Executor returns the command executor for the local host.
	Executor() executor.Executor

	// Clock returns the run's clock. Steps take timestamps from here so
	// tests can use a fake clock.
	Clock() clockwork.Clock

	RunID() string
	WorkDir() string
	Verbose() bool
	IgnoreError() bool
	NonInteractive() bool

	// InvokingUser is the login that ran the tool, resolved through sudo.
	InvokingUser() string
	// TargetHome is that user's home directory; relative install paths
	// anchor here.
	TargetHome() string

	// Target is the immutable description of what to install.
	Target() config.InstallTarget

	// Facts carries values discovered by earlier steps (resolved entry
	// point, backup locations) to later ones.
	Facts() *cache.Cache[string, string]

	// Report is the run's result sink.
	Report() *ending.Report

	// Interrupt requests a graceful stop: the running step finishes, the
	// next one does not start.
	Interrupt()
	Interrupted() bool
}
