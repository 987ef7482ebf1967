package executor

import (
	"context"
	"io"
	"time"
)

// Result carries everything a caller needs to judge a finished command.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Combined returns stdout and stderr joined for log output.
func (r Result) Combined() string {
	if r.Stdout == "" {
		return r.Stderr
	}
	if r.Stderr == "" {
		return r.Stdout
	}
	return r.Stdout + "\n" + r.Stderr
}

// Options tunes a single command invocation.
type Options struct {
	// Env entries in "KEY=value" form, appended to the inherited environment.
	Env []string
	// WorkDir is the working directory; empty means inherit.
	WorkDir string
	// Timeout bounds the invocation; zero means no bound beyond ctx.
	Timeout time.Duration
	// Tee, when set, receives a copy of stdout and stderr as they arrive.
	// Used to mirror package-manager output into the dependency log.
	Tee io.Writer
}

// Executor runs external commands on the machine being provisioned.
//
// Run never returns an error for a plain non-zero exit; callers inspect
// Result.ExitCode. The error return is reserved for invocation failures:
// command not found (KindNotFound), deadline exceeded (KindTimeout), or the
// run being cancelled (KindInterrupted).
type Executor interface {
	// Run executes command with args directly, without a shell.
	Run(ctx context.Context, command string, args []string, opts Options) (Result, error)

	// RunShell executes script under "/bin/bash -c", for invocations that
	// need shell features (pipes, redirects, globs).
	RunShell(ctx context.Context, script string, opts Options) (Result, error)

	// LookPath reports the absolute path of command, or "" when it is not
	// resolvable on this system.
	LookPath(command string) string
}
