package executor

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"strings"

	"github.com/cloudenochcsis/Volatility-Script/common"
)

// localExecutor implements the Executor interface for local machine operations.
type localExecutor struct{}

// NewLocalExecutor creates a new Executor for local operations.
func NewLocalExecutor() Executor {
	return &localExecutor{}
}

func (l *localExecutor) Run(ctx context.Context, command string, args []string, opts Options) (Result, error) {
	return l.execute(ctx, opts, command, args...)
}

func (l *localExecutor) RunShell(ctx context.Context, script string, opts Options) (Result, error) {
	return l.execute(ctx, opts, "/bin/bash", "-c", script)
}

func (l *localExecutor) LookPath(command string) string {
	path, err := exec.LookPath(command)
	if err != nil {
		return ""
	}
	return path
}

func (l *localExecutor) execute(ctx context.Context, opts Options, command string, args ...string) (Result, error) {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, command, args...)
	if opts.WorkDir != "" {
		cmd.Dir = opts.WorkDir
	}
	if len(opts.Env) > 0 {
		cmd.Env = append(cmd.Environ(), opts.Env...)
	}

	var stdout, stderr bytes.Buffer
	if opts.Tee != nil {
		cmd.Stdout = io.MultiWriter(&stdout, opts.Tee)
		cmd.Stderr = io.MultiWriter(&stderr, opts.Tee)
	} else {
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	}

	runErr := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}

	if runErr == nil {
		return res, nil
	}

	if exitErr, ok := runErr.(*exec.ExitError); ok {
		// The command ran and chose its exit code; classify timeouts and
		// cancellation, otherwise hand the code back without an error.
		res.ExitCode = exitErr.ExitCode()
		if ctx.Err() == context.DeadlineExceeded {
			return res, common.WrapError(ctx.Err(), common.KindTimeout,
				"command %q exceeded its deadline", rebuild(command, args))
		}
		if ctx.Err() == context.Canceled {
			return res, common.WrapError(ctx.Err(), common.KindInterrupted,
				"command %q was interrupted", rebuild(command, args))
		}
		return res, nil
	}

	res.ExitCode = 1
	if ctx.Err() == context.DeadlineExceeded {
		return res, common.WrapError(runErr, common.KindTimeout,
			"command %q exceeded its deadline", rebuild(command, args))
	}
	return res, common.WrapError(runErr, common.KindNotFound,
		"failed to start command %q", rebuild(command, args))
}

func rebuild(command string, args []string) string {
	if len(args) == 0 {
		return command
	}
	return command + " " + strings.Join(args, " ")
}
