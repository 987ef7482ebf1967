package executor

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/cloudenochcsis/Volatility-Script/common"
)

func TestRunSimpleCommand(t *testing.T) {
	le := NewLocalExecutor()
	ctx := context.Background()

	res, err := le.Run(ctx, "echo", []string{"hello", "world"}, Options{})
	if err != nil {
		t.Fatalf("Run(echo) failed: %v", err)
	}
	if res.ExitCode != 0 {
		t.Errorf("Run(echo) exitCode = %d; want 0. stderr: %s", res.ExitCode, res.Stderr)
	}
	if strings.TrimSpace(res.Stdout) != "hello world" {
		t.Errorf("Run(echo) stdout = %q; want %q", res.Stdout, "hello world")
	}
}

func TestRunNonZeroExitIsNotAnError(t *testing.T) {
	le := NewLocalExecutor()
	res, err := le.RunShell(context.Background(), "exit 3", Options{})
	if err != nil {
		t.Fatalf("RunShell(exit 3) returned error %v; non-zero exit must not be an error", err)
	}
	if res.ExitCode != 3 {
		t.Errorf("RunShell(exit 3) exitCode = %d; want 3", res.ExitCode)
	}
}

func TestRunCommandNotFound(t *testing.T) {
	le := NewLocalExecutor()
	_, err := le.Run(context.Background(), "a_very_unlikely_command_xyz123", nil, Options{})
	if err == nil {
		t.Fatal("Run(missing command) expected error, got nil")
	}
	if !common.IsKind(err, common.KindNotFound) {
		t.Errorf("Run(missing command) kind = %v; want NotFound", common.KindOf(err))
	}
}

func TestRunTimeout(t *testing.T) {
	le := NewLocalExecutor()
	start := time.Now()
	_, err := le.RunShell(context.Background(), "sleep 5", Options{Timeout: 100 * time.Millisecond})
	if err == nil {
		t.Fatal("RunShell(sleep) expected timeout error, got nil")
	}
	if !common.IsKind(err, common.KindTimeout) {
		t.Errorf("RunShell(sleep) kind = %v; want Timeout", common.KindOf(err))
	}
	if elapsed := time.Since(start); elapsed > 3*time.Second {
		t.Errorf("timeout was not enforced, took %v", elapsed)
	}
}

func TestRunCancellation(t *testing.T) {
	le := NewLocalExecutor()
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()
	_, err := le.RunShell(ctx, "sleep 5", Options{})
	if err == nil {
		t.Fatal("RunShell(sleep) expected interrupt error, got nil")
	}
	if !common.IsKind(err, common.KindInterrupted) {
		t.Errorf("RunShell(sleep) kind = %v; want Interrupted", common.KindOf(err))
	}
}

func TestRunCapturesStderr(t *testing.T) {
	le := NewLocalExecutor()
	res, err := le.RunShell(context.Background(), "echo oops >&2; exit 1", Options{})
	if err != nil {
		t.Fatalf("RunShell failed: %v", err)
	}
	if res.ExitCode != 1 {
		t.Errorf("exitCode = %d; want 1", res.ExitCode)
	}
	if strings.TrimSpace(res.Stderr) != "oops" {
		t.Errorf("stderr = %q; want oops", res.Stderr)
	}
}

func TestRunTee(t *testing.T) {
	le := NewLocalExecutor()
	var sink strings.Builder
	res, err := le.RunShell(context.Background(), "echo mirrored", Options{Tee: &sink})
	if err != nil {
		t.Fatalf("RunShell failed: %v", err)
	}
	if strings.TrimSpace(res.Stdout) != "mirrored" {
		t.Errorf("stdout = %q", res.Stdout)
	}
	if strings.TrimSpace(sink.String()) != "mirrored" {
		t.Errorf("tee sink = %q; want mirrored", sink.String())
	}
}

func TestRunWorkDirAndEnv(t *testing.T) {
	le := NewLocalExecutor()
	dir := t.TempDir()
	res, err := le.RunShell(context.Background(), "pwd && echo $PROVISION_MARK",
		Options{WorkDir: dir, Env: []string{"PROVISION_MARK=ok"}})
	if err != nil {
		t.Fatalf("RunShell failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(res.Stdout), "\n")
	if len(lines) != 2 {
		t.Fatalf("unexpected output %q", res.Stdout)
	}
	if lines[0] != dir {
		t.Errorf("workdir = %q; want %q", lines[0], dir)
	}
	if lines[1] != "ok" {
		t.Errorf("env passthrough = %q; want ok", lines[1])
	}
}

func TestLookPath(t *testing.T) {
	le := NewLocalExecutor()
	if le.LookPath("sh") == "" {
		t.Error("LookPath(sh) = empty; expected a resolvable shell")
	}
	if le.LookPath("a_very_unlikely_command_xyz123") != "" {
		t.Error("LookPath(missing) should be empty")
	}
}

func TestResultCombined(t *testing.T) {
	tests := []struct {
		name string
		res  Result
		want string
	}{
		{"both", Result{Stdout: "out", Stderr: "err"}, "out\nerr"},
		{"stdout only", Result{Stdout: "out"}, "out"},
		{"stderr only", Result{Stderr: "err"}, "err"},
	}
	for _, tt := range tests {
		if got := tt.res.Combined(); got != tt.want {
			t.Errorf("%s: Combined() = %q, want %q", tt.name, got, tt.want)
		}
	}
}
