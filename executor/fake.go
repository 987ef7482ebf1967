package executor

import (
	"context"
	"strings"
	"sync"

	"github.com/cloudenochcsis/Volatility-Script/common"
)

// FakeExecutor is a scripted Executor for tests. Responses are matched by
// substring against the rebuilt command line, first registration wins.
type FakeExecutor struct {
	mu        sync.Mutex
	responses []fakeResponse
	calls     []string
	// Binaries lists command names LookPath resolves; nil resolves all.
	Binaries []string
}

type fakeResponse struct {
	match  string
	result Result
	err    error
}

// NewFakeExecutor creates an empty FakeExecutor. Unmatched commands succeed
// with empty output.
func NewFakeExecutor() *FakeExecutor {
	return &FakeExecutor{}
}

// Respond registers a scripted result for command lines containing match.
func (f *FakeExecutor) Respond(match string, result Result) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses = append(f.responses, fakeResponse{match: match, result: result})
}

// RespondErr registers an invocation failure for command lines containing match.
func (f *FakeExecutor) RespondErr(match string, kind common.ErrorKind) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses = append(f.responses, fakeResponse{
		match: match,
		err:   common.NewError(kind, "scripted failure for %q", match),
	})
}

// Calls returns every command line the fake has seen, in order.
func (f *FakeExecutor) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallCount returns how many recorded command lines contain match.
func (f *FakeExecutor) CallCount(match string) int {
	n := 0
	for _, call := range f.Calls() {
		if strings.Contains(call, match) {
			n++
		}
	}
	return n
}

func (f *FakeExecutor) dispatch(cmdline string, opts Options) (Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, cmdline)
	for _, r := range f.responses {
		if strings.Contains(cmdline, r.match) {
			if opts.Tee != nil && r.err == nil {
				_, _ = opts.Tee.Write([]byte(r.result.Combined()))
			}
			return r.result, r.err
		}
	}
	return Result{}, nil
}

func (f *FakeExecutor) Run(_ context.Context, command string, args []string, opts Options) (Result, error) {
	return f.dispatch(rebuild(command, args), opts)
}

func (f *FakeExecutor) RunShell(_ context.Context, script string, opts Options) (Result, error) {
	return f.dispatch(script, opts)
}

func (f *FakeExecutor) LookPath(command string) string {
	if f.Binaries == nil {
		return "/usr/bin/" + command
	}
	for _, b := range f.Binaries {
		if b == command {
			return "/usr/bin/" + command
		}
	}
	return ""
}

var _ Executor = (*FakeExecutor)(nil)
