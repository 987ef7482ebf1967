package fetch

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cloudenochcsis/Volatility-Script/common"
	"github.com/cloudenochcsis/Volatility-Script/executor"
	"github.com/cloudenochcsis/Volatility-Script/file"
)

func TestFetchClonesAndPinsRevision(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "volatility")

	fake := executor.NewFakeExecutor()
	fake.Respond("git clone", executor.Result{Stdout: "Cloning into", ExitCode: 0})
	fake.Respond("git rev-parse --verify 2.6.1", executor.Result{Stdout: "a438e76", ExitCode: 0})
	fake.Respond("git checkout 2.6.1", executor.Result{Stdout: "HEAD is now at a438e76", ExitCode: 0})

	f := NewGitFetcher(fake, "https://example.com/volatility.git", "2.6.1", nil)
	err := f.Fetch(context.Background(), dest)
	assert.NoError(t, err)

	calls := fake.Calls()
	assert.Len(t, calls, 3)
	assert.Contains(t, calls[0], "git clone https://example.com/volatility.git")
	assert.Contains(t, calls[1], "rev-parse")
	assert.Contains(t, calls[2], "checkout 2.6.1")
}

func TestFetchRemovesStaleDestination(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "volatility")
	assert.NoError(t, file.CreateDir(dest))

	fake := executor.NewFakeExecutor()
	fake.Respond("git clone", executor.Result{ExitCode: 0})

	f := NewGitFetcher(fake, "https://example.com/volatility.git", "", nil)
	err := f.Fetch(context.Background(), dest)
	assert.NoError(t, err)
	assert.NoDirExists(t, dest)
}

func TestFetchCloneFailure(t *testing.T) {
	fake := executor.NewFakeExecutor()
	fake.Respond("git clone", executor.Result{
		Stderr:   "fatal: unable to access repository",
		ExitCode: 128,
	})

	f := NewGitFetcher(fake, "https://example.com/gone.git", "2.6.1", nil)
	err := f.Fetch(context.Background(), filepath.Join(t.TempDir(), "volatility"))
	assert.Error(t, err)
	assert.True(t, common.IsKind(err, common.KindCloneFailed))
	assert.Contains(t, common.OutputOf(err), "unable to access")
}

func TestFetchUnknownRevision(t *testing.T) {
	fake := executor.NewFakeExecutor()
	fake.Respond("git clone", executor.Result{ExitCode: 0})
	fake.Respond("git rev-parse --verify 9.9.9", executor.Result{
		Stderr:   "fatal: Needed a single revision",
		ExitCode: 128,
	})

	f := NewGitFetcher(fake, "https://example.com/volatility.git", "9.9.9", nil)
	err := f.Fetch(context.Background(), filepath.Join(t.TempDir(), "volatility"))
	assert.Error(t, err)
	assert.True(t, common.IsKind(err, common.KindRevisionNotFound))
}
