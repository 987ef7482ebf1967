// Package fetch obtains the toolkit source tree at a pinned revision.
package fetch

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/cloudenochcsis/Volatility-Script/common"
	"github.com/cloudenochcsis/Volatility-Script/executor"
)

const cloneTimeout = 15 * time.Minute

// Fetcher materializes a source tree on disk.
type Fetcher interface {
	// Fetch places the source at destDir, replacing whatever is there.
	Fetch(ctx context.Context, destDir string) error
}

// GitFetcher clones a repository and checks out a pinned revision. The
// destination is removed first so a previous partial clone never leaks into
// the new tree.
type GitFetcher struct {
	exec     executor.Executor
	repoURL  string
	revision string
	teeLog   io.Writer
}

func NewGitFetcher(exec executor.Executor, repoURL, revision string, teeLog io.Writer) *GitFetcher {
	return &GitFetcher{exec: exec, repoURL: repoURL, revision: revision, teeLog: teeLog}
}

func (f *GitFetcher) Fetch(ctx context.Context, destDir string) error {
	if err := os.RemoveAll(destDir); err != nil {
		return errors.Wrapf(err, "could not clear %s before clone", destDir)
	}

	opts := executor.Options{Timeout: cloneTimeout, Tee: f.teeLog}
	res, err := f.exec.Run(ctx, "git", []string{"clone", f.repoURL, destDir}, opts)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return common.NewError(common.KindCloneFailed,
			"clone of %s failed (exit %d)", f.repoURL, res.ExitCode).
			WithOutput(res.ExitCode, res.Combined())
	}

	if f.revision == "" {
		return nil
	}
	return f.checkout(ctx, destDir)
}

func (f *GitFetcher) checkout(ctx context.Context, destDir string) error {
	opts := executor.Options{WorkDir: destDir, Tee: f.teeLog}

	res, err := f.exec.Run(ctx, "git", []string{"rev-parse", "--verify", f.revision}, opts)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return common.NewError(common.KindRevisionNotFound,
			"revision %s does not exist in %s", f.revision, f.repoURL).
			WithOutput(res.ExitCode, res.Combined())
	}

	res, err = f.exec.Run(ctx, "git", []string{"checkout", f.revision}, opts)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return common.NewError(common.KindRevisionNotFound,
			"checkout of %s failed (exit %d)", f.revision, res.ExitCode).
			WithOutput(res.ExitCode, res.Combined())
	}
	return nil
}
