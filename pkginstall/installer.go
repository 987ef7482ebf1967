// Package pkginstall wraps the OS package manager and the legacy
// interpreter's package installer behind one ensure-installed interface.
package pkginstall

import (
	"context"

	"github.com/pkg/errors"

	"github.com/cloudenochcsis/Volatility-Script/common"
)

// Outcome reports how EnsureInstalled satisfied a package.
type Outcome int

const (
	OutcomeFailed Outcome = iota
	OutcomeAlreadyPresent
	OutcomeInstalled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAlreadyPresent:
		return "AlreadyPresent"
	case OutcomeInstalled:
		return "Installed"
	default:
		return "Failed"
	}
}

// Manager abstracts one package source (apt, pip).
type Manager interface {
	// Name identifies the manager in logs and reports.
	Name() string
	// IsInstalled reports whether the package is already satisfied.
	IsInstalled(ctx context.Context, pkg string) (bool, error)
	// Install installs the package. Non-zero installer exits surface as
	// errors carrying the captured output.
	Install(ctx context.Context, pkg string) error
}

// EnsureInstalled makes the package present via the manager, distinguishing
// "already satisfied" from "freshly installed" for the report.
func EnsureInstalled(ctx context.Context, m Manager, pkg string) (Outcome, error) {
	present, err := m.IsInstalled(ctx, pkg)
	if err != nil {
		return OutcomeFailed, errors.Wrapf(err, "%s: could not determine state of %s", m.Name(), pkg)
	}
	if present {
		return OutcomeAlreadyPresent, nil
	}
	if err := m.Install(ctx, pkg); err != nil {
		return OutcomeFailed, errors.Wrapf(err, "%s: install of %s failed", m.Name(), pkg)
	}
	return OutcomeInstalled, nil
}

// classifyInstallFailure turns a non-zero installer exit into a typed error.
func classifyInstallFailure(manager, pkg string, exitCode int, output string) error {
	return common.NewError(common.KindNonZeroExit,
		"%s failed to install %s (exit %d)", manager, pkg, exitCode).
		WithOutput(exitCode, output)
}
