package sysdeps

import (
	"context"
	"os"

	"github.com/pkg/errors"

	"github.com/cloudenochcsis/Volatility-Script/common"
	"github.com/cloudenochcsis/Volatility-Script/file"
	"github.com/cloudenochcsis/Volatility-Script/step"
)

// LinkYaraStep exposes the yara shared library at the fixed path the
// python binding dlopens. The library may live under a multiarch directory
// the binding does not search. Non-fatal: a missing library only degrades
// the malware plugins.
type LinkYaraStep struct {
	step.BaseStep
	found string
}

func NewLinkYaraStep() *LinkYaraStep {
	return &LinkYaraStep{
		BaseStep: step.NewBaseStep(
			"link libyara",
			"symlink the yara shared library where the python binding expects it",
			false),
	}
}

// Precondition probes for the library and skips when the link target
// already exists or no library was found. Finding nothing is recorded as a
// warning, not a failure.
func (s *LinkYaraStep) Precondition(ctx context.Context) (bool, error) {
	target := s.Runtime.Target()

	if exists, err := file.PathExists(target.LibyaraLink); err != nil {
		return false, err
	} else if exists {
		s.Logger.Infof("%s already present", target.LibyaraLink)
		return false, nil
	}

	found, err := file.FindFirst(target.LibyaraRoots, target.LibyaraPatterns)
	if err != nil {
		return false, err
	}
	if found == "" {
		s.Logger.Warn("no yara shared library found; malware plugins may not work")
		s.Runtime.Report().RecordWarning(s.Name(),
			"no yara shared library found under %v", target.LibyaraRoots)
		return false, nil
	}

	s.found = found
	return true, nil
}

func (s *LinkYaraStep) Execute(ctx context.Context) (string, error) {
	link := s.Runtime.Target().LibyaraLink
	if err := os.Symlink(s.found, link); err != nil {
		return "", errors.Wrapf(err, "could not link %s to %s", link, s.found)
	}
	s.Runtime.Facts().Set(common.FactLibyaraPath, s.found)
	return link + " -> " + s.found, nil
}

func (s *LinkYaraStep) Verify(ctx context.Context) error {
	exists, err := file.PathExists(s.Runtime.Target().LibyaraLink)
	if err != nil {
		return err
	}
	if !exists {
		return common.NewError(common.KindVerificationFailed,
			"%s missing after linking", s.Runtime.Target().LibyaraLink)
	}
	return nil
}
