// Package patch rewrites the interpreter line of an executable script while
// leaving the rest of the file byte-for-byte intact.
package patch

import (
	"bytes"
	"os"
	"regexp"

	"github.com/pkg/errors"

	"github.com/cloudenochcsis/Volatility-Script/common"
)

// PatchFirstLine rewrites the first line of path with replacement when it
// matches pattern. Returns true when the file was modified, false when the
// first line did not match (the file is left untouched). The file's mode is
// preserved.
func PatchFirstLine(path, pattern, replacement string) (bool, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false, errors.Wrapf(err, "invalid first-line pattern %q", pattern)
	}

	info, err := os.Stat(path)
	if err != nil {
		return false, common.WrapError(err, common.KindNotFound, "cannot patch %s", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return false, errors.Wrapf(err, "could not read %s", path)
	}

	first, rest := splitFirstLine(content)
	if !re.Match(first) {
		return false, nil
	}
	if string(first) == replacement {
		return false, nil
	}

	patched := append([]byte(replacement), rest...)
	if err := os.WriteFile(path, patched, info.Mode().Perm()); err != nil {
		return false, errors.Wrapf(err, "could not write patched %s", path)
	}
	return true, nil
}

// VerifyFirstLine confirms the first line of path equals want, returning a
// typed error naming both lines when it does not.
func VerifyFirstLine(path, want string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return common.WrapError(err, common.KindNotFound, "cannot verify %s", path)
	}
	first, _ := splitFirstLine(content)
	if string(first) != want {
		return common.NewError(common.KindPatchVerificationFailed,
			"first line of %s is %q, want %q", path, string(first), want)
	}
	return nil
}

// splitFirstLine separates the first line from the remainder, keeping the
// newline (and any preceding carriage return handling) with the remainder so
// reassembly preserves every byte after the first line.
func splitFirstLine(content []byte) (first, rest []byte) {
	idx := bytes.IndexByte(content, '\n')
	if idx < 0 {
		return content, nil
	}
	return content[:idx], content[idx:]
}
