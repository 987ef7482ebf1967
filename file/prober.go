package file

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"

	"github.com/cloudenochcsis/Volatility-Script/common"
)

// FindFirst searches the roots in order, trying each glob pattern in order
// under each root, and returns the first match. Ties within one directory
// listing break lexicographically. It returns "" when nothing matches.
func FindFirst(roots []string, patterns []string) (string, error) {
	for _, root := range roots {
		for _, pattern := range patterns {
			matches, err := filepath.Glob(filepath.Join(root, pattern))
			if err != nil {
				return "", errors.Wrapf(err, "bad probe pattern %q under %s", pattern, root)
			}
			if len(matches) == 0 {
				continue
			}
			sort.Strings(matches)
			return matches[0], nil
		}
	}
	return "", nil
}

// Backup renames path to path + "_backup_" + timestamp and returns the new
// path. When path does not exist it is a no-op and returns "".
func Backup(path string, clock clockwork.Clock) (string, error) {
	exists, err := PathExists(path)
	if err != nil {
		return "", errors.Wrapf(err, "cannot stat %s before backup", path)
	}
	if !exists {
		return "", nil
	}

	backupPath := path + "_backup_" + clock.Now().Format(common.BackupSuffixFormat)
	if err := os.Rename(path, backupPath); err != nil {
		return "", errors.Wrapf(err, "failed to move %s aside to %s", path, backupPath)
	}
	return backupPath, nil
}
