package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cloudenochcsis/Volatility-Script/common"
)

// PathExists checks if a path exists.
// It distinguishes between "not exist" and other errors: if an error other
// than "not exist" occurs, it returns false and the error.
func PathExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// IsDir checks if the given path is a directory.
func IsDir(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}

// IsExecutable reports whether path is a regular file with any execute bit set.
func IsExecutable(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular() && info.Mode().Perm()&0111 != 0, nil
}

// CreateDir creates a directory and all its parents if they don't exist.
// It uses common.FileMode0755 for directory permissions.
func CreateDir(path string) error {
	info, err := os.Stat(path)
	if err == nil {
		if info.IsDir() {
			return nil
		}
		return fmt.Errorf("path %s exists but is not a directory", path)
	}
	if os.IsNotExist(err) {
		return os.MkdirAll(path, common.FileMode0755)
	}
	return fmt.Errorf("failed to check directory %s: %w", path, err)
}

// CreateFileDir creates the full directory path for a given file name if it
// doesn't exist. e.g., for "/a/b/x.txt", it ensures "/a/b" exists.
func CreateFileDir(filePath string) error {
	dir := filepath.Dir(filePath)
	if dir == "." || dir == "" {
		return nil
	}
	return CreateDir(dir)
}

// WriteFile writes content to a file, creating parent directories if
// necessary. Directories get common.FileMode0755, the file gets mode.
func WriteFile(filePath string, content []byte, mode os.FileMode) error {
	if err := CreateFileDir(filePath); err != nil {
		return fmt.Errorf("failed to create directory for file %s: %w", filePath, err)
	}
	if err := os.WriteFile(filePath, content, mode); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filePath, err)
	}
	return nil
}

// ReadFirstLine returns the first line of the file, without the trailing
// newline. A file without newlines is one line.
func ReadFirstLine(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	for i, b := range content {
		if b == '\n' {
			return string(content[:i]), nil
		}
	}
	return string(content), nil
}
