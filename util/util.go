package util

import (
	"fmt"
	"os"
	"os/user"
	"sort"
	"strings"
	"text/template"

	"github.com/pkg/errors"
)

// Data is a generic map type for template rendering context.
type Data map[string]interface{}

// Render executes the given template with the provided variables.
func Render(tmpl *template.Template, variables Data) (string, error) {
	var buf strings.Builder
	if err := tmpl.Execute(&buf, variables); err != nil {
		return "", errors.Wrap(err, "failed to render template")
	}
	return buf.String(), nil
}

// RenderString parses and executes the given template string with the provided variables.
func RenderString(tmplStr string, variables Data) (string, error) {
	tmpl, err := template.New("").Parse(tmplStr)
	if err != nil {
		return "", errors.Wrap(err, "failed to parse template string")
	}
	return Render(tmpl, variables)
}

// InvokingUser returns the user who launched the process. Under sudo this is
// SUDO_USER, not root.
func InvokingUser() string {
	if sudoUser := os.Getenv("SUDO_USER"); sudoUser != "" {
		return sudoUser
	}
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return os.Getenv("USER")
}

// HomeOf returns the home directory of the named user, falling back to the
// conventional /home/<name> (or /root) layout when the account cannot be
// looked up.
func HomeOf(username string) string {
	if username == "" || username == "root" {
		return "/root"
	}
	if u, err := user.Lookup(username); err == nil && u.HomeDir != "" {
		return u.HomeDir
	}
	return "/home/" + username
}

// GetenvOrDefault retrieves the value of the environment variable named by the key.
// If the variable is not present or empty, it returns the defaultValue.
func GetenvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// ContainsString checks if a slice of strings contains the given string.
func ContainsString(slice []string, str string) bool {
	for _, item := range slice {
		if item == str {
			return true
		}
	}
	return false
}

// UniqueStrings returns a new slice containing only the unique strings from
// the input slice, preserving first-appearance order.
func UniqueStrings(slice []string) []string {
	if len(slice) == 0 {
		return []string{}
	}
	seen := make(map[string]struct{}, len(slice))
	result := make([]string, 0, len(slice))
	for _, str := range slice {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}

// SortedStrings returns a sorted copy of the input slice.
func SortedStrings(slice []string) []string {
	out := make([]string, len(slice))
	copy(out, slice)
	sort.Strings(out)
	return out
}

// FirstNonEmpty returns the first non-empty string from a list of strings.
// If all strings are empty, it returns an empty string.
func FirstNonEmpty(strs ...string) string {
	for _, s := range strs {
		if s != "" {
			return s
		}
	}
	return ""
}

// TruncateString shortens a string to a maximum length, appending an ellipsis
// if truncation occurs.
func TruncateString(s string, maxLength int, ellipsis string) string {
	if len(s) <= maxLength {
		return s
	}
	if maxLength <= len(ellipsis) {
		if maxLength < 0 {
			maxLength = 0
		}
		return ellipsis[:maxLength]
	}
	return s[:maxLength-len(ellipsis)] + ellipsis
}

// CombineErrors takes multiple errors and returns a single error.
// If no errors or all errors are nil, it returns nil.
func CombineErrors(errs ...error) error {
	var errStrings []string
	for _, err := range errs {
		if err != nil {
			errStrings = append(errStrings, err.Error())
		}
	}
	if len(errStrings) == 0 {
		return nil
	}
	return fmt.Errorf("%s", strings.Join(errStrings, "; "))
}
