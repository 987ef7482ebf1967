package common

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind classifies provisioning failures. Every aborting error surfaced
// to the user carries one of these kinds.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindPermissionDenied
	KindNotFound
	KindTimeout
	KindNonZeroExit
	KindCloneFailed
	KindRevisionNotFound
	KindPatchVerificationFailed
	KindInterrupted
	KindNonCriticalCheckFailed
	KindVerificationFailed
)

func (k ErrorKind) String() string {
	switch k {
	case KindPermissionDenied:
		return "PermissionDenied"
	case KindNotFound:
		return "NotFound"
	case KindTimeout:
		return "Timeout"
	case KindNonZeroExit:
		return "NonZeroExit"
	case KindCloneFailed:
		return "CloneFailed"
	case KindRevisionNotFound:
		return "RevisionNotFound"
	case KindPatchVerificationFailed:
		return "PatchVerificationFailed"
	case KindInterrupted:
		return "Interrupted"
	case KindNonCriticalCheckFailed:
		return "NonCriticalCheckFailed"
	case KindVerificationFailed:
		return "VerificationFailed"
	default:
		return "Unknown"
	}
}

// ProvisionError is an error with a classification and, when a command was
// involved, its captured output.
type ProvisionError struct {
	Kind     ErrorKind
	Message  string
	ExitCode int
	Output   string
	cause    error
}

func (e *ProvisionError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *ProvisionError) Unwrap() error {
	return e.cause
}

// NewError creates a classified error.
func NewError(kind ErrorKind, format string, args ...interface{}) *ProvisionError {
	return &ProvisionError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapError classifies an underlying error. A nil cause yields nil.
func WrapError(cause error, kind ErrorKind, format string, args ...interface{}) error {
	if cause == nil {
		return nil
	}
	return &ProvisionError{Kind: kind, Message: fmt.Sprintf(format, args...), cause: cause}
}

// WithOutput attaches captured command output to the error.
func (e *ProvisionError) WithOutput(exitCode int, output string) *ProvisionError {
	e.ExitCode = exitCode
	e.Output = output
	return e
}

// KindOf extracts the classification from err, walking the wrap chain.
// Unclassified errors report KindUnknown.
func KindOf(err error) ErrorKind {
	var pe *ProvisionError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given classification.
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

// OutputOf returns the captured command output attached to err, if any.
func OutputOf(err error) string {
	var pe *ProvisionError
	if errors.As(err, &pe) {
		return pe.Output
	}
	return ""
}
