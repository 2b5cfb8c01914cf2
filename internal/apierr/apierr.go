// Package apierr defines the stable error kinds the HTTP layer translates
// into status codes, independent of how an internal failure occurred.
package apierr

import "fmt"

// Kind classifies an Error for status-code mapping at the transport layer.
type Kind string

const (
	// InvalidArgument marks a caller-supplied request that failed validation.
	InvalidArgument Kind = "invalid_argument"
	// ServiceUnavailable marks a dependency (storage, upstream labeler) that
	// could not be reached or is disabled for the requested operation.
	ServiceUnavailable Kind = "service_unavailable"
	// Internal marks an unexpected failure with no caller-actionable cause.
	Internal Kind = "internal"
	// UpstreamLabelerFailure marks a remote labeler call that failed. It is
	// always recovered internally by falling back to the heuristic labeler
	// and must never reach a caller.
	UpstreamLabelerFailure Kind = "upstream_labeler_failure"
)

// Error is the typed error carried through the service layer.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New constructs an Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap constructs an Error of the given kind, recording cause for
// errors.Is/As chains.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// InvalidArgumentf builds an InvalidArgument error with a formatted message.
func InvalidArgumentf(format string, args ...any) *Error {
	return New(InvalidArgument, fmt.Sprintf(format, args...))
}
