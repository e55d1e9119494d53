package domain

import "errors"

var (
	ErrNotFound           = errors.New("resource not found")
	ErrPermissionDenied   = errors.New("administrator permission required")
	ErrSourceNotFound     = errors.New("source message not found")
	ErrDuplicateLink      = errors.New("issue link already exists")
	ErrStorageUnavailable = errors.New("link storage unavailable")
)

// ValidationError represents a field-level validation failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// TrackerError wraps a failure reported by the issue tracker API. The
// underlying detail is shown verbatim to the invoker.
type TrackerError struct {
	Err error
}

func (e *TrackerError) Error() string {
	return "issue tracker: " + e.Err.Error()
}

func (e *TrackerError) Unwrap() error {
	return e.Err
}
