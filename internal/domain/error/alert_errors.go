package error

import "errors"

// Alert domain errors.
var (
	// ErrAlertNotFound is returned when an alert does not exist or belongs to another user.
	ErrAlertNotFound = errors.New("alert not found")

	// ErrAlertAlreadyActive is returned by the store when an unread alert with the
	// same correlation key already exists.
	ErrAlertAlreadyActive = errors.New("unread alert already exists for correlation key")

	// ErrLockNotAcquired is returned when a reconciliation lock could not be taken in time.
	ErrLockNotAcquired = errors.New("alert lock not acquired")
)

// AlertErrorCode defines error codes for alert errors.
type AlertErrorCode string

const (
	ErrCodeAlertNotFound AlertErrorCode = "ALR-010001"
)

// AlertError represents an alert error with code and message.
type AlertError struct {
	Code    AlertErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AlertError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AlertError) Unwrap() error {
	return e.Err
}

// NewAlertError creates a new AlertError.
func NewAlertError(code AlertErrorCode, message string, err error) *AlertError {
	return &AlertError{Code: code, Message: message, Err: err}
}
