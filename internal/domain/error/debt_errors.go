package error

import "errors"

// Debt domain errors.
var (
	// ErrDebtNotFound is returned when a debt does not exist or belongs to another user.
	ErrDebtNotFound = errors.New("debt not found")
)

// DebtErrorCode defines error codes for debt errors.
type DebtErrorCode string

const (
	ErrCodeDebtNotFound DebtErrorCode = "DBT-010001"
)

// DebtError represents a debt error with code and message.
type DebtError struct {
	Code    DebtErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *DebtError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *DebtError) Unwrap() error {
	return e.Err
}

// NewDebtError creates a new DebtError.
func NewDebtError(code DebtErrorCode, message string, err error) *DebtError {
	return &DebtError{Code: code, Message: message, Err: err}
}
