package error

import "errors"

// Saving goal domain errors.
var (
	// ErrGoalNotFound is returned when a goal does not exist or belongs to another user.
	ErrGoalNotFound = errors.New("goal not found")

	// ErrDepositNotFound is returned when a deposit does not exist on the given goal.
	ErrDepositNotFound = errors.New("deposit not found")
)

// GoalErrorCode defines error codes for goal errors.
// Format: GOL-XXYYYY where XX is category and YYYY is specific error.
type GoalErrorCode string

const (
	ErrCodeGoalNotFound    GoalErrorCode = "GOL-010001"
	ErrCodeDepositNotFound GoalErrorCode = "GOL-020001"
)

// GoalError represents a goal error with code and message.
type GoalError struct {
	Code    GoalErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *GoalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *GoalError) Unwrap() error {
	return e.Err
}

// NewGoalError creates a new GoalError with the given code and message.
func NewGoalError(code GoalErrorCode, message string, err error) *GoalError {
	return &GoalError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
