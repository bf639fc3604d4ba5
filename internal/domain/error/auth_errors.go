// Package error defines domain-specific errors for the Budget Tracker application.
package error

import "errors"

// Authentication domain errors.
var (
	// ErrUserNotFound is returned when a user is not found in the system.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when attempting to register with an existing email.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrInvalidCredentials is returned when login credentials are invalid.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken is returned when a token is invalid or malformed.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a token has expired.
	ErrExpiredToken = errors.New("token has expired")

	// ErrSessionRevoked is returned when the token's session was logged out.
	ErrSessionRevoked = errors.New("session has been revoked")

	// ErrWeakPassword is returned when the provided password does not meet requirements.
	ErrWeakPassword = errors.New("password does not meet minimum requirements")

	// ErrIncorrectPassword is returned when the current password does not match.
	ErrIncorrectPassword = errors.New("current password is incorrect")

	// ErrRateLimited is returned when a client exceeded its request allowance.
	ErrRateLimited = errors.New("too many requests")
)

// AuthErrorCode defines error codes for authentication errors.
// Format: AUT-XXYYYY where XX is category and YYYY is specific error.
type AuthErrorCode string

const (
	// Registration errors (01XXXX)
	ErrCodeEmailExists  AuthErrorCode = "AUT-010001"
	ErrCodeWeakPassword AuthErrorCode = "AUT-010002"

	// Login errors (02XXXX)
	ErrCodeInvalidCredentials AuthErrorCode = "AUT-020001"
	ErrCodeRateLimited        AuthErrorCode = "AUT-020002"

	// Token errors (03XXXX)
	ErrCodeInvalidToken   AuthErrorCode = "AUT-030001"
	ErrCodeExpiredToken   AuthErrorCode = "AUT-030002"
	ErrCodeMissingToken   AuthErrorCode = "AUT-030003"
	ErrCodeSessionRevoked AuthErrorCode = "AUT-030004"

	// Account errors (04XXXX)
	ErrCodeUserNotFound      AuthErrorCode = "AUT-040001"
	ErrCodeIncorrectPassword AuthErrorCode = "AUT-040002"
)

// AuthError represents an authentication error with code and message.
type AuthError struct {
	Code    AuthErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AuthError) Unwrap() error {
	return e.Err
}

// NewAuthError creates a new AuthError with the given code and message.
func NewAuthError(code AuthErrorCode, message string, err error) *AuthError {
	return &AuthError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
