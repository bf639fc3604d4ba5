package adapter

import (
	"time"

	"github.com/google/uuid"
)

// AccessToken is a signed token and its expiry.
type AccessToken struct {
	Token     string
	ExpiresAt time.Time
}

// TokenClaims represents the claims contained in an access token.
type TokenClaims struct {
	UserID    uuid.UUID
	Email     string
	SessionID uuid.UUID
	ExpiresAt time.Time
}

// TokenService defines the interface for access token operations.
type TokenService interface {
	// GenerateAccessToken signs a token bound to the given session.
	GenerateAccessToken(userID uuid.UUID, email string, sessionID uuid.UUID, expiresAt time.Time) (*AccessToken, error)

	// ValidateAccessToken verifies signature and expiry and returns the claims.
	ValidateAccessToken(token string) (*TokenClaims, error)
}
