package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/budget-tracker/backend/internal/application/adapter"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// AuthenticateUseCase resolves a bearer token to its claims, rejecting
// tokens whose session was revoked or expired.
type AuthenticateUseCase struct {
	tokenService adapter.TokenService
	sessionRepo  adapter.SessionRepository
}

// NewAuthenticateUseCase creates a new AuthenticateUseCase instance.
func NewAuthenticateUseCase(tokenService adapter.TokenService, sessionRepo adapter.SessionRepository) *AuthenticateUseCase {
	return &AuthenticateUseCase{
		tokenService: tokenService,
		sessionRepo:  sessionRepo,
	}
}

// Execute validates the token and its session.
func (uc *AuthenticateUseCase) Execute(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	claims, err := uc.tokenService.ValidateAccessToken(token)
	if err != nil {
		if errors.Is(err, domainerror.ErrExpiredToken) {
			return nil, domainerror.NewAuthError(domainerror.ErrCodeExpiredToken, "token has expired", err)
		}
		return nil, domainerror.NewAuthError(domainerror.ErrCodeInvalidToken, "invalid token", err)
	}

	session, err := uc.sessionRepo.FindByID(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, domainerror.ErrSessionRevoked) {
			return nil, domainerror.NewAuthError(domainerror.ErrCodeSessionRevoked, "session has been revoked", err)
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session.UserID != claims.UserID || !session.IsActive(time.Now().UTC()) {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeSessionRevoked,
			"session has been revoked",
			domainerror.ErrSessionRevoked,
		)
	}

	return claims, nil
}
