package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
)

// LogoutUserInput represents the input for user logout.
type LogoutUserInput struct {
	SessionID uuid.UUID
}

// LogoutUserUseCase revokes the session behind the current token.
type LogoutUserUseCase struct {
	sessionRepo adapter.SessionRepository
}

// NewLogoutUserUseCase creates a new LogoutUserUseCase instance.
func NewLogoutUserUseCase(sessionRepo adapter.SessionRepository) *LogoutUserUseCase {
	return &LogoutUserUseCase{
		sessionRepo: sessionRepo,
	}
}

// Execute revokes the session. Revoking an already revoked session is a no-op.
func (uc *LogoutUserUseCase) Execute(ctx context.Context, input LogoutUserInput) error {
	if err := uc.sessionRepo.Revoke(ctx, input.SessionID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}
