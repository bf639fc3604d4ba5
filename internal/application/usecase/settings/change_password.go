package settings

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/application/usecase/auth"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// ChangePasswordInput represents the input for a password change.
type ChangePasswordInput struct {
	UserID          uuid.UUID
	SessionID       uuid.UUID
	CurrentPassword string
	NewPassword     string
}

// ChangePasswordUseCase replaces the password and signs out every other session.
type ChangePasswordUseCase struct {
	userRepo        adapter.UserRepository
	sessionRepo     adapter.SessionRepository
	passwordService adapter.PasswordService
}

// NewChangePasswordUseCase creates a new ChangePasswordUseCase instance.
func NewChangePasswordUseCase(
	userRepo adapter.UserRepository,
	sessionRepo adapter.SessionRepository,
	passwordService adapter.PasswordService,
) *ChangePasswordUseCase {
	return &ChangePasswordUseCase{
		userRepo:        userRepo,
		sessionRepo:     sessionRepo,
		passwordService: passwordService,
	}
}

// Execute verifies the current password and stores the new one.
func (uc *ChangePasswordUseCase) Execute(ctx context.Context, input ChangePasswordInput) error {
	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	if err := uc.passwordService.VerifyPassword(user.PasswordHash, input.CurrentPassword); err != nil {
		return domainerror.NewAuthError(
			domainerror.ErrCodeIncorrectPassword,
			"current password is incorrect",
			domainerror.ErrIncorrectPassword,
		)
	}
	if len(input.NewPassword) < auth.MinPasswordLength {
		return domainerror.NewAuthError(
			domainerror.ErrCodeWeakPassword,
			"password does not meet minimum requirements",
			domainerror.ErrWeakPassword,
		)
	}

	hash, err := uc.passwordService.HashPassword(input.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user.PasswordHash = hash
	user.UpdatedAt = now
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := uc.sessionRepo.RevokeAllExcept(ctx, user.ID, input.SessionID, now); err != nil {
		return fmt.Errorf("failed to revoke other sessions: %w", err)
	}

	slog.Info("Password changed", "user_id", user.ID)
	return nil
}
