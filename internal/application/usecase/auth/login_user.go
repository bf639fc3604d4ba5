package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// LoginUserInput represents the input for user login.
type LoginUserInput struct {
	Email    string
	Password string
}

// LoginUserOutput represents the output of user login.
type LoginUserOutput struct {
	User      *entity.User
	Token     string
	ExpiresAt time.Time
}

// LoginUserUseCase handles user login logic.
type LoginUserUseCase struct {
	userRepo        adapter.UserRepository
	sessionRepo     adapter.SessionRepository
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
	tokenTTL        time.Duration
}

// NewLoginUserUseCase creates a new LoginUserUseCase instance.
func NewLoginUserUseCase(
	userRepo adapter.UserRepository,
	sessionRepo adapter.SessionRepository,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
	tokenTTL time.Duration,
) *LoginUserUseCase {
	return &LoginUserUseCase{
		userRepo:        userRepo,
		sessionRepo:     sessionRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
		tokenTTL:        tokenTTL,
	}
}

// Execute verifies the credentials and opens a new session.
func (uc *LoginUserUseCase) Execute(ctx context.Context, input LoginUserInput) (*LoginUserOutput, error) {
	user, err := uc.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		// Same error for unknown email and wrong password.
		return nil, invalidCredentials()
	}

	if err := uc.passwordService.VerifyPassword(user.PasswordHash, input.Password); err != nil {
		return nil, invalidCredentials()
	}

	session := entity.NewSession(user.ID, uc.tokenTTL)
	if err := uc.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	token, err := uc.tokenService.GenerateAccessToken(user.ID, user.Email, session.ID, session.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	slog.Info("User logged in", "user_id", user.ID, "session_id", session.ID)
	return &LoginUserOutput{
		User:      user,
		Token:     token.Token,
		ExpiresAt: token.ExpiresAt,
	}, nil
}

func invalidCredentials() error {
	return domainerror.NewAuthError(
		domainerror.ErrCodeInvalidCredentials,
		"invalid email or password",
		domainerror.ErrInvalidCredentials,
	)
}
