// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// UserRepository defines the interface for user persistence operations.
type UserRepository interface {
	// Create creates a new user in the database.
	Create(ctx context.Context, user *entity.User) error

	// FindByID retrieves a user by their ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// ExistsByEmail checks if a user with the given email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Update updates an existing user in the database.
	Update(ctx context.Context, user *entity.User) error

	// ListIDs returns the ids of every user, used by the scheduled sweeps.
	ListIDs(ctx context.Context) ([]uuid.UUID, error)
}

// SessionRepository persists issued access-token sessions.
type SessionRepository interface {
	// Create stores a new session.
	Create(ctx context.Context, session *entity.Session) error

	// FindByID retrieves a session by its id (the token jti).
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Session, error)

	// Revoke marks a single session as revoked.
	Revoke(ctx context.Context, id uuid.UUID, at time.Time) error

	// RevokeAllExcept revokes every active session of a user except keepID.
	RevokeAllExcept(ctx context.Context, userID, keepID uuid.UUID, at time.Time) error
}
