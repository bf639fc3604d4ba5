package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// DebtRepository defines the interface for debt persistence operations.
type DebtRepository interface {
	// Create creates a new debt.
	Create(ctx context.Context, debt *entity.Debt) error

	// FindByID retrieves a debt owned by userID.
	FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Debt, error)

	// FindByUser lists the debts of a user ordered by due date, optionally by type.
	FindByUser(ctx context.Context, userID uuid.UUID, debtType *entity.DebtType) ([]*entity.Debt, error)

	// Update updates an existing debt.
	Update(ctx context.Context, debt *entity.Debt) error

	// Delete removes a debt.
	Delete(ctx context.Context, userID, id uuid.UUID) error

	// FindOverdue lists unpaid debts of a user whose due date is before today.
	FindOverdue(ctx context.Context, userID uuid.UUID, today time.Time) ([]*entity.Debt, error)

	// MarkLate sets status to late unless the debt is paid or already late.
	MarkLate(ctx context.Context, id uuid.UUID) error
}
