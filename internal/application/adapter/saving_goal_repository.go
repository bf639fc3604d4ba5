package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// SavingGoalRepository defines the interface for saving goal persistence operations.
type SavingGoalRepository interface {
	// Create creates a new goal.
	Create(ctx context.Context, goal *entity.SavingGoal) error

	// FindByID retrieves a goal owned by userID.
	FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.SavingGoal, error)

	// FindByUser lists the goals of a user with their saved totals, ordered by deadline.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.SavingGoalWithTotal, error)

	// FindNextActive returns the active goal with the nearest deadline, or nil.
	FindNextActive(ctx context.Context, userID uuid.UUID, today time.Time) (*entity.SavingGoalWithTotal, error)

	// FindActive lists goals of all users whose deadline is today or later.
	FindActive(ctx context.Context, today time.Time) ([]*entity.SavingGoal, error)

	// Update updates an existing goal.
	Update(ctx context.Context, goal *entity.SavingGoal) error

	// Delete removes a goal together with its deposits.
	Delete(ctx context.Context, userID, id uuid.UUID) error

	// SumDeposits returns the total saved towards a goal.
	SumDeposits(ctx context.Context, goalID uuid.UUID) (decimal.Decimal, error)
}

// SavingDepositRepository defines the interface for deposit persistence operations.
type SavingDepositRepository interface {
	// Create creates a new deposit.
	Create(ctx context.Context, deposit *entity.SavingDeposit) error

	// FindByGoal lists the deposits of a goal, newest date first.
	FindByGoal(ctx context.Context, goalID uuid.UUID) ([]*entity.SavingDeposit, error)

	// FindByID retrieves a deposit belonging to goalID.
	FindByID(ctx context.Context, goalID, id uuid.UUID) (*entity.SavingDeposit, error)

	// Delete removes a deposit.
	Delete(ctx context.Context, goalID, id uuid.UUID) error
}
