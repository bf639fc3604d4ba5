package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// MonthlyBudgetRepository defines the interface for monthly budget persistence operations.
type MonthlyBudgetRepository interface {
	// FindByPeriod returns the budget for a month, or nil when none is configured.
	FindByPeriod(ctx context.Context, userID uuid.UUID, period entity.Period) (*entity.MonthlyBudget, error)

	// Upsert creates or updates the budget of (user, month, year) and returns the stored row.
	Upsert(ctx context.Context, budget *entity.MonthlyBudget) (*entity.MonthlyBudget, error)
}
