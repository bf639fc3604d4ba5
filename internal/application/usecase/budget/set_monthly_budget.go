package budget

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
)

// SetMonthlyBudgetInput represents the input for a budget upsert.
type SetMonthlyBudgetInput struct {
	UserID uuid.UUID
	Month  int
	Year   int
	Amount decimal.Decimal
}

// SetMonthlyBudgetUseCase creates or replaces the budget of a month.
type SetMonthlyBudgetUseCase struct {
	budgetRepo adapter.MonthlyBudgetRepository
	trigger    adapter.AlertTrigger
}

// NewSetMonthlyBudgetUseCase creates a new SetMonthlyBudgetUseCase instance.
func NewSetMonthlyBudgetUseCase(budgetRepo adapter.MonthlyBudgetRepository, trigger adapter.AlertTrigger) *SetMonthlyBudgetUseCase {
	return &SetMonthlyBudgetUseCase{
		budgetRepo: budgetRepo,
		trigger:    trigger,
	}
}

// Execute upserts the budget and re-evaluates the budget alert of that month.
func (uc *SetMonthlyBudgetUseCase) Execute(ctx context.Context, input SetMonthlyBudgetInput) (*entity.MonthlyBudget, error) {
	period := entity.Period{Month: input.Month, Year: input.Year}

	stored, err := uc.budgetRepo.Upsert(ctx, entity.NewMonthlyBudget(input.UserID, period, input.Amount))
	if err != nil {
		return nil, fmt.Errorf("failed to save monthly budget: %w", err)
	}

	if err := uc.trigger.BudgetChanged(ctx, input.UserID, period); err != nil {
		slog.Warn("Alert evaluation failed after budget change",
			"user_id", input.UserID,
			"period", period.String(),
			"error", err,
		)
	}
	return stored, nil
}
