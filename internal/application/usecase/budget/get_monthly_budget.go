// Package budget contains monthly budget use cases.
package budget

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// GetMonthlyBudgetInput selects the month. Zero values mean the current month or year.
type GetMonthlyBudgetInput struct {
	UserID uuid.UUID
	Month  int
	Year   int
}

// GetMonthlyBudgetOutput reports the budget of a month and how much of it is spent.
// Remaining and PercentageUsed are nil when no budget is set.
type GetMonthlyBudgetOutput struct {
	Period         entity.Period
	Budget         *entity.MonthlyBudget
	TotalExpenses  decimal.Decimal
	Remaining      *decimal.Decimal
	PercentageUsed *decimal.Decimal
}

// GetMonthlyBudgetUseCase reads a monthly budget with its spending.
type GetMonthlyBudgetUseCase struct {
	budgetRepo      adapter.MonthlyBudgetRepository
	transactionRepo adapter.TransactionRepository
	calendar        adapter.Calendar
}

// NewGetMonthlyBudgetUseCase creates a new GetMonthlyBudgetUseCase instance.
func NewGetMonthlyBudgetUseCase(
	budgetRepo adapter.MonthlyBudgetRepository,
	transactionRepo adapter.TransactionRepository,
	calendar adapter.Calendar,
) *GetMonthlyBudgetUseCase {
	return &GetMonthlyBudgetUseCase{
		budgetRepo:      budgetRepo,
		transactionRepo: transactionRepo,
		calendar:        calendar,
	}
}

// Execute returns the budget status for the requested month.
func (uc *GetMonthlyBudgetUseCase) Execute(ctx context.Context, input GetMonthlyBudgetInput) (*GetMonthlyBudgetOutput, error) {
	period := entity.PeriodOf(uc.calendar.Today())
	if input.Month != 0 {
		period.Month = input.Month
	}
	if input.Year != 0 {
		period.Year = input.Year
	}

	budget, err := uc.budgetRepo.FindByPeriod(ctx, input.UserID, period)
	if err != nil {
		return nil, fmt.Errorf("failed to get monthly budget: %w", err)
	}

	expenses, err := uc.transactionRepo.SumExpenses(ctx, input.UserID, period, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to sum expenses: %w", err)
	}

	output := &GetMonthlyBudgetOutput{
		Period:        period,
		Budget:        budget,
		TotalExpenses: expenses,
	}
	if budget != nil {
		remaining := budget.Amount.Sub(expenses)
		output.Remaining = &remaining

		percentage := decimal.Zero
		if budget.Amount.IsPositive() {
			percentage = expenses.Div(budget.Amount).Mul(hundred).Round(2)
		}
		output.PercentageUsed = &percentage
	}
	return output, nil
}
