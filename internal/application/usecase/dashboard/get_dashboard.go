// Package dashboard contains the dashboard overview use case.
package dashboard

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/application/usecase/goal"
	"github.com/budget-tracker/backend/internal/domain/entity"
)

// recentAlertsLimit is the number of unread alerts shown on the dashboard.
const recentAlertsLimit = 5

// GetDashboardOutput is the overview of the current month.
type GetDashboardOutput struct {
	Period             entity.Period
	Balance            decimal.Decimal
	MonthlyIncome      decimal.Decimal
	MonthlyExpense     decimal.Decimal
	ExpensesByCategory []*entity.CategoryTotal
	ActiveGoal         *goal.Summary
	RecentAlerts       []*entity.Alert
}

// GetDashboardUseCase assembles the dashboard.
type GetDashboardUseCase struct {
	transactionRepo adapter.TransactionRepository
	goalRepo        adapter.SavingGoalRepository
	alertRepo       adapter.AlertRepository
	calendar        adapter.Calendar
}

// NewGetDashboardUseCase creates a new GetDashboardUseCase instance.
func NewGetDashboardUseCase(
	transactionRepo adapter.TransactionRepository,
	goalRepo adapter.SavingGoalRepository,
	alertRepo adapter.AlertRepository,
	calendar adapter.Calendar,
) *GetDashboardUseCase {
	return &GetDashboardUseCase{
		transactionRepo: transactionRepo,
		goalRepo:        goalRepo,
		alertRepo:       alertRepo,
		calendar:        calendar,
	}
}

// Execute computes monthly totals, category spending, the nearest active
// goal and the newest unread alerts.
func (uc *GetDashboardUseCase) Execute(ctx context.Context, userID uuid.UUID) (*GetDashboardOutput, error) {
	today := uc.calendar.Today()
	period := entity.PeriodOf(today)

	summary, err := uc.transactionRepo.Summarize(ctx, userID, entity.TransactionFilter{
		Month: &period.Month,
		Year:  &period.Year,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to summarize month: %w", err)
	}

	byCategory, err := uc.transactionRepo.ExpensesByCategory(ctx, userID, period)
	if err != nil {
		return nil, fmt.Errorf("failed to group expenses: %w", err)
	}

	next, err := uc.goalRepo.FindNextActive(ctx, userID, today)
	if err != nil {
		return nil, fmt.Errorf("failed to find active goal: %w", err)
	}
	var activeGoal *goal.Summary
	if next != nil {
		activeGoal = goal.Summarize(next.Goal, next.TotalSaved, today)
	}

	unread := false
	alerts, err := uc.alertRepo.List(ctx, userID, &unread, recentAlertsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}

	return &GetDashboardOutput{
		Period:             period,
		Balance:            summary.Balance(),
		MonthlyIncome:      summary.TotalIncome,
		MonthlyExpense:     summary.TotalExpense,
		ExpensesByCategory: byCategory,
		ActiveGoal:         activeGoal,
		RecentAlerts:       alerts,
	}, nil
}
