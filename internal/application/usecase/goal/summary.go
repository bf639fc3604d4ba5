// Package goal contains saving goal and deposit use cases.
package goal

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/application/alerting"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// Summary is a goal with its derived saving figures.
type Summary struct {
	Goal               *entity.SavingGoal
	TotalSaved         decimal.Decimal
	ProgressPercentage decimal.Decimal
	DaysRemaining      int
	IsOverdue          bool
}

// Summarize derives progress and remaining days of a goal as of today.
func Summarize(goal *entity.SavingGoal, totalSaved decimal.Decimal, today time.Time) *Summary {
	progress := alerting.GoalProgress(goal.TargetAmount, totalSaved).Round(2)
	days := entity.DaysBetween(today, goal.Deadline)
	return &Summary{
		Goal:               goal,
		TotalSaved:         totalSaved,
		ProgressPercentage: progress,
		DaysRemaining:      days,
		IsOverdue:          days < 0 && progress.LessThan(decimal.NewFromInt(100)),
	}
}

// validateDeadline requires a deadline strictly after today.
func validateDeadline(deadline, today time.Time) error {
	if !deadline.After(today) {
		return domainerror.NewValidationError("deadline", "The deadline must be a date after today.")
	}
	return nil
}
