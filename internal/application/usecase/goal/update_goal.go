package goal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/application/adapter"
)

// UpdateGoalInput represents the input for a goal update.
type UpdateGoalInput struct {
	UserID       uuid.UUID
	GoalID       uuid.UUID
	Title        string
	TargetAmount decimal.Decimal
	Deadline     time.Time
}

// UpdateGoalUseCase handles goal updates.
type UpdateGoalUseCase struct {
	goalRepo adapter.SavingGoalRepository
	calendar adapter.Calendar
}

// NewUpdateGoalUseCase creates a new UpdateGoalUseCase instance.
func NewUpdateGoalUseCase(goalRepo adapter.SavingGoalRepository, calendar adapter.Calendar) *UpdateGoalUseCase {
	return &UpdateGoalUseCase{
		goalRepo: goalRepo,
		calendar: calendar,
	}
}

// Execute replaces the goal fields.
func (uc *UpdateGoalUseCase) Execute(ctx context.Context, input UpdateGoalInput) (*Summary, error) {
	goal, err := uc.goalRepo.FindByID(ctx, input.UserID, input.GoalID)
	if err != nil {
		return nil, err
	}

	today := uc.calendar.Today()
	if err := validateDeadline(input.Deadline, today); err != nil {
		return nil, err
	}

	goal.Title = strings.TrimSpace(input.Title)
	goal.TargetAmount = input.TargetAmount
	goal.Deadline = input.Deadline
	goal.UpdatedAt = time.Now().UTC()
	if err := uc.goalRepo.Update(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	saved, err := uc.goalRepo.SumDeposits(ctx, goal.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum deposits: %w", err)
	}
	return Summarize(goal, saved, today), nil
}
