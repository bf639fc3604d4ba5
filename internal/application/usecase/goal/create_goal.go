package goal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
)

// CreateGoalInput represents the input for goal creation.
type CreateGoalInput struct {
	UserID       uuid.UUID
	Title        string
	TargetAmount decimal.Decimal
	Deadline     time.Time
}

// CreateGoalUseCase handles goal creation.
type CreateGoalUseCase struct {
	goalRepo adapter.SavingGoalRepository
	clock    adapter.Clock
	calendar adapter.Calendar
}

// NewCreateGoalUseCase creates a new CreateGoalUseCase instance.
func NewCreateGoalUseCase(goalRepo adapter.SavingGoalRepository, clock adapter.Clock, calendar adapter.Calendar) *CreateGoalUseCase {
	return &CreateGoalUseCase{
		goalRepo: goalRepo,
		clock:    clock,
		calendar: calendar,
	}
}

// Execute stores a new goal. Goals are evaluated by the weekly sweep only.
func (uc *CreateGoalUseCase) Execute(ctx context.Context, input CreateGoalInput) (*Summary, error) {
	today := uc.calendar.Today()
	if err := validateDeadline(input.Deadline, today); err != nil {
		return nil, err
	}

	goal := entity.NewSavingGoal(input.UserID, strings.TrimSpace(input.Title), input.TargetAmount, input.Deadline, uc.clock.Now())
	if err := uc.goalRepo.Create(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}
	return Summarize(goal, decimal.Zero, today), nil
}
