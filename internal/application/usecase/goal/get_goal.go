package goal

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
)

// GetGoalOutput is a goal summary with its deposits.
type GetGoalOutput struct {
	*Summary
	Deposits []*entity.SavingDeposit
}

// GetGoalUseCase loads a goal with deposits and progress.
type GetGoalUseCase struct {
	goalRepo    adapter.SavingGoalRepository
	depositRepo adapter.SavingDepositRepository
	calendar    adapter.Calendar
}

// NewGetGoalUseCase creates a new GetGoalUseCase instance.
func NewGetGoalUseCase(goalRepo adapter.SavingGoalRepository, depositRepo adapter.SavingDepositRepository, calendar adapter.Calendar) *GetGoalUseCase {
	return &GetGoalUseCase{
		goalRepo:    goalRepo,
		depositRepo: depositRepo,
		calendar:    calendar,
	}
}

// Execute returns the goal or domainerror.ErrGoalNotFound.
func (uc *GetGoalUseCase) Execute(ctx context.Context, userID, id uuid.UUID) (*GetGoalOutput, error) {
	goal, err := uc.goalRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	saved, err := uc.goalRepo.SumDeposits(ctx, goal.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum deposits: %w", err)
	}
	deposits, err := uc.depositRepo.FindByGoal(ctx, goal.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list deposits: %w", err)
	}

	return &GetGoalOutput{
		Summary:  Summarize(goal, saved, uc.calendar.Today()),
		Deposits: deposits,
	}, nil
}

// GetGoalProgressUseCase reports progress, remaining days and overdue state.
type GetGoalProgressUseCase struct {
	goalRepo adapter.SavingGoalRepository
	calendar adapter.Calendar
}

// NewGetGoalProgressUseCase creates a new GetGoalProgressUseCase instance.
func NewGetGoalProgressUseCase(goalRepo adapter.SavingGoalRepository, calendar adapter.Calendar) *GetGoalProgressUseCase {
	return &GetGoalProgressUseCase{goalRepo: goalRepo, calendar: calendar}
}

// Execute returns the goal summary.
func (uc *GetGoalProgressUseCase) Execute(ctx context.Context, userID, id uuid.UUID) (*Summary, error) {
	goal, err := uc.goalRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	saved, err := uc.goalRepo.SumDeposits(ctx, goal.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum deposits: %w", err)
	}
	return Summarize(goal, saved, uc.calendar.Today()), nil
}
