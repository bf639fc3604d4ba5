package goal

import (
	"context"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
)

// DeleteGoalUseCase removes a goal and its deposits.
type DeleteGoalUseCase struct {
	goalRepo adapter.SavingGoalRepository
}

// NewDeleteGoalUseCase creates a new DeleteGoalUseCase instance.
func NewDeleteGoalUseCase(goalRepo adapter.SavingGoalRepository) *DeleteGoalUseCase {
	return &DeleteGoalUseCase{goalRepo: goalRepo}
}

// Execute deletes the goal or returns domainerror.ErrGoalNotFound.
func (uc *DeleteGoalUseCase) Execute(ctx context.Context, userID, id uuid.UUID) error {
	return uc.goalRepo.Delete(ctx, userID, id)
}
