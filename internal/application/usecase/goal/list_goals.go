package goal

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
)

// ListGoalsUseCase lists the goals of a user.
type ListGoalsUseCase struct {
	goalRepo adapter.SavingGoalRepository
	calendar adapter.Calendar
}

// NewListGoalsUseCase creates a new ListGoalsUseCase instance.
func NewListGoalsUseCase(goalRepo adapter.SavingGoalRepository, calendar adapter.Calendar) *ListGoalsUseCase {
	return &ListGoalsUseCase{goalRepo: goalRepo, calendar: calendar}
}

// Execute returns goals ordered by deadline with their progress.
func (uc *ListGoalsUseCase) Execute(ctx context.Context, userID uuid.UUID) ([]*Summary, error) {
	goals, err := uc.goalRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	today := uc.calendar.Today()
	summaries := make([]*Summary, len(goals))
	for i, g := range goals {
		summaries[i] = Summarize(g.Goal, g.TotalSaved, today)
	}
	return summaries, nil
}
