package debt

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
)

// ListDebtsUseCase lists the debts of a user.
type ListDebtsUseCase struct {
	debtRepo adapter.DebtRepository
	calendar adapter.Calendar
}

// NewListDebtsUseCase creates a new ListDebtsUseCase instance.
func NewListDebtsUseCase(debtRepo adapter.DebtRepository, calendar adapter.Calendar) *ListDebtsUseCase {
	return &ListDebtsUseCase{debtRepo: debtRepo, calendar: calendar}
}

// Execute returns debts ordered by due date. Overdue unpaid debts are reported
// as late even before the daily sweep stored it.
func (uc *ListDebtsUseCase) Execute(ctx context.Context, userID uuid.UUID, debtType *entity.DebtType) ([]*entity.Debt, error) {
	debts, err := uc.debtRepo.FindByUser(ctx, userID, debtType)
	if err != nil {
		return nil, fmt.Errorf("failed to list debts: %w", err)
	}

	today := uc.calendar.Today()
	for _, d := range debts {
		d.Status = d.EffectiveStatus(today)
	}
	return debts, nil
}
