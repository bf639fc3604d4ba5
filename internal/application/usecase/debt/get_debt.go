package debt

import (
	"context"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
)

// GetDebtUseCase loads a single debt with its effective status.
type GetDebtUseCase struct {
	debtRepo adapter.DebtRepository
	calendar adapter.Calendar
}

// NewGetDebtUseCase creates a new GetDebtUseCase instance.
func NewGetDebtUseCase(debtRepo adapter.DebtRepository, calendar adapter.Calendar) *GetDebtUseCase {
	return &GetDebtUseCase{debtRepo: debtRepo, calendar: calendar}
}

// Execute returns the debt or domainerror.ErrDebtNotFound.
func (uc *GetDebtUseCase) Execute(ctx context.Context, userID, id uuid.UUID) (*entity.Debt, error) {
	debt, err := uc.debtRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	debt.Status = debt.EffectiveStatus(uc.calendar.Today())
	return debt, nil
}
