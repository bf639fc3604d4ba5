package debt

import (
	"context"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
)

// DeleteDebtUseCase removes a debt.
type DeleteDebtUseCase struct {
	debtRepo adapter.DebtRepository
}

// NewDeleteDebtUseCase creates a new DeleteDebtUseCase instance.
func NewDeleteDebtUseCase(debtRepo adapter.DebtRepository) *DeleteDebtUseCase {
	return &DeleteDebtUseCase{debtRepo: debtRepo}
}

// Execute deletes the debt or returns domainerror.ErrDebtNotFound.
func (uc *DeleteDebtUseCase) Execute(ctx context.Context, userID, id uuid.UUID) error {
	return uc.debtRepo.Delete(ctx, userID, id)
}
