package transaction

import (
	"context"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
)

// GetTransactionUseCase loads a single transaction with its category.
type GetTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewGetTransactionUseCase creates a new GetTransactionUseCase instance.
func NewGetTransactionUseCase(transactionRepo adapter.TransactionRepository) *GetTransactionUseCase {
	return &GetTransactionUseCase{transactionRepo: transactionRepo}
}

// Execute returns the transaction or domainerror.ErrTransactionNotFound.
func (uc *GetTransactionUseCase) Execute(ctx context.Context, userID, id uuid.UUID) (*entity.Transaction, error) {
	return uc.transactionRepo.FindByID(ctx, userID, id)
}
