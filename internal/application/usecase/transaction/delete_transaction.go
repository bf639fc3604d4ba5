package transaction

import (
	"context"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
)

// DeleteTransactionUseCase removes a transaction.
type DeleteTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	trigger         adapter.AlertTrigger
}

// NewDeleteTransactionUseCase creates a new DeleteTransactionUseCase instance.
func NewDeleteTransactionUseCase(transactionRepo adapter.TransactionRepository, trigger adapter.AlertTrigger) *DeleteTransactionUseCase {
	return &DeleteTransactionUseCase{
		transactionRepo: transactionRepo,
		trigger:         trigger,
	}
}

// Execute deletes the transaction and re-evaluates the period it belonged to.
func (uc *DeleteTransactionUseCase) Execute(ctx context.Context, userID, id uuid.UUID) error {
	transaction, err := uc.transactionRepo.FindByID(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := uc.transactionRepo.Delete(ctx, userID, id); err != nil {
		return err
	}

	notifyChange(ctx, uc.trigger, userID, transaction, nil)
	return nil
}
