package transaction

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

// UpdateTransactionInput represents the input for a transaction update.
type UpdateTransactionInput struct {
	UserID        uuid.UUID
	TransactionID uuid.UUID
	Type          entity.TransactionType
	CategoryID    *uuid.UUID
	Amount        decimal.Decimal
	Description   string
	Date          time.Time
}

// UpdateTransactionUseCase handles transaction updates.
type UpdateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	trigger         adapter.AlertTrigger
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	trigger adapter.AlertTrigger,
) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		trigger:         trigger,
	}
}

// Execute replaces the transaction fields. Both the previous and the new
// period and category are re-evaluated.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*entity.Transaction, error) {
	transaction, err := uc.transactionRepo.FindByID(ctx, input.UserID, input.TransactionID)
	if err != nil {
		return nil, err
	}

	category, err := resolveCategory(ctx, uc.categoryRepo, input.UserID, input.CategoryID)
	if err != nil {
		return nil, err
	}

	before := *transaction
	transaction.Type = input.Type
	transaction.CategoryID = input.CategoryID
	transaction.Amount = input.Amount
	transaction.Description = strings.TrimSpace(input.Description)
	transaction.Date = input.Date
	transaction.UpdatedAt = time.Now().UTC()
	transaction.Category = category

	if err := uc.transactionRepo.Update(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	notifyChange(ctx, uc.trigger, input.UserID, &before, transaction)
	return transaction, nil
}
