package adapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// Pagination defines page-based pagination options.
type Pagination struct {
	Page    int
	PerPage int
}

// TransactionPage is one page of a transaction listing.
type TransactionPage struct {
	Transactions []*entity.Transaction
	Total        int64
}

// TransactionRepository defines the interface for transaction persistence operations.
type TransactionRepository interface {
	// Create creates a new transaction in the database.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a transaction with its category, scoped to userID.
	FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Transaction, error)

	// Update updates an existing transaction.
	Update(ctx context.Context, transaction *entity.Transaction) error

	// Delete removes a transaction.
	Delete(ctx context.Context, userID, id uuid.UUID) error

	// List returns a page of transactions ordered by date and creation time, newest first.
	List(ctx context.Context, userID uuid.UUID, filter entity.TransactionFilter, page Pagination) (*TransactionPage, error)

	// Summarize returns income and expense totals over the filtered set.
	Summarize(ctx context.Context, userID uuid.UUID, filter entity.TransactionFilter) (*entity.TransactionSummary, error)

	// SumExpenses sums expense amounts in a period, optionally restricted to one category.
	SumExpenses(ctx context.Context, userID uuid.UUID, period entity.Period, categoryID *uuid.UUID) (decimal.Decimal, error)

	// ExpensesByCategory groups categorized expenses of a period by category.
	ExpensesByCategory(ctx context.Context, userID uuid.UUID, period entity.Period) ([]*entity.CategoryTotal, error)
}
