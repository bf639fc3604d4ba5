package transaction

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
)

const (
	// DefaultPerPage is used when the client does not ask for a page size.
	DefaultPerPage = 15
	// MaxPerPage caps the page size.
	MaxPerPage = 100
)

// ListTransactionsInput represents the input for listing transactions.
type ListTransactionsInput struct {
	UserID  uuid.UUID
	Filter  entity.TransactionFilter
	Page    int
	PerPage int
}

// ListTransactionsOutput is one page of transactions plus totals over the whole filter.
type ListTransactionsOutput struct {
	Transactions []*entity.Transaction
	Total        int64
	Page         int
	PerPage      int
	LastPage     int
	Summary      *entity.TransactionSummary
}

// ListTransactionsUseCase handles transaction listing.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
	calendar        adapter.Calendar
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(transactionRepo adapter.TransactionRepository, calendar adapter.Calendar) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		transactionRepo: transactionRepo,
		calendar:        calendar,
	}
}

// Execute returns the requested page. A month filter without a year applies to the current year.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	page := max(input.Page, 1)
	perPage := input.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	perPage = min(perPage, MaxPerPage)

	filter := input.Filter
	if filter.Month != nil && filter.Year == nil {
		year := uc.calendar.Today().Year()
		filter.Year = &year
	}

	result, err := uc.transactionRepo.List(ctx, input.UserID, filter, adapter.Pagination{Page: page, PerPage: perPage})
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	summary, err := uc.transactionRepo.Summarize(ctx, input.UserID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize transactions: %w", err)
	}

	lastPage := int((result.Total + int64(perPage) - 1) / int64(perPage))
	return &ListTransactionsOutput{
		Transactions: result.Transactions,
		Total:        result.Total,
		Page:         page,
		PerPage:      perPage,
		LastPage:     max(lastPage, 1),
		Summary:      summary,
	}, nil
}
