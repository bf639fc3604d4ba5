package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction (expense or income).
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
)

// IsValid reports whether t is a known transaction type.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeExpense || t == TransactionTypeIncome
}

// Transaction represents an income or expense recorded by a user.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Type        TransactionType
	CategoryID  *uuid.UUID // Optional, can be uncategorized
	Amount      decimal.Decimal
	Description string
	Date        time.Time // calendar date, midnight UTC
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Category *Category // populated by repository reads
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(
	userID uuid.UUID,
	transactionType TransactionType,
	categoryID *uuid.UUID,
	amount decimal.Decimal,
	description string,
	date time.Time,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Type:        transactionType,
		CategoryID:  categoryID,
		Amount:      amount,
		Description: description,
		Date:        date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsExpense reports whether the transaction is an expense.
func (t *Transaction) IsExpense() bool {
	return t.Type == TransactionTypeExpense
}

// Period returns the calendar month the transaction belongs to.
func (t *Transaction) Period() Period {
	return PeriodOf(t.Date)
}

// TransactionFilter narrows transaction listings and sums.
type TransactionFilter struct {
	Month      *int
	Year       *int
	Type       *TransactionType
	CategoryID *uuid.UUID
}

// TransactionSummary holds income and expense totals for a filtered set.
type TransactionSummary struct {
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
}

// Balance returns income minus expense.
func (s TransactionSummary) Balance() decimal.Decimal {
	return s.TotalIncome.Sub(s.TotalExpense)
}

// CategoryTotal is the expense total of one category within a period.
type CategoryTotal struct {
	Category *Category
	Total    decimal.Decimal
}
