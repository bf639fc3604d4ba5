package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MonthlyBudget is the overall expense ceiling of a user for one month.
// There is at most one per (user, month, year).
type MonthlyBudget struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Month     int
	Year      int
	Amount    decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewMonthlyBudget creates a new MonthlyBudget entity.
func NewMonthlyBudget(userID uuid.UUID, period Period, amount decimal.Decimal) *MonthlyBudget {
	now := time.Now().UTC()
	return &MonthlyBudget{
		ID:        uuid.New(),
		UserID:    userID,
		Month:     period.Month,
		Year:      period.Year,
		Amount:    amount,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Period returns the month the budget applies to.
func (b *MonthlyBudget) Period() Period {
	return Period{Month: b.Month, Year: b.Year}
}
