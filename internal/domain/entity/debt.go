package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DebtType tells whether the user owes money or is owed money.
type DebtType string

const (
	DebtTypeOutgoing DebtType = "outgoing"
	DebtTypeIncoming DebtType = "incoming"
)

// DebtStatus is the settlement state of a debt.
type DebtStatus string

const (
	DebtStatusPending DebtStatus = "pending"
	DebtStatusPaid    DebtStatus = "paid"
	DebtStatusLate    DebtStatus = "late"
)

// IsValid reports whether s is a known debt status.
func (s DebtStatus) IsValid() bool {
	switch s {
	case DebtStatusPending, DebtStatusPaid, DebtStatusLate:
		return true
	}
	return false
}

// Debt is money owed to or by another person.
type Debt struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Type        DebtType
	Person      string
	Amount      decimal.Decimal
	DueDate     time.Time
	Status      DebtStatus
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewDebt creates a new Debt. An empty status defaults to pending.
func NewDebt(userID uuid.UUID, debtType DebtType, person string, amount decimal.Decimal, dueDate time.Time, status DebtStatus, description string) *Debt {
	if status == "" {
		status = DebtStatusPending
	}
	now := time.Now().UTC()
	return &Debt{
		ID:          uuid.New(),
		UserID:      userID,
		Type:        debtType,
		Person:      person,
		Amount:      amount,
		DueDate:     dueDate,
		Status:      status,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsOverdue reports whether the debt is unpaid and its due date is before today.
func (d *Debt) IsOverdue(today time.Time) bool {
	return d.Status != DebtStatusPaid && d.DueDate.Before(today)
}

// EffectiveStatus derives the status a reader should see on the given day
// without mutating the debt. Paid is never overridden.
func (d *Debt) EffectiveStatus(today time.Time) DebtStatus {
	if d.Status == DebtStatusPaid {
		return DebtStatusPaid
	}
	if d.DueDate.Before(today) {
		return DebtStatusLate
	}
	return DebtStatusPending
}
