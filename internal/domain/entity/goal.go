package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SavingGoal is a target amount the user wants to save before a deadline.
// Saved totals are derived from deposits and never stored.
type SavingGoal struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Title        string
	TargetAmount decimal.Decimal
	Deadline     time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewSavingGoal creates a new SavingGoal entity created at now. The creation
// time is the start of the goal's linear savings schedule.
func NewSavingGoal(userID uuid.UUID, title string, targetAmount decimal.Decimal, deadline, now time.Time) *SavingGoal {
	now = now.UTC()

	return &SavingGoal{
		ID:           uuid.New(),
		UserID:       userID,
		Title:        title,
		TargetAmount: targetAmount,
		Deadline:     deadline,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// IsActive reports whether the deadline has not passed yet.
func (g *SavingGoal) IsActive(today time.Time) bool {
	return !g.Deadline.Before(today)
}

// SavingGoalWithTotal pairs a goal with the sum of its deposits.
type SavingGoalWithTotal struct {
	Goal       *SavingGoal
	TotalSaved decimal.Decimal
}

// SavingDeposit is money put aside towards a single goal.
type SavingDeposit struct {
	ID        uuid.UUID
	GoalID    uuid.UUID
	Amount    decimal.Decimal
	Date      time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewSavingDeposit creates a new SavingDeposit entity.
func NewSavingDeposit(goalID uuid.UUID, amount decimal.Decimal, date time.Time) *SavingDeposit {
	now := time.Now().UTC()
	return &SavingDeposit{
		ID:        uuid.New(),
		GoalID:    goalID,
		Amount:    amount,
		Date:      date,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
