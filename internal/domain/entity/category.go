package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category groups transactions and optionally carries a monthly spending limit.
type Category struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Name         string
	MonthlyLimit *decimal.Decimal // nil or zero disables limit alerts
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewCategory creates a new Category entity.
func NewCategory(userID uuid.UUID, name string, monthlyLimit *decimal.Decimal) *Category {
	now := time.Now().UTC()

	return &Category{
		ID:           uuid.New(),
		UserID:       userID,
		Name:         name,
		MonthlyLimit: monthlyLimit,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// HasLimit reports whether a positive monthly limit is configured.
func (c *Category) HasLimit() bool {
	return c.MonthlyLimit != nil && c.MonthlyLimit.IsPositive()
}
