package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// MonthlyBudgetModel represents the monthly_budgets table in the database.
type MonthlyBudgetModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_monthly_budgets_period,priority:1"`
	Year      int             `gorm:"not null;uniqueIndex:idx_monthly_budgets_period,priority:2"`
	Month     int             `gorm:"not null;uniqueIndex:idx_monthly_budgets_period,priority:3"`
	Amount    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for the MonthlyBudgetModel.
func (MonthlyBudgetModel) TableName() string {
	return "monthly_budgets"
}

// ToEntity converts a MonthlyBudgetModel to a domain MonthlyBudget entity.
func (m *MonthlyBudgetModel) ToEntity() *entity.MonthlyBudget {
	return &entity.MonthlyBudget{
		ID:        m.ID,
		UserID:    m.UserID,
		Month:     m.Month,
		Year:      m.Year,
		Amount:    m.Amount,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// MonthlyBudgetFromEntity creates a MonthlyBudgetModel from a domain MonthlyBudget entity.
func MonthlyBudgetFromEntity(b *entity.MonthlyBudget) *MonthlyBudgetModel {
	return &MonthlyBudgetModel{
		ID:        b.ID,
		UserID:    b.UserID,
		Month:     b.Month,
		Year:      b.Year,
		Amount:    b.Amount,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
