package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// DebtModel represents the debts table in the database.
type DebtModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type        string          `gorm:"type:varchar(10);not null"`
	Person      string          `gorm:"type:varchar(150);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	DueDate     time.Time       `gorm:"type:date;not null;index"`
	Status      string          `gorm:"type:varchar(10);not null;default:'pending';index"`
	Description string          `gorm:"type:text"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for the DebtModel.
func (DebtModel) TableName() string {
	return "debts"
}

// ToEntity converts a DebtModel to a domain Debt entity.
func (m *DebtModel) ToEntity() *entity.Debt {
	return &entity.Debt{
		ID:          m.ID,
		UserID:      m.UserID,
		Type:        entity.DebtType(m.Type),
		Person:      m.Person,
		Amount:      m.Amount,
		DueDate:     m.DueDate.UTC(),
		Status:      entity.DebtStatus(m.Status),
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// DebtFromEntity creates a DebtModel from a domain Debt entity.
func DebtFromEntity(d *entity.Debt) *DebtModel {
	return &DebtModel{
		ID:          d.ID,
		UserID:      d.UserID,
		Type:        string(d.Type),
		Person:      d.Person,
		Amount:      d.Amount,
		DueDate:     d.DueDate,
		Status:      string(d.Status),
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
