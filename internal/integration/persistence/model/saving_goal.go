package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// SavingGoalModel represents the saving_goals table in the database.
type SavingGoalModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Title        string          `gorm:"type:varchar(150);not null"`
	TargetAmount decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Deadline     time.Time       `gorm:"type:date;not null;index"`
	CreatedAt    time.Time       `gorm:"not null"`
	UpdatedAt    time.Time       `gorm:"not null"`
}

// TableName returns the table name for the SavingGoalModel.
func (SavingGoalModel) TableName() string {
	return "saving_goals"
}

// ToEntity converts a SavingGoalModel to a domain SavingGoal entity.
func (m *SavingGoalModel) ToEntity() *entity.SavingGoal {
	return &entity.SavingGoal{
		ID:           m.ID,
		UserID:       m.UserID,
		Title:        m.Title,
		TargetAmount: m.TargetAmount,
		Deadline:     m.Deadline.UTC(),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// SavingGoalFromEntity creates a SavingGoalModel from a domain SavingGoal entity.
func SavingGoalFromEntity(g *entity.SavingGoal) *SavingGoalModel {
	return &SavingGoalModel{
		ID:           g.ID,
		UserID:       g.UserID,
		Title:        g.Title,
		TargetAmount: g.TargetAmount,
		Deadline:     g.Deadline,
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
	}
}

// SavingDepositModel represents the saving_deposits table in the database.
type SavingDepositModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	GoalID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Date      time.Time       `gorm:"type:date;not null"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for the SavingDepositModel.
func (SavingDepositModel) TableName() string {
	return "saving_deposits"
}

// ToEntity converts a SavingDepositModel to a domain SavingDeposit entity.
func (m *SavingDepositModel) ToEntity() *entity.SavingDeposit {
	return &entity.SavingDeposit{
		ID:        m.ID,
		GoalID:    m.GoalID,
		Amount:    m.Amount,
		Date:      m.Date.UTC(),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// SavingDepositFromEntity creates a SavingDepositModel from a domain SavingDeposit entity.
func SavingDepositFromEntity(d *entity.SavingDeposit) *SavingDepositModel {
	return &SavingDepositModel{
		ID:        d.ID,
		GoalID:    d.GoalID,
		Amount:    d.Amount,
		Date:      d.Date,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
