package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	"github.com/budget-tracker/backend/internal/integration/persistence/model"
)

// monthlyBudgetRepository implements the adapter.MonthlyBudgetRepository interface.
type monthlyBudgetRepository struct {
	db *gorm.DB
}

// NewMonthlyBudgetRepository creates a new monthly budget repository instance.
func NewMonthlyBudgetRepository(db *gorm.DB) adapter.MonthlyBudgetRepository {
	return &monthlyBudgetRepository{
		db: db,
	}
}

// FindByPeriod returns the budget for a month, or nil when none is configured.
func (r *monthlyBudgetRepository) FindByPeriod(ctx context.Context, userID uuid.UUID, period entity.Period) (*entity.MonthlyBudget, error) {
	var budgetModel model.MonthlyBudgetModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND month = ? AND year = ?", userID, period.Month, period.Year).
		First(&budgetModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return budgetModel.ToEntity(), nil
}

// Upsert creates or updates the budget of (user, month, year) and returns the stored row.
func (r *monthlyBudgetRepository) Upsert(ctx context.Context, budget *entity.MonthlyBudget) (*entity.MonthlyBudget, error) {
	budgetModel := model.MonthlyBudgetFromEntity(budget)
	budgetModel.UpdatedAt = time.Now().UTC()

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "year"}, {Name: "month"}},
		DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at"}),
	}).Create(budgetModel)
	if result.Error != nil {
		return nil, result.Error
	}

	return r.FindByPeriod(ctx, budget.UserID, budget.Period())
}
