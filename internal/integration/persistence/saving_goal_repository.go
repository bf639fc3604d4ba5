package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
	"github.com/budget-tracker/backend/internal/integration/persistence/model"
)

// savingGoalRepository implements the adapter.SavingGoalRepository interface.
type savingGoalRepository struct {
	db *gorm.DB
}

// NewSavingGoalRepository creates a new saving goal repository instance.
func NewSavingGoalRepository(db *gorm.DB) adapter.SavingGoalRepository {
	return &savingGoalRepository{
		db: db,
	}
}

// Create creates a new goal.
func (r *savingGoalRepository) Create(ctx context.Context, goal *entity.SavingGoal) error {
	return r.db.WithContext(ctx).Create(model.SavingGoalFromEntity(goal)).Error
}

// FindByID retrieves a goal owned by userID.
func (r *savingGoalRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.SavingGoal, error) {
	var goalModel model.SavingGoalModel
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&goalModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrGoalNotFound
		}
		return nil, result.Error
	}
	return goalModel.ToEntity(), nil
}

// FindByUser lists the goals of a user with their saved totals, ordered by deadline.
func (r *savingGoalRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.SavingGoalWithTotal, error) {
	var goalModels []model.SavingGoalModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("deadline ASC, created_at ASC").
		Find(&goalModels)
	if result.Error != nil {
		return nil, result.Error
	}
	if len(goalModels) == 0 {
		return []*entity.SavingGoalWithTotal{}, nil
	}

	ids := make([]uuid.UUID, len(goalModels))
	for i, gm := range goalModels {
		ids[i] = gm.ID
	}
	var sums []struct {
		GoalID uuid.UUID
		Total  decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&model.SavingDepositModel{}).
		Select("goal_id, COALESCE(SUM(amount), 0) as total").
		Where("goal_id IN ?", ids).
		Group("goal_id").
		Scan(&sums).Error
	if err != nil {
		return nil, err
	}
	totals := make(map[uuid.UUID]decimal.Decimal, len(sums))
	for _, s := range sums {
		totals[s.GoalID] = s.Total.Round(2)
	}

	goals := make([]*entity.SavingGoalWithTotal, len(goalModels))
	for i, gm := range goalModels {
		total, ok := totals[gm.ID]
		if !ok {
			total = decimal.Zero
		}
		goals[i] = &entity.SavingGoalWithTotal{Goal: gm.ToEntity(), TotalSaved: total}
	}
	return goals, nil
}

// FindNextActive returns the active goal with the nearest deadline, or nil.
func (r *savingGoalRepository) FindNextActive(ctx context.Context, userID uuid.UUID, today time.Time) (*entity.SavingGoalWithTotal, error) {
	var goalModel model.SavingGoalModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND deadline >= ?", userID, today).
		Order("deadline ASC, created_at ASC").
		First(&goalModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	total, err := r.SumDeposits(ctx, goalModel.ID)
	if err != nil {
		return nil, err
	}
	return &entity.SavingGoalWithTotal{Goal: goalModel.ToEntity(), TotalSaved: total}, nil
}

// FindActive lists goals of all users whose deadline is today or later.
func (r *savingGoalRepository) FindActive(ctx context.Context, today time.Time) ([]*entity.SavingGoal, error) {
	var goalModels []model.SavingGoalModel
	result := r.db.WithContext(ctx).
		Where("deadline >= ?", today).
		Order("user_id, deadline ASC").
		Find(&goalModels)
	if result.Error != nil {
		return nil, result.Error
	}

	goals := make([]*entity.SavingGoal, len(goalModels))
	for i, gm := range goalModels {
		goals[i] = gm.ToEntity()
	}
	return goals, nil
}

// Update updates an existing goal.
func (r *savingGoalRepository) Update(ctx context.Context, goal *entity.SavingGoal) error {
	return r.db.WithContext(ctx).Save(model.SavingGoalFromEntity(goal)).Error
}

// Delete removes a goal together with its deposits.
func (r *savingGoalRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.SavingGoalModel{}).Where("id = ? AND user_id = ?", id, userID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domainerror.ErrGoalNotFound
		}

		if err := tx.Where("goal_id = ?", id).Delete(&model.SavingDepositModel{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.SavingGoalModel{}).Error
	})
}

// SumDeposits returns the total saved towards a goal.
func (r *savingGoalRepository) SumDeposits(ctx context.Context, goalID uuid.UUID) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&model.SavingDepositModel{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("goal_id = ?", goalID).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, err
	}
	return row.Total.Round(2), nil
}

// savingDepositRepository implements the adapter.SavingDepositRepository interface.
type savingDepositRepository struct {
	db *gorm.DB
}

// NewSavingDepositRepository creates a new deposit repository instance.
func NewSavingDepositRepository(db *gorm.DB) adapter.SavingDepositRepository {
	return &savingDepositRepository{
		db: db,
	}
}

// Create creates a new deposit.
func (r *savingDepositRepository) Create(ctx context.Context, deposit *entity.SavingDeposit) error {
	return r.db.WithContext(ctx).Create(model.SavingDepositFromEntity(deposit)).Error
}

// FindByGoal lists the deposits of a goal, newest date first.
func (r *savingDepositRepository) FindByGoal(ctx context.Context, goalID uuid.UUID) ([]*entity.SavingDeposit, error) {
	var depositModels []model.SavingDepositModel
	result := r.db.WithContext(ctx).
		Where("goal_id = ?", goalID).
		Order("date DESC, created_at DESC").
		Find(&depositModels)
	if result.Error != nil {
		return nil, result.Error
	}

	deposits := make([]*entity.SavingDeposit, len(depositModels))
	for i, dm := range depositModels {
		deposits[i] = dm.ToEntity()
	}
	return deposits, nil
}

// FindByID retrieves a deposit belonging to goalID.
func (r *savingDepositRepository) FindByID(ctx context.Context, goalID, id uuid.UUID) (*entity.SavingDeposit, error) {
	var depositModel model.SavingDepositModel
	result := r.db.WithContext(ctx).Where("id = ? AND goal_id = ?", id, goalID).First(&depositModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrDepositNotFound
		}
		return nil, result.Error
	}
	return depositModel.ToEntity(), nil
}

// Delete removes a deposit.
func (r *savingDepositRepository) Delete(ctx context.Context, goalID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ? AND goal_id = ?", id, goalID).Delete(&model.SavingDepositModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrDepositNotFound
	}
	return nil
}
