package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
	"github.com/budget-tracker/backend/internal/integration/persistence/model"
)

// debtRepository implements the adapter.DebtRepository interface.
type debtRepository struct {
	db *gorm.DB
}

// NewDebtRepository creates a new debt repository instance.
func NewDebtRepository(db *gorm.DB) adapter.DebtRepository {
	return &debtRepository{
		db: db,
	}
}

// Create creates a new debt.
func (r *debtRepository) Create(ctx context.Context, debt *entity.Debt) error {
	return r.db.WithContext(ctx).Create(model.DebtFromEntity(debt)).Error
}

// FindByID retrieves a debt owned by userID.
func (r *debtRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Debt, error) {
	var debtModel model.DebtModel
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&debtModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrDebtNotFound
		}
		return nil, result.Error
	}
	return debtModel.ToEntity(), nil
}

// FindByUser lists the debts of a user ordered by due date, optionally by type.
func (r *debtRepository) FindByUser(ctx context.Context, userID uuid.UUID, debtType *entity.DebtType) ([]*entity.Debt, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if debtType != nil {
		query = query.Where("type = ?", string(*debtType))
	}

	var debtModels []model.DebtModel
	if err := query.Order("due_date ASC, created_at ASC").Find(&debtModels).Error; err != nil {
		return nil, err
	}
	return toDebts(debtModels), nil
}

// Update updates an existing debt.
func (r *debtRepository) Update(ctx context.Context, debt *entity.Debt) error {
	return r.db.WithContext(ctx).Save(model.DebtFromEntity(debt)).Error
}

// Delete removes a debt.
func (r *debtRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.DebtModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrDebtNotFound
	}
	return nil
}

// FindOverdue lists unpaid debts of a user whose due date is before today.
func (r *debtRepository) FindOverdue(ctx context.Context, userID uuid.UUID, today time.Time) ([]*entity.Debt, error) {
	var debtModels []model.DebtModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND status <> ? AND due_date < ?", userID, string(entity.DebtStatusPaid), today).
		Order("due_date ASC").
		Find(&debtModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toDebts(debtModels), nil
}

// MarkLate sets status to late when the debt is still pending.
func (r *debtRepository) MarkLate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.DebtModel{}).
		Where("id = ? AND status = ?", id, string(entity.DebtStatusPending)).
		Updates(map[string]any{
			"status":     string(entity.DebtStatusLate),
			"updated_at": time.Now().UTC(),
		}).Error
}

func toDebts(models []model.DebtModel) []*entity.Debt {
	debts := make([]*entity.Debt, len(models))
	for i, dm := range models {
		debts[i] = dm.ToEntity()
	}
	return debts
}
