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

// alertRepository implements the adapter.AlertRepository interface.
type alertRepository struct {
	db *gorm.DB
}

// NewAlertRepository creates a new alert repository instance.
func NewAlertRepository(db *gorm.DB) adapter.AlertRepository {
	return &alertRepository{
		db: db,
	}
}

// Create stores a new alert. The partial unique index on unread keys turns a
// concurrent duplicate into ErrAlertAlreadyActive.
func (r *alertRepository) Create(ctx context.Context, alert *entity.Alert) error {
	alertModel, err := model.AlertFromEntity(alert)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Create(alertModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return domainerror.ErrAlertAlreadyActive
		}
		return result.Error
	}
	return nil
}

// FindUnread returns the unread alert for a correlation key, or nil.
func (r *alertRepository) FindUnread(ctx context.Context, userID uuid.UUID, alertType entity.AlertType, correlationKey string) (*entity.Alert, error) {
	var alertModel model.AlertModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND type = ? AND correlation_key = ? AND is_read = ?", userID, string(alertType), correlationKey, false).
		First(&alertModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return alertModel.ToEntity(), nil
}

// ResolveUnread marks unread alerts for a correlation key as read.
func (r *alertRepository) ResolveUnread(ctx context.Context, userID uuid.UUID, alertType entity.AlertType, correlationKey string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.AlertModel{}).
		Where("user_id = ? AND type = ? AND correlation_key = ? AND is_read = ?", userID, string(alertType), correlationKey, false).
		Updates(map[string]any{
			"is_read":    true,
			"updated_at": time.Now().UTC(),
		})
	return result.RowsAffected, result.Error
}

// FindByID retrieves an alert owned by userID.
func (r *alertRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Alert, error) {
	var alertModel model.AlertModel
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&alertModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrAlertNotFound
		}
		return nil, result.Error
	}
	return alertModel.ToEntity(), nil
}

// List returns alerts newest first, optionally filtered by read state.
func (r *alertRepository) List(ctx context.Context, userID uuid.UUID, isRead *bool, limit int) ([]*entity.Alert, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if isRead != nil {
		query = query.Where("is_read = ?", *isRead)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var alertModels []model.AlertModel
	if err := query.Order("created_at DESC").Find(&alertModels).Error; err != nil {
		return nil, err
	}

	alerts := make([]*entity.Alert, len(alertModels))
	for i, am := range alertModels {
		alerts[i] = am.ToEntity()
	}
	return alerts, nil
}

// MarkRead flips a single alert to read.
func (r *alertRepository) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&model.AlertModel{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]any{
			"is_read":    true,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrAlertNotFound
	}
	return nil
}
