package model

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// AlertModel represents the alerts table in the database.
// The partial unique index on unread correlation keys is created in Migrate.
type AlertModel struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID      `gorm:"type:uuid;not null;index"`
	Type           string         `gorm:"type:varchar(50);not null"`
	CorrelationKey string         `gorm:"type:varchar(100);not null"`
	Payload        datatypes.JSON `gorm:"not null"`
	IsRead         bool           `gorm:"not null;default:false"`
	CreatedAt      time.Time      `gorm:"not null;index"`
	UpdatedAt      time.Time      `gorm:"not null"`
}

// TableName returns the table name for the AlertModel.
func (AlertModel) TableName() string {
	return "alerts"
}

// ToEntity converts an AlertModel to a domain Alert entity.
func (m *AlertModel) ToEntity() *entity.Alert {
	payload := map[string]any{}
	if len(m.Payload) > 0 {
		if err := json.Unmarshal(m.Payload, &payload); err != nil {
			slog.Warn("Failed to unmarshal alert payload", "error", err, "id", m.ID)
		}
	}

	return &entity.Alert{
		ID:             m.ID,
		UserID:         m.UserID,
		Type:           entity.AlertType(m.Type),
		CorrelationKey: m.CorrelationKey,
		Payload:        payload,
		IsRead:         m.IsRead,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// AlertFromEntity creates an AlertModel from a domain Alert entity.
func AlertFromEntity(a *entity.Alert) (*AlertModel, error) {
	payload, err := json.Marshal(a.Payload)
	if err != nil {
		return nil, err
	}
	if a.Payload == nil {
		payload = []byte("{}")
	}

	return &AlertModel{
		ID:             a.ID,
		UserID:         a.UserID,
		Type:           string(a.Type),
		CorrelationKey: a.CorrelationKey,
		Payload:        datatypes.JSON(payload),
		IsRead:         a.IsRead,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}, nil
}
