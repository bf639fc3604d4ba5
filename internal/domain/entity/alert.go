package entity

import (
	"time"

	"github.com/google/uuid"
)

// AlertType identifies the rule that raised an alert.
type AlertType string

const (
	AlertTypeBudgetExceeded   AlertType = "budget_exceeded"
	AlertTypeCategoryExceeded AlertType = "category_exceeded"
	AlertTypeDebtDue          AlertType = "debt_due"
	AlertTypeGoalOfftrack     AlertType = "goal_offtrack"
)

// Alert notifies a user that a rule condition became active.
// Only IsRead changes after creation.
type Alert struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Type           AlertType
	CorrelationKey string
	Payload        map[string]any
	IsRead         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewAlert creates a new unread Alert.
func NewAlert(userID uuid.UUID, alertType AlertType, correlationKey string, payload map[string]any) *Alert {
	now := time.Now().UTC()
	return &Alert{
		ID:             uuid.New(),
		UserID:         userID,
		Type:           alertType,
		CorrelationKey: correlationKey,
		Payload:        payload,
		IsRead:         false,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
