package alert

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
)

// MarkAlertReadUseCase acknowledges a single alert.
type MarkAlertReadUseCase struct {
	alertRepo adapter.AlertRepository
}

// NewMarkAlertReadUseCase creates a new MarkAlertReadUseCase instance.
func NewMarkAlertReadUseCase(alertRepo adapter.AlertRepository) *MarkAlertReadUseCase {
	return &MarkAlertReadUseCase{alertRepo: alertRepo}
}

// Execute marks the alert read and returns it. Marking a read alert again is a no-op.
func (uc *MarkAlertReadUseCase) Execute(ctx context.Context, userID, id uuid.UUID) (*entity.Alert, error) {
	if err := uc.alertRepo.MarkRead(ctx, userID, id); err != nil {
		return nil, err
	}
	alert, err := uc.alertRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	slog.Info("Alert marked read", "user_id", userID, "alert_id", id, "type", alert.Type)
	return alert, nil
}
