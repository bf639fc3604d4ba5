// Package alert contains alert listing, acknowledgement and sweep use cases.
package alert

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
)

// ListAlertsInput represents the input for listing alerts. A nil IsRead lists all.
type ListAlertsInput struct {
	UserID uuid.UUID
	IsRead *bool
}

// ListAlertsUseCase lists the alerts of a user.
type ListAlertsUseCase struct {
	alertRepo adapter.AlertRepository
}

// NewListAlertsUseCase creates a new ListAlertsUseCase instance.
func NewListAlertsUseCase(alertRepo adapter.AlertRepository) *ListAlertsUseCase {
	return &ListAlertsUseCase{alertRepo: alertRepo}
}

// Execute returns alerts newest first.
func (uc *ListAlertsUseCase) Execute(ctx context.Context, input ListAlertsInput) ([]*entity.Alert, error) {
	alerts, err := uc.alertRepo.List(ctx, input.UserID, input.IsRead, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	return alerts, nil
}
