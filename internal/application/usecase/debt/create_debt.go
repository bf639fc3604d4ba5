// Package debt contains debt-related use cases.
package debt

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
)

// CreateDebtInput represents the input for debt creation. An empty Status means pending.
type CreateDebtInput struct {
	UserID      uuid.UUID
	Type        entity.DebtType
	Person      string
	Amount      decimal.Decimal
	DueDate     time.Time
	Status      entity.DebtStatus
	Description string
}

// CreateDebtUseCase handles debt creation.
type CreateDebtUseCase struct {
	debtRepo adapter.DebtRepository
	trigger  adapter.AlertTrigger
	calendar adapter.Calendar
}

// NewCreateDebtUseCase creates a new CreateDebtUseCase instance.
func NewCreateDebtUseCase(debtRepo adapter.DebtRepository, trigger adapter.AlertTrigger, calendar adapter.Calendar) *CreateDebtUseCase {
	return &CreateDebtUseCase{
		debtRepo: debtRepo,
		trigger:  trigger,
		calendar: calendar,
	}
}

// Execute stores the debt and re-evaluates the user's debts. The returned
// status is the one the evaluation leaves in storage.
func (uc *CreateDebtUseCase) Execute(ctx context.Context, input CreateDebtInput) (*entity.Debt, error) {
	debt := entity.NewDebt(
		input.UserID,
		input.Type,
		strings.TrimSpace(input.Person),
		input.Amount,
		input.DueDate,
		input.Status,
		strings.TrimSpace(input.Description),
	)
	today := uc.calendar.Today()
	dropStaleLate(debt, today)
	if err := uc.debtRepo.Create(ctx, debt); err != nil {
		return nil, fmt.Errorf("failed to create debt: %w", err)
	}

	checkDebts(ctx, uc.trigger, input.UserID)
	debt.Status = debt.EffectiveStatus(today)
	return debt, nil
}

// dropStaleLate sends a late debt that is not past due back to pending.
func dropStaleLate(debt *entity.Debt, today time.Time) {
	if debt.Status == entity.DebtStatusLate && !debt.IsOverdue(today) {
		debt.Status = entity.DebtStatusPending
	}
}

func checkDebts(ctx context.Context, trigger adapter.AlertTrigger, userID uuid.UUID) {
	if err := trigger.DebtsChanged(ctx, userID); err != nil {
		slog.Warn("Alert evaluation failed after debt change",
			"user_id", userID,
			"error", err,
		)
	}
}
