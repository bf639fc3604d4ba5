package debt

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
)

// UpdateDebtInput represents the input for a debt update. An empty Status keeps the stored one.
type UpdateDebtInput struct {
	UserID      uuid.UUID
	DebtID      uuid.UUID
	Type        entity.DebtType
	Person      string
	Amount      decimal.Decimal
	DueDate     time.Time
	Status      entity.DebtStatus
	Description string
}

// UpdateDebtUseCase handles debt updates.
type UpdateDebtUseCase struct {
	debtRepo adapter.DebtRepository
	trigger  adapter.AlertTrigger
	calendar adapter.Calendar
}

// NewUpdateDebtUseCase creates a new UpdateDebtUseCase instance.
func NewUpdateDebtUseCase(debtRepo adapter.DebtRepository, trigger adapter.AlertTrigger, calendar adapter.Calendar) *UpdateDebtUseCase {
	return &UpdateDebtUseCase{
		debtRepo: debtRepo,
		trigger:  trigger,
		calendar: calendar,
	}
}

// Execute replaces the debt fields and re-evaluates the user's debts.
// A late debt whose due date moves to today or later goes back to pending.
func (uc *UpdateDebtUseCase) Execute(ctx context.Context, input UpdateDebtInput) (*entity.Debt, error) {
	debt, err := uc.debtRepo.FindByID(ctx, input.UserID, input.DebtID)
	if err != nil {
		return nil, err
	}

	debt.Type = input.Type
	debt.Person = strings.TrimSpace(input.Person)
	debt.Amount = input.Amount
	debt.DueDate = input.DueDate
	debt.Description = strings.TrimSpace(input.Description)
	if input.Status != "" {
		debt.Status = input.Status
	}
	today := uc.calendar.Today()
	dropStaleLate(debt, today)
	debt.UpdatedAt = time.Now().UTC()

	if err := uc.debtRepo.Update(ctx, debt); err != nil {
		return nil, fmt.Errorf("failed to update debt: %w", err)
	}

	checkDebts(ctx, uc.trigger, input.UserID)
	debt.Status = debt.EffectiveStatus(today)
	return debt, nil
}
