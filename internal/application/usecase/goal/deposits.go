package goal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
)

// CreateDepositInput represents the input for a deposit.
type CreateDepositInput struct {
	UserID uuid.UUID
	GoalID uuid.UUID
	Amount decimal.Decimal
	Date   time.Time
}

// CreateDepositUseCase adds a deposit to a goal of the user.
type CreateDepositUseCase struct {
	goalRepo    adapter.SavingGoalRepository
	depositRepo adapter.SavingDepositRepository
}

// NewCreateDepositUseCase creates a new CreateDepositUseCase instance.
func NewCreateDepositUseCase(goalRepo adapter.SavingGoalRepository, depositRepo adapter.SavingDepositRepository) *CreateDepositUseCase {
	return &CreateDepositUseCase{goalRepo: goalRepo, depositRepo: depositRepo}
}

// Execute stores the deposit. Goal alerts are left to the weekly sweep.
func (uc *CreateDepositUseCase) Execute(ctx context.Context, input CreateDepositInput) (*entity.SavingDeposit, error) {
	if _, err := uc.goalRepo.FindByID(ctx, input.UserID, input.GoalID); err != nil {
		return nil, err
	}

	deposit := entity.NewSavingDeposit(input.GoalID, input.Amount, input.Date)
	if err := uc.depositRepo.Create(ctx, deposit); err != nil {
		return nil, fmt.Errorf("failed to create deposit: %w", err)
	}
	return deposit, nil
}

// ListDepositsUseCase lists the deposits of a goal of the user.
type ListDepositsUseCase struct {
	goalRepo    adapter.SavingGoalRepository
	depositRepo adapter.SavingDepositRepository
}

// NewListDepositsUseCase creates a new ListDepositsUseCase instance.
func NewListDepositsUseCase(goalRepo adapter.SavingGoalRepository, depositRepo adapter.SavingDepositRepository) *ListDepositsUseCase {
	return &ListDepositsUseCase{goalRepo: goalRepo, depositRepo: depositRepo}
}

// Execute returns deposits newest first.
func (uc *ListDepositsUseCase) Execute(ctx context.Context, userID, goalID uuid.UUID) ([]*entity.SavingDeposit, error) {
	if _, err := uc.goalRepo.FindByID(ctx, userID, goalID); err != nil {
		return nil, err
	}
	deposits, err := uc.depositRepo.FindByGoal(ctx, goalID)
	if err != nil {
		return nil, fmt.Errorf("failed to list deposits: %w", err)
	}
	return deposits, nil
}

// DeleteDepositUseCase removes a deposit from a goal of the user.
type DeleteDepositUseCase struct {
	goalRepo    adapter.SavingGoalRepository
	depositRepo adapter.SavingDepositRepository
}

// NewDeleteDepositUseCase creates a new DeleteDepositUseCase instance.
func NewDeleteDepositUseCase(goalRepo adapter.SavingGoalRepository, depositRepo adapter.SavingDepositRepository) *DeleteDepositUseCase {
	return &DeleteDepositUseCase{goalRepo: goalRepo, depositRepo: depositRepo}
}

// Execute deletes the deposit or returns a not-found error for the goal or the deposit.
func (uc *DeleteDepositUseCase) Execute(ctx context.Context, userID, goalID, depositID uuid.UUID) error {
	if _, err := uc.goalRepo.FindByID(ctx, userID, goalID); err != nil {
		return err
	}
	return uc.depositRepo.Delete(ctx, goalID, depositID)
}
