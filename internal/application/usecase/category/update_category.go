package category

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

// UpdateCategoryInput represents the input for a category update.
// A nil MonthlyLimit removes the limit.
type UpdateCategoryInput struct {
	UserID       uuid.UUID
	CategoryID   uuid.UUID
	Name         string
	MonthlyLimit *decimal.Decimal
}

// UpdateCategoryUseCase handles category updates.
type UpdateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	trigger      adapter.AlertTrigger
	calendar     adapter.Calendar
}

// NewUpdateCategoryUseCase creates a new UpdateCategoryUseCase instance.
func NewUpdateCategoryUseCase(categoryRepo adapter.CategoryRepository, trigger adapter.AlertTrigger, calendar adapter.Calendar) *UpdateCategoryUseCase {
	return &UpdateCategoryUseCase{
		categoryRepo: categoryRepo,
		trigger:      trigger,
		calendar:     calendar,
	}
}

// Execute updates the category. A changed limit re-evaluates the current month.
func (uc *UpdateCategoryUseCase) Execute(ctx context.Context, input UpdateCategoryInput) (*entity.Category, error) {
	category, err := uc.categoryRepo.FindByID(ctx, input.UserID, input.CategoryID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	exists, err := uc.categoryRepo.ExistsByName(ctx, input.UserID, name, &category.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check category name: %w", err)
	}
	if exists {
		return nil, nameTaken()
	}

	limitChanged := !sameLimit(category.MonthlyLimit, input.MonthlyLimit)
	category.Name = name
	category.MonthlyLimit = input.MonthlyLimit
	category.UpdatedAt = time.Now().UTC()

	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	if limitChanged {
		period := entity.PeriodOf(uc.calendar.Today())
		if err := uc.trigger.CategoryChanged(ctx, input.UserID, category.ID, period); err != nil {
			slog.Warn("Alert evaluation failed after category update",
				"user_id", input.UserID,
				"category_id", category.ID,
				"error", err,
			)
		}
	}
	return category, nil
}

func sameLimit(a, b *decimal.Decimal) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
