// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// resolveCategory checks that categoryID, when set, belongs to the user.
func resolveCategory(ctx context.Context, repo adapter.CategoryRepository, userID uuid.UUID, categoryID *uuid.UUID) (*entity.Category, error) {
	if categoryID == nil {
		return nil, nil
	}
	category, err := repo.FindByID(ctx, userID, *categoryID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return nil, domainerror.NewValidationError("category_id", "The selected category is invalid.")
		}
		return nil, fmt.Errorf("failed to load category: %w", err)
	}
	return category, nil
}

// notifyChange runs alert evaluation after a committed mutation. Failures are logged only.
func notifyChange(ctx context.Context, trigger adapter.AlertTrigger, userID uuid.UUID, before, after *entity.Transaction) {
	if err := trigger.TransactionChanged(ctx, userID, before, after); err != nil {
		slog.Warn("Alert evaluation failed after transaction change",
			"user_id", userID,
			"error", err,
		)
	}
}
