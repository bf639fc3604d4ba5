package category

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
)

// DeleteCategoryUseCase removes a category. Its transactions become uncategorized.
type DeleteCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewDeleteCategoryUseCase creates a new DeleteCategoryUseCase instance.
func NewDeleteCategoryUseCase(categoryRepo adapter.CategoryRepository) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{categoryRepo: categoryRepo}
}

// Execute deletes the category or returns domainerror.ErrCategoryNotFound.
func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, userID, id uuid.UUID) error {
	if err := uc.categoryRepo.Delete(ctx, userID, id); err != nil {
		return err
	}
	slog.Info("Category deleted", "user_id", userID, "category_id", id)
	return nil
}
