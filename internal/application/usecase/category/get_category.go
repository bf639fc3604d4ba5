package category

import (
	"context"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
)

// GetCategoryUseCase loads a single category of the user.
type GetCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewGetCategoryUseCase creates a new GetCategoryUseCase instance.
func NewGetCategoryUseCase(categoryRepo adapter.CategoryRepository) *GetCategoryUseCase {
	return &GetCategoryUseCase{categoryRepo: categoryRepo}
}

// Execute returns the category or domainerror.ErrCategoryNotFound.
func (uc *GetCategoryUseCase) Execute(ctx context.Context, userID, id uuid.UUID) (*entity.Category, error) {
	return uc.categoryRepo.FindByID(ctx, userID, id)
}
