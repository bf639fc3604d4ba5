package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// CategoryRepository defines the interface for category persistence operations.
// Every lookup is scoped by the owning user.
type CategoryRepository interface {
	// Create creates a new category.
	Create(ctx context.Context, category *entity.Category) error

	// FindByID retrieves a category owned by userID.
	FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Category, error)

	// FindByUser retrieves all categories of a user ordered by name.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error)

	// ExistsByName checks for another category with the same name, ignoring excludeID.
	ExistsByName(ctx context.Context, userID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error)

	// Update updates an existing category.
	Update(ctx context.Context, category *entity.Category) error

	// Delete removes a category and detaches its transactions.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
