package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// CategoryRequest is the body of category create and update.
type CategoryRequest struct {
	Name         string   `json:"name" binding:"required,max=100"`
	MonthlyLimit *float64 `json:"monthly_limit" binding:"omitempty,gte=0"`
}

// Limit converts the optional monthly limit.
func (r CategoryRequest) Limit() *decimal.Decimal {
	if r.MonthlyLimit == nil {
		return nil
	}
	d := AmountFromFloat(*r.MonthlyLimit)
	return &d
}

// CategoryResponse represents a category in API responses.
type CategoryResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	MonthlyLimit *string   `json:"monthly_limit"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToCategoryResponse converts a domain Category entity.
func ToCategoryResponse(c *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:           c.ID.String(),
		Name:         c.Name,
		MonthlyLimit: OptionalMoney(c.MonthlyLimit),
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// ToCategoryListResponse converts a list of categories.
func ToCategoryListResponse(categories []*entity.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, ToCategoryResponse(c))
	}
	return out
}
