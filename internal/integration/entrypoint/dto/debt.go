package dto

import (
	"time"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// DebtRequest is the body of debt create and update.
type DebtRequest struct {
	Type        string  `json:"type" binding:"required,oneof=outgoing incoming"`
	Person      string  `json:"person" binding:"required,max=150"`
	Amount      float64 `json:"amount" binding:"required,gte=0.01"`
	DueDate     string  `json:"due_date" binding:"required,datetime=2006-01-02"`
	Status      string  `json:"status" binding:"omitempty,oneof=pending paid late"`
	Description string  `json:"description" binding:"max=1000"`
}

// ListDebtsQuery filters GET /debts.
type ListDebtsQuery struct {
	Type *string `form:"type" binding:"omitempty,oneof=outgoing incoming"`
}

// DebtResponse represents a debt in API responses.
type DebtResponse struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Person      string    `json:"person"`
	Amount      string    `json:"amount"`
	DueDate     string    `json:"due_date"`
	Status      string    `json:"status"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToDebtResponse converts a domain Debt entity.
func ToDebtResponse(d *entity.Debt) DebtResponse {
	return DebtResponse{
		ID:          d.ID.String(),
		Type:        string(d.Type),
		Person:      d.Person,
		Amount:      Money(d.Amount),
		DueDate:     Date(d.DueDate),
		Status:      string(d.Status),
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// ToDebtListResponse converts a list of debts.
func ToDebtListResponse(debts []*entity.Debt) []DebtResponse {
	out := make([]DebtResponse, 0, len(debts))
	for _, d := range debts {
		out = append(out, ToDebtResponse(d))
	}
	return out
}
