package dto

import (
	"time"

	"github.com/budget-tracker/backend/internal/application/usecase/budget"
	"github.com/budget-tracker/backend/internal/domain/entity"
)

// MonthlyBudgetQuery selects the month of GET /monthly-budget.
type MonthlyBudgetQuery struct {
	Month int `form:"month" binding:"required,min=1,max=12"`
	Year  int `form:"year" binding:"required,min=2000,max=2100"`
}

// SetMonthlyBudgetRequest is the body of POST /monthly-budget.
type SetMonthlyBudgetRequest struct {
	Month  int     `json:"month" binding:"required,min=1,max=12"`
	Year   int     `json:"year" binding:"required,min=2000,max=2100"`
	Amount float64 `json:"amount" binding:"required,gte=0.01"`
}

// MonthlyBudgetResponse represents a stored budget.
type MonthlyBudgetResponse struct {
	ID        string    `json:"id"`
	Month     int       `json:"month"`
	Year      int       `json:"year"`
	Amount    string    `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MonthlyBudgetStatusResponse is the body of GET /monthly-budget.
type MonthlyBudgetStatusResponse struct {
	Budget         *MonthlyBudgetResponse `json:"budget"`
	TotalExpenses  string                 `json:"total_expenses"`
	Remaining      *string                `json:"remaining"`
	PercentageUsed *float64               `json:"percentage_used"`
}

// ToMonthlyBudgetResponse converts a domain MonthlyBudget entity.
func ToMonthlyBudgetResponse(b *entity.MonthlyBudget) MonthlyBudgetResponse {
	return MonthlyBudgetResponse{
		ID:        b.ID.String(),
		Month:     b.Month,
		Year:      b.Year,
		Amount:    Money(b.Amount),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// ToMonthlyBudgetStatusResponse converts the budget status of a month.
func ToMonthlyBudgetStatusResponse(out *budget.GetMonthlyBudgetOutput) MonthlyBudgetStatusResponse {
	resp := MonthlyBudgetStatusResponse{
		TotalExpenses: Money(out.TotalExpenses),
		Remaining:     OptionalMoney(out.Remaining),
	}
	if out.Budget != nil {
		b := ToMonthlyBudgetResponse(out.Budget)
		resp.Budget = &b
	}
	if out.PercentageUsed != nil {
		pct := out.PercentageUsed.InexactFloat64()
		resp.PercentageUsed = &pct
	}
	return resp
}
