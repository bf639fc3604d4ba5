package dto

import (
	"github.com/budget-tracker/backend/internal/application/usecase/dashboard"
)

// CategoryExpenseResponse is the spending of one category.
type CategoryExpenseResponse struct {
	Category CategoryResponse `json:"category"`
	Total    string           `json:"total"`
}

// DashboardResponse is the body of GET /dashboard.
type DashboardResponse struct {
	Month              int                       `json:"month"`
	Year               int                       `json:"year"`
	Balance            string                    `json:"balance"`
	MonthlyIncome      string                    `json:"monthly_income"`
	MonthlyExpense     string                    `json:"monthly_expense"`
	ExpensesByCategory []CategoryExpenseResponse `json:"expenses_by_category"`
	ActiveGoal         *GoalResponse             `json:"active_goal"`
	RecentAlerts       []AlertResponse           `json:"recent_alerts"`
}

// ToDashboardResponse converts the dashboard overview.
func ToDashboardResponse(out *dashboard.GetDashboardOutput) DashboardResponse {
	byCategory := make([]CategoryExpenseResponse, 0, len(out.ExpensesByCategory))
	for _, ct := range out.ExpensesByCategory {
		if ct.Category == nil {
			continue
		}
		byCategory = append(byCategory, CategoryExpenseResponse{
			Category: ToCategoryResponse(ct.Category),
			Total:    Money(ct.Total),
		})
	}

	resp := DashboardResponse{
		Month:              out.Period.Month,
		Year:               out.Period.Year,
		Balance:            Money(out.Balance),
		MonthlyIncome:      Money(out.MonthlyIncome),
		MonthlyExpense:     Money(out.MonthlyExpense),
		ExpensesByCategory: byCategory,
		RecentAlerts:       ToAlertListResponse(out.RecentAlerts),
	}
	if out.ActiveGoal != nil {
		g := ToGoalResponse(out.ActiveGoal)
		resp.ActiveGoal = &g
	}
	return resp
}
