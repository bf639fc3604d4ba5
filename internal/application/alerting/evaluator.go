package alerting

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

var (
	hundred = decimal.NewFromInt(100)

	// goalSlack is how many percentage points a goal may trail the linear
	// schedule before it counts as off track.
	goalSlack = decimal.NewFromInt(20)
)

// EvaluateBudget checks a month's expenses against its budget. A nil budget
// yields an inactive finding so stale alerts for the period get resolved.
func EvaluateBudget(budget *entity.MonthlyBudget, period entity.Period, expenses decimal.Decimal) Finding {
	f := Finding{
		Type:           entity.AlertTypeBudgetExceeded,
		CorrelationKey: BudgetKey(period),
		AutoResolve:    true,
	}
	if budget == nil || !expenses.GreaterThan(budget.Amount) {
		return f
	}

	f.Active = true
	f.Payload = map[string]any{
		"month": period.Month,
		"year":  period.Year,
		"total": amount(expenses),
		"limit": amount(budget.Amount),
	}
	return f
}

// EvaluateCategory checks a category's expenses in a period against its
// monthly limit. ok is false when the category has no limit and must not be
// evaluated at all.
func EvaluateCategory(category *entity.Category, period entity.Period, expenses decimal.Decimal) (f Finding, ok bool) {
	if category == nil || !category.HasLimit() {
		return Finding{}, false
	}

	f = Finding{
		Type:           entity.AlertTypeCategoryExceeded,
		CorrelationKey: CategoryKey(category.ID, period),
		AutoResolve:    true,
	}
	if !expenses.GreaterThan(*category.MonthlyLimit) {
		return f, true
	}

	f.Active = true
	f.Payload = map[string]any{
		"category_id":   category.ID.String(),
		"category_name": category.Name,
		"month":         period.Month,
		"year":          period.Year,
		"total":         amount(expenses),
		"limit":         amount(*category.MonthlyLimit),
	}
	return f, true
}

// EvaluateDebt reports whether a debt is overdue on the given day.
// Debt alerts are only cleared by the user.
func EvaluateDebt(debt *entity.Debt, today time.Time) Finding {
	f := Finding{
		Type:           entity.AlertTypeDebtDue,
		CorrelationKey: DebtKey(debt.ID),
	}
	if !debt.IsOverdue(today) {
		return f
	}

	f.Active = true
	f.Payload = map[string]any{
		"debt_id":  debt.ID.String(),
		"person":   debt.Person,
		"amount":   amount(debt.Amount),
		"due_date": debt.DueDate.Format(time.DateOnly),
	}
	return f
}

// NeedsLateMark reports whether the stored status must move to late.
func NeedsLateMark(debt *entity.Debt, today time.Time) bool {
	return debt.IsOverdue(today) && debt.Status != entity.DebtStatusLate
}

// GoalProgress returns the saved share of the target in percent, capped at 100.
// A zero target yields zero.
func GoalProgress(target, saved decimal.Decimal) decimal.Decimal {
	if target.IsZero() {
		return decimal.Zero
	}
	return decimal.Min(hundred, saved.Div(target).Mul(hundred))
}

// EvaluateGoal compares actual progress with the linear schedule between the
// goal's creation day and its deadline. ok is false when the goal is past its
// deadline or the schedule is degenerate (created today, or deadline not after
// creation). Goal alerts are only cleared by the user.
func EvaluateGoal(goal *entity.SavingGoal, totalSaved decimal.Decimal, today time.Time, loc *time.Location) (f Finding, ok bool) {
	if !goal.IsActive(today) {
		return Finding{}, false
	}

	created := entity.DateOf(goal.CreatedAt, loc)
	totalDays := entity.DaysBetween(created, goal.Deadline)
	daysElapsed := entity.DaysBetween(created, today)
	if totalDays <= 0 || daysElapsed <= 0 {
		return Finding{}, false
	}

	expected := decimal.NewFromInt(int64(daysElapsed)).
		Div(decimal.NewFromInt(int64(totalDays))).
		Mul(hundred)
	actual := GoalProgress(goal.TargetAmount, totalSaved)

	f = Finding{
		Type:           entity.AlertTypeGoalOfftrack,
		CorrelationKey: GoalKey(goal.ID),
	}
	if !actual.LessThan(expected.Sub(goalSlack)) {
		return f, true
	}

	f.Active = true
	f.Payload = map[string]any{
		"goal_id":           goal.ID.String(),
		"goal_title":        goal.Title,
		"target_amount":     amount(goal.TargetAmount),
		"total_saved":       amount(totalSaved),
		"expected_progress": expected.Round(2).InexactFloat64(),
		"actual_progress":   actual.Round(2).InexactFloat64(),
		"deadline":          goal.Deadline.Format(time.DateOnly),
	}
	return f, true
}

func amount(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
