package email

import (
	"fmt"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// DescribeAlert renders a short title and a one-line message for an alert.
func DescribeAlert(alert *entity.Alert) (title, message string) {
	p := alert.Payload
	switch alert.Type {
	case entity.AlertTypeBudgetExceeded:
		return "Monthly budget exceeded", fmt.Sprintf(
			"You spent %.2f in %02d/%d, over your budget of %.2f.",
			number(p, "total"), int(number(p, "month")), int(number(p, "year")), number(p, "limit"))
	case entity.AlertTypeCategoryExceeded:
		return "Category limit exceeded", fmt.Sprintf(
			"Spending in %s reached %.2f in %02d/%d, over its limit of %.2f.",
			text(p, "category_name"), number(p, "total"), int(number(p, "month")), int(number(p, "year")), number(p, "limit"))
	case entity.AlertTypeDebtDue:
		return "Debt overdue", fmt.Sprintf(
			"The debt with %s of %.2f was due on %s.",
			text(p, "person"), number(p, "amount"), text(p, "due_date"))
	case entity.AlertTypeGoalOfftrack:
		return "Saving goal off track", fmt.Sprintf(
			"%s is at %.2f%% while %.2f%% was expected by now.",
			text(p, "goal_title"), number(p, "actual_progress"), number(p, "expected_progress"))
	default:
		return "New alert", string(alert.Type)
	}
}

func number(p map[string]any, key string) float64 {
	switch v := p[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}

func text(p map[string]any, key string) string {
	if s, ok := p[key].(string); ok {
		return s
	}
	return ""
}
