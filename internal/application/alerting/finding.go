// Package alerting evaluates alert rules against aggregate ledger state and
// reconciles the results with stored alerts.
//
// Evaluators are pure: they turn current state into a Finding. The Reconciler
// applies a Finding to the alert store so that at most one unread alert exists
// per (user, type, correlation key). The Engine loads state for the trigger
// points and sweeps and feeds it through both.
package alerting

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// Finding is the outcome of evaluating one rule for one correlation key.
type Finding struct {
	Type           entity.AlertType
	CorrelationKey string
	Active         bool
	// AutoResolve allows the reconciler to mark an unread alert read when the
	// condition is no longer active.
	AutoResolve bool
	Payload     map[string]any
}

// BudgetKey identifies a budget_exceeded condition.
func BudgetKey(period entity.Period) string {
	return period.String()
}

// CategoryKey identifies a category_exceeded condition.
func CategoryKey(categoryID uuid.UUID, period entity.Period) string {
	return fmt.Sprintf("%s:%s", categoryID, period)
}

// DebtKey identifies a debt_due condition.
func DebtKey(debtID uuid.UUID) string {
	return debtID.String()
}

// GoalKey identifies a goal_offtrack condition.
func GoalKey(goalID uuid.UUID) string {
	return goalID.String()
}
