package alerting

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// Engine loads the state each rule needs and reconciles the resulting findings.
type Engine struct {
	transactions adapter.TransactionRepository
	budgets      adapter.MonthlyBudgetRepository
	categories   adapter.CategoryRepository
	debts        adapter.DebtRepository
	goals        adapter.SavingGoalRepository
	reconciler   *Reconciler
	clock        adapter.Clock
	location     *time.Location
}

// NewEngine creates a new Engine. Calendar days are computed in loc.
func NewEngine(
	transactions adapter.TransactionRepository,
	budgets adapter.MonthlyBudgetRepository,
	categories adapter.CategoryRepository,
	debts adapter.DebtRepository,
	goals adapter.SavingGoalRepository,
	reconciler *Reconciler,
	clock adapter.Clock,
	loc *time.Location,
) *Engine {
	if loc == nil {
		loc = time.UTC
	}
	return &Engine{
		transactions: transactions,
		budgets:      budgets,
		categories:   categories,
		debts:        debts,
		goals:        goals,
		reconciler:   reconciler,
		clock:        clock,
		location:     loc,
	}
}

// Today returns the current calendar date.
func (e *Engine) Today() time.Time {
	return entity.DateOf(e.clock.Now(), e.location)
}

// TransactionChanged re-evaluates every period and category a transaction
// mutation touched. before is the stored state prior to an update or delete,
// after the state following a create or update; either may be nil.
func (e *Engine) TransactionChanged(ctx context.Context, userID uuid.UUID, before, after *entity.Transaction) error {
	type categoryPeriod struct {
		categoryID uuid.UUID
		period     entity.Period
	}

	var periods []entity.Period
	var categoryPeriods []categoryPeriod
	for _, t := range []*entity.Transaction{before, after} {
		if t == nil {
			continue
		}
		p := t.Period()
		if !slices.Contains(periods, p) {
			periods = append(periods, p)
		}
		if t.IsExpense() && t.CategoryID != nil {
			cp := categoryPeriod{categoryID: *t.CategoryID, period: p}
			if !slices.Contains(categoryPeriods, cp) {
				categoryPeriods = append(categoryPeriods, cp)
			}
		}
	}

	var errs []error
	for _, p := range periods {
		if _, err := e.CheckBudget(ctx, userID, p); err != nil {
			errs = append(errs, err)
		}
	}
	for _, cp := range categoryPeriods {
		if _, err := e.CheckCategory(ctx, userID, cp.categoryID, cp.period); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// CheckBudget evaluates the monthly budget rule for one period.
func (e *Engine) CheckBudget(ctx context.Context, userID uuid.UUID, period entity.Period) (Outcome, error) {
	budget, err := e.budgets.FindByPeriod(ctx, userID, period)
	if err != nil {
		return OutcomeNone, fmt.Errorf("failed to load budget %s: %w", period, err)
	}
	expenses, err := e.transactions.SumExpenses(ctx, userID, period, nil)
	if err != nil {
		return OutcomeNone, fmt.Errorf("failed to sum expenses %s: %w", period, err)
	}
	return e.reconciler.Reconcile(ctx, userID, EvaluateBudget(budget, period, expenses))
}

// CheckCategory evaluates the category limit rule for one category and period.
// Categories without a limit, or that no longer exist, are skipped.
func (e *Engine) CheckCategory(ctx context.Context, userID, categoryID uuid.UUID, period entity.Period) (Outcome, error) {
	category, err := e.categories.FindByID(ctx, userID, categoryID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return OutcomeNone, nil
		}
		return OutcomeNone, fmt.Errorf("failed to load category: %w", err)
	}
	if !category.HasLimit() {
		return OutcomeNone, nil
	}
	expenses, err := e.transactions.SumExpenses(ctx, userID, period, &categoryID)
	if err != nil {
		return OutcomeNone, fmt.Errorf("failed to sum category expenses: %w", err)
	}
	f, ok := EvaluateCategory(category, period, expenses)
	if !ok {
		return OutcomeNone, nil
	}
	return e.reconciler.Reconcile(ctx, userID, f)
}

// CheckUserDebts marks the user's overdue debts late and raises an alert for
// each of them. A failing debt does not stop the others; the number of alerts
// created is returned with the joined errors.
func (e *Engine) CheckUserDebts(ctx context.Context, userID uuid.UUID) (int, error) {
	today := e.Today()
	debts, err := e.debts.FindOverdue(ctx, userID, today)
	if err != nil {
		return 0, fmt.Errorf("failed to load overdue debts: %w", err)
	}

	created := 0
	var errs []error
	for _, debt := range debts {
		if NeedsLateMark(debt, today) {
			if err := e.debts.MarkLate(ctx, debt.ID); err != nil {
				errs = append(errs, fmt.Errorf("debt %s: failed to mark late: %w", debt.ID, err))
				continue
			}
			debt.Status = entity.DebtStatusLate
		}
		outcome, err := e.reconciler.Reconcile(ctx, userID, EvaluateDebt(debt, today))
		if err != nil {
			errs = append(errs, fmt.Errorf("debt %s: %w", debt.ID, err))
			continue
		}
		if outcome == OutcomeCreated {
			created++
		}
	}
	return created, errors.Join(errs...)
}

// CheckGoal evaluates the off-track rule for a single goal.
func (e *Engine) CheckGoal(ctx context.Context, goal *entity.SavingGoal) (Outcome, error) {
	saved, err := e.goals.SumDeposits(ctx, goal.ID)
	if err != nil {
		return OutcomeNone, fmt.Errorf("failed to sum deposits: %w", err)
	}
	f, ok := EvaluateGoal(goal, saved, e.Today(), e.location)
	if !ok {
		return OutcomeNone, nil
	}
	return e.reconciler.Reconcile(ctx, goal.UserID, f)
}

// BudgetChanged re-evaluates the budget rule after a budget upsert.
func (e *Engine) BudgetChanged(ctx context.Context, userID uuid.UUID, period entity.Period) error {
	_, err := e.CheckBudget(ctx, userID, period)
	return err
}

// CategoryChanged re-evaluates the category rule after its limit changed.
func (e *Engine) CategoryChanged(ctx context.Context, userID, categoryID uuid.UUID, period entity.Period) error {
	_, err := e.CheckCategory(ctx, userID, categoryID, period)
	return err
}

// DebtsChanged re-evaluates every debt of the user after a debt mutation.
func (e *Engine) DebtsChanged(ctx context.Context, userID uuid.UUID) error {
	_, err := e.CheckUserDebts(ctx, userID)
	return err
}
