package alerting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

func TestEngine_TransactionChanged(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	march := entity.Period{Month: 3, Year: 2025}

	t.Run("budget alert is raised and resolved when the expense goes away", func(t *testing.T) {
		l := &ledger{}
		alerts := &memoryAlerts{}
		engine := newTestEngine(l, alerts, date(2025, 3, 20))
		l.budgets = append(l.budgets, entity.NewMonthlyBudget(userID, march, dec("500")))

		txn := entity.NewTransaction(userID, entity.TransactionTypeExpense, nil, dec("600"), "rent", date(2025, 3, 5))
		l.transactions = append(l.transactions, txn)
		if err := engine.TransactionChanged(ctx, userID, nil, txn); err != nil {
			t.Fatal(err)
		}

		alert, _ := alerts.FindUnread(ctx, userID, entity.AlertTypeBudgetExceeded, "2025-03")
		if alert == nil {
			t.Fatal("expected a budget_exceeded alert")
		}
		if alert.Payload["total"] != 600.0 || alert.Payload["limit"] != 500.0 {
			t.Errorf("unexpected payload %v", alert.Payload)
		}

		l.transactions = nil
		if err := engine.TransactionChanged(ctx, userID, txn, nil); err != nil {
			t.Fatal(err)
		}
		if alerts.count(false) != 0 || alerts.count(true) != 1 {
			t.Errorf("expected alert to be auto-resolved")
		}
	})

	t.Run("moving an expense to another month re-evaluates both months", func(t *testing.T) {
		l := &ledger{}
		alerts := &memoryAlerts{}
		engine := newTestEngine(l, alerts, date(2025, 4, 20))
		april := entity.Period{Month: 4, Year: 2025}
		l.budgets = append(l.budgets,
			entity.NewMonthlyBudget(userID, march, dec("100")),
			entity.NewMonthlyBudget(userID, april, dec("100")),
		)

		before := entity.NewTransaction(userID, entity.TransactionTypeExpense, nil, dec("150"), "", date(2025, 3, 1))
		l.transactions = []*entity.Transaction{before}
		_ = engine.TransactionChanged(ctx, userID, nil, before)

		after := *before
		after.Date = date(2025, 4, 1)
		l.transactions = []*entity.Transaction{&after}
		if err := engine.TransactionChanged(ctx, userID, before, &after); err != nil {
			t.Fatal(err)
		}

		if a, _ := alerts.FindUnread(ctx, userID, entity.AlertTypeBudgetExceeded, "2025-03"); a != nil {
			t.Error("expected March alert to be resolved")
		}
		if a, _ := alerts.FindUnread(ctx, userID, entity.AlertTypeBudgetExceeded, "2025-04"); a == nil {
			t.Error("expected April alert to be raised")
		}
	})

	t.Run("category without limit never alerts", func(t *testing.T) {
		l := &ledger{}
		alerts := &memoryAlerts{}
		engine := newTestEngine(l, alerts, date(2025, 3, 20))
		limit := dec("50")
		limited := entity.NewCategory(userID, "Food", &limit)
		unlimited := entity.NewCategory(userID, "Other", nil)
		l.categories = []*entity.Category{limited, unlimited}

		for _, c := range l.categories {
			txn := entity.NewTransaction(userID, entity.TransactionTypeExpense, &c.ID, dec("1000"), "", date(2025, 3, 2))
			l.transactions = append(l.transactions, txn)
			if err := engine.TransactionChanged(ctx, userID, nil, txn); err != nil {
				t.Fatal(err)
			}
		}

		if a, _ := alerts.FindUnread(ctx, userID, entity.AlertTypeCategoryExceeded, CategoryKey(limited.ID, march)); a == nil {
			t.Error("expected alert for the limited category")
		}
		if a, _ := alerts.FindUnread(ctx, userID, entity.AlertTypeCategoryExceeded, CategoryKey(unlimited.ID, march)); a != nil {
			t.Error("expected no alert for the category without limit")
		}
	})

	t.Run("income transactions never touch category rules", func(t *testing.T) {
		l := &ledger{}
		alerts := &memoryAlerts{}
		engine := newTestEngine(l, alerts, date(2025, 3, 20))
		limit := dec("1")
		c := entity.NewCategory(userID, "Salary", &limit)
		l.categories = []*entity.Category{c}

		txn := entity.NewTransaction(userID, entity.TransactionTypeIncome, &c.ID, dec("5000"), "", date(2025, 3, 2))
		l.transactions = append(l.transactions, txn)
		_ = engine.TransactionChanged(ctx, userID, nil, txn)

		if len(alerts.alerts) != 0 {
			t.Errorf("expected no alerts, got %d", len(alerts.alerts))
		}
	})
}

func TestEngine_CheckUserDebts(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	today := date(2025, 6, 15)

	t.Run("overdue pending debt becomes late and raises one alert", func(t *testing.T) {
		l := &ledger{}
		alerts := &memoryAlerts{}
		engine := newTestEngine(l, alerts, today.Add(9*time.Hour))
		debt := entity.NewDebt(userID, entity.DebtTypeOutgoing, "Ana", dec("80"), today.AddDate(0, 0, -1), "", "")
		paid := entity.NewDebt(userID, entity.DebtTypeOutgoing, "Ben", dec("80"), today.AddDate(0, 0, -30), entity.DebtStatusPaid, "")
		l.debts = []*entity.Debt{debt, paid}

		created, err := engine.CheckUserDebts(ctx, userID)
		if err != nil {
			t.Fatal(err)
		}
		if created != 1 {
			t.Errorf("expected 1 alert created, got %d", created)
		}
		if debt.Status != entity.DebtStatusLate {
			t.Errorf("expected debt to be late, got %s", debt.Status)
		}
		if paid.Status != entity.DebtStatusPaid {
			t.Errorf("paid debt must stay paid, got %s", paid.Status)
		}

		created, _ = engine.CheckUserDebts(ctx, userID)
		if created != 0 || alerts.count(false) != 1 {
			t.Errorf("expected second run to be idempotent, created=%d unread=%d", created, alerts.count(false))
		}
	})

	t.Run("one failing debt does not stop the others", func(t *testing.T) {
		l := &ledger{markLateErr: map[uuid.UUID]error{}}
		alerts := &memoryAlerts{}
		engine := newTestEngine(l, alerts, today)
		broken := entity.NewDebt(userID, entity.DebtTypeOutgoing, "Ana", dec("1"), today.AddDate(0, 0, -2), "", "")
		healthy := entity.NewDebt(userID, entity.DebtTypeOutgoing, "Ben", dec("1"), today.AddDate(0, 0, -2), "", "")
		l.debts = []*entity.Debt{broken, healthy}
		l.markLateErr[broken.ID] = errors.New("write failed")

		created, err := engine.CheckUserDebts(ctx, userID)
		if err == nil {
			t.Error("expected the failure to be reported")
		}
		if created != 1 {
			t.Errorf("expected healthy debt to be alerted, created=%d", created)
		}
	})
}

func TestEngine_CheckGoal(t *testing.T) {
	ctx := context.Background()
	start := date(2025, 1, 1)
	goal := entity.NewSavingGoal(uuid.New(), "Trip", dec("1000"), start.AddDate(0, 0, 100), start)

	l := &ledger{deposits: map[uuid.UUID]decimal.Decimal{goal.ID: dec("200")}}
	alerts := &memoryAlerts{}
	engine := newTestEngine(l, alerts, start.AddDate(0, 0, 50))

	outcome, err := engine.CheckGoal(ctx, goal)
	if err != nil {
		t.Fatal(err)
	}
	if outcome != OutcomeCreated {
		t.Errorf("expected created, got %s", outcome)
	}

	l.deposits[goal.ID] = dec("900")
	outcome, _ = engine.CheckGoal(ctx, goal)
	if outcome != OutcomeNone {
		t.Errorf("expected goal alert to stay as is once back on track, got %s", outcome)
	}
	if alerts.count(false) != 1 {
		t.Errorf("expected the off-track alert to remain unread")
	}
}
