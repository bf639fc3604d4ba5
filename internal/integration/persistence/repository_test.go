package persistence

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
	"github.com/budget-tracker/backend/internal/integration/persistence/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	// A single connection keeps every query on the same in-memory database.
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = conn.Close() })

	db, err := gorm.Open(sqlite.Dialector{Conn: conn}, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open gorm: %v", err)
	}
	if err := model.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestAlertRepository_UnreadKeyIsUnique(t *testing.T) {
	ctx := context.Background()
	repo := NewAlertRepository(newTestDB(t))
	userID := uuid.New()

	first := entity.NewAlert(userID, entity.AlertTypeBudgetExceeded, "2026-10", map[string]any{"month": 10})
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	duplicate := entity.NewAlert(userID, entity.AlertTypeBudgetExceeded, "2026-10", nil)
	if err := repo.Create(ctx, duplicate); !errors.Is(err, domainerror.ErrAlertAlreadyActive) {
		t.Fatalf("expected ErrAlertAlreadyActive, got %v", err)
	}

	// Another user or key is unaffected.
	if err := repo.Create(ctx, entity.NewAlert(uuid.New(), entity.AlertTypeBudgetExceeded, "2026-10", nil)); err != nil {
		t.Fatalf("other user should not conflict: %v", err)
	}
	if err := repo.Create(ctx, entity.NewAlert(userID, entity.AlertTypeBudgetExceeded, "2026-11", nil)); err != nil {
		t.Fatalf("other key should not conflict: %v", err)
	}

	resolved, err := repo.ResolveUnread(ctx, userID, entity.AlertTypeBudgetExceeded, "2026-10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved != 1 {
		t.Errorf("expected 1 resolved alert, got %d", resolved)
	}

	found, err := repo.FindUnread(ctx, userID, entity.AlertTypeBudgetExceeded, "2026-10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found != nil {
		t.Error("expected no unread alert after resolve")
	}

	if err := repo.Create(ctx, duplicate); err != nil {
		t.Fatalf("a read alert should not block a new one: %v", err)
	}
}

func TestAlertRepository_ListAndMarkRead(t *testing.T) {
	ctx := context.Background()
	repo := NewAlertRepository(newTestDB(t))
	userID := uuid.New()

	older := entity.NewAlert(userID, entity.AlertTypeDebtDue, "debt-1", map[string]any{"person": "Ana"})
	older.CreatedAt = older.CreatedAt.Add(-time.Hour)
	newer := entity.NewAlert(userID, entity.AlertTypeGoalOfftrack, "goal-1", nil)
	for _, a := range []*entity.Alert{older, newer} {
		if err := repo.Create(ctx, a); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if err := repo.MarkRead(ctx, userID, older.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.MarkRead(ctx, uuid.New(), newer.ID); !errors.Is(err, domainerror.ErrAlertNotFound) {
		t.Errorf("expected ErrAlertNotFound for a foreign user, got %v", err)
	}

	all, err := repo.List(ctx, userID, nil, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 || all[0].ID != newer.ID {
		t.Fatalf("expected newest first, got %d alerts", len(all))
	}
	if all[1].Payload["person"] != "Ana" {
		t.Errorf("payload not round-tripped: %v", all[1].Payload)
	}

	unread := false
	onlyUnread, err := repo.List(ctx, userID, &unread, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(onlyUnread) != 1 || onlyUnread[0].ID != newer.ID {
		t.Errorf("expected only the unread alert, got %d", len(onlyUnread))
	}

	limited, err := repo.List(ctx, userID, nil, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("expected limit to apply, got %d", len(limited))
	}
}

func TestTransactionRepository_Aggregates(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	categories := NewCategoryRepository(db)
	repo := NewTransactionRepository(db)
	userID := uuid.New()

	food := entity.NewCategory(userID, "Food", nil)
	rent := entity.NewCategory(userID, "Rent", nil)
	for _, c := range []*entity.Category{food, rent} {
		if err := categories.Create(ctx, c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	october := entity.Period{Month: 10, Year: 2026}
	rows := []*entity.Transaction{
		entity.NewTransaction(userID, entity.TransactionTypeExpense, &food.ID, dec("40.10"), "groceries", date(2026, 10, 1)),
		entity.NewTransaction(userID, entity.TransactionTypeExpense, &food.ID, dec("9.90"), "lunch", date(2026, 10, 31)),
		entity.NewTransaction(userID, entity.TransactionTypeExpense, &rent.ID, dec("500"), "rent", date(2026, 10, 5)),
		entity.NewTransaction(userID, entity.TransactionTypeExpense, nil, dec("12"), "misc", date(2026, 10, 6)),
		entity.NewTransaction(userID, entity.TransactionTypeIncome, nil, dec("2000"), "salary", date(2026, 10, 2)),
		entity.NewTransaction(userID, entity.TransactionTypeExpense, &food.ID, dec("100"), "next month", date(2026, 11, 1)),
		entity.NewTransaction(uuid.New(), entity.TransactionTypeExpense, nil, dec("999"), "someone else", date(2026, 10, 3)),
	}
	for _, tx := range rows {
		if err := repo.Create(ctx, tx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	t.Run("sum expenses of a period", func(t *testing.T) {
		total, err := repo.SumExpenses(ctx, userID, october, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !total.Equal(dec("562")) {
			t.Errorf("expected 562, got %s", total)
		}
	})

	t.Run("sum expenses of a category", func(t *testing.T) {
		total, err := repo.SumExpenses(ctx, userID, october, &food.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !total.Equal(dec("50")) {
			t.Errorf("expected 50, got %s", total)
		}
	})

	t.Run("summary", func(t *testing.T) {
		month, year := 10, 2026
		summary, err := repo.Summarize(ctx, userID, entity.TransactionFilter{Month: &month, Year: &year})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !summary.TotalIncome.Equal(dec("2000")) || !summary.TotalExpense.Equal(dec("562")) {
			t.Errorf("unexpected summary %+v", summary)
		}
		if !summary.Balance().Equal(dec("1438")) {
			t.Errorf("unexpected balance %s", summary.Balance())
		}
	})

	t.Run("expenses by category skip uncategorized", func(t *testing.T) {
		totals, err := repo.ExpensesByCategory(ctx, userID, october)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(totals) != 2 {
			t.Fatalf("expected 2 categories, got %d", len(totals))
		}
		if totals[0].Category.Name != "Rent" || !totals[1].Total.Equal(dec("50")) {
			t.Errorf("unexpected ordering or totals: %s=%s, %s=%s",
				totals[0].Category.Name, totals[0].Total, totals[1].Category.Name, totals[1].Total)
		}
	})

	t.Run("list pages newest first", func(t *testing.T) {
		page, err := repo.List(ctx, userID, entity.TransactionFilter{}, adapter.Pagination{Page: 1, PerPage: 2})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if page.Total != 6 {
			t.Errorf("expected 6 transactions, got %d", page.Total)
		}
		if len(page.Transactions) != 2 || page.Transactions[0].Description != "next month" {
			t.Errorf("unexpected first page")
		}
	})

	t.Run("find is scoped to the owner", func(t *testing.T) {
		if _, err := repo.FindByID(ctx, uuid.New(), rows[0].ID); !errors.Is(err, domainerror.ErrTransactionNotFound) {
			t.Errorf("expected ErrTransactionNotFound, got %v", err)
		}
		found, err := repo.FindByID(ctx, userID, rows[0].ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if found.Category == nil || found.Category.Name != "Food" {
			t.Error("expected category to be loaded")
		}
	})
}

func TestMonthlyBudgetRepository_Upsert(t *testing.T) {
	ctx := context.Background()
	repo := NewMonthlyBudgetRepository(newTestDB(t))
	userID := uuid.New()
	period := entity.Period{Month: 3, Year: 2026}

	missing, err := repo.FindByPeriod(ctx, userID, period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if missing != nil {
		t.Fatal("expected no budget")
	}

	first, err := repo.Upsert(ctx, entity.NewMonthlyBudget(userID, period, dec("1000")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := repo.Upsert(ctx, entity.NewMonthlyBudget(userID, period, dec("1200.50")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.ID != second.ID {
		t.Error("expected the same row to be updated")
	}
	if !second.Amount.Equal(dec("1200.50")) {
		t.Errorf("expected updated amount, got %s", second.Amount)
	}
}

func TestDebtRepository_FindOverdue(t *testing.T) {
	ctx := context.Background()
	repo := NewDebtRepository(newTestDB(t))
	userID := uuid.New()
	today := date(2026, 10, 16)

	overdue := entity.NewDebt(userID, entity.DebtTypeOutgoing, "Ana", dec("50"), date(2026, 10, 15), "", "")
	late := entity.NewDebt(userID, entity.DebtTypeIncoming, "Bruno", dec("20"), date(2026, 9, 1), entity.DebtStatusLate, "")
	dueToday := entity.NewDebt(userID, entity.DebtTypeOutgoing, "Carla", dec("10"), today, "", "")
	paid := entity.NewDebt(userID, entity.DebtTypeOutgoing, "Davi", dec("10"), date(2026, 1, 1), entity.DebtStatusPaid, "")
	for _, d := range []*entity.Debt{overdue, late, dueToday, paid} {
		if err := repo.Create(ctx, d); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	debts, err := repo.FindOverdue(ctx, userID, today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(debts) != 2 || debts[0].ID != late.ID || debts[1].ID != overdue.ID {
		t.Fatalf("expected late then overdue, got %d debts", len(debts))
	}

	if err := repo.MarkLate(ctx, overdue.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.MarkLate(ctx, paid.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reloaded, err := repo.FindByID(ctx, userID, overdue.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reloaded.Status != entity.DebtStatusLate {
		t.Errorf("expected late, got %s", reloaded.Status)
	}
	stillPaid, err := repo.FindByID(ctx, userID, paid.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stillPaid.Status != entity.DebtStatusPaid {
		t.Errorf("paid debts must not become late, got %s", stillPaid.Status)
	}
}
