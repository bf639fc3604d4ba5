package alerting

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// memoryAlerts is an AlertRepository that enforces the unread-key uniqueness
// the same way the database index does.
type memoryAlerts struct {
	mu        sync.Mutex
	alerts    []*entity.Alert
	findDelay time.Duration
}

func (m *memoryAlerts) Create(_ context.Context, alert *entity.Alert) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.alerts {
		if !a.IsRead && a.UserID == alert.UserID && a.Type == alert.Type && a.CorrelationKey == alert.CorrelationKey {
			return domainerror.ErrAlertAlreadyActive
		}
	}
	m.alerts = append(m.alerts, alert)
	return nil
}

func (m *memoryAlerts) FindUnread(_ context.Context, userID uuid.UUID, t entity.AlertType, key string) (*entity.Alert, error) {
	if m.findDelay > 0 {
		time.Sleep(m.findDelay)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.alerts {
		if !a.IsRead && a.UserID == userID && a.Type == t && a.CorrelationKey == key {
			return a, nil
		}
	}
	return nil, nil
}

func (m *memoryAlerts) ResolveUnread(_ context.Context, userID uuid.UUID, t entity.AlertType, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, a := range m.alerts {
		if !a.IsRead && a.UserID == userID && a.Type == t && a.CorrelationKey == key {
			a.IsRead = true
			n++
		}
	}
	return n, nil
}

func (m *memoryAlerts) FindByID(_ context.Context, userID, id uuid.UUID) (*entity.Alert, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.alerts {
		if a.ID == id && a.UserID == userID {
			return a, nil
		}
	}
	return nil, domainerror.ErrAlertNotFound
}

func (m *memoryAlerts) List(_ context.Context, userID uuid.UUID, isRead *bool, _ int) ([]*entity.Alert, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Alert
	for _, a := range m.alerts {
		if a.UserID == userID && (isRead == nil || a.IsRead == *isRead) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memoryAlerts) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	a, err := m.FindByID(ctx, userID, id)
	if err != nil {
		return err
	}
	m.mu.Lock()
	a.IsRead = true
	m.mu.Unlock()
	return nil
}

func (m *memoryAlerts) count(isRead bool) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, a := range m.alerts {
		if a.IsRead == isRead {
			n++
		}
	}
	return n
}

type countingRecorder struct {
	mu       sync.Mutex
	created  int
	resolved int
}

func (r *countingRecorder) AlertCreated(entity.AlertType) {
	r.mu.Lock()
	r.created++
	r.mu.Unlock()
}

func (r *countingRecorder) AlertResolved(entity.AlertType) {
	r.mu.Lock()
	r.resolved++
	r.mu.Unlock()
}

type failingNotifier struct{ calls int }

func (n *failingNotifier) AlertCreated(context.Context, *entity.Alert) error {
	n.calls++
	return errors.New("smtp down")
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

// ledger is a minimal in-memory implementation of the repositories the engine reads.
type ledger struct {
	transactions []*entity.Transaction
	budgets      []*entity.MonthlyBudget
	categories   []*entity.Category
	debts        []*entity.Debt
	deposits     map[uuid.UUID]decimal.Decimal
	markLateErr  map[uuid.UUID]error
}

func (l *ledger) SumExpenses(_ context.Context, userID uuid.UUID, period entity.Period, categoryID *uuid.UUID) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, t := range l.transactions {
		if t.UserID != userID || !t.IsExpense() || t.Period() != period {
			continue
		}
		if categoryID != nil && (t.CategoryID == nil || *t.CategoryID != *categoryID) {
			continue
		}
		sum = sum.Add(t.Amount)
	}
	return sum, nil
}

func (l *ledger) FindByPeriod(_ context.Context, userID uuid.UUID, period entity.Period) (*entity.MonthlyBudget, error) {
	for _, b := range l.budgets {
		if b.UserID == userID && b.Period() == period {
			return b, nil
		}
	}
	return nil, nil
}

func (l *ledger) Upsert(_ context.Context, b *entity.MonthlyBudget) (*entity.MonthlyBudget, error) {
	l.budgets = append(l.budgets, b)
	return b, nil
}

type ledgerCategories struct{ *ledger }

func (l ledgerCategories) Create(context.Context, *entity.Category) error { return nil }
func (l ledgerCategories) FindByID(_ context.Context, userID, id uuid.UUID) (*entity.Category, error) {
	for _, c := range l.categories {
		if c.ID == id && c.UserID == userID {
			return c, nil
		}
	}
	return nil, domainerror.ErrCategoryNotFound
}
func (l ledgerCategories) FindByUser(context.Context, uuid.UUID) ([]*entity.Category, error) {
	return l.categories, nil
}
func (l ledgerCategories) ExistsByName(context.Context, uuid.UUID, string, *uuid.UUID) (bool, error) {
	return false, nil
}
func (l ledgerCategories) Update(context.Context, *entity.Category) error       { return nil }
func (l ledgerCategories) Delete(context.Context, uuid.UUID, uuid.UUID) error { return nil }

type ledgerTransactions struct{ *ledger }

func (l ledgerTransactions) Create(context.Context, *entity.Transaction) error { return nil }
func (l ledgerTransactions) FindByID(context.Context, uuid.UUID, uuid.UUID) (*entity.Transaction, error) {
	return nil, domainerror.ErrTransactionNotFound
}
func (l ledgerTransactions) Update(context.Context, *entity.Transaction) error   { return nil }
func (l ledgerTransactions) Delete(context.Context, uuid.UUID, uuid.UUID) error { return nil }
func (l ledgerTransactions) List(context.Context, uuid.UUID, entity.TransactionFilter, adapter.Pagination) (*adapter.TransactionPage, error) {
	return &adapter.TransactionPage{}, nil
}
func (l ledgerTransactions) Summarize(context.Context, uuid.UUID, entity.TransactionFilter) (*entity.TransactionSummary, error) {
	return &entity.TransactionSummary{}, nil
}
func (l ledgerTransactions) ExpensesByCategory(context.Context, uuid.UUID, entity.Period) ([]*entity.CategoryTotal, error) {
	return nil, nil
}

type ledgerDebts struct{ *ledger }

func (l ledgerDebts) Create(context.Context, *entity.Debt) error { return nil }
func (l ledgerDebts) FindByID(context.Context, uuid.UUID, uuid.UUID) (*entity.Debt, error) {
	return nil, domainerror.ErrDebtNotFound
}
func (l ledgerDebts) FindByUser(context.Context, uuid.UUID, *entity.DebtType) ([]*entity.Debt, error) {
	return l.debts, nil
}
func (l ledgerDebts) Update(context.Context, *entity.Debt) error             { return nil }
func (l ledgerDebts) Delete(context.Context, uuid.UUID, uuid.UUID) error { return nil }
func (l ledgerDebts) FindOverdue(_ context.Context, userID uuid.UUID, today time.Time) ([]*entity.Debt, error) {
	var out []*entity.Debt
	for _, d := range l.debts {
		if d.UserID == userID && d.IsOverdue(today) {
			copied := *d
			out = append(out, &copied)
		}
	}
	return out, nil
}
func (l ledgerDebts) MarkLate(_ context.Context, id uuid.UUID) error {
	if err := l.markLateErr[id]; err != nil {
		return err
	}
	for _, d := range l.debts {
		if d.ID == id && d.Status != entity.DebtStatusPaid {
			d.Status = entity.DebtStatusLate
		}
	}
	return nil
}

type ledgerGoals struct{ *ledger }

func (l ledgerGoals) Create(context.Context, *entity.SavingGoal) error { return nil }
func (l ledgerGoals) FindByID(context.Context, uuid.UUID, uuid.UUID) (*entity.SavingGoal, error) {
	return nil, domainerror.ErrGoalNotFound
}
func (l ledgerGoals) FindByUser(context.Context, uuid.UUID) ([]*entity.SavingGoalWithTotal, error) {
	return nil, nil
}
func (l ledgerGoals) FindNextActive(context.Context, uuid.UUID, time.Time) (*entity.SavingGoalWithTotal, error) {
	return nil, nil
}
func (l ledgerGoals) FindActive(context.Context, time.Time) ([]*entity.SavingGoal, error) {
	return nil, nil
}
func (l ledgerGoals) Update(context.Context, *entity.SavingGoal) error       { return nil }
func (l ledgerGoals) Delete(context.Context, uuid.UUID, uuid.UUID) error { return nil }
func (l ledgerGoals) SumDeposits(_ context.Context, goalID uuid.UUID) (decimal.Decimal, error) {
	return l.deposits[goalID], nil
}

func newTestEngine(l *ledger, alerts *memoryAlerts, now time.Time) *Engine {
	return NewEngine(
		ledgerTransactions{l},
		l,
		ledgerCategories{l},
		ledgerDebts{l},
		ledgerGoals{l},
		NewReconciler(alerts, NewLocalLocker(), nil, nil),
		fixedClock{now: now},
		time.UTC,
	)
}
