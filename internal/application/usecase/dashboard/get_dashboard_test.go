package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
)

type fixedCalendar time.Time

func (c fixedCalendar) Today() time.Time { return time.Time(c) }

type fakeTransactionRepo struct {
	adapter.TransactionRepository
	filter entity.TransactionFilter
	period entity.Period
}

func (r *fakeTransactionRepo) Summarize(_ context.Context, _ uuid.UUID, filter entity.TransactionFilter) (*entity.TransactionSummary, error) {
	r.filter = filter
	return &entity.TransactionSummary{
		TotalIncome:  decimal.NewFromInt(3000),
		TotalExpense: decimal.RequireFromString("1250.75"),
	}, nil
}

func (r *fakeTransactionRepo) ExpensesByCategory(_ context.Context, _ uuid.UUID, period entity.Period) ([]*entity.CategoryTotal, error) {
	r.period = period
	return []*entity.CategoryTotal{}, nil
}

type fakeGoalRepo struct {
	adapter.SavingGoalRepository
	next *entity.SavingGoalWithTotal
}

func (r *fakeGoalRepo) FindNextActive(context.Context, uuid.UUID, time.Time) (*entity.SavingGoalWithTotal, error) {
	return r.next, nil
}

type fakeAlertRepo struct {
	adapter.AlertRepository
	isRead *bool
	limit  int
}

func (r *fakeAlertRepo) List(_ context.Context, _ uuid.UUID, isRead *bool, limit int) ([]*entity.Alert, error) {
	r.isRead = isRead
	r.limit = limit
	return []*entity.Alert{}, nil
}

func TestGetDashboard(t *testing.T) {
	today := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
	userID := uuid.New()
	goal := entity.NewSavingGoal(userID, "Trip", decimal.NewFromInt(1000), today.AddDate(0, 0, 20), today)

	transactions := &fakeTransactionRepo{}
	alerts := &fakeAlertRepo{}
	goals := &fakeGoalRepo{next: &entity.SavingGoalWithTotal{Goal: goal, TotalSaved: decimal.NewFromInt(250)}}

	out, err := NewGetDashboardUseCase(transactions, goals, alerts, fixedCalendar(today)).Execute(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Period != (entity.Period{Month: 10, Year: 2026}) {
		t.Errorf("unexpected period %s", out.Period)
	}
	if transactions.filter.Month == nil || *transactions.filter.Month != 10 || *transactions.filter.Year != 2026 {
		t.Error("expected the summary to be limited to the current month")
	}
	if transactions.period != out.Period {
		t.Error("expected category totals for the current month")
	}
	if !out.Balance.Equal(decimal.RequireFromString("1749.25")) {
		t.Errorf("unexpected balance %s", out.Balance)
	}
	if out.ActiveGoal == nil || !out.ActiveGoal.ProgressPercentage.Equal(decimal.NewFromInt(25)) || out.ActiveGoal.DaysRemaining != 20 {
		t.Errorf("unexpected active goal %+v", out.ActiveGoal)
	}
	if alerts.isRead == nil || *alerts.isRead || alerts.limit != recentAlertsLimit {
		t.Error("expected the newest unread alerts")
	}
}

func TestGetDashboard_NoActiveGoal(t *testing.T) {
	out, err := NewGetDashboardUseCase(&fakeTransactionRepo{}, &fakeGoalRepo{}, &fakeAlertRepo{}, fixedCalendar(time.Now().UTC())).
		Execute(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.ActiveGoal != nil {
		t.Error("expected no active goal")
	}
}
