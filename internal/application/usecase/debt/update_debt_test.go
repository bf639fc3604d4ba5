package debt

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

type fakeDebtRepo struct {
	adapter.DebtRepository
	debt    *entity.Debt
	created *entity.Debt
	updated *entity.Debt
}

func (r *fakeDebtRepo) Create(_ context.Context, debt *entity.Debt) error {
	copied := *debt
	r.created = &copied
	return nil
}

func (r *fakeDebtRepo) FindByID(_ context.Context, userID, id uuid.UUID) (*entity.Debt, error) {
	if r.debt == nil || r.debt.ID != id || r.debt.UserID != userID {
		return nil, domainerror.ErrDebtNotFound
	}
	copied := *r.debt
	return &copied, nil
}

func (r *fakeDebtRepo) Update(_ context.Context, debt *entity.Debt) error {
	r.updated = debt
	return nil
}

type fixedCalendar time.Time

func (c fixedCalendar) Today() time.Time { return time.Time(c) }

type countingTrigger struct {
	adapter.AlertTrigger
	calls int
}

func (t *countingTrigger) DebtsChanged(context.Context, uuid.UUID) error {
	t.calls++
	return nil
}

func TestUpdateDebt_LateStatus(t *testing.T) {
	today := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
	userID := uuid.New()

	tests := []struct {
		name       string
		status     entity.DebtStatus
		newDueDate time.Time
		want       entity.DebtStatus
	}{
		{"moved to the future returns to pending", "", today.AddDate(0, 0, 10), entity.DebtStatusPending},
		{"moved to today returns to pending", "", today, entity.DebtStatusPending},
		{"still in the past stays late", "", today.AddDate(0, 0, -1), entity.DebtStatusLate},
		{"explicit paid wins", entity.DebtStatusPaid, today.AddDate(0, 0, -1), entity.DebtStatusPaid},
		{"explicit late with a future date is pending", entity.DebtStatusLate, today.AddDate(0, 0, 1), entity.DebtStatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			existing := entity.NewDebt(userID, entity.DebtTypeOutgoing, "Ana", decimal.NewFromInt(50), today.AddDate(0, 0, -5), entity.DebtStatusLate, "")
			repo := &fakeDebtRepo{debt: existing}
			trigger := &countingTrigger{}

			debt, err := NewUpdateDebtUseCase(repo, trigger, fixedCalendar(today)).Execute(context.Background(), UpdateDebtInput{
				UserID:  userID,
				DebtID:  existing.ID,
				Type:    entity.DebtTypeOutgoing,
				Person:  " Ana ",
				Amount:  decimal.NewFromInt(60),
				DueDate: tt.newDueDate,
				Status:  tt.status,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if debt.Status != tt.want {
				t.Errorf("expected status %s, got %s", tt.want, debt.Status)
			}
			if repo.updated == nil || repo.updated.Person != "Ana" {
				t.Error("expected the trimmed debt to be stored")
			}
			if trigger.calls != 1 {
				t.Errorf("expected one re-evaluation, got %d", trigger.calls)
			}
		})
	}
}

func TestCreateDebt_LateStatus(t *testing.T) {
	today := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
	userID := uuid.New()

	tests := []struct {
		name       string
		status     entity.DebtStatus
		dueDate    time.Time
		wantStored entity.DebtStatus
		want       entity.DebtStatus
	}{
		{"late with a future date is stored pending", entity.DebtStatusLate, today.AddDate(0, 0, 7), entity.DebtStatusPending, entity.DebtStatusPending},
		{"late due today is stored pending", entity.DebtStatusLate, today, entity.DebtStatusPending, entity.DebtStatusPending},
		{"late in the past stays late", entity.DebtStatusLate, today.AddDate(0, 0, -3), entity.DebtStatusLate, entity.DebtStatusLate},
		{"pending in the past is reported late", "", today.AddDate(0, 0, -3), entity.DebtStatusPending, entity.DebtStatusLate},
		{"paid in the past stays paid", entity.DebtStatusPaid, today.AddDate(0, 0, -3), entity.DebtStatusPaid, entity.DebtStatusPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeDebtRepo{}
			trigger := &countingTrigger{}

			debt, err := NewCreateDebtUseCase(repo, trigger, fixedCalendar(today)).Execute(context.Background(), CreateDebtInput{
				UserID:  userID,
				Type:    entity.DebtTypeIncoming,
				Person:  " Bruno ",
				Amount:  decimal.NewFromInt(80),
				DueDate: tt.dueDate,
				Status:  tt.status,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if repo.created == nil || repo.created.Status != tt.wantStored {
				t.Fatalf("expected stored status %s, got %+v", tt.wantStored, repo.created)
			}
			if repo.created.Person != "Bruno" {
				t.Errorf("expected trimmed person, got %q", repo.created.Person)
			}
			if debt.Status != tt.want {
				t.Errorf("expected status %s, got %s", tt.want, debt.Status)
			}
			if trigger.calls != 1 {
				t.Errorf("expected one re-evaluation, got %d", trigger.calls)
			}
		})
	}
}
