package alert

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/application/alerting"
	"github.com/budget-tracker/backend/internal/domain/entity"
)

type fakeUserRepo struct {
	adapter.UserRepository
	ids []uuid.UUID
}

func (r *fakeUserRepo) ListIDs(context.Context) ([]uuid.UUID, error) {
	return r.ids, nil
}

type fakeGoalRepo struct {
	adapter.SavingGoalRepository
	goals   []*entity.SavingGoal
	asOf    time.Time
	listErr error
}

func (r *fakeGoalRepo) FindActive(_ context.Context, today time.Time) ([]*entity.SavingGoal, error) {
	r.asOf = today
	return r.goals, r.listErr
}

type fakeChecker struct {
	mu      sync.Mutex
	today   time.Time
	failFor map[uuid.UUID]bool
	checked []uuid.UUID
}

func (c *fakeChecker) Today() time.Time { return c.today }

func (c *fakeChecker) CheckUserDebts(_ context.Context, userID uuid.UUID) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checked = append(c.checked, userID)
	if c.failFor[userID] {
		return 0, errors.New("boom")
	}
	return 1, nil
}

func (c *fakeChecker) CheckGoal(_ context.Context, goal *entity.SavingGoal) (alerting.Outcome, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checked = append(c.checked, goal.ID)
	if c.failFor[goal.ID] {
		return alerting.OutcomeNone, errors.New("boom")
	}
	return alerting.OutcomeNone, nil
}

type countingRecorder struct {
	mu       sync.Mutex
	failures map[string]int
}

func (r *countingRecorder) SweepEntityFailed(sweep string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failures == nil {
		r.failures = map[string]int{}
	}
	r.failures[sweep]++
}

func TestSweepDebts_IsolatesFailures(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New()}
	checker := &fakeChecker{failFor: map[uuid.UUID]bool{ids[1]: true}}
	recorder := &countingRecorder{}

	out, err := NewSweepDebtsUseCase(&fakeUserRepo{ids: ids}, checker, recorder, 2).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Checked != 4 || out.Failed != 1 {
		t.Errorf("expected 4 checked and 1 failed, got %+v", out)
	}
	if len(checker.checked) != 4 {
		t.Errorf("every user must be visited, got %d", len(checker.checked))
	}
	if recorder.failures[SweepDebts] != 1 {
		t.Errorf("expected one recorded failure, got %v", recorder.failures)
	}
}

func TestSweepGoals(t *testing.T) {
	today := time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)
	userID := uuid.New()
	ok := entity.NewSavingGoal(userID, "Trip", decimal.NewFromInt(1000), today.AddDate(0, 2, 0), today)
	broken := entity.NewSavingGoal(userID, "Car", decimal.NewFromInt(5000), today.AddDate(1, 0, 0), today)

	t.Run("uses the checker's today", func(t *testing.T) {
		repo := &fakeGoalRepo{goals: []*entity.SavingGoal{ok, broken}}
		checker := &fakeChecker{today: today, failFor: map[uuid.UUID]bool{broken.ID: true}}

		out, err := NewSweepGoalsUseCase(repo, checker, nil, 0).Execute(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !repo.asOf.Equal(today) {
			t.Errorf("expected active goals as of %v, got %v", today, repo.asOf)
		}
		if out.Checked != 2 || out.Failed != 1 {
			t.Errorf("unexpected output %+v", out)
		}
	})

	t.Run("listing failure aborts the run", func(t *testing.T) {
		repo := &fakeGoalRepo{listErr: errors.New("db down")}
		if _, err := NewSweepGoalsUseCase(repo, &fakeChecker{}, nil, 1).Execute(context.Background()); err == nil {
			t.Fatal("expected error")
		}
	})
}
