package alerting

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

func activeBudgetFinding() Finding {
	return Finding{
		Type:           entity.AlertTypeBudgetExceeded,
		CorrelationKey: "2025-03",
		Active:         true,
		AutoResolve:    true,
		Payload:        map[string]any{"month": 3, "year": 2025, "total": 600.0, "limit": 500.0},
	}
}

func TestReconciler_Reconcile(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("active twice creates exactly one unread alert", func(t *testing.T) {
		repo := &memoryAlerts{}
		rec := &countingRecorder{}
		r := NewReconciler(repo, NewLocalLocker(), nil, rec)

		first, err := r.Reconcile(ctx, userID, activeBudgetFinding())
		if err != nil {
			t.Fatal(err)
		}
		second, err := r.Reconcile(ctx, userID, activeBudgetFinding())
		if err != nil {
			t.Fatal(err)
		}

		if first != OutcomeCreated || second != OutcomeUnchanged {
			t.Errorf("expected created then unchanged, got %s then %s", first, second)
		}
		if repo.count(false) != 1 {
			t.Errorf("expected 1 unread alert, got %d", repo.count(false))
		}
		if rec.created != 1 {
			t.Errorf("expected 1 recorded creation, got %d", rec.created)
		}
	})

	t.Run("existing alert keeps its first payload", func(t *testing.T) {
		repo := &memoryAlerts{}
		r := NewReconciler(repo, NewLocalLocker(), nil, nil)

		_, _ = r.Reconcile(ctx, userID, activeBudgetFinding())
		later := activeBudgetFinding()
		later.Payload = map[string]any{"total": 900.0}
		_, _ = r.Reconcile(ctx, userID, later)

		alert, _ := repo.FindUnread(ctx, userID, entity.AlertTypeBudgetExceeded, "2025-03")
		if alert.Payload["total"] != 600.0 {
			t.Errorf("expected payload from first detection, got %v", alert.Payload["total"])
		}
	})

	t.Run("inactive resolves the unread alert", func(t *testing.T) {
		repo := &memoryAlerts{}
		rec := &countingRecorder{}
		r := NewReconciler(repo, NewLocalLocker(), nil, rec)

		_, _ = r.Reconcile(ctx, userID, activeBudgetFinding())
		inactive := activeBudgetFinding()
		inactive.Active = false

		outcome, err := r.Reconcile(ctx, userID, inactive)
		if err != nil {
			t.Fatal(err)
		}
		if outcome != OutcomeResolved {
			t.Errorf("expected resolved, got %s", outcome)
		}
		if repo.count(false) != 0 || repo.count(true) != 1 {
			t.Errorf("expected 0 unread and 1 read, got %d and %d", repo.count(false), repo.count(true))
		}
		if rec.resolved != 1 {
			t.Errorf("expected 1 recorded resolution, got %d", rec.resolved)
		}
	})

	t.Run("inactive without alert is a no-op", func(t *testing.T) {
		repo := &memoryAlerts{}
		r := NewReconciler(repo, NewLocalLocker(), nil, nil)
		inactive := activeBudgetFinding()
		inactive.Active = false

		outcome, _ := r.Reconcile(ctx, userID, inactive)
		if outcome != OutcomeNone || len(repo.alerts) != 0 {
			t.Errorf("expected no-op, got %s with %d alerts", outcome, len(repo.alerts))
		}
	})

	t.Run("non auto-resolving finding leaves alert unread", func(t *testing.T) {
		repo := &memoryAlerts{}
		r := NewReconciler(repo, NewLocalLocker(), nil, nil)
		f := Finding{Type: entity.AlertTypeDebtDue, CorrelationKey: uuid.NewString(), Active: true}

		_, _ = r.Reconcile(ctx, userID, f)
		f.Active = false
		outcome, _ := r.Reconcile(ctx, userID, f)

		if outcome != OutcomeNone {
			t.Errorf("expected none, got %s", outcome)
		}
		if repo.count(false) != 1 {
			t.Errorf("expected debt alert to stay unread")
		}
	})

	t.Run("read alert does not block a new one", func(t *testing.T) {
		repo := &memoryAlerts{}
		r := NewReconciler(repo, NewLocalLocker(), nil, nil)

		_, _ = r.Reconcile(ctx, userID, activeBudgetFinding())
		_ = repo.MarkRead(ctx, userID, repo.alerts[0].ID)
		outcome, _ := r.Reconcile(ctx, userID, activeBudgetFinding())

		if outcome != OutcomeCreated {
			t.Errorf("expected a fresh alert after the user read the old one, got %s", outcome)
		}
	})

	t.Run("notifier failure does not fail reconciliation", func(t *testing.T) {
		repo := &memoryAlerts{}
		notifier := &failingNotifier{}
		r := NewReconciler(repo, NewLocalLocker(), notifier, nil)

		outcome, err := r.Reconcile(ctx, userID, activeBudgetFinding())
		if err != nil || outcome != OutcomeCreated {
			t.Errorf("expected created without error, got %s, %v", outcome, err)
		}
		if notifier.calls != 1 {
			t.Errorf("expected notifier to be called once, got %d", notifier.calls)
		}
	})

	t.Run("concurrent reconciliations of one key create one alert", func(t *testing.T) {
		repo := &memoryAlerts{findDelay: 2 * time.Millisecond}
		r := NewReconciler(repo, NewLocalLocker(), nil, nil)

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := r.Reconcile(ctx, userID, activeBudgetFinding()); err != nil {
					t.Error(err)
				}
			}()
		}
		wg.Wait()

		if repo.count(false) != 1 {
			t.Errorf("expected exactly 1 unread alert, got %d", repo.count(false))
		}
	})

	t.Run("different users are independent", func(t *testing.T) {
		repo := &memoryAlerts{}
		r := NewReconciler(repo, NewLocalLocker(), nil, nil)

		_, _ = r.Reconcile(ctx, uuid.New(), activeBudgetFinding())
		_, _ = r.Reconcile(ctx, uuid.New(), activeBudgetFinding())

		if repo.count(false) != 2 {
			t.Errorf("expected 2 unread alerts, got %d", repo.count(false))
		}
	})
}
