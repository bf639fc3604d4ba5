package alerting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// Outcome describes what Reconcile did to the alert store.
type Outcome string

const (
	OutcomeNone      Outcome = "none"
	OutcomeCreated   Outcome = "created"
	OutcomeUnchanged Outcome = "unchanged"
	OutcomeResolved  Outcome = "resolved"
)

// Recorder receives reconciliation events, typically for metrics.
type Recorder interface {
	AlertCreated(alertType entity.AlertType)
	AlertResolved(alertType entity.AlertType)
}

// Reconciler applies findings to the alert store.
type Reconciler struct {
	alerts   adapter.AlertRepository
	locker   adapter.KeyLocker
	notifier adapter.AlertNotifier
	recorder Recorder
}

// NewReconciler creates a Reconciler. notifier and recorder may be nil.
func NewReconciler(alerts adapter.AlertRepository, locker adapter.KeyLocker, notifier adapter.AlertNotifier, recorder Recorder) *Reconciler {
	return &Reconciler{
		alerts:   alerts,
		locker:   locker,
		notifier: notifier,
		recorder: recorder,
	}
}

// Reconcile makes the stored alerts for the finding's correlation key match
// the finding. Calls for the same key are serialized; calls for different keys
// run independently. Repeating a call with the same finding is a no-op.
func (r *Reconciler) Reconcile(ctx context.Context, userID uuid.UUID, f Finding) (Outcome, error) {
	unlock, err := r.locker.Lock(ctx, lockKey(userID, f))
	if err != nil {
		return OutcomeNone, fmt.Errorf("failed to lock %s/%s: %w", f.Type, f.CorrelationKey, err)
	}
	defer unlock()

	existing, err := r.alerts.FindUnread(ctx, userID, f.Type, f.CorrelationKey)
	if err != nil {
		return OutcomeNone, fmt.Errorf("failed to find unread alert: %w", err)
	}

	switch {
	case f.Active && existing != nil:
		return OutcomeUnchanged, nil

	case f.Active:
		alert := entity.NewAlert(userID, f.Type, f.CorrelationKey, f.Payload)
		if err := r.alerts.Create(ctx, alert); err != nil {
			if errors.Is(err, domainerror.ErrAlertAlreadyActive) {
				return OutcomeUnchanged, nil
			}
			return OutcomeNone, fmt.Errorf("failed to create alert: %w", err)
		}
		slog.Info("Alert created",
			"user_id", userID,
			"type", f.Type,
			"correlation_key", f.CorrelationKey,
		)
		if r.recorder != nil {
			r.recorder.AlertCreated(f.Type)
		}
		r.notify(ctx, alert)
		return OutcomeCreated, nil

	case existing != nil && f.AutoResolve:
		n, err := r.alerts.ResolveUnread(ctx, userID, f.Type, f.CorrelationKey)
		if err != nil {
			return OutcomeNone, fmt.Errorf("failed to resolve alert: %w", err)
		}
		if n == 0 {
			return OutcomeNone, nil
		}
		slog.Info("Alert resolved",
			"user_id", userID,
			"type", f.Type,
			"correlation_key", f.CorrelationKey,
		)
		if r.recorder != nil {
			r.recorder.AlertResolved(f.Type)
		}
		return OutcomeResolved, nil
	}

	return OutcomeNone, nil
}

func (r *Reconciler) notify(ctx context.Context, alert *entity.Alert) {
	if r.notifier == nil {
		return
	}
	if err := r.notifier.AlertCreated(ctx, alert); err != nil {
		slog.Warn("Failed to notify about alert",
			"alert_id", alert.ID,
			"error", err,
		)
	}
}

func lockKey(userID uuid.UUID, f Finding) string {
	return fmt.Sprintf("alert:%s:%s:%s", userID, f.Type, f.CorrelationKey)
}
