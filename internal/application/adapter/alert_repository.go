package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// AlertRepository defines the interface for alert persistence operations.
type AlertRepository interface {
	// Create stores a new alert. It returns domainerror.ErrAlertAlreadyActive when an
	// unread alert with the same (user, type, correlation key) exists.
	Create(ctx context.Context, alert *entity.Alert) error

	// FindUnread returns the unread alert for a correlation key, or nil.
	FindUnread(ctx context.Context, userID uuid.UUID, alertType entity.AlertType, correlationKey string) (*entity.Alert, error)

	// ResolveUnread marks unread alerts for a correlation key as read and returns how many changed.
	ResolveUnread(ctx context.Context, userID uuid.UUID, alertType entity.AlertType, correlationKey string) (int64, error)

	// FindByID retrieves an alert owned by userID.
	FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Alert, error)

	// List returns alerts newest first, optionally filtered by read state. limit <= 0 means no limit.
	List(ctx context.Context, userID uuid.UUID, isRead *bool, limit int) ([]*entity.Alert, error)

	// MarkRead flips a single alert to read.
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
}

// AlertNotifier is told about every newly created alert.
type AlertNotifier interface {
	// AlertCreated is called after an alert was stored.
	AlertCreated(ctx context.Context, alert *entity.Alert) error
}

// KeyLocker serializes work on a string key.
type KeyLocker interface {
	// Lock blocks until the key is held or ctx is done. The returned function releases it.
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// AlertTrigger re-evaluates alert rules after ledger mutations.
// Callers treat returned errors as non-fatal.
type AlertTrigger interface {
	// TransactionChanged re-evaluates the periods and categories touched by a transaction mutation.
	TransactionChanged(ctx context.Context, userID uuid.UUID, before, after *entity.Transaction) error

	// BudgetChanged re-evaluates the budget rule for a period.
	BudgetChanged(ctx context.Context, userID uuid.UUID, period entity.Period) error

	// CategoryChanged re-evaluates a category's limit rule for a period.
	CategoryChanged(ctx context.Context, userID, categoryID uuid.UUID, period entity.Period) error

	// DebtsChanged re-evaluates all debts of a user.
	DebtsChanged(ctx context.Context, userID uuid.UUID) error
}
