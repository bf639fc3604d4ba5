// Package email provides email sending functionality.
package email

import (
	"context"
	"fmt"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// Service queues alert notification emails.
type Service struct {
	queue      adapter.EmailQueueRepository
	users      adapter.UserRepository
	clock      adapter.Clock
	appBaseURL string
}

// NewService creates a new email service.
func NewService(queue adapter.EmailQueueRepository, users adapter.UserRepository, clock adapter.Clock, appBaseURL string) *Service {
	return &Service{
		queue:      queue,
		users:      users,
		clock:      clock,
		appBaseURL: appBaseURL,
	}
}

// AlertCreated queues an alert_created email for the alert owner.
func (s *Service) AlertCreated(ctx context.Context, alert *entity.Alert) error {
	user, err := s.users.FindByID(ctx, alert.UserID)
	if err != nil {
		return fmt.Errorf("failed to load alert owner: %w", err)
	}

	title, message := DescribeAlert(alert)
	templateData := map[string]any{
		"user_name":  user.Name,
		"title":      title,
		"message":    message,
		"alerts_url": s.appBaseURL + "/alerts",
	}

	job := entity.NewEmailJob(
		user.ID,
		entity.TemplateAlertCreated,
		user.Email,
		user.Name,
		title+" - Budget Tracker",
		templateData,
		s.clock.Now(),
	)

	if err := s.queue.Create(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to queue alert email",
			err,
		)
	}
	return nil
}

// Ensure Service implements adapter.AlertNotifier.
var _ adapter.AlertNotifier = (*Service)(nil)
