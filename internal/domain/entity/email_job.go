package entity

import (
	"time"

	"github.com/google/uuid"
)

// EmailStatus represents the delivery state of a queued email.
type EmailStatus string

const (
	EmailStatusPending    EmailStatus = "pending"
	EmailStatusProcessing EmailStatus = "processing"
	EmailStatusSent       EmailStatus = "sent"
	EmailStatusFailed     EmailStatus = "failed"
)

// EmailTemplateType selects the template used to render a queued email.
type EmailTemplateType string

const (
	TemplateAlertCreated EmailTemplateType = "alert_created"
)

// emailRetryDelays is indexed by the number of attempts already made.
var emailRetryDelays = []time.Duration{time.Minute, 5 * time.Minute, 30 * time.Minute}

// EmailJob is an outbound email waiting in the queue.
type EmailJob struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	TemplateType   EmailTemplateType
	RecipientEmail string
	RecipientName  string
	Subject        string
	TemplateData   map[string]any
	Status         EmailStatus
	Attempts       int
	MaxAttempts    int
	LastError      string
	ProviderID     string
	CreatedAt      time.Time
	ScheduledAt    time.Time
	ProcessedAt    *time.Time
}

// NewEmailJob queues an email for delivery at now.
func NewEmailJob(userID uuid.UUID, templateType EmailTemplateType, recipientEmail, recipientName, subject string, data map[string]any, now time.Time) *EmailJob {
	now = now.UTC()
	return &EmailJob{
		ID:             uuid.New(),
		UserID:         userID,
		TemplateType:   templateType,
		RecipientEmail: recipientEmail,
		RecipientName:  recipientName,
		Subject:        subject,
		TemplateData:   data,
		Status:         EmailStatusPending,
		MaxAttempts:    len(emailRetryDelays),
		CreatedAt:      now,
		ScheduledAt:    now,
	}
}

// MarkSent records a successful hand-off to the provider.
func (e *EmailJob) MarkSent(providerID string, now time.Time) {
	e.Status = EmailStatusSent
	e.ProviderID = providerID
	e.ProcessedAt = &now
}

// MarkFailed records a failed attempt. The job goes back to pending with a
// delayed schedule unless the failure is permanent or attempts are exhausted.
func (e *EmailJob) MarkFailed(err error, permanent bool, now time.Time) {
	e.LastError = err.Error()
	delay := emailRetryDelays[min(e.Attempts, len(emailRetryDelays)-1)]
	e.Attempts++

	if permanent || e.Attempts >= e.MaxAttempts {
		e.Status = EmailStatusFailed
		e.ProcessedAt = &now
		return
	}
	e.Status = EmailStatusPending
	e.ScheduledAt = now.Add(delay)
}
