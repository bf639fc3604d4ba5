package email

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	"github.com/budget-tracker/backend/internal/integration/email/templates"
)

type memoryQueue struct {
	mu   sync.Mutex
	jobs map[uuid.UUID]*entity.EmailJob
}

func newMemoryQueue() *memoryQueue {
	return &memoryQueue{jobs: map[uuid.UUID]*entity.EmailJob{}}
}

func (q *memoryQueue) Create(_ context.Context, job *entity.EmailJob) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs[job.ID] = job
	return nil
}

func (q *memoryQueue) GetPendingJobs(_ context.Context, now time.Time, limit int) ([]*entity.EmailJob, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	var due []*entity.EmailJob
	for _, job := range q.jobs {
		if job.Status == entity.EmailStatusPending && !job.ScheduledAt.After(now) && len(due) < limit {
			due = append(due, job)
		}
	}
	return due, nil
}

func (q *memoryQueue) Update(_ context.Context, job *entity.EmailJob) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs[job.ID] = job
	return nil
}

func (q *memoryQueue) only(t *testing.T) *entity.EmailJob {
	t.Helper()
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.jobs) != 1 {
		t.Fatalf("expected one queued job, got %d", len(q.jobs))
	}
	for _, job := range q.jobs {
		return job
	}
	return nil
}

type fakeUsers struct {
	adapter.UserRepository
	user *entity.User
}

func (f *fakeUsers) FindByID(context.Context, uuid.UUID) (*entity.User, error) {
	if f.user == nil {
		return nil, errors.New("not found")
	}
	return f.user, nil
}

type stepClock struct{ now time.Time }

func (c *stepClock) Now() time.Time { return c.now }

func budgetAlert(userID uuid.UUID) *entity.Alert {
	return entity.NewAlert(userID, entity.AlertTypeBudgetExceeded, "2026-10", map[string]any{
		"month": 10,
		"year":  2026,
		"total": 1200.5,
		"limit": 1000.0,
	})
}

func TestDescribeAlert(t *testing.T) {
	title, message := DescribeAlert(budgetAlert(uuid.New()))
	if title != "Monthly budget exceeded" {
		t.Errorf("unexpected title %q", title)
	}
	if message != "You spent 1200.50 in 10/2026, over your budget of 1000.00." {
		t.Errorf("unexpected message %q", message)
	}

	_, message = DescribeAlert(entity.NewAlert(uuid.New(), entity.AlertTypeDebtDue, "d", map[string]any{
		"person":   "Ana",
		"amount":   50.0,
		"due_date": "2026-10-01",
	}))
	if message != "The debt with Ana of 50.00 was due on 2026-10-01." {
		t.Errorf("unexpected message %q", message)
	}
}

func TestService_AlertCreatedQueuesEmail(t *testing.T) {
	user := entity.NewUser("Ana", "ana@example.com", "hash")
	queue := newMemoryQueue()
	clock := &stepClock{now: time.Date(2026, 10, 5, 9, 0, 0, 0, time.UTC)}
	service := NewService(queue, &fakeUsers{user: user}, clock, "https://app.example")

	if err := service.AlertCreated(context.Background(), budgetAlert(user.ID)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	job := queue.only(t)
	if job.RecipientEmail != "ana@example.com" || job.TemplateType != entity.TemplateAlertCreated {
		t.Errorf("unexpected job %+v", job)
	}
	if job.Subject != "Monthly budget exceeded - Budget Tracker" {
		t.Errorf("unexpected subject %q", job.Subject)
	}
	if job.TemplateData["alerts_url"] != "https://app.example/alerts" {
		t.Errorf("unexpected alerts url %v", job.TemplateData["alerts_url"])
	}
	if !job.ScheduledAt.Equal(clock.now) || !job.CreatedAt.Equal(clock.now) {
		t.Errorf("expected job scheduled at %s, got %s", clock.now, job.ScheduledAt)
	}

	if err := NewService(queue, &fakeUsers{}, clock, "").AlertCreated(context.Background(), budgetAlert(user.ID)); err == nil {
		t.Error("expected error for an unknown user")
	}
}

func TestWorker_DeliversAndRetries(t *testing.T) {
	renderer, err := templates.NewRenderer()
	if err != nil {
		t.Fatalf("failed to load templates: %v", err)
	}
	user := entity.NewUser("Ana", "ana@example.com", "hash")
	// Well behind the wall clock; jobs follow the injected clock only.
	clock := &stepClock{now: time.Date(2020, 1, 6, 9, 0, 0, 0, time.UTC)}

	t.Run("sends pending jobs", func(t *testing.T) {
		queue := newMemoryQueue()
		sender := NewMockEmailSender()
		if err := NewService(queue, &fakeUsers{user: user}, clock, "https://app.example").AlertCreated(context.Background(), budgetAlert(user.ID)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		NewWorker(queue, sender, renderer, clock, WorkerConfig{}).ProcessNow(context.Background())

		sent := sender.Sent()
		if len(sent) != 1 {
			t.Fatalf("expected one email, got %d", len(sent))
		}
		if !strings.Contains(sent[0].HTML, "Ana") || !strings.Contains(sent[0].Text, "1200.50") {
			t.Error("expected rendered name and message in the email")
		}
		if job := queue.only(t); job.Status != entity.EmailStatusSent || job.ProviderID == "" {
			t.Errorf("expected sent job, got %s", job.Status)
		}
	})

	t.Run("temporary failure is rescheduled", func(t *testing.T) {
		queue := newMemoryQueue()
		sender := NewMockEmailSender()
		sender.SetFailure(errors.New("timeout"), false)
		if err := NewService(queue, &fakeUsers{user: user}, clock, "").AlertCreated(context.Background(), budgetAlert(user.ID)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		worker := NewWorker(queue, sender, renderer, clock, WorkerConfig{})

		worker.ProcessNow(context.Background())
		job := queue.only(t)
		if job.Status != entity.EmailStatusPending || job.Attempts != 1 || !job.ScheduledAt.After(clock.now) {
			t.Fatalf("expected a delayed retry, got %s after %d attempts", job.Status, job.Attempts)
		}

		// Not due yet.
		sender.Reset()
		worker.ProcessNow(context.Background())
		if len(sender.Sent()) != 0 {
			t.Error("job must wait for its schedule")
		}

		clock.now = job.ScheduledAt
		worker.ProcessNow(context.Background())
		if len(sender.Sent()) != 1 || queue.only(t).Status != entity.EmailStatusSent {
			t.Error("expected delivery once the retry is due")
		}
	})

	t.Run("permanent failure stops retries", func(t *testing.T) {
		queue := newMemoryQueue()
		sender := NewMockEmailSender()
		sender.SetFailure(errors.New("invalid recipient"), true)
		if err := NewService(queue, &fakeUsers{user: user}, clock, "").AlertCreated(context.Background(), budgetAlert(user.ID)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		NewWorker(queue, sender, renderer, clock, WorkerConfig{}).ProcessNow(context.Background())
		if job := queue.only(t); job.Status != entity.EmailStatusFailed {
			t.Errorf("expected failed job, got %s", job.Status)
		}
	})
}

func TestNewResendClient_BaseURL(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		want    string
	}{
		{name: "default endpoint", baseURL: "", want: "https://api.resend.com/"},
		{name: "override gets a trailing slash", baseURL: "http://127.0.0.1:8025", want: "http://127.0.0.1:8025/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewResendClient("re_key", tt.baseURL, "Budget Tracker", "alerts@example.com")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := client.client.BaseURL.String(); got != tt.want {
				t.Errorf("expected base url %s, got %s", tt.want, got)
			}
		})
	}

	if _, err := NewResendClient("re_key", "http://[::1", "Budget Tracker", "alerts@example.com"); err == nil {
		t.Error("expected an invalid base url to fail")
	}
}

func TestIsPermanentError(t *testing.T) {
	if !isPermanentError(errors.New("[ERROR]: validation error: invalid recipient")) {
		t.Error("expected validation failures to be permanent")
	}
	if isPermanentError(errors.New("[ERROR]: service unavailable")) {
		t.Error("expected outages to be retried")
	}
}
