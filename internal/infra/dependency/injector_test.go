package dependency

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/budget-tracker/backend/config"
	"github.com/budget-tracker/backend/internal/application/usecase/alert"
	"github.com/budget-tracker/backend/internal/infra/db"
)

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

type testServer struct {
	t        *testing.T
	injector *Injector
	handler  http.Handler
	token    string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = conn.Close() })

	gdb, err := gorm.Open(sqlite.Dialector{Conn: conn}, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open gorm: %v", err)
	}
	database := db.Wrap(gdb)
	if err := database.AutoMigrate(); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	cfg := config.Load()
	cfg.Server.Environment = "test"
	cfg.CORS.AllowedOrigins = nil

	injector, err := NewInjector(cfg, database, nil,
		WithClock(fixedClock(time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC))))
	if err != nil {
		t.Fatalf("failed to wire: %v", err)
	}

	return &testServer{
		t:        t,
		injector: injector,
		handler:  injector.Router.Setup(cfg.Server.Environment),
	}
}

func (s *testServer) do(method, path string, body any) (int, map[string]any) {
	s.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			s.t.Fatalf("failed to encode body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 && strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			s.t.Fatalf("invalid json from %s %s: %v", method, path, err)
		}
	}
	return rec.Code, out
}

func (s *testServer) mustDo(method, path string, body any, wantStatus int) map[string]any {
	s.t.Helper()
	status, out := s.do(method, path, body)
	if status != wantStatus {
		s.t.Fatalf("%s %s: expected %d, got %d: %v", method, path, wantStatus, status, out)
	}
	return out
}

func (s *testServer) login() {
	s.t.Helper()
	s.mustDo(http.MethodPost, "/api/v1/auth/register", map[string]any{
		"name":                  "Ana",
		"email":                 "ana@example.com",
		"password":              "password123",
		"password_confirmation": "password123",
	}, http.StatusCreated)

	out := s.mustDo(http.MethodPost, "/api/v1/auth/login", map[string]any{
		"email":    "ana@example.com",
		"password": "password123",
	}, http.StatusOK)
	token, _ := out["token"].(string)
	if token == "" {
		s.t.Fatal("expected a token from login")
	}
	s.token = token
}

func (s *testServer) alerts(query string) []map[string]any {
	s.t.Helper()
	out := s.mustDo(http.MethodGet, "/api/v1/alerts"+query, nil, http.StatusOK)
	raw, _ := out["data"].([]any)
	alerts := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		alerts = append(alerts, item.(map[string]any))
	}
	return alerts
}

func dataID(t *testing.T, out map[string]any) string {
	t.Helper()
	data, _ := out["data"].(map[string]any)
	id, _ := data["id"].(string)
	if id == "" {
		t.Fatalf("expected data.id in %v", out)
	}
	return id
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

func TestAPI_RequiresAuthentication(t *testing.T) {
	s := newTestServer(t)

	status, out := s.do(http.MethodGet, "/api/v1/alerts", nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", status)
	}
	if out["success"] != false || out["message"] != "Unauthenticated." {
		t.Errorf("unexpected body %v", out)
	}

	status, _ = s.do(http.MethodGet, "/health", nil)
	if status != http.StatusOK {
		t.Errorf("expected healthy database, got %d", status)
	}
}

func TestAPI_ValidationErrors(t *testing.T) {
	s := newTestServer(t)
	s.login()

	status, out := s.do(http.MethodPost, "/api/v1/transactions", map[string]any{
		"type": "transfer",
		"date": "16/10/2026",
	})
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", status)
	}
	errs, _ := out["errors"].(map[string]any)
	for _, field := range []string{"type", "amount", "date"} {
		if _, ok := errs[field]; !ok {
			t.Errorf("expected an error for %s, got %v", field, errs)
		}
	}
}

func TestAPI_BudgetAlertLifecycle(t *testing.T) {
	s := newTestServer(t)
	s.login()

	s.mustDo(http.MethodPost, "/api/v1/monthly-budget", map[string]any{
		"month": 10, "year": 2026, "amount": 100,
	}, http.StatusCreated)

	big := dataID(t, s.mustDo(http.MethodPost, "/api/v1/transactions", map[string]any{
		"type": "expense", "amount": 150, "date": "2026-10-10", "description": "laptop",
	}, http.StatusCreated))

	alerts := s.alerts("")
	if len(alerts) != 1 || alerts[0]["type"] != "budget_exceeded" {
		t.Fatalf("expected one budget alert, got %v", alerts)
	}

	// A second expense keeps the same unread alert.
	small := dataID(t, s.mustDo(http.MethodPost, "/api/v1/transactions", map[string]any{
		"type": "expense", "amount": 10, "date": "2026-10-11",
	}, http.StatusCreated))
	if got := s.alerts(""); len(got) != 1 {
		t.Fatalf("expected the alert to be reused, got %d alerts", len(got))
	}

	// Dropping back under the budget resolves it.
	s.mustDo(http.MethodDelete, "/api/v1/transactions/"+big, nil, http.StatusOK)
	if got := s.alerts("?is_read=false"); len(got) != 0 {
		t.Fatalf("expected no unread alerts, got %v", got)
	}
	if got := s.alerts("?is_read=true"); len(got) != 1 {
		t.Fatalf("expected the resolved alert to be kept as read, got %d", len(got))
	}

	s.mustDo(http.MethodDelete, "/api/v1/transactions/"+small, nil, http.StatusOK)
	s.mustDo(http.MethodGet, "/api/v1/transactions/"+small, nil, http.StatusNotFound)
}

func TestAPI_DebtAlertAndSweep(t *testing.T) {
	s := newTestServer(t)
	s.login()

	s.mustDo(http.MethodPost, "/api/v1/debts", map[string]any{
		"type": "outgoing", "person": "Bruno", "amount": 40, "due_date": "2026-10-01",
	}, http.StatusCreated)

	alerts := s.alerts("")
	if len(alerts) != 1 || alerts[0]["type"] != "debt_due" {
		t.Fatalf("expected one debt alert, got %v", alerts)
	}

	out, err := s.injector.Scheduler.RunNow(context.Background(), alert.SweepDebts)
	if err != nil {
		t.Fatalf("unexpected sweep error: %v", err)
	}
	if out.Checked != 1 || out.Failed != 0 {
		t.Errorf("unexpected sweep output %+v", out)
	}
	if got := s.alerts(""); len(got) != 1 {
		t.Errorf("sweep must not duplicate alerts, got %d", len(got))
	}

	id, _ := alerts[0]["id"].(string)
	s.mustDo(http.MethodPut, "/api/v1/alerts/"+id+"/read", nil, http.StatusOK)
	if got := s.alerts("?is_read=false"); len(got) != 0 {
		t.Errorf("expected the alert to be read, got %d unread", len(got))
	}
}
