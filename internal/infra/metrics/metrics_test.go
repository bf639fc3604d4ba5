package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

func TestRecorder_Counters(t *testing.T) {
	r := NewRecorder()

	r.AlertCreated(entity.AlertTypeBudgetExceeded)
	r.AlertCreated(entity.AlertTypeBudgetExceeded)
	r.AlertResolved(entity.AlertTypeCategoryExceeded)
	r.SweepRun("debts", "success")
	r.SweepEntityFailed("goals")

	if got := testutil.ToFloat64(r.alertsCreated.WithLabelValues("budget_exceeded")); got != 2 {
		t.Errorf("expected 2 created alerts, got %v", got)
	}
	if got := testutil.ToFloat64(r.alertsResolved.WithLabelValues("category_exceeded")); got != 1 {
		t.Errorf("expected 1 resolved alert, got %v", got)
	}
	if got := testutil.ToFloat64(r.sweepRuns.WithLabelValues("debts", "success")); got != 1 {
		t.Errorf("expected 1 sweep run, got %v", got)
	}
	if got := testutil.ToFloat64(r.sweepFailures.WithLabelValues("goals")); got != 1 {
		t.Errorf("expected 1 sweep failure, got %v", got)
	}
}

func TestRecorder_MiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRecorder()

	engine := gin.New()
	engine.Use(r.Middleware())
	engine.GET("/debts/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	engine.GET("/metrics", gin.WrapH(r.Handler()))

	req := httptest.NewRequest(http.MethodGet, "/debts/42", nil)
	engine.ServeHTTP(httptest.NewRecorder(), req)

	if got := testutil.ToFloat64(r.httpRequests.WithLabelValues("GET", "/debts/:id", "204")); got != 1 {
		t.Errorf("expected request labelled with route template, got %v", got)
	}

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from metrics endpoint, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "budget_http_requests_total") {
		t.Error("expected exposition to include budget_http_requests_total")
	}
}
