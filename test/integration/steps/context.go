// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/budget-tracker/backend/config"
	"github.com/budget-tracker/backend/internal/application/usecase/alert"
	"github.com/budget-tracker/backend/internal/infra/db"
	"github.com/budget-tracker/backend/internal/infra/dependency"
	"github.com/budget-tracker/backend/test/integration/mock"
)

const (
	resendEmailsPath = "/emails"
	defaultPassword  = "password123"
)

// defaultNow is the frozen instant every scenario starts at.
var defaultNow = time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

// Suite-wide resources, created once in BeforeSuite.
var (
	testDB     *mock.Db
	testRedis  *redis.Client
	resendMock *mock.ApiMock
)

// response is the last HTTP response a scenario received.
type response struct {
	status int
	body   any
	raw    []byte
}

// TestContext holds the test state for each scenario.
type TestContext struct {
	server   *httptest.Server
	injector *dependency.Injector
	clock    *mock.Time
	client   *http.Client

	headers  map[string]string
	token    string
	response *response
	sweep    *alert.SweepOutput

	// saved maps names used in feature files to ids returned by the API.
	saved map[string]string
}

// contextKey is used to store TestContext in context.Context.
type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)

		testDB = mock.NewDb()
		testRedis = mock.NewRedis()
		resendMock = mock.NewApiServer()
		resendMock.Start()
	})

	ctx.AfterSuite(func() {
		if resendMock != nil {
			resendMock.Close()
		}
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		if err := testDB.ClearDB(); err != nil {
			return ctx, err
		}
		if err := mock.ClearRedis(testRedis); err != nil {
			return ctx, err
		}
		resendMock.Reset()
		resendMock.SetResponse(-1, http.MethodPost, resendEmailsPath, http.StatusOK, map[string]any{
			"id": "resend-test-id",
		})

		tc, err := newTestContext()
		if err != nil {
			return ctx, err
		}
		return SetTestContext(ctx, tc), nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if tc := GetTestContext(ctx); tc != nil && tc.server != nil {
			tc.server.Close()
		}
		return ctx, nil
	})

	registerAPISteps(ctx)
	registerResponseSteps(ctx)
	registerDomainSteps(ctx)
}

// newTestContext wires the full application against the suite's sqlite,
// miniredis and fake Resend server, with the clock frozen at defaultNow.
func newTestContext() (*TestContext, error) {
	cfg := config.Load()
	cfg.Server.Environment = "test"
	cfg.CORS.AllowedOrigins = nil
	cfg.Alerts.Timezone = "UTC"
	cfg.Alerts.EmailNotifications = true
	cfg.Email.ResendAPIKey = "re_test_key"
	cfg.Email.ResendBaseURL = resendMock.GetUrl()
	cfg.Email.AppBaseURL = "http://budget.test"

	clock := mock.NewTime()
	clock.SetCurrentTime(defaultNow)

	injector, err := dependency.NewInjector(cfg, db.Wrap(testDB.DbConn), testRedis, dependency.WithClock(clock))
	if err != nil {
		return nil, fmt.Errorf("failed to wire application: %w", err)
	}

	server := httptest.NewServer(injector.Router.Setup(cfg.Server.Environment))

	return &TestContext{
		server:   server,
		injector: injector,
		clock:    clock,
		client:   server.Client(),
		headers:  map[string]string{},
		saved:    map[string]string{},
	}, nil
}
