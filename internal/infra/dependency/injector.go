// Package dependency provides dependency injection for the application.
package dependency

import (
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/budget-tracker/backend/config"
	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/application/alerting"
	"github.com/budget-tracker/backend/internal/application/usecase/alert"
	"github.com/budget-tracker/backend/internal/application/usecase/auth"
	"github.com/budget-tracker/backend/internal/application/usecase/budget"
	"github.com/budget-tracker/backend/internal/application/usecase/category"
	"github.com/budget-tracker/backend/internal/application/usecase/dashboard"
	"github.com/budget-tracker/backend/internal/application/usecase/debt"
	"github.com/budget-tracker/backend/internal/application/usecase/goal"
	"github.com/budget-tracker/backend/internal/application/usecase/settings"
	"github.com/budget-tracker/backend/internal/application/usecase/transaction"
	"github.com/budget-tracker/backend/internal/infra/cache"
	"github.com/budget-tracker/backend/internal/infra/db"
	"github.com/budget-tracker/backend/internal/infra/metrics"
	"github.com/budget-tracker/backend/internal/infra/server/router"
	"github.com/budget-tracker/backend/internal/integration/adapters"
	"github.com/budget-tracker/backend/internal/integration/email"
	"github.com/budget-tracker/backend/internal/integration/email/templates"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/middleware"
	"github.com/budget-tracker/backend/internal/integration/persistence"
	"github.com/budget-tracker/backend/internal/integration/scheduler"
)

// Injector holds all application dependencies.
type Injector struct {
	Config    *config.Config
	DB        *gorm.DB
	Router    *router.Router
	Engine    *alerting.Engine
	Scheduler *scheduler.Scheduler
	Metrics   *metrics.Recorder
	// Worker delivers queued alert emails. It is nil when notifications are off.
	Worker *email.Worker
}

type options struct {
	clock       adapter.Clock
	emailSender adapter.EmailSender
	recorder    *metrics.Recorder
}

// Option overrides a default collaborator.
type Option func(*options)

// WithClock replaces the wall clock, mostly for tests.
func WithClock(clock adapter.Clock) Option {
	return func(o *options) { o.clock = clock }
}

// WithEmailSender replaces the Resend client.
func WithEmailSender(sender adapter.EmailSender) Option {
	return func(o *options) { o.emailSender = sender }
}

// WithRecorder shares a metrics recorder between injectors.
func WithRecorder(recorder *metrics.Recorder) Option {
	return func(o *options) { o.recorder = recorder }
}

// NewInjector creates a new dependency injector with all dependencies wired.
// redisClient may be nil, in which case locks and rate limits stay in process.
func NewInjector(cfg *config.Config, database *db.Database, redisClient *redis.Client, opts ...Option) (*Injector, error) {
	o := options{clock: adapters.SystemClock{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.recorder == nil {
		o.recorder = metrics.NewRecorder()
	}

	loc, err := cfg.Alerts.Location()
	if err != nil {
		return nil, err
	}
	gormDB := database.DB()

	// Create repositories
	userRepo := persistence.NewUserRepository(gormDB)
	sessionRepo := persistence.NewSessionRepository(gormDB)
	categoryRepo := persistence.NewCategoryRepository(gormDB)
	transactionRepo := persistence.NewTransactionRepository(gormDB)
	budgetRepo := persistence.NewMonthlyBudgetRepository(gormDB)
	debtRepo := persistence.NewDebtRepository(gormDB)
	goalRepo := persistence.NewSavingGoalRepository(gormDB)
	depositRepo := persistence.NewSavingDepositRepository(gormDB)
	alertRepo := persistence.NewAlertRepository(gormDB)
	emailQueueRepo := persistence.NewEmailQueueRepository(gormDB)

	// Create adapters/services
	calendar := adapters.NewCalendar(o.clock, loc)
	passwordService := adapters.NewPasswordService(adapters.DefaultBcryptCost)
	tokenService := adapters.NewTokenService(cfg.JWT.Secret)

	var locker adapter.KeyLocker
	if redisClient != nil {
		locker = adapters.NewRedisLocker(redisClient, cfg.Alerts.LockTTL)
	} else {
		slog.Warn("Redis unavailable, alert locks are process local")
		locker = alerting.NewLocalLocker()
	}

	// Alert engine
	var notifier adapter.AlertNotifier
	var worker *email.Worker
	if cfg.Alerts.EmailNotifications {
		worker, err = newEmailWorker(cfg, emailQueueRepo, o)
		if err != nil {
			return nil, err
		}
		notifier = email.NewService(emailQueueRepo, userRepo, o.clock, cfg.Email.AppBaseURL)
	}
	reconciler := alerting.NewReconciler(alertRepo, locker, notifier, o.recorder)
	engine := alerting.NewEngine(transactionRepo, budgetRepo, categoryRepo, debtRepo, goalRepo, reconciler, o.clock, loc)

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, sessionRepo, passwordService, tokenService, cfg.JWT.AccessTokenExpiry)
	logoutUseCase := auth.NewLogoutUserUseCase(sessionRepo)
	currentUserUseCase := auth.NewGetCurrentUserUseCase(userRepo)
	authenticateUseCase := auth.NewAuthenticateUseCase(tokenService, sessionRepo)

	// Create settings use cases
	updateProfileUseCase := settings.NewUpdateProfileUseCase(userRepo)
	changePasswordUseCase := settings.NewChangePasswordUseCase(userRepo, sessionRepo, passwordService)

	// Create category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
	getCategoryUseCase := category.NewGetCategoryUseCase(categoryRepo)
	updateCategoryUseCase := category.NewUpdateCategoryUseCase(categoryRepo, engine, calendar)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo)

	// Create transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo, calendar)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, categoryRepo, engine)
	getTransactionUseCase := transaction.NewGetTransactionUseCase(transactionRepo)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo, categoryRepo, engine)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo, engine)

	// Create budget use cases
	getBudgetUseCase := budget.NewGetMonthlyBudgetUseCase(budgetRepo, transactionRepo, calendar)
	setBudgetUseCase := budget.NewSetMonthlyBudgetUseCase(budgetRepo, engine)

	// Create debt use cases
	listDebtsUseCase := debt.NewListDebtsUseCase(debtRepo, calendar)
	createDebtUseCase := debt.NewCreateDebtUseCase(debtRepo, engine, calendar)
	getDebtUseCase := debt.NewGetDebtUseCase(debtRepo, calendar)
	updateDebtUseCase := debt.NewUpdateDebtUseCase(debtRepo, engine, calendar)
	deleteDebtUseCase := debt.NewDeleteDebtUseCase(debtRepo)

	// Create goal use cases
	goalUseCases := controller.GoalUseCases{
		List:          goal.NewListGoalsUseCase(goalRepo, calendar),
		Create:        goal.NewCreateGoalUseCase(goalRepo, o.clock, calendar),
		Get:           goal.NewGetGoalUseCase(goalRepo, depositRepo, calendar),
		Update:        goal.NewUpdateGoalUseCase(goalRepo, calendar),
		Delete:        goal.NewDeleteGoalUseCase(goalRepo),
		Progress:      goal.NewGetGoalProgressUseCase(goalRepo, calendar),
		ListDeposits:  goal.NewListDepositsUseCase(goalRepo, depositRepo),
		CreateDeposit: goal.NewCreateDepositUseCase(goalRepo, depositRepo),
		DeleteDeposit: goal.NewDeleteDepositUseCase(goalRepo, depositRepo),
	}

	// Create alert and dashboard use cases
	listAlertsUseCase := alert.NewListAlertsUseCase(alertRepo)
	markAlertReadUseCase := alert.NewMarkAlertReadUseCase(alertRepo)
	dashboardUseCase := dashboard.NewGetDashboardUseCase(transactionRepo, goalRepo, alertRepo, calendar)

	// Scheduled sweeps
	sched := scheduler.New(loc, o.recorder)
	sweepDebts := alert.NewSweepDebtsUseCase(userRepo, engine, o.recorder, cfg.Alerts.SweepConcurrency)
	sweepGoals := alert.NewSweepGoalsUseCase(goalRepo, engine, o.recorder, cfg.Alerts.SweepConcurrency)
	if err := sched.Register(alert.SweepDebts, cfg.Alerts.DebtSweepCron, sweepDebts); err != nil {
		return nil, fmt.Errorf("failed to register debt sweep: %w", err)
	}
	if err := sched.Register(alert.SweepGoals, cfg.Alerts.GoalSweepCron, sweepGoals); err != nil {
		return nil, fmt.Errorf("failed to register goal sweep: %w", err)
	}

	// Create controllers
	controllers := router.Controllers{
		Health: controller.NewHealthController(database.HealthCheck, cache.HealthCheck(redisClient)),
		Auth:   controller.NewAuthController(registerUseCase, loginUseCase, logoutUseCase, currentUserUseCase),
		Settings: controller.NewSettingsController(
			updateProfileUseCase,
			changePasswordUseCase,
		),
		Dashboard: controller.NewDashboardController(dashboardUseCase),
		Transaction: controller.NewTransactionController(
			listTransactionsUseCase,
			createTransactionUseCase,
			getTransactionUseCase,
			updateTransactionUseCase,
			deleteTransactionUseCase,
		),
		Category: controller.NewCategoryController(
			listCategoriesUseCase,
			createCategoryUseCase,
			getCategoryUseCase,
			updateCategoryUseCase,
			deleteCategoryUseCase,
		),
		Budget: controller.NewBudgetController(getBudgetUseCase, setBudgetUseCase),
		Debt: controller.NewDebtController(
			listDebtsUseCase,
			createDebtUseCase,
			getDebtUseCase,
			updateDebtUseCase,
			deleteDebtUseCase,
		),
		Goal:  controller.NewGoalController(goalUseCases),
		Alert: controller.NewAlertController(listAlertsUseCase, markAlertReadUseCase),
	}

	// Create middleware
	authMiddleware := middleware.NewAuthMiddleware(authenticateUseCase)
	authLimiter := middleware.NewRateLimiter(redisClient, cfg.RateLimit.MaxAttempts, cfg.RateLimit.Window)

	r := router.NewRouter(controllers, authMiddleware, authLimiter, o.recorder, cfg.CORS.AllowedOrigins)

	return &Injector{
		Config:    cfg,
		DB:        gormDB,
		Router:    r,
		Engine:    engine,
		Scheduler: sched,
		Metrics:   o.recorder,
		Worker:    worker,
	}, nil
}

func newEmailWorker(cfg *config.Config, queue adapter.EmailQueueRepository, o options) (*email.Worker, error) {
	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}

	sender := o.emailSender
	if sender == nil {
		if cfg.Email.ResendAPIKey == "" {
			slog.Warn("RESEND_API_KEY not set, alert emails will not be delivered")
			sender = email.NewMockEmailSender()
		} else {
			client, err := email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.ResendBaseURL, cfg.Email.FromName, cfg.Email.FromEmail)
			if err != nil {
				return nil, err
			}
			sender = client
		}
	}

	return email.NewWorker(queue, sender, renderer, o.clock, email.WorkerConfig{
		PollInterval: cfg.Email.PollInterval,
		BatchSize:    cfg.Email.BatchSize,
	}), nil
}
