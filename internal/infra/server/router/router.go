// Package router sets up the HTTP routing for the application.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/budget-tracker/backend/internal/infra/metrics"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/middleware"
)

// Controllers groups every HTTP controller.
type Controllers struct {
	Health      *controller.HealthController
	Auth        *controller.AuthController
	Settings    *controller.SettingsController
	Dashboard   *controller.DashboardController
	Transaction *controller.TransactionController
	Category    *controller.CategoryController
	Budget      *controller.BudgetController
	Debt        *controller.DebtController
	Goal        *controller.GoalController
	Alert       *controller.AlertController
}

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine         *gin.Engine
	controllers    Controllers
	authMiddleware *middleware.AuthMiddleware
	authLimiter    *middleware.RateLimiter
	recorder       *metrics.Recorder
	allowedOrigins []string
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	controllers Controllers,
	authMiddleware *middleware.AuthMiddleware,
	authLimiter *middleware.RateLimiter,
	recorder *metrics.Recorder,
	allowedOrigins []string,
) *Router {
	return &Router{
		controllers:    controllers,
		authMiddleware: authMiddleware,
		authLimiter:    authLimiter,
		recorder:       recorder,
		allowedOrigins: allowedOrigins,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	switch environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}
	dto.RegisterValidation()

	r.engine = gin.New()
	r.engine.Use(gin.Recovery(), middleware.RequestLogger())
	if r.recorder != nil {
		r.engine.Use(r.recorder.Middleware())
	}
	if len(r.allowedOrigins) > 0 {
		r.engine.Use(middleware.CORS(r.allowedOrigins))
	}
	r.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.Fail("Resource not found."))
	})

	r.setupOperationalRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupOperationalRoutes configures health and metrics endpoints.
func (r *Router) setupOperationalRoutes() {
	r.engine.GET("/health", r.controllers.Health.Check)
	if r.recorder != nil {
		r.engine.GET("/metrics", gin.WrapH(r.recorder.Handler()))
	}
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	c := r.controllers
	v1 := r.engine.Group("/api/v1")

	public := v1.Group("/auth")
	if r.authLimiter != nil {
		public.Use(r.authLimiter.Middleware())
	}
	public.POST("/register", c.Auth.Register)
	public.POST("/login", c.Auth.Login)

	protected := v1.Group("")
	protected.Use(r.authMiddleware.Authenticate())

	protected.POST("/auth/logout", c.Auth.Logout)
	protected.GET("/user", c.Auth.Me)
	protected.GET("/dashboard", c.Dashboard.Get)

	transactions := protected.Group("/transactions")
	transactions.GET("", c.Transaction.List)
	transactions.POST("", c.Transaction.Create)
	transactions.GET("/:id", c.Transaction.Get)
	transactions.PUT("/:id", c.Transaction.Update)
	transactions.DELETE("/:id", c.Transaction.Delete)

	categories := protected.Group("/categories")
	categories.GET("", c.Category.List)
	categories.POST("", c.Category.Create)
	categories.GET("/:id", c.Category.Get)
	categories.PUT("/:id", c.Category.Update)
	categories.DELETE("/:id", c.Category.Delete)

	protected.GET("/monthly-budget", c.Budget.Get)
	protected.POST("/monthly-budget", c.Budget.Set)

	debts := protected.Group("/debts")
	debts.GET("", c.Debt.List)
	debts.POST("", c.Debt.Create)
	debts.GET("/:id", c.Debt.Get)
	debts.PUT("/:id", c.Debt.Update)
	debts.DELETE("/:id", c.Debt.Delete)

	goals := protected.Group("/goals")
	goals.GET("", c.Goal.List)
	goals.POST("", c.Goal.Create)
	goals.GET("/:id", c.Goal.Get)
	goals.PUT("/:id", c.Goal.Update)
	goals.DELETE("/:id", c.Goal.Delete)
	goals.GET("/:id/progress", c.Goal.Progress)
	goals.GET("/:id/deposits", c.Goal.ListDeposits)
	goals.POST("/:id/deposits", c.Goal.CreateDeposit)
	goals.DELETE("/:id/deposits/:depositId", c.Goal.DeleteDeposit)

	alerts := protected.Group("/alerts")
	alerts.GET("", c.Alert.List)
	alerts.PUT("/:id/read", c.Alert.MarkRead)

	settings := protected.Group("/settings")
	settings.PUT("/profile", c.Settings.UpdateProfile)
	settings.PUT("/password", c.Settings.ChangePassword)
}
