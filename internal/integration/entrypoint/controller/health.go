package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthChecker reports whether a dependency is reachable.
type HealthChecker func(ctx context.Context) bool

// HealthController handles health check endpoints.
type HealthController struct {
	dbHealthChecker    HealthChecker
	redisHealthChecker HealthChecker
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Redis     string `json:"redis"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance. Either
// checker may be nil when the dependency is not configured.
func NewHealthController(dbHealthChecker, redisHealthChecker HealthChecker) *HealthController {
	return &HealthController{
		dbHealthChecker:    dbHealthChecker,
		redisHealthChecker: redisHealthChecker,
	}
}

// Check handles GET /health requests. The database is required; Redis only
// degrades locking and rate limiting.
func (h *HealthController) Check(c *gin.Context) {
	ctx := c.Request.Context()

	dbStatus := status(ctx, h.dbHealthChecker)
	redisStatus := status(ctx, h.redisHealthChecker)

	code := http.StatusOK
	overall := "ok"
	switch {
	case dbStatus != "connected":
		code = http.StatusServiceUnavailable
		overall = "unavailable"
	case redisStatus != "connected":
		overall = "degraded"
	}

	c.JSON(code, HealthResponse{
		Status:    overall,
		Database:  dbStatus,
		Redis:     redisStatus,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func status(ctx context.Context, check HealthChecker) string {
	if check != nil && check(ctx) {
		return "connected"
	}
	return "disconnected"
}
