// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/usecase/auth"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/dto"
)

// ContextKey is a type for context keys.
type ContextKey string

const (
	// UserIDKey is the context key for the authenticated user's ID.
	UserIDKey ContextKey = "user_id"
	// UserEmailKey is the context key for the authenticated user's email.
	UserEmailKey ContextKey = "user_email"
	// SessionIDKey is the context key for the session behind the bearer token.
	SessionIDKey ContextKey = "session_id"
)

// AuthMiddleware provides bearer token authentication.
type AuthMiddleware struct {
	authenticate *auth.AuthenticateUseCase
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(authenticate *auth.AuthenticateUseCase) *AuthMiddleware {
	return &AuthMiddleware{authenticate: authenticate}
}

// Authenticate rejects requests without a valid, unrevoked access token.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("Unauthenticated."))
			return
		}

		claims, err := m.authenticate.Execute(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("Unauthenticated."))
			return
		}

		c.Set(string(UserIDKey), claims.UserID)
		c.Set(string(UserEmailKey), claims.Email)
		c.Set(string(SessionIDKey), claims.SessionID)

		c.Next()
	}
}

// GetUserIDFromContext extracts the user ID from the Gin context.
func GetUserIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	return uuidFromContext(c, UserIDKey)
}

// GetSessionIDFromContext extracts the session ID from the Gin context.
func GetSessionIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	return uuidFromContext(c, SessionIDKey)
}

func uuidFromContext(c *gin.Context, key ContextKey) (uuid.UUID, bool) {
	v, exists := c.Get(string(key))
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
