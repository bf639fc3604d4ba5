// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerror "github.com/budget-tracker/backend/internal/domain/error"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/middleware"
)

// currentUser returns the authenticated user id, answering 401 when missing.
func currentUser(ctx *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.Fail("Unauthenticated."))
		return uuid.Nil, false
	}
	return userID, true
}

// pathID parses a uuid path parameter. Malformed ids cannot name an existing
// resource, so they answer 404.
func pathID(ctx *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(param))
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.Fail("Resource not found."))
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON binds and validates the body, answering 422 on failure.
func bindJSON(ctx *gin.Context, req any) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		respondValidation(ctx, dto.ValidationErrors(err))
		return false
	}
	return true
}

// bindQuery binds and validates query parameters, answering 422 on failure.
func bindQuery(ctx *gin.Context, req any) bool {
	if err := ctx.ShouldBindQuery(req); err != nil {
		respondValidation(ctx, dto.ValidationErrors(err))
		return false
	}
	return true
}

// parseDate parses a validated YYYY-MM-DD field, answering 422 on failure.
func parseDate(ctx *gin.Context, field, value string) (time.Time, bool) {
	t, err := dto.ParseDate(value)
	if err != nil {
		respondValidation(ctx, map[string][]string{
			field: {"The " + field + " field must be a valid date."},
		})
		return time.Time{}, false
	}
	return t, true
}

func respondValidation(ctx *gin.Context, fields map[string][]string) {
	ctx.JSON(http.StatusUnprocessableEntity, dto.NewValidationErrorResponse(fields))
}

// handleError maps domain errors to HTTP responses.
func handleError(ctx *gin.Context, err error) {
	var validationErr *domainerror.ValidationError
	if errors.As(err, &validationErr) {
		respondValidation(ctx, validationErr.Fields)
		return
	}

	switch {
	case errors.Is(err, domainerror.ErrEmailAlreadyExists):
		respondValidation(ctx, map[string][]string{"email": {"The email has already been taken."}})
	case errors.Is(err, domainerror.ErrInvalidCredentials):
		respondValidation(ctx, map[string][]string{"email": {"The provided credentials are incorrect."}})
	case errors.Is(err, domainerror.ErrIncorrectPassword):
		respondValidation(ctx, map[string][]string{"current_password": {"The current password is incorrect."}})
	case errors.Is(err, domainerror.ErrWeakPassword):
		respondValidation(ctx, map[string][]string{"password": {"The password field must be at least 8 characters."}})
	case errors.Is(err, domainerror.ErrCategoryNameExists):
		respondValidation(ctx, map[string][]string{"name": {"The name has already been taken."}})
	case errors.Is(err, domainerror.ErrInvalidToken),
		errors.Is(err, domainerror.ErrExpiredToken),
		errors.Is(err, domainerror.ErrSessionRevoked):
		ctx.JSON(http.StatusUnauthorized, dto.Fail("Unauthenticated."))
	case errors.Is(err, domainerror.ErrUserNotFound),
		errors.Is(err, domainerror.ErrCategoryNotFound),
		errors.Is(err, domainerror.ErrTransactionNotFound),
		errors.Is(err, domainerror.ErrDebtNotFound),
		errors.Is(err, domainerror.ErrGoalNotFound),
		errors.Is(err, domainerror.ErrDepositNotFound),
		errors.Is(err, domainerror.ErrAlertNotFound):
		ctx.JSON(http.StatusNotFound, dto.Fail("Resource not found."))
	default:
		slog.Error("Unhandled request error",
			"method", ctx.Request.Method,
			"path", ctx.FullPath(),
			"error", err,
		)
		ctx.JSON(http.StatusInternalServerError, dto.Fail("An internal error occurred"))
	}
}
