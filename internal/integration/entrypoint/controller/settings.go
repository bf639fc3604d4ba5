package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/budget-tracker/backend/internal/application/usecase/settings"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/middleware"
)

// SettingsController handles account settings endpoints.
type SettingsController struct {
	updateProfileUseCase  *settings.UpdateProfileUseCase
	changePasswordUseCase *settings.ChangePasswordUseCase
}

// NewSettingsController creates a new settings controller instance.
func NewSettingsController(
	updateProfileUseCase *settings.UpdateProfileUseCase,
	changePasswordUseCase *settings.ChangePasswordUseCase,
) *SettingsController {
	return &SettingsController{
		updateProfileUseCase:  updateProfileUseCase,
		changePasswordUseCase: changePasswordUseCase,
	}
}

// UpdateProfile handles PUT /settings/profile requests.
func (c *SettingsController) UpdateProfile(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	var req dto.UpdateProfileRequest
	if !bindJSON(ctx, &req) {
		return
	}

	user, err := c.updateProfileUseCase.Execute(ctx.Request.Context(), settings.UpdateProfileInput{
		UserID: userID,
		Name:   req.Name,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OKWithMessage("Profile updated successfully", dto.ToUserResponse(user)))
}

// ChangePassword handles PUT /settings/password requests. Every other
// session of the user is revoked.
func (c *SettingsController) ChangePassword(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	sessionID, _ := middleware.GetSessionIDFromContext(ctx)

	var req dto.ChangePasswordRequest
	if !bindJSON(ctx, &req) {
		return
	}

	err := c.changePasswordUseCase.Execute(ctx.Request.Context(), settings.ChangePasswordInput{
		UserID:          userID,
		SessionID:       sessionID,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.Password,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OKWithMessage("Password updated successfully", nil))
}
