package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/budget-tracker/backend/internal/application/usecase/alert"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/dto"
)

// AlertController handles alert endpoints.
type AlertController struct {
	listUseCase     *alert.ListAlertsUseCase
	markReadUseCase *alert.MarkAlertReadUseCase
}

// NewAlertController creates a new alert controller instance.
func NewAlertController(listUseCase *alert.ListAlertsUseCase, markReadUseCase *alert.MarkAlertReadUseCase) *AlertController {
	return &AlertController{listUseCase: listUseCase, markReadUseCase: markReadUseCase}
}

// List handles GET /alerts requests.
func (c *AlertController) List(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	var query dto.ListAlertsQuery
	if !bindQuery(ctx, &query) {
		return
	}

	alerts, err := c.listUseCase.Execute(ctx.Request.Context(), alert.ListAlertsInput{
		UserID: userID,
		IsRead: query.IsRead,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK(dto.ToAlertListResponse(alerts)))
}

// MarkRead handles PUT /alerts/:id/read requests.
func (c *AlertController) MarkRead(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	updated, err := c.markReadUseCase.Execute(ctx.Request.Context(), userID, id)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OKWithMessage("Alert marked as read", dto.ToAlertResponse(updated)))
}
