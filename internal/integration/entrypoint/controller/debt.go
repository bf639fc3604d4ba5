package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/budget-tracker/backend/internal/application/usecase/debt"
	"github.com/budget-tracker/backend/internal/domain/entity"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/dto"
)

// DebtController handles debt endpoints.
type DebtController struct {
	listUseCase   *debt.ListDebtsUseCase
	createUseCase *debt.CreateDebtUseCase
	getUseCase    *debt.GetDebtUseCase
	updateUseCase *debt.UpdateDebtUseCase
	deleteUseCase *debt.DeleteDebtUseCase
}

// NewDebtController creates a new debt controller instance.
func NewDebtController(
	listUseCase *debt.ListDebtsUseCase,
	createUseCase *debt.CreateDebtUseCase,
	getUseCase *debt.GetDebtUseCase,
	updateUseCase *debt.UpdateDebtUseCase,
	deleteUseCase *debt.DeleteDebtUseCase,
) *DebtController {
	return &DebtController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		getUseCase:    getUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /debts requests.
func (c *DebtController) List(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	var query dto.ListDebtsQuery
	if !bindQuery(ctx, &query) {
		return
	}

	var debtType *entity.DebtType
	if query.Type != nil {
		t := entity.DebtType(*query.Type)
		debtType = &t
	}

	debts, err := c.listUseCase.Execute(ctx.Request.Context(), userID, debtType)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK(dto.ToDebtListResponse(debts)))
}

// Create handles POST /debts requests.
func (c *DebtController) Create(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	var req dto.DebtRequest
	if !bindJSON(ctx, &req) {
		return
	}
	dueDate, ok := parseDate(ctx, "due_date", req.DueDate)
	if !ok {
		return
	}

	created, err := c.createUseCase.Execute(ctx.Request.Context(), debt.CreateDebtInput{
		UserID:      userID,
		Type:        entity.DebtType(req.Type),
		Person:      req.Person,
		Amount:      dto.AmountFromFloat(req.Amount),
		DueDate:     dueDate,
		Status:      entity.DebtStatus(req.Status),
		Description: req.Description,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.OKWithMessage("Debt created successfully", dto.ToDebtResponse(created)))
}

// Get handles GET /debts/:id requests.
func (c *DebtController) Get(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	found, err := c.getUseCase.Execute(ctx.Request.Context(), userID, id)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK(dto.ToDebtResponse(found)))
}

// Update handles PUT /debts/:id requests.
func (c *DebtController) Update(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req dto.DebtRequest
	if !bindJSON(ctx, &req) {
		return
	}
	dueDate, ok := parseDate(ctx, "due_date", req.DueDate)
	if !ok {
		return
	}

	updated, err := c.updateUseCase.Execute(ctx.Request.Context(), debt.UpdateDebtInput{
		UserID:      userID,
		DebtID:      id,
		Type:        entity.DebtType(req.Type),
		Person:      req.Person,
		Amount:      dto.AmountFromFloat(req.Amount),
		DueDate:     dueDate,
		Status:      entity.DebtStatus(req.Status),
		Description: req.Description,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OKWithMessage("Debt updated successfully", dto.ToDebtResponse(updated)))
}

// Delete handles DELETE /debts/:id requests.
func (c *DebtController) Delete(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), userID, id); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OKWithMessage("Debt deleted successfully", nil))
}
