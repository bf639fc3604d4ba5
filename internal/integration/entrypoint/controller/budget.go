package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/budget-tracker/backend/internal/application/usecase/budget"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/dto"
)

// BudgetController handles monthly budget endpoints.
type BudgetController struct {
	getUseCase *budget.GetMonthlyBudgetUseCase
	setUseCase *budget.SetMonthlyBudgetUseCase
}

// NewBudgetController creates a new budget controller instance.
func NewBudgetController(getUseCase *budget.GetMonthlyBudgetUseCase, setUseCase *budget.SetMonthlyBudgetUseCase) *BudgetController {
	return &BudgetController{getUseCase: getUseCase, setUseCase: setUseCase}
}

// Get handles GET /monthly-budget requests.
func (c *BudgetController) Get(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	var query dto.MonthlyBudgetQuery
	if !bindQuery(ctx, &query) {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), budget.GetMonthlyBudgetInput{
		UserID: userID,
		Month:  query.Month,
		Year:   query.Year,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK(dto.ToMonthlyBudgetStatusResponse(output)))
}

// Set handles POST /monthly-budget requests, creating or replacing the
// budget of the month.
func (c *BudgetController) Set(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	var req dto.SetMonthlyBudgetRequest
	if !bindJSON(ctx, &req) {
		return
	}

	stored, err := c.setUseCase.Execute(ctx.Request.Context(), budget.SetMonthlyBudgetInput{
		UserID: userID,
		Month:  req.Month,
		Year:   req.Year,
		Amount: dto.AmountFromFloat(req.Amount),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.OKWithMessage("Budget saved successfully", dto.ToMonthlyBudgetResponse(stored)))
}
