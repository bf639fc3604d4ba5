package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/budget-tracker/backend/internal/application/usecase/goal"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/dto"
)

// GoalController handles saving goal and deposit endpoints.
type GoalController struct {
	listUseCase          *goal.ListGoalsUseCase
	createUseCase        *goal.CreateGoalUseCase
	getUseCase           *goal.GetGoalUseCase
	updateUseCase        *goal.UpdateGoalUseCase
	deleteUseCase        *goal.DeleteGoalUseCase
	progressUseCase      *goal.GetGoalProgressUseCase
	listDepositsUseCase  *goal.ListDepositsUseCase
	createDepositUseCase *goal.CreateDepositUseCase
	deleteDepositUseCase *goal.DeleteDepositUseCase
}

// GoalUseCases groups the use cases behind the goal routes.
type GoalUseCases struct {
	List          *goal.ListGoalsUseCase
	Create        *goal.CreateGoalUseCase
	Get           *goal.GetGoalUseCase
	Update        *goal.UpdateGoalUseCase
	Delete        *goal.DeleteGoalUseCase
	Progress      *goal.GetGoalProgressUseCase
	ListDeposits  *goal.ListDepositsUseCase
	CreateDeposit *goal.CreateDepositUseCase
	DeleteDeposit *goal.DeleteDepositUseCase
}

// NewGoalController creates a new goal controller instance.
func NewGoalController(uc GoalUseCases) *GoalController {
	return &GoalController{
		listUseCase:          uc.List,
		createUseCase:        uc.Create,
		getUseCase:           uc.Get,
		updateUseCase:        uc.Update,
		deleteUseCase:        uc.Delete,
		progressUseCase:      uc.Progress,
		listDepositsUseCase:  uc.ListDeposits,
		createDepositUseCase: uc.CreateDeposit,
		deleteDepositUseCase: uc.DeleteDeposit,
	}
}

// List handles GET /goals requests.
func (c *GoalController) List(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	summaries, err := c.listUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK(dto.ToGoalListResponse(summaries)))
}

// Create handles POST /goals requests.
func (c *GoalController) Create(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	var req dto.GoalRequest
	if !bindJSON(ctx, &req) {
		return
	}
	deadline, ok := parseDate(ctx, "deadline", req.Deadline)
	if !ok {
		return
	}

	summary, err := c.createUseCase.Execute(ctx.Request.Context(), goal.CreateGoalInput{
		UserID:       userID,
		Title:        req.Title,
		TargetAmount: dto.AmountFromFloat(req.TargetAmount),
		Deadline:     deadline,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.OKWithMessage("Saving goal created successfully", dto.ToGoalResponse(summary)))
}

// Get handles GET /goals/:id requests.
func (c *GoalController) Get(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), userID, id)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK(dto.ToGoalDetailResponse(output)))
}

// Update handles PUT /goals/:id requests.
func (c *GoalController) Update(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req dto.GoalRequest
	if !bindJSON(ctx, &req) {
		return
	}
	deadline, ok := parseDate(ctx, "deadline", req.Deadline)
	if !ok {
		return
	}

	summary, err := c.updateUseCase.Execute(ctx.Request.Context(), goal.UpdateGoalInput{
		UserID:       userID,
		GoalID:       id,
		Title:        req.Title,
		TargetAmount: dto.AmountFromFloat(req.TargetAmount),
		Deadline:     deadline,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OKWithMessage("Saving goal updated successfully", dto.ToGoalResponse(summary)))
}

// Delete handles DELETE /goals/:id requests. Deposits are removed with the goal.
func (c *GoalController) Delete(ctx *gin.Context) {
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

	ctx.JSON(http.StatusOK, dto.OKWithMessage("Saving goal deleted successfully", nil))
}

// Progress handles GET /goals/:id/progress requests.
func (c *GoalController) Progress(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	summary, err := c.progressUseCase.Execute(ctx.Request.Context(), userID, id)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK(dto.ToGoalProgressResponse(summary)))
}

// ListDeposits handles GET /goals/:id/deposits requests.
func (c *GoalController) ListDeposits(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	goalID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	deposits, err := c.listDepositsUseCase.Execute(ctx.Request.Context(), userID, goalID)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK(dto.ToDepositListResponse(deposits)))
}

// CreateDeposit handles POST /goals/:id/deposits requests.
func (c *GoalController) CreateDeposit(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	goalID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req dto.DepositRequest
	if !bindJSON(ctx, &req) {
		return
	}
	date, ok := parseDate(ctx, "date", req.Date)
	if !ok {
		return
	}

	deposit, err := c.createDepositUseCase.Execute(ctx.Request.Context(), goal.CreateDepositInput{
		UserID: userID,
		GoalID: goalID,
		Amount: dto.AmountFromFloat(req.Amount),
		Date:   date,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.OKWithMessage("Deposit created successfully", dto.ToDepositResponse(deposit)))
}

// DeleteDeposit handles DELETE /goals/:id/deposits/:depositId requests.
func (c *GoalController) DeleteDeposit(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	goalID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	depositID, ok := pathID(ctx, "depositId")
	if !ok {
		return
	}

	if err := c.deleteDepositUseCase.Execute(ctx.Request.Context(), userID, goalID, depositID); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OKWithMessage("Deposit deleted successfully", nil))
}
