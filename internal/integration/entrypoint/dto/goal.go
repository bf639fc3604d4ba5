package dto

import (
	"time"

	"github.com/budget-tracker/backend/internal/application/usecase/goal"
	"github.com/budget-tracker/backend/internal/domain/entity"
)

// GoalRequest is the body of goal create and update.
type GoalRequest struct {
	Title        string  `json:"title" binding:"required,max=150"`
	TargetAmount float64 `json:"target_amount" binding:"required,gte=0.01"`
	Deadline     string  `json:"deadline" binding:"required,datetime=2006-01-02"`
}

// DepositRequest is the body of POST /goals/:id/deposits.
type DepositRequest struct {
	Amount float64 `json:"amount" binding:"required,gte=0.01"`
	Date   string  `json:"date" binding:"required,datetime=2006-01-02"`
}

// GoalResponse represents a goal with its derived saving figures.
type GoalResponse struct {
	ID                 string            `json:"id"`
	Title              string            `json:"title"`
	TargetAmount       string            `json:"target_amount"`
	Deadline           string            `json:"deadline"`
	TotalSaved         string            `json:"total_saved"`
	ProgressPercentage float64           `json:"progress_percentage"`
	DaysRemaining      int               `json:"days_remaining"`
	IsOverdue          bool              `json:"is_overdue"`
	Deposits           []DepositResponse `json:"deposits,omitempty"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

// GoalProgressResponse is the body of GET /goals/:id/progress.
type GoalProgressResponse struct {
	Goal               GoalResponse `json:"goal"`
	TotalSaved         string       `json:"total_saved"`
	ProgressPercentage float64      `json:"progress_percentage"`
	DaysRemaining      int          `json:"days_remaining"`
	IsOverdue          bool         `json:"is_overdue"`
}

// DepositResponse represents a deposit in API responses.
type DepositResponse struct {
	ID        string    `json:"id"`
	GoalID    string    `json:"goal_id"`
	Amount    string    `json:"amount"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

// ToGoalResponse converts a goal summary.
func ToGoalResponse(s *goal.Summary) GoalResponse {
	return GoalResponse{
		ID:                 s.Goal.ID.String(),
		Title:              s.Goal.Title,
		TargetAmount:       Money(s.Goal.TargetAmount),
		Deadline:           Date(s.Goal.Deadline),
		TotalSaved:         Money(s.TotalSaved),
		ProgressPercentage: s.ProgressPercentage.InexactFloat64(),
		DaysRemaining:      s.DaysRemaining,
		IsOverdue:          s.IsOverdue,
		CreatedAt:          s.Goal.CreatedAt,
		UpdatedAt:          s.Goal.UpdatedAt,
	}
}

// ToGoalDetailResponse converts a goal with its deposits.
func ToGoalDetailResponse(out *goal.GetGoalOutput) GoalResponse {
	resp := ToGoalResponse(out.Summary)
	resp.Deposits = ToDepositListResponse(out.Deposits)
	return resp
}

// ToGoalListResponse converts a list of goal summaries.
func ToGoalListResponse(summaries []*goal.Summary) []GoalResponse {
	out := make([]GoalResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, ToGoalResponse(s))
	}
	return out
}

// ToGoalProgressResponse converts a goal summary to the progress view.
func ToGoalProgressResponse(s *goal.Summary) GoalProgressResponse {
	return GoalProgressResponse{
		Goal:               ToGoalResponse(s),
		TotalSaved:         Money(s.TotalSaved),
		ProgressPercentage: s.ProgressPercentage.InexactFloat64(),
		DaysRemaining:      s.DaysRemaining,
		IsOverdue:          s.IsOverdue,
	}
}

// ToDepositResponse converts a domain SavingDeposit entity.
func ToDepositResponse(d *entity.SavingDeposit) DepositResponse {
	return DepositResponse{
		ID:        d.ID.String(),
		GoalID:    d.GoalID.String(),
		Amount:    Money(d.Amount),
		Date:      Date(d.Date),
		CreatedAt: d.CreatedAt,
	}
}

// ToDepositListResponse converts a list of deposits.
func ToDepositListResponse(deposits []*entity.SavingDeposit) []DepositResponse {
	out := make([]DepositResponse, 0, len(deposits))
	for _, d := range deposits {
		out = append(out, ToDepositResponse(d))
	}
	return out
}
