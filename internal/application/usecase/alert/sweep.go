package alert

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/application/alerting"
	"github.com/budget-tracker/backend/internal/domain/entity"
)

// Sweep names, also used as metric labels.
const (
	SweepDebts = "debts"
	SweepGoals = "goals"
)

const defaultSweepConcurrency = 4

// SweepOutput counts the entities a sweep visited and how many failed.
type SweepOutput struct {
	Checked int
	Failed  int
}

// SweepRecorder receives per-entity failures. It may be nil.
type SweepRecorder interface {
	SweepEntityFailed(sweep string)
}

// DebtChecker evaluates every overdue debt of one user.
type DebtChecker interface {
	CheckUserDebts(ctx context.Context, userID uuid.UUID) (int, error)
}

// GoalChecker evaluates a single goal.
type GoalChecker interface {
	Today() time.Time
	CheckGoal(ctx context.Context, goal *entity.SavingGoal) (alerting.Outcome, error)
}

// SweepDebtsUseCase runs the debt rule over every user.
type SweepDebtsUseCase struct {
	userRepo    adapter.UserRepository
	checker     DebtChecker
	recorder    SweepRecorder
	concurrency int
}

// NewSweepDebtsUseCase creates a new SweepDebtsUseCase instance.
func NewSweepDebtsUseCase(userRepo adapter.UserRepository, checker DebtChecker, recorder SweepRecorder, concurrency int) *SweepDebtsUseCase {
	if concurrency <= 0 {
		concurrency = defaultSweepConcurrency
	}
	return &SweepDebtsUseCase{
		userRepo:    userRepo,
		checker:     checker,
		recorder:    recorder,
		concurrency: concurrency,
	}
}

// Execute checks each user independently. A failing user is logged and counted.
func (uc *SweepDebtsUseCase) Execute(ctx context.Context) (*SweepOutput, error) {
	userIDs, err := uc.userRepo.ListIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	var failed atomic.Int64
	var g errgroup.Group
	g.SetLimit(uc.concurrency)

	for _, userID := range userIDs {
		g.Go(func() error {
			if _, err := uc.checker.CheckUserDebts(ctx, userID); err != nil {
				failed.Add(1)
				recordFailure(uc.recorder, SweepDebts)
				slog.Error("Debt sweep failed for user", "user_id", userID, "error", err)
			}
			return nil
		})
	}
	_ = g.Wait()

	out := &SweepOutput{Checked: len(userIDs), Failed: int(failed.Load())}
	slog.Info("Debt sweep complete", "checked", out.Checked, "failed", out.Failed)
	return out, nil
}

// SweepGoalsUseCase runs the goal rule over every active goal.
type SweepGoalsUseCase struct {
	goalRepo    adapter.SavingGoalRepository
	checker     GoalChecker
	recorder    SweepRecorder
	concurrency int
}

// NewSweepGoalsUseCase creates a new SweepGoalsUseCase instance.
func NewSweepGoalsUseCase(goalRepo adapter.SavingGoalRepository, checker GoalChecker, recorder SweepRecorder, concurrency int) *SweepGoalsUseCase {
	if concurrency <= 0 {
		concurrency = defaultSweepConcurrency
	}
	return &SweepGoalsUseCase{
		goalRepo:    goalRepo,
		checker:     checker,
		recorder:    recorder,
		concurrency: concurrency,
	}
}

// Execute checks each goal with deadline today or later. A failing goal is logged and counted.
func (uc *SweepGoalsUseCase) Execute(ctx context.Context) (*SweepOutput, error) {
	goals, err := uc.goalRepo.FindActive(ctx, uc.checker.Today())
	if err != nil {
		return nil, fmt.Errorf("failed to list active goals: %w", err)
	}

	var failed atomic.Int64
	var g errgroup.Group
	g.SetLimit(uc.concurrency)

	for _, goal := range goals {
		g.Go(func() error {
			if _, err := uc.checker.CheckGoal(ctx, goal); err != nil {
				failed.Add(1)
				recordFailure(uc.recorder, SweepGoals)
				slog.Error("Goal sweep failed for goal",
					"goal_id", goal.ID,
					"user_id", goal.UserID,
					"error", err,
				)
			}
			return nil
		})
	}
	_ = g.Wait()

	out := &SweepOutput{Checked: len(goals), Failed: int(failed.Load())}
	slog.Info("Goal sweep complete", "checked", out.Checked, "failed", out.Failed)
	return out, nil
}

func recordFailure(recorder SweepRecorder, sweep string) {
	if recorder != nil {
		recorder.SweepEntityFailed(sweep)
	}
}
