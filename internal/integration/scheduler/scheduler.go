// Package scheduler runs the periodic alert sweeps on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/budget-tracker/backend/internal/application/usecase/alert"
)

// Sweep is a periodic job such as the debt or goal sweep.
type Sweep interface {
	Execute(ctx context.Context) (*alert.SweepOutput, error)
}

// RunRecorder counts finished runs. It may be nil.
type RunRecorder interface {
	SweepRun(sweep, outcome string)
}

// Run outcomes passed to RunRecorder.
const (
	outcomeSuccess = "success"
	outcomeError   = "error"
)

type job struct {
	name  string
	spec  string
	sweep Sweep
}

// Scheduler owns a cron instance whose schedules are evaluated in a fixed timezone.
type Scheduler struct {
	cron     *cron.Cron
	recorder RunRecorder
	jobs     map[string]*job

	mu      sync.Mutex
	running bool
	baseCtx context.Context
}

// New creates a Scheduler evaluating standard five-field specs in loc.
// Overlapping runs of the same sweep are skipped.
func New(loc *time.Location, recorder RunRecorder) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	logger := slogCronLogger{}
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		recorder: recorder,
		jobs:     make(map[string]*job),
		baseCtx:  context.Background(),
	}
}

// Register adds a sweep under name. It fails on an invalid spec or a duplicate name.
func (s *Scheduler) Register(name, spec string, sweep Sweep) error {
	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("sweep %q already registered", name)
	}
	j := &job{name: name, spec: spec, sweep: sweep}
	if _, err := s.cron.AddFunc(spec, func() { s.run(s.context(), j) }); err != nil {
		return fmt.Errorf("invalid schedule %q for sweep %q: %w", spec, name, err)
	}
	s.jobs[name] = j
	return nil
}

// Start runs the schedule until ctx is cancelled, then waits for running sweeps.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.baseCtx = ctx
	s.mu.Unlock()

	for _, j := range s.jobs {
		slog.Info("Sweep scheduled", "sweep", j.name, "spec", j.spec)
	}
	s.cron.Start()

	<-ctx.Done()
	slog.Info("Stopping scheduler")
	<-s.cron.Stop().Done()

	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
	slog.Info("Scheduler stopped")
}

// RunNow executes a registered sweep synchronously.
func (s *Scheduler) RunNow(ctx context.Context, name string) (*alert.SweepOutput, error) {
	j, ok := s.jobs[name]
	if !ok {
		return nil, fmt.Errorf("unknown sweep %q", name)
	}
	return s.run(ctx, j)
}

func (s *Scheduler) run(ctx context.Context, j *job) (*alert.SweepOutput, error) {
	start := time.Now()
	out, err := j.sweep.Execute(ctx)
	if err != nil {
		s.record(j.name, outcomeError)
		slog.Error("Sweep failed", "sweep", j.name, "error", err)
		return nil, err
	}

	s.record(j.name, outcomeSuccess)
	slog.Info("Sweep finished",
		"sweep", j.name,
		"checked", out.Checked,
		"failed", out.Failed,
		"duration", time.Since(start),
	)
	return out, nil
}

func (s *Scheduler) record(name, outcome string) {
	if s.recorder != nil {
		s.recorder.SweepRun(name, outcome)
	}
}

func (s *Scheduler) context() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.baseCtx
}

// slogCronLogger routes cron's internal logging through slog.
type slogCronLogger struct{}

func (slogCronLogger) Info(msg string, keysAndValues ...any) {
	slog.Debug("cron: "+msg, keysAndValues...)
}

func (slogCronLogger) Error(err error, msg string, keysAndValues ...any) {
	slog.Error("cron: "+msg, append([]any{"error", err}, keysAndValues...)...)
}
