package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Scheduler periodically publishes snapshots of active tournaments.
type Scheduler struct {
	sched     gocron.Scheduler
	snapshots SnapshotService
	timeout   time.Duration
	logger    *slog.Logger
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewScheduler registers the snapshot job to run every interval. A run that is still in
// progress when the next one is due makes the next one wait for the following tick.
func NewScheduler(snapshots SnapshotService, interval time.Duration, logger *slog.Logger) (*Scheduler, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("%w: snapshot interval must be positive, got %s", ErrValidationFailed, interval)
	}

	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		sched:     sched,
		snapshots: snapshots,
		timeout:   interval,
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
	}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(s.run),
		gocron.WithName("publish-active-snapshots"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to register snapshot job: %w", err)
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.logger.Info("snapshot scheduler started", slog.Duration("interval", s.timeout))
	s.sched.Start()
}

// Stop cancels a run in progress and waits for the scheduler to shut down.
func (s *Scheduler) Stop() error {
	s.cancel()
	return s.sched.Shutdown()
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	published, err := s.snapshots.PublishActive(ctx)
	if err != nil {
		s.logger.Error("scheduled snapshot run failed", slog.Int("published", published), slog.Any("error", err))
		return
	}
	s.logger.Info("scheduled snapshot run finished", slog.Int("published", published))
}
