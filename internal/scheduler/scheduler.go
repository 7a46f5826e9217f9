// Package scheduler triggers briefing runs on a cron schedule.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jonesrussell/gobrief/internal/brief"
	"github.com/jonesrussell/gobrief/internal/domain"
	"github.com/jonesrussell/gobrief/internal/logger"
)

// Scheduler runs the briefing pipeline at the configured cron time.
type Scheduler struct {
	runner     *brief.Runner
	schedule   string
	logger     logger.Interface
	cron       *cron.Cron
	cronParser cron.Parser
	entryID    cron.EntryID
	started    bool
}

// New creates a scheduler for the given 5-field cron expression.
func New(runner *brief.Runner, schedule string, log logger.Interface) *Scheduler {
	// Standard 5-field format: minute hour day month weekday.
	cronParser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	c := cron.New(cron.WithParser(cronParser), cron.WithChain(cron.Recover(cron.DefaultLogger)))

	return &Scheduler{
		runner:     runner,
		schedule:   schedule,
		logger:     log.WithComponent("scheduler"),
		cron:       c,
		cronParser: cronParser,
	}
}

// Start validates the schedule, registers the briefing job, and
// starts the cron loop. It returns once the loop is running.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.started {
		return errors.New("scheduler already started")
	}

	parsed, err := s.cronParser.Parse(s.schedule)
	if err != nil {
		return fmt.Errorf("failed to parse cron expression %q: %w", s.schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.trigger(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.started = true

	nextRun := parsed.Next(time.Now())
	s.logger.Info("Scheduler started",
		"schedule", s.schedule,
		"next_run", nextRun.Format("2006-01-02 15:04:05"),
		"time_until_next", time.Until(nextRun).String(),
	)

	return nil
}

// trigger executes one scheduled briefing run. An already running
// run makes this trigger a no-op rather than a concurrent run.
func (s *Scheduler) trigger(ctx context.Context) {
	triggeredAt := time.Now()
	s.logger.Info("Cron triggered briefing run",
		"schedule", s.schedule,
		"triggered_at", triggeredAt.Format("2006-01-02 15:04:05"),
	)

	run, err := s.runner.Run(ctx, domain.TriggerSchedule)
	if err != nil {
		if errors.Is(err, brief.ErrRunActive) {
			s.logger.Warn("Skipping scheduled run, previous run still in progress")
			return
		}
		s.logger.Error("Scheduled briefing run failed", "error", err)
		return
	}

	s.logger.Info("Scheduled briefing run finished",
		"run_id", run.ID,
		"status", run.Status,
	)
}

// NextRun returns the time of the next scheduled run.
func (s *Scheduler) NextRun() time.Time {
	if !s.started {
		return time.Time{}
	}
	return s.cron.Entry(s.entryID).Next
}

// Stop halts the cron loop and waits for any in-flight run to finish,
// up to the context deadline.
func (s *Scheduler) Stop(ctx context.Context) error {
	if !s.started {
		return nil
	}
	s.logger.Info("Stopping scheduler")

	cronCtx := s.cron.Stop()
	select {
	case <-cronCtx.Done():
		s.logger.Info("Scheduler stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("timed out waiting for running job: %w", ctx.Err())
	}
}
