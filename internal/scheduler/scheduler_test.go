package scheduler_test

import (
	"context"
	"testing"
	"time"

	"github.com/jonesrussell/gobrief/internal/brief"
	"github.com/jonesrussell/gobrief/internal/logger"
	"github.com/jonesrussell/gobrief/internal/scheduler"
)

// newIdleRunner builds a runner that the cron loop will never get a
// chance to trigger during the test.
func newIdleRunner() *brief.Runner {
	return brief.NewRunner(nil, nil, nil, brief.NewMemoryStore(), nil, nil, 0, logger.NewNoop())
}

func TestStart_InvalidExpression(t *testing.T) {
	t.Parallel()

	s := scheduler.New(newIdleRunner(), "not a cron expression", logger.NewNoop())
	if err := s.Start(context.Background()); err == nil {
		t.Fatal("expected error for invalid cron expression")
	}
}

func TestStart_SixFieldExpressionRejected(t *testing.T) {
	t.Parallel()

	// Only the standard 5-field format is accepted.
	s := scheduler.New(newIdleRunner(), "0 0 20 * * *", logger.NewNoop())
	if err := s.Start(context.Background()); err == nil {
		t.Fatal("expected error for 6-field cron expression")
	}
}

func TestStartAndStop(t *testing.T) {
	t.Parallel()

	s := scheduler.New(newIdleRunner(), "0 20 * * *", logger.NewNoop())

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	next := s.NextRun()
	if next.IsZero() {
		t.Error("expected a next run time after start")
	}
	if !next.After(time.Now()) {
		t.Errorf("expected next run in the future, got %v", next)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Stop(ctx); err != nil {
		t.Fatalf("unexpected error stopping: %v", err)
	}
}

func TestStart_Twice(t *testing.T) {
	t.Parallel()

	s := scheduler.New(newIdleRunner(), "0 20 * * *", logger.NewNoop())

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Start(context.Background()); err == nil {
		t.Fatal("expected error starting twice")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = s.Stop(ctx)
}

func TestStop_BeforeStart(t *testing.T) {
	t.Parallel()

	s := scheduler.New(newIdleRunner(), "0 20 * * *", logger.NewNoop())
	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("expected stop before start to be a no-op, got %v", err)
	}
}
