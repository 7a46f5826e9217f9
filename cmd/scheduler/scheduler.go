// Package scheduler implements the long-running daemon command that
// triggers briefing runs on the configured cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/gobrief/cmd/common"
	"github.com/jonesrussell/gobrief/internal/scheduler"
)

const defaultShutdownTimeout = 30 * time.Second

// Command returns the scheduler command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "scheduler",
		Short: "Start the briefing scheduler",
		Long: `Start the scheduler to deliver the briefing at the configured cron
time. The scheduler runs continuously until interrupted with Ctrl+C.`,
		RunE: runScheduler,
	}
}

// runScheduler executes the scheduler command.
func runScheduler(cmd *cobra.Command, _ []string) error {
	deps, err := common.NewCommandDeps()
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := common.NewRunner(ctx, deps)
	if err != nil {
		return err
	}
	defer result.Cleanup()

	sched := scheduler.New(result.Runner, deps.Config.Briefing.Schedule, deps.Logger)
	if startErr := sched.Start(ctx); startErr != nil {
		return fmt.Errorf("failed to start scheduler: %w", startErr)
	}

	deps.Logger.Info("Waiting for interrupt signal")
	<-ctx.Done()
	deps.Logger.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()

	if stopErr := sched.Stop(shutdownCtx); stopErr != nil {
		return fmt.Errorf("failed to stop scheduler: %w", stopErr)
	}

	deps.Logger.Info("Scheduler stopped successfully")
	return nil
}
