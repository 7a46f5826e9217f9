// Package run implements the one-shot briefing command.
package run

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/gobrief/cmd/common"
	"github.com/jonesrussell/gobrief/internal/domain"
)

// Command returns the run command, which executes a single briefing
// run and exits.
func Command() *cobra.Command {
	var dateStr string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute one briefing run and exit",
		Long: `Scrape current events, summarize them, and deliver the briefing to
all configured recipients. Exits non-zero when the run fails.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}

			date := time.Now().UTC()
			if dateStr != "" {
				date, err = time.Parse("2006-01-02", dateStr)
				if err != nil {
					return fmt.Errorf("invalid --date %q: %w", dateStr, err)
				}
			}

			result, err := common.NewRunner(cmd.Context(), deps)
			if err != nil {
				return err
			}
			defer result.Cleanup()

			briefingRun, err := result.Runner.RunForDate(cmd.Context(), domain.TriggerManual, date)
			if err != nil {
				return fmt.Errorf("briefing run failed: %w", err)
			}

			deps.Logger.Info("Run finished",
				"run_id", briefingRun.ID,
				"status", briefingRun.Status,
				"events_sent", briefingRun.EventsSent,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", "", "briefing date (YYYY-MM-DD, default today)")

	return cmd
}
