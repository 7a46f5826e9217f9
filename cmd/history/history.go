// Package history implements the command that lists past briefing
// runs in a formatted table.
package history

import (
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/gobrief/cmd/common"
	"github.com/jonesrussell/gobrief/internal/domain"
)

const defaultLimit = 20

// Command returns the history command.
func Command() *cobra.Command {
	var (
		status string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past briefing runs",
		Long:  `List past briefing runs recorded in the database, newest first.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}

			if !deps.Config.Database.Enabled {
				return fmt.Errorf("run history requires the database (set database.enabled)")
			}

			store, cleanup, err := common.NewStore(cmd.Context(), deps)
			if err != nil {
				return err
			}
			defer cleanup()

			runs, err := store.ListRuns(cmd.Context(), status, limit, 0)
			if err != nil {
				return fmt.Errorf("failed to list runs: %w", err)
			}

			if len(runs) == 0 {
				deps.Logger.Info("No runs recorded")
				return nil
			}

			renderRuns(runs)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by run status")
	cmd.Flags().IntVar(&limit, "limit", defaultLimit, "maximum number of runs to list")

	return cmd
}

// renderRuns formats and displays the runs in a table.
func renderRuns(runs []*domain.Run) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"ID", "Date", "Trigger", "Status", "Found", "Sent", "Skipped", "Deliveries", "Failed", "Duration"})

	for _, run := range runs {
		t.AppendRow(table.Row{
			run.ID,
			run.BriefingDate.Format("2006-01-02"),
			run.Trigger,
			run.Status,
			run.EventsFound,
			run.EventsSent,
			run.EventsSkipped,
			run.Deliveries,
			run.FailedSends,
			runDuration(run),
		})
	}

	t.Render()
}

// runDuration formats the wall time a run took, when known.
func runDuration(run *domain.Run) string {
	if run.StartedAt == nil || run.CompletedAt == nil {
		return "-"
	}
	return run.CompletedAt.Sub(*run.StartedAt).Round(time.Millisecond).String()
}
