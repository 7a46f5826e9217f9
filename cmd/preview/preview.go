// Package preview implements the dry-run briefing command.
package preview

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/gobrief/cmd/common"
	"github.com/jonesrussell/gobrief/internal/brief"
	"github.com/jonesrussell/gobrief/internal/notify"
	"github.com/jonesrussell/gobrief/internal/scrape"
	"github.com/jonesrussell/gobrief/internal/summarize"
)

// Command returns the preview command, which prints the briefing to
// stdout without delivering or recording anything.
func Command() *cobra.Command {
	var (
		dateStr       string
		skipSummarize bool
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print today's briefing without delivering it",
		Long: `Scrape current events and print the briefing to stdout. Nothing is
sent and nothing is recorded. With --skip-summarize the raw event
text is printed instead of calling the language model.`,
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

			if !skipSummarize {
				if validateErr := deps.Config.ValidateSummarization(); validateErr != nil {
					return validateErr
				}
			}

			collectors, err := scrape.NewCollectors(&deps.Config.Briefing, deps.Logger)
			if err != nil {
				return fmt.Errorf("failed to create collectors: %w", err)
			}

			// No notifier, no archive: preview never delivers.
			runner := brief.NewRunner(
				collectors,
				summarize.NewClient(deps.Config.Groq, deps.Logger),
				nil,
				brief.NewMemoryStore(),
				nil,
				nil,
				0,
				deps.Logger,
			)

			briefing, err := runner.Preview(cmd.Context(), date, skipSummarize)
			if err != nil {
				return fmt.Errorf("preview failed: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, notify.FormatHeader(briefing.Date))
			for i := range briefing.Summaries {
				fmt.Fprintln(out, notify.FormatSummary(&briefing.Summaries[i]))
			}
			if briefing.Fact != nil {
				fmt.Fprintln(out, notify.FormatFact(briefing.Fact))
			}
			if briefing.EventsSkipped > 0 {
				fmt.Fprintf(os.Stderr, "%d events skipped\n", briefing.EventsSkipped)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", "", "briefing date (YYYY-MM-DD, default today)")
	cmd.Flags().BoolVar(&skipSummarize, "skip-summarize", false, "print raw event text instead of summaries")

	return cmd
}
