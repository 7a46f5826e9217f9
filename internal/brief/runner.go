// Package brief orchestrates the daily briefing pipeline: collect
// events, deduplicate against past deliveries, summarize, and deliver
// to every configured recipient.
package brief

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/jonesrussell/gobrief/internal/domain"
	"github.com/jonesrussell/gobrief/internal/logger"
	"github.com/jonesrussell/gobrief/internal/notify"
	"github.com/jonesrussell/gobrief/internal/scrape"
	"github.com/jonesrussell/gobrief/internal/summarize"
)

// ErrRunActive is returned when a run is requested while another run
// is still in flight. Runs never overlap.
var ErrRunActive = errors.New("a briefing run is already in progress")

// ErrNoEvents is returned when every source came back empty. A day
// with nothing to report is a failed run, not a silent success.
var ErrNoEvents = errors.New("no events collected from any source")

// Archiver stores completed briefings for later retrieval. Optional.
type Archiver interface {
	ArchiveBriefing(ctx context.Context, briefing *domain.Briefing) error
}

// Runner executes briefing runs end to end.
type Runner struct {
	collectors []scrape.Collector
	summarizer summarize.Interface
	notifier   notify.Interface
	store      Store
	archiver   Archiver
	recipients []string
	retention  time.Duration
	logger     logger.Interface
	active     atomic.Bool
}

// NewRunner creates a briefing runner. archiver may be nil. retention
// is how long delivered-event fingerprints are kept; zero disables
// pruning.
func NewRunner(
	collectors []scrape.Collector,
	summarizer summarize.Interface,
	notifier notify.Interface,
	store Store,
	archiver Archiver,
	recipients []string,
	retention time.Duration,
	log logger.Interface,
) *Runner {
	return &Runner{
		collectors: collectors,
		summarizer: summarizer,
		notifier:   notifier,
		store:      store,
		archiver:   archiver,
		recipients: recipients,
		retention:  retention,
		logger:     log.WithComponent("brief"),
	}
}

// Active reports whether a run is currently in flight.
func (r *Runner) Active() bool {
	return r.active.Load()
}

// Run executes a briefing run for today's date.
func (r *Runner) Run(ctx context.Context, trigger string) (*domain.Run, error) {
	return r.RunForDate(ctx, trigger, time.Now().UTC())
}

// RunForDate executes a briefing run for an explicit date.
func (r *Runner) RunForDate(ctx context.Context, trigger string, date time.Time) (*domain.Run, error) {
	if !r.active.CompareAndSwap(false, true) {
		return nil, ErrRunActive
	}
	defer r.active.Store(false)

	run := &domain.Run{
		ID:           uuid.New().String(),
		Status:       domain.RunStatusPending,
		Trigger:      trigger,
		BriefingDate: date,
	}
	if err := r.store.CreateRun(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}

	started := time.Now()
	run.Status = domain.RunStatusProcessing
	run.StartedAt = &started
	if err := r.store.UpdateRun(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to update run: %w", err)
	}

	r.logger.Info("Starting briefing run",
		"run_id", run.ID,
		"trigger", trigger,
		"date", date.Format("2006-01-02"),
	)

	briefing, err := r.execute(ctx, run, date)
	completed := time.Now()
	run.CompletedAt = &completed

	if err != nil {
		run.Status = domain.RunStatusFailed
		message := err.Error()
		run.ErrorMessage = &message
		if updateErr := r.store.UpdateRun(ctx, run); updateErr != nil {
			r.logger.Error("Failed to record run failure", "run_id", run.ID, "error", updateErr)
		}
		r.logger.Error("Briefing run failed", "run_id", run.ID, "error", err)
		return run, err
	}

	run.Status = domain.RunStatusCompleted
	if updateErr := r.store.UpdateRun(ctx, run); updateErr != nil {
		r.logger.Error("Failed to record run completion", "run_id", run.ID, "error", updateErr)
	}

	r.logger.Info("Briefing run completed",
		"run_id", run.ID,
		"events_found", run.EventsFound,
		"events_sent", run.EventsSent,
		"events_skipped", run.EventsSkipped,
		"deliveries", run.Deliveries,
		"failed_sends", run.FailedSends,
		"duration", time.Since(started),
	)

	if r.archiver != nil && briefing != nil {
		if archiveErr := r.archiver.ArchiveBriefing(ctx, briefing); archiveErr != nil {
			r.logger.Error("Failed to archive briefing", "run_id", run.ID, "error", archiveErr)
		}
	}

	r.pruneDelivered(ctx)

	return run, nil
}

// pruneDelivered drops fingerprints past the retention window so the
// dedup table does not grow without bound.
func (r *Runner) pruneDelivered(ctx context.Context) {
	if r.retention <= 0 {
		return
	}

	cutoff := time.Now().Add(-r.retention)
	pruned, err := r.store.PruneDeliveredBefore(ctx, cutoff)
	if err != nil {
		r.logger.Error("Failed to prune delivered events", "error", err)
		return
	}
	if pruned > 0 {
		r.logger.Info("Pruned delivered events", "count", pruned, "cutoff", cutoff.Format("2006-01-02"))
	}
}

// execute performs the collect, summarize, and deliver stages and
// keeps the run counters current as it goes.
func (r *Runner) execute(ctx context.Context, run *domain.Run, date time.Time) (*domain.Briefing, error) {
	events := r.collect(ctx, date)
	run.EventsFound = len(events)
	if len(events) == 0 {
		return nil, ErrNoEvents
	}

	fresh, err := r.dedup(ctx, run, events)
	if err != nil {
		return nil, err
	}
	if len(fresh) == 0 {
		return nil, fmt.Errorf("all %d collected events were already delivered", len(events))
	}

	briefing := &domain.Briefing{
		Date:        date,
		EventsFound: run.EventsFound,
	}

	// The header goes out before any summary so recipients see the
	// date ahead of the content.
	r.sendToAll(ctx, run, notify.FormatHeader(date))

	// The fact is fetched before the event loop but delivered last.
	fact, err := r.summarizer.InterestingFact(ctx)
	if err != nil {
		r.logger.Error("Failed to generate interesting fact", "run_id", run.ID, "error", err)
		fact = nil
	}

	for i := range fresh {
		event := &fresh[i]
		summary, sumErr := r.summarizer.SummarizeEvent(ctx, event)
		if sumErr != nil {
			// One bad event never fails the run.
			run.EventsSkipped++
			r.logger.Error("Failed to summarize event",
				"run_id", run.ID,
				"title", event.Title,
				"error", sumErr,
			)
			continue
		}

		if r.sendToAll(ctx, run, notify.FormatSummary(summary)) == 0 {
			// Nobody received the summary. Leave the event
			// unmarked so a later run can retry it.
			r.logger.Error("Summary reached no recipients",
				"run_id", run.ID,
				"title", event.Title,
			)
			continue
		}
		run.EventsSent++
		briefing.Summaries = append(briefing.Summaries, *summary)

		if markErr := r.store.MarkDelivered(ctx, event.Fingerprint(), event.Title, run.ID); markErr != nil {
			r.logger.Error("Failed to mark event delivered",
				"run_id", run.ID,
				"title", event.Title,
				"error", markErr,
			)
		}
	}

	if run.EventsSent == 0 {
		// Every summary failed or reached nobody. The briefing still
		// goes out with the header and fact rather than aborting.
		r.logger.Warn("Briefing carries no event summaries",
			"run_id", run.ID,
			"events_skipped", run.EventsSkipped,
			"failed_sends", run.FailedSends,
		)
	}

	if fact != nil {
		r.sendToAll(ctx, run, notify.FormatFact(fact))
		briefing.Fact = fact
	}

	briefing.EventsSkipped = run.EventsSkipped
	return briefing, nil
}

// collect gathers events from every configured source. A failing
// source is logged and skipped so the others still contribute.
func (r *Runner) collect(ctx context.Context, date time.Time) []domain.Event {
	var events []domain.Event
	for _, collector := range r.collectors {
		collected, err := collector.Collect(ctx, date)
		if err != nil {
			r.logger.Error("Source collection failed",
				"source", collector.Name(),
				"error", err,
			)
			continue
		}
		r.logger.Info("Collected events",
			"source", collector.Name(),
			"count", len(collected),
		)
		events = append(events, collected...)
	}
	return events
}

// dedup drops events whose fingerprint has been delivered before,
// counting them as skipped. Fingerprints repeated within the same
// batch are also collapsed.
func (r *Runner) dedup(ctx context.Context, run *domain.Run, events []domain.Event) ([]domain.Event, error) {
	fresh := make([]domain.Event, 0, len(events))
	seen := make(map[string]struct{}, len(events))
	for i := range events {
		fingerprint := events[i].Fingerprint()
		if _, ok := seen[fingerprint]; ok {
			run.EventsSkipped++
			continue
		}
		seen[fingerprint] = struct{}{}

		delivered, err := r.store.WasDelivered(ctx, fingerprint)
		if err != nil {
			return nil, fmt.Errorf("failed to check delivered events: %w", err)
		}
		if delivered {
			run.EventsSkipped++
			r.logger.Debug("Skipping already delivered event", "title", events[i].Title)
			continue
		}
		fresh = append(fresh, events[i])
	}
	return fresh, nil
}

// sendToAll delivers one message body to every recipient and returns
// how many sends succeeded. A failure for one recipient never blocks
// the others.
func (r *Runner) sendToAll(ctx context.Context, run *domain.Run, body string) int {
	delivered := 0
	for _, recipient := range r.recipients {
		masked := notify.MaskNumber(recipient)

		sid, err := r.notifier.Send(recipient, body)
		if err != nil {
			run.FailedSends++
			r.logger.Error("Failed to send message",
				"run_id", run.ID,
				"recipient", masked,
				"error", err,
			)
			continue
		}
		run.Deliveries++
		delivered++

		status, statusErr := r.notifier.CheckStatus(sid)
		if statusErr != nil {
			r.logger.Warn("Failed to check message status",
				"run_id", run.ID,
				"message_sid", sid,
				"error", statusErr,
			)
			status = "unknown"
		}

		delivery := &domain.Delivery{
			ID:         uuid.New().String(),
			RunID:      run.ID,
			Recipient:  masked,
			MessageSID: sid,
			Status:     status,
		}
		if recordErr := r.store.RecordDelivery(ctx, delivery); recordErr != nil {
			r.logger.Error("Failed to record delivery",
				"run_id", run.ID,
				"message_sid", sid,
				"error", recordErr,
			)
		}
	}
	return delivered
}

// Preview runs the collect and summarize stages without delivering or
// recording anything. When skipSummarize is set the events are
// returned as one-line summaries without calling the language model.
func (r *Runner) Preview(ctx context.Context, date time.Time, skipSummarize bool) (*domain.Briefing, error) {
	events := r.collect(ctx, date)
	if len(events) == 0 {
		return nil, ErrNoEvents
	}

	briefing := &domain.Briefing{
		Date:        date,
		EventsFound: len(events),
	}

	for i := range events {
		event := &events[i]
		if skipSummarize {
			briefing.Summaries = append(briefing.Summaries, domain.Summary{
				Title:       event.Title,
				SectionText: event.Text,
			})
			continue
		}

		summary, err := r.summarizer.SummarizeEvent(ctx, event)
		if err != nil {
			briefing.EventsSkipped++
			r.logger.Error("Failed to summarize event", "title", event.Title, "error", err)
			continue
		}
		briefing.Summaries = append(briefing.Summaries, *summary)
	}

	if !skipSummarize {
		fact, err := r.summarizer.InterestingFact(ctx)
		if err != nil {
			r.logger.Error("Failed to generate interesting fact", "error", err)
		} else {
			briefing.Fact = fact
		}
	}

	return briefing, nil
}
