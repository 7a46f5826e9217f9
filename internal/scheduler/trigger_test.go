package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/jonesrussell/gobrief/internal/brief"
	"github.com/jonesrussell/gobrief/internal/domain"
	"github.com/jonesrussell/gobrief/internal/logger"
	"github.com/jonesrussell/gobrief/internal/scrape"
)

type stubCollector struct{}

func (stubCollector) Name() string { return "stub" }

func (stubCollector) Collect(context.Context, time.Time) ([]domain.Event, error) {
	return []domain.Event{{Title: "Event A", Text: "Text A", Source: "stub"}}, nil
}

// blockingSummarizer holds a run in flight until released.
type blockingSummarizer struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingSummarizer) SummarizeEvent(_ context.Context, event *domain.Event) (*domain.Summary, error) {
	select {
	case b.started <- struct{}{}:
	default:
	}
	<-b.release
	return &domain.Summary{Title: event.Title, SectionText: "- ok"}, nil
}

func (b *blockingSummarizer) InterestingFact(context.Context) (*domain.Fact, error) {
	return &domain.Fact{Text: "a fact"}, nil
}

type stubNotifier struct{}

func (stubNotifier) Send(string, string) (string, error) { return "SM001", nil }

func (stubNotifier) CheckStatus(string) (string, error) { return "queued", nil }

func TestTrigger_SkipsWhileRunActive(t *testing.T) {
	t.Parallel()

	store := brief.NewMemoryStore()
	summarizer := &blockingSummarizer{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}

	runner := brief.NewRunner(
		[]scrape.Collector{stubCollector{}},
		summarizer,
		stubNotifier{},
		store,
		nil,
		[]string{"+15551111111"},
		0,
		logger.NewNoop(),
	)

	done := make(chan error, 1)
	go func() {
		_, err := runner.RunForDate(context.Background(), domain.TriggerManual, time.Now().UTC())
		done <- err
	}()
	<-summarizer.started

	// The cron firing while a run is in flight must not start a
	// second run.
	s := New(runner, "0 20 * * *", logger.NewNoop())
	s.trigger(context.Background())

	count, err := store.CountRuns(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected only the in-flight run recorded, got %d", count)
	}

	close(summarizer.release)
	if err := <-done; err != nil {
		t.Fatalf("in-flight run failed: %v", err)
	}
}
