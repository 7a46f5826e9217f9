// Package scrape collects news events from configured sources.
package scrape

import (
	"context"
	"fmt"
	"time"

	"github.com/jonesrussell/gobrief/internal/config"
	"github.com/jonesrussell/gobrief/internal/domain"
	"github.com/jonesrussell/gobrief/internal/logger"
)

// Collector gathers the events for one source on a given date.
type Collector interface {
	// Name identifies the collector in logs and event records.
	Name() string
	// Collect returns the events for the given briefing date.
	Collect(ctx context.Context, date time.Time) ([]domain.Event, error)
}

// NewCollectors builds the collectors for the configured sources.
func NewCollectors(cfg *config.BriefingConfig, log logger.Interface) ([]Collector, error) {
	collectors := make([]Collector, 0, len(cfg.Sources))

	for i := range cfg.Sources {
		src := &cfg.Sources[i]
		switch src.Type {
		case config.SourceTypeWikipedia:
			collectors = append(collectors, NewWikipediaCollector(WikipediaConfig{
				Name:      src.Name,
				BaseURL:   cfg.PortalBaseURL,
				UserAgent: cfg.UserAgent,
				Timeout:   cfg.RequestTimeout,
			}, log))
		case config.SourceTypeRSS:
			collectors = append(collectors, NewRSSCollector(RSSConfig{
				Name:     src.Name,
				URL:      src.URL,
				MaxItems: src.MaxItems,
			}, log))
		default:
			return nil, fmt.Errorf("unknown source type %q for source %q", src.Type, src.Name)
		}
	}

	return collectors, nil
}
