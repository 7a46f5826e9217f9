package scrape

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/jonesrussell/gobrief/internal/domain"
	"github.com/jonesrussell/gobrief/internal/logger"
)

// DefaultRSSMaxItems caps how many items an rss source contributes
// when the source config does not say otherwise.
const DefaultRSSMaxItems = 10

// RSSConfig configures an rss feed collector.
type RSSConfig struct {
	// Name identifies the collector.
	Name string
	// URL is the feed URL.
	URL string
	// MaxItems caps the number of items taken from the feed.
	MaxItems int
}

// RSSCollector collects events from an RSS or Atom feed.
type RSSCollector struct {
	cfg    RSSConfig
	parser *gofeed.Parser
	logger logger.Interface
}

// NewRSSCollector creates a collector for the given feed.
func NewRSSCollector(cfg RSSConfig, log logger.Interface) *RSSCollector {
	if cfg.MaxItems <= 0 {
		cfg.MaxItems = DefaultRSSMaxItems
	}
	return &RSSCollector{
		cfg:    cfg,
		parser: gofeed.NewParser(),
		logger: log.WithComponent("scrape.rss"),
	}
}

// Name identifies the collector.
func (r *RSSCollector) Name() string {
	return r.cfg.Name
}

// Collect fetches the feed and converts its items to events.
func (r *RSSCollector) Collect(ctx context.Context, date time.Time) ([]domain.Event, error) {
	feed, err := r.parser.ParseURLWithContext(r.cfg.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", r.cfg.URL, err)
	}

	events := make([]domain.Event, 0, r.cfg.MaxItems)
	for _, item := range feed.Items {
		if len(events) >= r.cfg.MaxItems {
			break
		}

		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}

		text := strings.TrimSpace(item.Description)
		if text == "" {
			text = title
		}

		events = append(events, domain.Event{
			Title:  title,
			Text:   text,
			URL:    item.Link,
			Source: r.cfg.Name,
			Date:   date,
		})
	}

	r.logger.Info("Collected feed items",
		"feed", r.cfg.URL,
		"items", len(feed.Items),
		"events", len(events))

	return events, nil
}
