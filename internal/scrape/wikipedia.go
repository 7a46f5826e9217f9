package scrape

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"github.com/jonesrussell/gobrief/internal/domain"
	"github.com/jonesrussell/gobrief/internal/logger"
)

// contentSelector matches the container Wikipedia renders the day's
// events into. Only first-level list items inside it are events.
const contentSelector = "div.current-events-content.description"

// WikipediaConfig configures the current-events portal collector.
type WikipediaConfig struct {
	// Name identifies the collector. Defaults to "wikipedia".
	Name string
	// BaseURL is the portal prefix without the date suffix.
	BaseURL string
	// UserAgent is sent with each request.
	UserAgent string
	// Timeout bounds the portal request.
	Timeout time.Duration
}

// WikipediaCollector scrapes the daily current-events portal page.
type WikipediaCollector struct {
	cfg    WikipediaConfig
	logger logger.Interface
}

// NewWikipediaCollector creates a collector for the current-events portal.
func NewWikipediaCollector(cfg WikipediaConfig, log logger.Interface) *WikipediaCollector {
	if cfg.Name == "" {
		cfg.Name = "wikipedia"
	}
	return &WikipediaCollector{
		cfg:    cfg,
		logger: log.WithComponent("scrape.wikipedia"),
	}
}

// Name identifies the collector.
func (w *WikipediaCollector) Name() string {
	return w.cfg.Name
}

// PortalURL returns the portal page URL for the given date. The date
// segment is "<year> <month name> <zero-padded day>" with spaces
// replaced by underscores.
func PortalURL(baseURL string, date time.Time) string {
	segment := strings.ReplaceAll(date.Format("2006 January 02"), " ", "_")
	return baseURL + "/" + segment
}

// Collect fetches and parses the portal page for the given date.
// A page without the events container yields zero events, not an error.
func (w *WikipediaCollector) Collect(ctx context.Context, date time.Time) ([]domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pageURL := PortalURL(w.cfg.BaseURL, date)
	w.logger.Info("Fetching current events portal", "url", pageURL)

	c := colly.NewCollector(colly.UserAgent(w.cfg.UserAgent))
	if w.cfg.Timeout > 0 {
		c.SetRequestTimeout(w.cfg.Timeout)
	}

	var (
		events   []domain.Event
		byTitle  = make(map[string]int)
		fetchErr error
	)

	c.OnHTML(contentSelector, func(e *colly.HTMLElement) {
		// First-level <ul> / <li> only: nested lists are detail lines
		// that already appear in the parent item's text.
		e.DOM.ChildrenFiltered("ul").Each(func(_ int, ul *goquery.Selection) {
			ul.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
				event := w.eventFromItem(li, e.Request.URL, date)
				if event.Title == "" {
					return
				}

				// Repeated titles collapse onto one event, last text wins.
				if idx, seen := byTitle[event.Title]; seen {
					events[idx].Text = event.Text
					return
				}

				byTitle[event.Title] = len(events)
				events = append(events, event)
			})
		})
	})

	c.OnError(func(r *colly.Response, err error) {
		fetchErr = fmt.Errorf("fetch %s: %w", pageURL, err)
	})

	if err := c.Visit(pageURL); err != nil {
		return nil, fmt.Errorf("visit %s: %w", pageURL, err)
	}
	c.Wait()

	if fetchErr != nil {
		return nil, fetchErr
	}

	w.logger.Info("Finished processing portal page",
		"date", date.Format("2006-01-02"),
		"events", len(events))

	return events, nil
}

// eventFromItem extracts one event from a first-level list item. The
// title comes from the first link when present, otherwise the full
// item text.
func (w *WikipediaCollector) eventFromItem(li *goquery.Selection, pageURL *url.URL, date time.Time) domain.Event {
	title := strings.TrimSpace(li.Find("a").First().Text())
	if title == "" {
		title = strings.TrimSpace(li.Text())
	}

	event := domain.Event{
		Title:  title,
		Text:   strings.TrimSpace(li.Text()),
		Source: w.cfg.Name,
		Date:   date,
	}

	if href, ok := li.Find("a").First().Attr("href"); ok && href != "" {
		if ref, err := url.Parse(href); err == nil {
			event.URL = pageURL.ResolveReference(ref).String()
		}
	}

	return event
}
