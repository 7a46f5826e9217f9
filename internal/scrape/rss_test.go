package scrape_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonesrussell/gobrief/internal/logger"
	"github.com/jonesrussell/gobrief/internal/scrape"
)

const rssFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Test News</title>
    <item>
      <title>First Story</title>
      <link>https://example.com/first</link>
      <description>Details about the first story.</description>
    </item>
    <item>
      <title>Second Story</title>
      <link>https://example.com/second</link>
      <description>Details about the second story.</description>
    </item>
    <item>
      <title></title>
      <link>https://example.com/untitled</link>
    </item>
    <item>
      <title>Third Story</title>
      <link>https://example.com/third</link>
    </item>
  </channel>
</rss>`

func TestRSSCollector_Collect(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(rssFixture))
	}))
	defer server.Close()

	collector := scrape.NewRSSCollector(scrape.RSSConfig{
		Name: "newswire",
		URL:  server.URL,
	}, logger.NewNoop())

	date := time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC)
	events, err := collector.Collect(context.Background(), date)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The untitled item is dropped.
	const wantEvents = 3
	if len(events) != wantEvents {
		t.Fatalf("expected %d events, got %d", wantEvents, len(events))
	}

	first := events[0]
	if first.Title != "First Story" {
		t.Errorf("expected title First Story, got %q", first.Title)
	}
	if first.Text != "Details about the first story." {
		t.Errorf("expected description as text, got %q", first.Text)
	}
	if first.URL != "https://example.com/first" {
		t.Errorf("expected item link, got %q", first.URL)
	}
	if first.Source != "newswire" {
		t.Errorf("expected configured source name, got %q", first.Source)
	}

	// An item without a description falls back to its title.
	third := events[2]
	if third.Text != "Third Story" {
		t.Errorf("expected title fallback for missing description, got %q", third.Text)
	}
}

func TestRSSCollector_MaxItems(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(rssFixture))
	}))
	defer server.Close()

	collector := scrape.NewRSSCollector(scrape.RSSConfig{
		Name:     "newswire",
		URL:      server.URL,
		MaxItems: 1,
	}, logger.NewNoop())

	events, err := collector.Collect(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event with max_items=1, got %d", len(events))
	}
}

func TestRSSCollector_FetchError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	collector := scrape.NewRSSCollector(scrape.RSSConfig{
		Name: "newswire",
		URL:  server.URL,
	}, logger.NewNoop())

	if _, err := collector.Collect(context.Background(), time.Now()); err == nil {
		t.Fatal("expected error for a failing feed")
	}
}
