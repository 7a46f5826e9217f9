package summarize_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonesrussell/gobrief/internal/config"
	"github.com/jonesrussell/gobrief/internal/domain"
	"github.com/jonesrussell/gobrief/internal/logger"
	"github.com/jonesrussell/gobrief/internal/summarize"
)

// completionServer returns an httptest server that answers every chat
// completion request with the given content.
func completionServer(t *testing.T, content string) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{
			"id":     "chatcmpl-test",
			"object": "chat.completion",
			"model":  "llama3-8b-8192",
			"choices": []map[string]any{
				{
					"index": 0,
					"message": map[string]any{
						"role":    "assistant",
						"content": content,
					},
					"finish_reason": "stop",
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func newTestClient(serverURL string) *summarize.Client {
	return summarize.NewClient(config.GroqConfig{
		APIKey:          "test-key",
		BaseURL:         serverURL + "/v1",
		Model:           "llama3-8b-8192",
		FactTemperature: 1.5,
		RequestTimeout:  5 * time.Second,
	}, logger.NewNoop())
}

func TestSummarizeEvent(t *testing.T) {
	t.Parallel()

	content := `{"summary": {"title": "Ceasefire announced", "section_text": "- a\n- b\n- c"}}`
	server := completionServer(t, content)
	defer server.Close()

	client := newTestClient(server.URL)

	event := &domain.Event{Title: "Ceasefire announced", Text: "Long event text."}
	summary, err := client.SummarizeEvent(context.Background(), event)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Title != "Ceasefire announced" {
		t.Errorf("expected title to round-trip, got %q", summary.Title)
	}
	if summary.SectionText != "- a\n- b\n- c" {
		t.Errorf("expected section text to round-trip, got %q", summary.SectionText)
	}
}

func TestSummarizeEvent_JSONWrappedInProse(t *testing.T) {
	t.Parallel()

	content := "Sure! Here is the summary:\n" +
		`{"summary": {"title": "Wrapped", "section_text": "- x"}}` +
		"\nLet me know if you need anything else."
	server := completionServer(t, content)
	defer server.Close()

	client := newTestClient(server.URL)

	summary, err := client.SummarizeEvent(context.Background(), &domain.Event{Title: "Wrapped", Text: "t"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.SectionText != "- x" {
		t.Errorf("expected JSON extracted from prose, got %q", summary.SectionText)
	}
}

func TestSummarizeEvent_TitleFallback(t *testing.T) {
	t.Parallel()

	// A model that drops the title gets the event title back.
	server := completionServer(t, `{"summary": {"section_text": "- only text"}}`)
	defer server.Close()

	client := newTestClient(server.URL)

	summary, err := client.SummarizeEvent(context.Background(), &domain.Event{Title: "Original", Text: "t"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Title != "Original" {
		t.Errorf("expected event title fallback, got %q", summary.Title)
	}
}

func TestSummarizeEvent_NoJSON(t *testing.T) {
	t.Parallel()

	server := completionServer(t, "I cannot produce JSON today.")
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.SummarizeEvent(context.Background(), &domain.Event{Title: "T", Text: "t"})
	if !errors.Is(err, summarize.ErrNoJSON) {
		t.Fatalf("expected ErrNoJSON, got %v", err)
	}
}

func TestInterestingFact(t *testing.T) {
	t.Parallel()

	server := completionServer(t, `{"fact": "Octopuses have three hearts."}`)
	defer server.Close()

	client := newTestClient(server.URL)

	fact, err := client.InterestingFact(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fact.Text != "Octopuses have three hearts." {
		t.Errorf("expected fact text, got %q", fact.Text)
	}
}

func TestInterestingFact_APIError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "rate limit"}}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	if _, err := client.InterestingFact(context.Background()); err == nil {
		t.Fatal("expected error for API failure")
	}
}
