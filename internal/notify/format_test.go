package notify_test

import (
	"testing"
	"time"

	"github.com/jonesrussell/gobrief/internal/domain"
	"github.com/jonesrussell/gobrief/internal/notify"
)

func TestFormatHeader(t *testing.T) {
	t.Parallel()

	date := time.Date(2026, 8, 26, 20, 0, 0, 0, time.UTC)
	got := notify.FormatHeader(date)
	want := "*Daily Summary:* 2026-08-26"

	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	summary := &domain.Summary{
		Title:       "Ceasefire announced",
		SectionText: "- point one\n- point two\n- point three",
	}

	got := notify.FormatSummary(summary)
	want := "*Headline:* Ceasefire announced\n*Event:*\n - point one\n- point two\n- point three\n"

	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestFormatFact(t *testing.T) {
	t.Parallel()

	fact := &domain.Fact{Text: "Honey never spoils."}
	got := notify.FormatFact(fact)
	want := "*Interesting Fact:* Honey never spoils."

	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestMaskNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		number string
		want   string
	}{
		{name: "e164 number", number: "+15551234567", want: "xxx-xxx-4567"},
		{name: "short number", number: "123", want: "xxx-xxx-123"},
		{name: "empty", number: "", want: "xxx-xxx-"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := notify.MaskNumber(tt.number); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
