package domain

import "time"

// Summary is the condensed form of an event produced by the language model.
type Summary struct {
	// Title is the event headline the summary belongs to.
	Title string `json:"title"`
	// SectionText holds the bullet-point summary, one point per line.
	SectionText string `json:"section_text"`
}

// Fact is a standalone piece of trivia appended to a briefing.
type Fact struct {
	Text string `json:"fact"`
}

// Briefing is one day's worth of summarized events plus the fact.
type Briefing struct {
	// Date is the day the briefing covers.
	Date time.Time `json:"date"`
	// Summaries are the per-event summaries in delivery order.
	Summaries []Summary `json:"summaries"`
	// Fact is the interesting-fact trailer. Nil when generation failed.
	Fact *Fact `json:"fact,omitempty"`
	// EventsFound is the number of events scraped before deduplication.
	EventsFound int `json:"events_found"`
	// EventsSkipped counts events dropped by deduplication or
	// summarization failures.
	EventsSkipped int `json:"events_skipped"`
}
