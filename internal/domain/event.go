// Package domain provides domain models used across the application.
package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Event is a single news event collected from a source.
type Event struct {
	// Title is the event headline, taken from the first link in the
	// source markup when available.
	Title string `json:"title"`
	// Text is the full event text, including the title.
	Text string `json:"text"`
	// URL points at the event page when the source provides one.
	URL string `json:"url,omitempty"`
	// Source names the collector that produced the event.
	Source string `json:"source"`
	// Date is the briefing date the event belongs to.
	Date time.Time `json:"date"`
}

// Fingerprint returns a stable identifier for the event, used for
// delivered-event deduplication. Two events with the same normalized
// title share a fingerprint.
func (e *Event) Fingerprint() string {
	normalized := strings.ToLower(strings.TrimSpace(e.Title))
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}
