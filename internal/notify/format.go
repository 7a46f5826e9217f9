package notify

import (
	"fmt"
	"time"

	"github.com/jonesrussell/gobrief/internal/domain"
)

// FormatHeader renders the briefing header message.
func FormatHeader(date time.Time) string {
	return fmt.Sprintf("*Daily Summary:* %s", date.Format("2006-01-02"))
}

// FormatSummary renders one event summary for WhatsApp.
func FormatSummary(summary *domain.Summary) string {
	return fmt.Sprintf("*Headline:* %s\n*Event:*\n %s\n", summary.Title, summary.SectionText)
}

// FormatFact renders the interesting-fact trailer.
func FormatFact(fact *domain.Fact) string {
	return fmt.Sprintf("*Interesting Fact:* %s", fact.Text)
}

// MaskNumber hides all but the last four digits of a phone number.
// Recipient numbers only ever reach logs and records in this form.
func MaskNumber(number string) string {
	const visible = 4
	if len(number) <= visible {
		return "xxx-xxx-" + number
	}
	return "xxx-xxx-" + number[len(number)-visible:]
}
