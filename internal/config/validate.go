package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validation errors.
var (
	ErrMissingGroqKey    = errors.New("groq api key is required (set GROQ_API_KEY)")
	ErrMissingAccountSID = errors.New("twilio account sid is required (set TWILIO_ACCOUNT_SID)")
	ErrMissingAuthToken  = errors.New("twilio auth token is required (set TWILIO_AUTH_TOKEN)")
	ErrNoRecipients      = errors.New("at least one recipient is required")
)

// ValidateDelivery checks everything a delivering run needs: the
// language model credentials, the messaging credentials, and a
// non-empty recipient list.
func (c *Config) ValidateDelivery() error {
	if err := c.ValidateSummarization(); err != nil {
		return err
	}
	if c.Twilio.AccountSID == "" {
		return ErrMissingAccountSID
	}
	if c.Twilio.AuthToken == "" {
		return ErrMissingAuthToken
	}
	if len(c.Briefing.Recipients) == 0 {
		return ErrNoRecipients
	}
	for _, r := range c.Briefing.Recipients {
		if !strings.HasPrefix(r, "+") {
			return fmt.Errorf("recipient %q is not in E.164 form", maskRecipient(r))
		}
	}
	return c.validateSources()
}

// ValidateSummarization checks the subset needed by preview runs that
// summarize but never deliver.
func (c *Config) ValidateSummarization() error {
	if c.Groq.APIKey == "" {
		return ErrMissingGroqKey
	}
	return c.validateSources()
}

// validateSources checks that every configured source is usable.
func (c *Config) validateSources() error {
	for i := range c.Briefing.Sources {
		src := &c.Briefing.Sources[i]
		switch src.Type {
		case SourceTypeWikipedia:
			// Portal URL comes from briefing.portal_base_url.
		case SourceTypeRSS:
			if src.URL == "" {
				return fmt.Errorf("rss source %q requires a url", src.Name)
			}
		default:
			return fmt.Errorf("unknown source type %q for source %q", src.Type, src.Name)
		}
	}
	return nil
}

// maskRecipient hides all but the last four characters of a phone
// number so validation errors never leak full numbers into logs.
func maskRecipient(number string) string {
	const visible = 4
	if len(number) <= visible {
		return "xxx-xxx-" + number
	}
	return "xxx-xxx-" + number[len(number)-visible:]
}
