package domain

import "time"

// Run statuses.
const (
	RunStatusPending    = "pending"
	RunStatusProcessing = "processing"
	RunStatusCompleted  = "completed"
	RunStatusFailed     = "failed"
)

// Run records one execution of the briefing pipeline.
type Run struct {
	ID            string     `json:"id" db:"id"`
	Status        string     `json:"status" db:"status"`
	Trigger       string     `json:"trigger" db:"trigger_kind"`
	BriefingDate  time.Time  `json:"briefing_date" db:"briefing_date"`
	EventsFound   int        `json:"events_found" db:"events_found"`
	EventsSent    int        `json:"events_sent" db:"events_sent"`
	EventsSkipped int        `json:"events_skipped" db:"events_skipped"`
	Deliveries    int        `json:"deliveries" db:"deliveries"`
	FailedSends   int        `json:"failed_sends" db:"failed_sends"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
	StartedAt     *time.Time `json:"started_at,omitempty" db:"started_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	ErrorMessage  *string    `json:"error_message,omitempty" db:"error_message"`
}

// Run triggers.
const (
	TriggerSchedule = "schedule"
	TriggerManual   = "manual"
)

// Delivery records one WhatsApp message handed to the provider.
type Delivery struct {
	ID         string    `json:"id" db:"id"`
	RunID      string    `json:"run_id" db:"run_id"`
	Recipient  string    `json:"recipient" db:"recipient"` // masked, never the full number
	MessageSID string    `json:"message_sid" db:"message_sid"`
	Status     string    `json:"status" db:"status"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
