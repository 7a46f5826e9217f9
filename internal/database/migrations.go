package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schema holds the tables the service needs. Statements are idempotent
// so EnsureSchema can run on every startup.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		id UUID PRIMARY KEY,
		status TEXT NOT NULL DEFAULT 'pending',
		trigger_kind TEXT NOT NULL DEFAULT 'schedule',
		briefing_date DATE NOT NULL,
		events_found INTEGER NOT NULL DEFAULT 0,
		events_sent INTEGER NOT NULL DEFAULT 0,
		events_skipped INTEGER NOT NULL DEFAULT 0,
		deliveries INTEGER NOT NULL DEFAULT 0,
		failed_sends INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		started_at TIMESTAMPTZ,
		completed_at TIMESTAMPTZ,
		error_message TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_runs_status ON runs (status)`,
	`CREATE INDEX IF NOT EXISTS idx_runs_briefing_date ON runs (briefing_date)`,
	`CREATE TABLE IF NOT EXISTS delivered_events (
		fingerprint TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		run_id UUID REFERENCES runs (id),
		delivered_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_delivered_events_delivered_at
		ON delivered_events (delivered_at)`,
	`CREATE TABLE IF NOT EXISTS deliveries (
		id UUID PRIMARY KEY,
		run_id UUID NOT NULL REFERENCES runs (id),
		recipient TEXT NOT NULL,
		message_sid TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_deliveries_run_id ON deliveries (run_id)`,
}

// EnsureSchema creates the service tables when they do not exist yet.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
