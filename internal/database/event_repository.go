package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// EventRepositoryInterface defines delivered-event deduplication operations.
type EventRepositoryInterface interface {
	// WasDelivered reports whether an event fingerprint was delivered before.
	WasDelivered(ctx context.Context, fingerprint string) (bool, error)
	// MarkDelivered records an event fingerprint as delivered.
	MarkDelivered(ctx context.Context, fingerprint, title, runID string) error
	// PruneOlderThan removes fingerprints delivered before the cutoff.
	PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// EventRepository handles delivered-event bookkeeping.
type EventRepository struct {
	db *sqlx.DB
}

// Ensure EventRepository implements EventRepositoryInterface.
var _ EventRepositoryInterface = (*EventRepository)(nil)

// NewEventRepository creates a new event repository.
func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

// WasDelivered reports whether an event fingerprint was delivered before.
func (r *EventRepository) WasDelivered(ctx context.Context, fingerprint string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM delivered_events WHERE fingerprint = $1)`

	if err := r.db.GetContext(ctx, &exists, query, fingerprint); err != nil {
		return false, fmt.Errorf("failed to check delivered event: %w", err)
	}

	return exists, nil
}

// MarkDelivered records an event fingerprint as delivered. Marking the
// same fingerprint twice is not an error.
func (r *EventRepository) MarkDelivered(ctx context.Context, fingerprint, title, runID string) error {
	query := `
		INSERT INTO delivered_events (fingerprint, title, run_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (fingerprint) DO NOTHING
	`

	if _, err := r.db.ExecContext(ctx, query, fingerprint, title, runID); err != nil {
		return fmt.Errorf("failed to mark event delivered: %w", err)
	}

	return nil
}

// PruneOlderThan removes fingerprints delivered before the cutoff and
// returns how many rows were removed.
func (r *EventRepository) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM delivered_events WHERE delivered_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune delivered events: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows, nil
}
