package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/gobrief/internal/domain"
)

// RunRepositoryInterface defines run persistence operations.
type RunRepositoryInterface interface {
	Create(ctx context.Context, run *domain.Run) error
	GetByID(ctx context.Context, id string) (*domain.Run, error)
	List(ctx context.Context, status string, limit, offset int) ([]*domain.Run, error)
	Count(ctx context.Context, status string) (int, error)
	Update(ctx context.Context, run *domain.Run) error
	CreateDelivery(ctx context.Context, delivery *domain.Delivery) error
	ListDeliveries(ctx context.Context, runID string) ([]*domain.Delivery, error)
}

// runColumns is the select list shared by run queries.
const runColumns = `id, status, trigger_kind, briefing_date, events_found, events_sent,
	events_skipped, deliveries, failed_sends, created_at, updated_at,
	started_at, completed_at, error_message`

// RunRepository handles database operations for briefing runs.
type RunRepository struct {
	db *sqlx.DB
}

// Ensure RunRepository implements RunRepositoryInterface.
var _ RunRepositoryInterface = (*RunRepository)(nil)

// NewRunRepository creates a new run repository.
func NewRunRepository(db *sqlx.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Create inserts a new run into the database.
func (r *RunRepository) Create(ctx context.Context, run *domain.Run) error {
	query := `
		INSERT INTO runs (id, status, trigger_kind, briefing_date)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		run.ID,
		run.Status,
		run.Trigger,
		run.BriefingDate,
	).Scan(&run.CreatedAt, &run.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}

	return nil
}

// GetByID retrieves a run by its ID.
func (r *RunRepository) GetByID(ctx context.Context, id string) (*domain.Run, error) {
	var run domain.Run
	query := `SELECT ` + runColumns + ` FROM runs WHERE id = $1`

	err := r.db.GetContext(ctx, &run, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("run not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	return &run, nil
}

// List retrieves runs with optional status filtering.
func (r *RunRepository) List(ctx context.Context, status string, limit, offset int) ([]*domain.Run, error) {
	var runs []*domain.Run
	var query string
	var args []any

	if status != "" {
		query = `SELECT ` + runColumns + ` FROM runs
			WHERE status = $1
			ORDER BY created_at DESC
			LIMIT $2 OFFSET $3`
		args = []any{status, limit, offset}
	} else {
		query = `SELECT ` + runColumns + ` FROM runs
			ORDER BY created_at DESC
			LIMIT $1 OFFSET $2`
		args = []any{limit, offset}
	}

	err := r.db.SelectContext(ctx, &runs, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	if runs == nil {
		runs = []*domain.Run{}
	}

	return runs, nil
}

// Count returns the number of runs, optionally filtered by status.
func (r *RunRepository) Count(ctx context.Context, status string) (int, error) {
	var count int
	var err error

	if status != "" {
		err = r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM runs WHERE status = $1`, status)
	} else {
		err = r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM runs`)
	}

	if err != nil {
		return 0, fmt.Errorf("failed to count runs: %w", err)
	}

	return count, nil
}

// Update updates an existing run.
func (r *RunRepository) Update(ctx context.Context, run *domain.Run) error {
	query := `
		UPDATE runs
		SET status = $1, events_found = $2, events_sent = $3, events_skipped = $4,
		    deliveries = $5, failed_sends = $6, started_at = $7, completed_at = $8,
		    error_message = $9, updated_at = now()
		WHERE id = $10
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		run.Status,
		run.EventsFound,
		run.EventsSent,
		run.EventsSkipped,
		run.Deliveries,
		run.FailedSends,
		run.StartedAt,
		run.CompletedAt,
		run.ErrorMessage,
		run.ID,
	)

	if err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("run not found: %s", run.ID)
	}

	return nil
}

// CreateDelivery records one message handed to the provider.
func (r *RunRepository) CreateDelivery(ctx context.Context, delivery *domain.Delivery) error {
	query := `
		INSERT INTO deliveries (id, run_id, recipient, message_sid, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		delivery.ID,
		delivery.RunID,
		delivery.Recipient,
		delivery.MessageSID,
		delivery.Status,
	).Scan(&delivery.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create delivery: %w", err)
	}

	return nil
}

// ListDeliveries returns the deliveries recorded for a run.
func (r *RunRepository) ListDeliveries(ctx context.Context, runID string) ([]*domain.Delivery, error) {
	var deliveries []*domain.Delivery
	query := `
		SELECT id, run_id, recipient, message_sid, status, created_at
		FROM deliveries
		WHERE run_id = $1
		ORDER BY created_at
	`

	err := r.db.SelectContext(ctx, &deliveries, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list deliveries: %w", err)
	}

	if deliveries == nil {
		deliveries = []*domain.Delivery{}
	}

	return deliveries, nil
}
