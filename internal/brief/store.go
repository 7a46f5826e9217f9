package brief

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/gobrief/internal/database"
	"github.com/jonesrussell/gobrief/internal/domain"
)

// Store persists runs, deliveries, and delivered-event fingerprints.
// A Postgres-backed store is used when the database is enabled; the
// in-memory store otherwise, which keeps dedup within the process
// lifetime only.
type Store interface {
	CreateRun(ctx context.Context, run *domain.Run) error
	UpdateRun(ctx context.Context, run *domain.Run) error
	GetRun(ctx context.Context, id string) (*domain.Run, error)
	ListRuns(ctx context.Context, status string, limit, offset int) ([]*domain.Run, error)
	CountRuns(ctx context.Context, status string) (int, error)
	RecordDelivery(ctx context.Context, delivery *domain.Delivery) error
	ListDeliveries(ctx context.Context, runID string) ([]*domain.Delivery, error)
	WasDelivered(ctx context.Context, fingerprint string) (bool, error)
	MarkDelivered(ctx context.Context, fingerprint, title, runID string) error
	PruneDeliveredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// --- Postgres-backed store ---

// DBStore implements Store on the run and event repositories.
type DBStore struct {
	runs   database.RunRepositoryInterface
	events database.EventRepositoryInterface
}

// Ensure DBStore implements Store.
var _ Store = (*DBStore)(nil)

// NewDBStore creates a Postgres-backed store.
func NewDBStore(db *sqlx.DB) *DBStore {
	return &DBStore{
		runs:   database.NewRunRepository(db),
		events: database.NewEventRepository(db),
	}
}

// CreateRun inserts a new run record.
func (s *DBStore) CreateRun(ctx context.Context, run *domain.Run) error {
	return s.runs.Create(ctx, run)
}

// UpdateRun updates an existing run record.
func (s *DBStore) UpdateRun(ctx context.Context, run *domain.Run) error {
	return s.runs.Update(ctx, run)
}

// GetRun retrieves a run by ID.
func (s *DBStore) GetRun(ctx context.Context, id string) (*domain.Run, error) {
	return s.runs.GetByID(ctx, id)
}

// ListRuns lists runs with optional status filtering.
func (s *DBStore) ListRuns(ctx context.Context, status string, limit, offset int) ([]*domain.Run, error) {
	return s.runs.List(ctx, status, limit, offset)
}

// CountRuns counts runs with optional status filtering.
func (s *DBStore) CountRuns(ctx context.Context, status string) (int, error) {
	return s.runs.Count(ctx, status)
}

// RecordDelivery records one message handed to the provider.
func (s *DBStore) RecordDelivery(ctx context.Context, delivery *domain.Delivery) error {
	return s.runs.CreateDelivery(ctx, delivery)
}

// ListDeliveries lists the deliveries recorded for a run.
func (s *DBStore) ListDeliveries(ctx context.Context, runID string) ([]*domain.Delivery, error) {
	return s.runs.ListDeliveries(ctx, runID)
}

// WasDelivered reports whether an event fingerprint was delivered before.
func (s *DBStore) WasDelivered(ctx context.Context, fingerprint string) (bool, error) {
	return s.events.WasDelivered(ctx, fingerprint)
}

// MarkDelivered records an event fingerprint as delivered.
func (s *DBStore) MarkDelivered(ctx context.Context, fingerprint, title, runID string) error {
	return s.events.MarkDelivered(ctx, fingerprint, title, runID)
}

// PruneDeliveredBefore removes fingerprints delivered before the cutoff.
func (s *DBStore) PruneDeliveredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return s.events.PruneOlderThan(ctx, cutoff)
}

// --- In-memory store ---

// MemoryStore implements Store in process memory.
type MemoryStore struct {
	mu         sync.RWMutex
	runs       map[string]*domain.Run
	delivered  map[string]deliveredEvent // keyed by fingerprint
	deliveries []*domain.Delivery
}

// deliveredEvent is one delivered-event record.
type deliveredEvent struct {
	runID       string
	deliveredAt time.Time
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		runs:      make(map[string]*domain.Run),
		delivered: make(map[string]deliveredEvent),
	}
}

// CreateRun inserts a new run record.
func (s *MemoryStore) CreateRun(_ context.Context, run *domain.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	run.CreatedAt = now
	run.UpdatedAt = now
	s.runs[run.ID] = cloneRun(run)
	return nil
}

// UpdateRun updates an existing run record.
func (s *MemoryStore) UpdateRun(_ context.Context, run *domain.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.runs[run.ID]; !ok {
		return fmt.Errorf("run not found: %s", run.ID)
	}
	run.UpdatedAt = time.Now()
	s.runs[run.ID] = cloneRun(run)
	return nil
}

// GetRun retrieves a run by ID.
func (s *MemoryStore) GetRun(_ context.Context, id string) (*domain.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	if !ok {
		return nil, fmt.Errorf("run not found: %s", id)
	}
	return cloneRun(run), nil
}

// ListRuns lists runs with optional status filtering, newest first.
func (s *MemoryStore) ListRuns(_ context.Context, status string, limit, offset int) ([]*domain.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]*domain.Run, 0, len(s.runs))
	for _, run := range s.runs {
		if status == "" || run.Status == status {
			matched = append(matched, cloneRun(run))
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if offset >= len(matched) {
		return []*domain.Run{}, nil
	}
	matched = matched[offset:]
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}

	return matched, nil
}

// CountRuns counts runs with optional status filtering.
func (s *MemoryStore) CountRuns(_ context.Context, status string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, run := range s.runs {
		if status == "" || run.Status == status {
			count++
		}
	}
	return count, nil
}

// RecordDelivery records one message handed to the provider.
func (s *MemoryStore) RecordDelivery(_ context.Context, delivery *domain.Delivery) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delivery.CreatedAt = time.Now()
	copied := *delivery
	s.deliveries = append(s.deliveries, &copied)
	return nil
}

// ListDeliveries lists the deliveries recorded for a run.
func (s *MemoryStore) ListDeliveries(_ context.Context, runID string) ([]*domain.Delivery, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]*domain.Delivery, 0)
	for _, delivery := range s.deliveries {
		if delivery.RunID == runID {
			copied := *delivery
			matched = append(matched, &copied)
		}
	}
	return matched, nil
}

// WasDelivered reports whether an event fingerprint was delivered before.
func (s *MemoryStore) WasDelivered(_ context.Context, fingerprint string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.delivered[fingerprint]
	return ok, nil
}

// MarkDelivered records an event fingerprint as delivered.
func (s *MemoryStore) MarkDelivered(_ context.Context, fingerprint, _, runID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.delivered[fingerprint]; !ok {
		s.delivered[fingerprint] = deliveredEvent{runID: runID, deliveredAt: time.Now()}
	}
	return nil
}

// PruneDeliveredBefore removes fingerprints delivered before the cutoff.
func (s *MemoryStore) PruneDeliveredBefore(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var pruned int64
	for fingerprint, record := range s.delivered {
		if record.deliveredAt.Before(cutoff) {
			delete(s.delivered, fingerprint)
			pruned++
		}
	}
	return pruned, nil
}

// cloneRun copies a run so callers cannot mutate stored state.
func cloneRun(run *domain.Run) *domain.Run {
	copied := *run
	return &copied
}
