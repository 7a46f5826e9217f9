package common

import (
	"context"
	"fmt"

	"github.com/jonesrussell/gobrief/internal/archive"
	"github.com/jonesrussell/gobrief/internal/brief"
	"github.com/jonesrussell/gobrief/internal/database"
	"github.com/jonesrussell/gobrief/internal/notify"
	"github.com/jonesrussell/gobrief/internal/scrape"
	"github.com/jonesrussell/gobrief/internal/summarize"
)

// RunnerResult holds the assembled runner with its store and a
// cleanup function that releases the store's resources.
type RunnerResult struct {
	Runner  *brief.Runner
	Store   brief.Store
	Cleanup func()
}

// NewStore creates the run store: Postgres-backed when the database
// is enabled and migrated, in-memory otherwise. The returned cleanup
// function closes the connection and is safe to call for both kinds.
func NewStore(ctx context.Context, deps *CommandDeps) (brief.Store, func(), error) {
	if !deps.Config.Database.Enabled {
		deps.Logger.Info("Database disabled, using in-memory store")
		return brief.NewMemoryStore(), func() {}, nil
	}

	db, err := database.NewPostgresConnection(deps.Config.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if schemaErr := database.EnsureSchema(ctx, db); schemaErr != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to ensure schema: %w", schemaErr)
	}

	return brief.NewDBStore(db), func() { db.Close() }, nil
}

// NewRunner assembles the full briefing runner: collectors,
// summarizer, notifier, store, and the optional archive.
func NewRunner(ctx context.Context, deps *CommandDeps) (*RunnerResult, error) {
	cfg := deps.Config

	if err := cfg.ValidateSummarization(); err != nil {
		return nil, err
	}
	if err := cfg.ValidateDelivery(); err != nil {
		return nil, err
	}

	collectors, err := scrape.NewCollectors(&cfg.Briefing, deps.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create collectors: %w", err)
	}

	store, cleanup, err := NewStore(ctx, deps)
	if err != nil {
		return nil, err
	}

	var archiver brief.Archiver
	if cfg.Elasticsearch.Enabled {
		esArchiver, archiveErr := archive.New(cfg.Elasticsearch, deps.Logger)
		if archiveErr != nil {
			cleanup()
			return nil, fmt.Errorf("failed to create archive: %w", archiveErr)
		}
		archiver = esArchiver
	}

	runner := brief.NewRunner(
		collectors,
		summarize.NewClient(cfg.Groq, deps.Logger),
		notify.New(cfg.Twilio, deps.Logger),
		store,
		archiver,
		cfg.Briefing.Recipients,
		cfg.Briefing.DedupRetention,
		deps.Logger,
	)

	return &RunnerResult{
		Runner:  runner,
		Store:   store,
		Cleanup: cleanup,
	}, nil
}
