// Package archive stores completed briefings in Elasticsearch for
// later retrieval. The archive is optional and failures here never
// fail a run.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	es "github.com/elastic/go-elasticsearch/v8"

	"github.com/jonesrussell/gobrief/internal/config"
	"github.com/jonesrussell/gobrief/internal/domain"
	"github.com/jonesrussell/gobrief/internal/logger"
)

// DefaultIndexTimeout bounds a single index request.
const DefaultIndexTimeout = 10 * time.Second

// Archiver indexes briefings into a single Elasticsearch index,
// one document per briefing date.
type Archiver struct {
	client *es.Client
	index  string
	logger logger.Interface
}

// New creates an archiver and verifies the cluster is reachable.
func New(cfg config.ElasticsearchConfig, log logger.Interface) (*Archiver, error) {
	if len(cfg.Addresses) == 0 {
		return nil, errors.New("elasticsearch addresses are required")
	}

	client, err := es.NewClient(es.Config{
		Addresses: cfg.Addresses,
		APIKey:    cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	res, err := client.Ping()
	if err != nil {
		return nil, fmt.Errorf("failed to ping Elasticsearch: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("error pinging Elasticsearch: %s", res.String())
	}

	return &Archiver{
		client: client,
		index:  cfg.IndexName,
		logger: log.WithComponent("archive"),
	}, nil
}

// ArchiveBriefing indexes one briefing, keyed by its date so a rerun
// of the same day overwrites the previous document.
func (a *Archiver) ArchiveBriefing(ctx context.Context, briefing *domain.Briefing) error {
	ctx, cancel := context.WithTimeout(ctx, DefaultIndexTimeout)
	defer cancel()

	body, err := json.Marshal(briefing)
	if err != nil {
		return fmt.Errorf("failed to marshal briefing: %w", err)
	}

	docID := briefing.Date.Format("2006-01-02")
	res, err := a.client.Index(
		a.index,
		bytes.NewReader(body),
		a.client.Index.WithContext(ctx),
		a.client.Index.WithDocumentID(docID),
	)
	if err != nil {
		return fmt.Errorf("failed to index briefing: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("elasticsearch error: %s", res.String())
	}

	a.logger.Info("Briefing archived",
		"index", a.index,
		"doc_id", docID,
		"summaries", len(briefing.Summaries),
	)
	return nil
}
