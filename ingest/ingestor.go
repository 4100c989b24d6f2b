package ingest

import (
	"context"
	"log/slog"

	"github.com/poiesic/proflens/ai"
	"github.com/poiesic/proflens/core"
	"github.com/poiesic/proflens/index"
)

// Ingestor turns scraped profiles into vector-indexed records.
//
// Only the tag summary of a record is embedded, not the full review
// text. This keeps embedding cost low and the representative text
// short, at the price of retrieval quality on queries that hinge on
// review content rather than tags. Deliberate; revisit with care since
// changing it invalidates every vector already in the index.
type Ingestor struct {
	embedder ai.Embedder
	index    index.Provider
	logger   *slog.Logger
}

// Option configures an Ingestor.
type Option func(*Ingestor) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(i *Ingestor) error {
		if logger == nil {
			logger = slog.Default()
		}
		i.logger = logger
		return nil
	}
}

// NewIngestor creates a new ingestor.
func NewIngestor(embedder ai.Embedder, idx index.Provider, opts ...Option) (*Ingestor, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if idx == nil {
		return nil, ErrIndexRequired
	}

	ingestor := &Ingestor{
		embedder: embedder,
		index:    idx,
		logger:   slog.Default().With("component", "ingestor"),
	}

	for _, opt := range opts {
		if err := opt(ingestor); err != nil {
			return nil, err
		}
	}

	return ingestor, nil
}

// Ingest validates a profile, embeds its tag summary, and upserts the
// result into the vector index.
//
// The operation is all-or-nothing at record granularity: validation
// failures and embedding failures leave the index untouched, so the
// index never holds a vector without matching metadata or vice versa.
// Re-ingesting the same instructor overwrites the prior entry.
func (i *Ingestor) Ingest(ctx context.Context, profile *core.ProfileRecord) error {
	if err := core.ValidateProfileRecord(profile); err != nil {
		return err
	}

	vector, err := i.embedder.EmbedText(ctx, profile.TagSummary())
	if err != nil {
		i.logger.Error("error embedding tag summary", "id", profile.Id, "err", err)
		return err
	}

	entry := index.Entry{
		Id:       profile.Id,
		Vector:   vector,
		Metadata: *profile,
	}
	if err := i.index.Upsert(ctx, entry); err != nil {
		i.logger.Error("error upserting record", "id", profile.Id, "err", err)
		return err
	}

	i.logger.Debug("ingested profile", "id", profile.Id, "tags", len(profile.Tags), "reviews", len(profile.Reviews))
	return nil
}
