package retrieve

import (
	"context"
	"log/slog"
	"strings"

	"github.com/poiesic/proflens/ai"
	"github.com/poiesic/proflens/core"
	"github.com/poiesic/proflens/index"
)

// DefaultLimit is the number of nearest profiles retrieved per query.
// Three instructors is enough context for a comparison answer without
// drowning the model in marginal matches.
const DefaultLimit = 3

// Retriever finds the instructor profiles most relevant to a query.
type Retriever struct {
	embedder ai.Embedder
	index    index.Provider
	limit    int
	logger   *slog.Logger
}

// Option configures a Retriever.
type Option func(*Retriever) error

// WithLimit sets how many profiles a retrieval returns.
// Default is DefaultLimit.
func WithLimit(limit int) Option {
	return func(r *Retriever) error {
		if limit <= 0 {
			return ErrInvalidLimit
		}
		r.limit = limit
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Retriever) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRetriever creates a new retriever.
func NewRetriever(embedder ai.Embedder, idx index.Provider, opts ...Option) (*Retriever, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if idx == nil {
		return nil, ErrIndexRequired
	}

	r := &Retriever{
		embedder: embedder,
		index:    idx,
		limit:    DefaultLimit,
		logger:   slog.Default().With("component", "retriever"),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Retrieve embeds the query and returns up to the configured limit of
// profiles ordered by descending similarity. Fewer matches than the
// limit is not an error; neither is an empty index.
func (r *Retriever) Retrieve(ctx context.Context, query string) ([]core.RetrievalMatch, error) {
	if strings.TrimSpace(query) == "" {
		return nil, core.ErrEmptyQuery
	}

	vector, err := r.embedder.EmbedText(ctx, query)
	if err != nil {
		r.logger.Error("error embedding query", "err", err)
		return nil, err
	}

	matches, err := r.index.Query(ctx, vector, r.limit)
	if err != nil {
		r.logger.Error("error querying index", "err", err)
		return nil, err
	}

	r.logger.Debug("retrieved profiles", "count", len(matches), "limit", r.limit)
	return matches, nil
}
