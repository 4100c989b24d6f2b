package pinecone

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pinecone-io/go-pinecone/v4/pinecone"
	"github.com/poiesic/proflens/core"
	"github.com/poiesic/proflens/index"
	"google.golang.org/protobuf/types/known/structpb"
)

// Config identifies the hosted index and namespace all operations are
// scoped to.
type Config struct {
	// APIKey is the Pinecone credential. Required.
	APIKey string

	// Index is the name of the Pinecone index holding the review dataset.
	Index string

	// Namespace is the logical partition inside the index. Operations
	// never cross namespaces.
	Namespace string
}

// Index implements index.Provider against a hosted Pinecone index.
type Index struct {
	conn       *pinecone.IndexConnection
	dimensions int
	namespace  string
	logger     *slog.Logger
}

var _ index.Provider = (*Index)(nil)

// New connects to the configured Pinecone index and namespace.
// The index dimension is read from the index description so that
// dimension mismatches are caught locally before any upsert or query.
func New(ctx context.Context, cfg Config) (*Index, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: missing api key", index.ErrUnavailable)
	}
	if cfg.Index == "" {
		return nil, fmt.Errorf("%w: missing index name", index.ErrUnavailable)
	}

	client, err := pinecone.NewClient(pinecone.NewClientParams{ApiKey: cfg.APIKey})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", index.ErrUnavailable, err)
	}

	desc, err := client.DescribeIndex(ctx, cfg.Index)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", index.ErrUnavailable, err)
	}

	dimensions := 0
	if desc.Dimension != nil {
		dimensions = int(*desc.Dimension)
	}
	if dimensions <= 0 {
		return nil, fmt.Errorf("%w: index %q reports no dimension", index.ErrDimensionMismatch, cfg.Index)
	}

	conn, err := client.Index(pinecone.NewIndexConnParams{
		Host:      desc.Host,
		Namespace: cfg.Namespace,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", index.ErrUnavailable, err)
	}

	return &Index{
		conn:       conn,
		dimensions: dimensions,
		namespace:  cfg.Namespace,
		logger:     slog.Default().With("component", "pinecone-index", "namespace", cfg.Namespace),
	}, nil
}

// Upsert stores an entry, replacing any prior entry with the same Id.
func (i *Index) Upsert(ctx context.Context, entry index.Entry) error {
	if entry.Id == "" {
		return index.ErrEmptyID
	}
	if len(entry.Vector) != i.dimensions {
		return fmt.Errorf("%w: got %d, want %d", index.ErrDimensionMismatch, len(entry.Vector), i.dimensions)
	}

	metadata, err := metadataFromProfile(entry.Metadata)
	if err != nil {
		return err
	}

	values := entry.Vector
	_, err = i.conn.UpsertVectors(ctx, []*pinecone.Vector{{
		Id:       entry.Id,
		Values:   &values,
		Metadata: metadata,
	}})
	if err != nil {
		i.logger.Error("failed to upsert vector", "id", entry.Id, "err", err)
		return fmt.Errorf("%w: %v", index.ErrUnavailable, err)
	}

	return nil
}

// Query returns up to k entries ordered by descending similarity.
func (i *Index) Query(ctx context.Context, vector []float32, k int) ([]core.RetrievalMatch, error) {
	if k <= 0 {
		return nil, index.ErrInvalidLimit
	}
	if len(vector) != i.dimensions {
		return nil, fmt.Errorf("%w: got %d, want %d", index.ErrDimensionMismatch, len(vector), i.dimensions)
	}

	res, err := i.conn.QueryByVectorValues(ctx, &pinecone.QueryByVectorValuesRequest{
		Vector:          vector,
		TopK:            uint32(k),
		IncludeMetadata: true,
	})
	if err != nil {
		i.logger.Error("failed to query index", "err", err)
		return nil, fmt.Errorf("%w: %v", index.ErrUnavailable, err)
	}

	matches := make([]core.RetrievalMatch, 0, len(res.Matches))
	for _, match := range res.Matches {
		if match == nil || match.Vector == nil {
			continue
		}
		matches = append(matches, core.RetrievalMatch{
			Profile: profileFromMetadata(match.Vector.Id, match.Vector.Metadata),
			Score:   match.Score,
		})
	}

	return matches, nil
}

// Dimensions returns the dimension reported by the index description.
func (i *Index) Dimensions() int {
	return i.dimensions
}

// Close releases the index connection.
func (i *Index) Close() error {
	return i.conn.Close()
}

// metadataFromProfile encodes a profile as index metadata. Tags are
// stored as their comma-joined summary, matching the representative
// text the record was embedded from.
func metadataFromProfile(profile core.ProfileRecord) (*pinecone.Metadata, error) {
	reviews := make([]any, len(profile.Reviews))
	for idx, review := range profile.Reviews {
		reviews[idx] = review
	}

	metadata, err := structpb.NewStruct(map[string]any{
		"name":    profile.Name,
		"rating":  profile.Rating,
		"tags":    profile.TagSummary(),
		"reviews": reviews,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding metadata for %q: %w", profile.Id, err)
	}
	return metadata, nil
}

// profileFromMetadata decodes index metadata back into a profile.
// Unknown or missing fields decode to their zero values rather than
// failing the whole query.
func profileFromMetadata(id string, metadata *pinecone.Metadata) core.ProfileRecord {
	profile := core.ProfileRecord{Id: id}
	if metadata == nil {
		return profile
	}

	fields := metadata.AsMap()

	if name, ok := fields["name"].(string); ok {
		profile.Name = name
	}
	if rating, ok := fields["rating"].(string); ok {
		profile.Rating = rating
	}
	if tags, ok := fields["tags"].(string); ok && tags != "" {
		profile.Tags = core.NormalizeTags(strings.Split(tags, ","))
	}
	if reviews, ok := fields["reviews"].([]any); ok {
		profile.Reviews = make([]string, 0, len(reviews))
		for _, review := range reviews {
			if text, ok := review.(string); ok {
				profile.Reviews = append(profile.Reviews, text)
			}
		}
	}

	return profile
}
