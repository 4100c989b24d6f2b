package index

import (
	"context"

	"github.com/poiesic/proflens/core"
)

// Entry is the persisted unit of the vector index: a record identifier
// bound to its embedding and the full profile as metadata. The index
// owns entries exclusively; the pipeline never caches them locally
// across requests.
type Entry struct {
	Id       string
	Vector   []float32
	Metadata core.ProfileRecord
}

// Provider abstracts a namespaced nearest-neighbor store.
// Implementations must be thread-safe and support concurrent upserts
// and queries without external locking.
type Provider interface {
	// Upsert stores an entry, replacing any prior entry with the same Id.
	// The replacement is atomic from the caller's point of view: the
	// index never exposes a vector without its matching metadata.
	// A vector whose dimension disagrees with the index configuration
	// fails with ErrDimensionMismatch.
	Upsert(ctx context.Context, entry Entry) error

	// Query returns at most k entries ordered by descending similarity
	// to the given vector, with their metadata. Tie order between equal
	// scores is not guaranteed stable.
	Query(ctx context.Context, vector []float32, k int) ([]core.RetrievalMatch, error)

	// Dimensions returns the vector dimension the index was configured with.
	Dimensions() int

	// Close releases resources held by the index client.
	Close() error
}
