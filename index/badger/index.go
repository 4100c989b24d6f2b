package badger

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"slices"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/proflens/core"
	"github.com/poiesic/proflens/index"
)

// Index is a local, persistent vector index backed by BadgerDB.
// It implements index.Provider with a full cosine-similarity scan,
// which is adequate for the dataset sizes this index is meant for
// (offline development and tests).
type Index struct {
	backend    *backend
	dimensions int
	logger     *slog.Logger
}

var _ index.Provider = (*Index)(nil)

// storedEntry is the on-disk representation of an index entry.
// JSON keeps the metadata encoding identical to what the hosted
// backend round-trips through its metadata payloads.
type storedEntry struct {
	Id       string             `json:"id"`
	Vector   []float32          `json:"vector"`
	Metadata core.ProfileRecord `json:"metadata"`
}

// Open opens (or creates) a local index at the given directory.
// dimensions fixes the vector dimension for the lifetime of the index.
func Open(filePath string, dimensions int) (*Index, error) {
	if dimensions <= 0 {
		return nil, fmt.Errorf("%w: got %d", index.ErrDimensionMismatch, dimensions)
	}

	b, err := openBackend(filePath, filePath == "")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", index.ErrUnavailable, err)
	}

	return &Index{
		backend:    b,
		dimensions: dimensions,
		logger:     slog.Default().With("component", "badger-index"),
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
	if err := ctx.Err(); err != nil {
		return err
	}

	value, err := json.Marshal(storedEntry{
		Id:       entry.Id,
		Vector:   entry.Vector,
		Metadata: entry.Metadata,
	})
	if err != nil {
		return err
	}

	err = i.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeEntryKey(entry.Id), value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		i.logger.Error("failed to upsert entry", "id", entry.Id, "err", err)
		return fmt.Errorf("%w: %v", index.ErrUnavailable, err)
	}

	return nil
}

// Query returns up to k entries ordered by descending cosine similarity.
func (i *Index) Query(ctx context.Context, vector []float32, k int) ([]core.RetrievalMatch, error) {
	if k <= 0 {
		return nil, index.ErrInvalidLimit
	}
	if len(vector) != i.dimensions {
		return nil, fmt.Errorf("%w: got %d, want %d", index.ErrDimensionMismatch, len(vector), i.dimensions)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var matches []core.RetrievalMatch

	err := i.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(entryPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var entry storedEntry
			err := iter.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &entry)
			})
			if err != nil {
				return err
			}

			matches = append(matches, core.RetrievalMatch{
				Profile: entry.Metadata,
				Score:   cosineSimilarity(vector, entry.Vector),
			})
		}

		return nil
	}, false)
	if err != nil {
		i.logger.Error("failed to query index", "err", err)
		return nil, fmt.Errorf("%w: %v", index.ErrUnavailable, err)
	}

	// Sort by similarity descending
	slices.SortFunc(matches, func(a, b core.RetrievalMatch) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return 0
	})

	if len(matches) > k {
		matches = matches[:k]
	}
	return matches, nil
}

// Dimensions returns the configured vector dimension.
func (i *Index) Dimensions() int {
	return i.dimensions
}

// Close closes the underlying database.
func (i *Index) Close() error {
	return i.backend.Close()
}

// Records returns the metadata of every entry in the index.
// Used by maintenance tooling to rebuild the index after an embedding
// model change.
func (i *Index) Records(ctx context.Context) ([]*core.ProfileRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var records []*core.ProfileRecord

	err := i.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(entryPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var entry storedEntry
			err := iter.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &entry)
			})
			if err != nil {
				return err
			}
			record := entry.Metadata
			records = append(records, &record)
		}

		return nil
	}, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", index.ErrUnavailable, err)
	}

	return records, nil
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Zero-magnitude vectors score 0.
func cosineSimilarity(a, b []float32) float32 {
	var dot, normA, normB float64
	for idx := range a {
		dot += float64(a[idx]) * float64(b[idx])
		normA += float64(a[idx]) * float64(a[idx])
		normB += float64(b[idx]) * float64(b[idx])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
