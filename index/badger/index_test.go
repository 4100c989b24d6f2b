package badger

import (
	"context"
	"testing"

	"github.com/poiesic/proflens/core"
	"github.com/poiesic/proflens/index"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIndex(t *testing.T) *Index {
	t.Helper()

	idx, err := NewMemoryIndex(3)
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })

	return idx
}

func testEntry(name string, vector []float32) index.Entry {
	profile := core.NewProfileRecord(name, "4.2", []string{"Caring", "Clear lectures"}, []string{"Good class."})
	return index.Entry{Id: profile.Id, Vector: vector, Metadata: *profile}
}

func TestIndex_UpsertAndQuery(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	require.NoError(t, idx.Upsert(ctx, testEntry("Ada Lovelace", []float32{1, 0, 0})))

	matches, err := idx.Query(ctx, []float32{1, 0, 0}, 3)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Ada Lovelace", matches[0].Profile.Name)
	assert.InDelta(t, 1.0, matches[0].Score, 1e-5)
}

func TestIndex_UpsertReplacesExisting(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	first := testEntry("Ada Lovelace", []float32{1, 0, 0})
	require.NoError(t, idx.Upsert(ctx, first))

	second := first
	second.Metadata.Rating = "4.9"
	second.Vector = []float32{0, 1, 0}
	require.NoError(t, idx.Upsert(ctx, second))

	matches, err := idx.Query(ctx, []float32{0, 1, 0}, 10)
	require.NoError(t, err)
	require.Len(t, matches, 1, "re-ingestion must overwrite, never duplicate")
	assert.Equal(t, "4.9", matches[0].Profile.Rating)
}

func TestIndex_QueryTopKOrdering(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	// Four entries with distinct, known similarity to the probe vector.
	require.NoError(t, idx.Upsert(ctx, testEntry("Exact", []float32{1, 0, 0})))
	require.NoError(t, idx.Upsert(ctx, testEntry("Close", []float32{1, 0.5, 0})))
	require.NoError(t, idx.Upsert(ctx, testEntry("Far", []float32{1, 2, 0})))
	require.NoError(t, idx.Upsert(ctx, testEntry("Orthogonal", []float32{0, 1, 0})))

	matches, err := idx.Query(ctx, []float32{1, 0, 0}, 3)
	require.NoError(t, err)
	require.Len(t, matches, 3)

	assert.Equal(t, "Exact", matches[0].Profile.Name)
	assert.Equal(t, "Close", matches[1].Profile.Name)
	assert.Equal(t, "Far", matches[2].Profile.Name)

	for i := 1; i < len(matches); i++ {
		assert.GreaterOrEqual(t, matches[i-1].Score, matches[i].Score)
	}
}

func TestIndex_QueryFewerThanK(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	require.NoError(t, idx.Upsert(ctx, testEntry("Only One", []float32{1, 0, 0})))

	matches, err := idx.Query(ctx, []float32{1, 0, 0}, 3)
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestIndex_DimensionMismatch(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	err := idx.Upsert(ctx, testEntry("Ada Lovelace", []float32{1, 0}))
	assert.ErrorIs(t, err, index.ErrDimensionMismatch)

	_, err = idx.Query(ctx, []float32{1, 0, 0, 0}, 3)
	assert.ErrorIs(t, err, index.ErrDimensionMismatch)
}

func TestIndex_InvalidArguments(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	err := idx.Upsert(ctx, index.Entry{Vector: []float32{1, 0, 0}})
	assert.ErrorIs(t, err, index.ErrEmptyID)

	_, err = idx.Query(ctx, []float32{1, 0, 0}, 0)
	assert.ErrorIs(t, err, index.ErrInvalidLimit)
}

func TestIndex_Records(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	require.NoError(t, idx.Upsert(ctx, testEntry("Ada Lovelace", []float32{1, 0, 0})))
	require.NoError(t, idx.Upsert(ctx, testEntry("Grace Hopper", []float32{0, 1, 0})))

	records, err := idx.Records(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)

	names := []string{records[0].Name, records[1].Name}
	assert.ElementsMatch(t, []string{"Ada Lovelace", "Grace Hopper"}, names)
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float32{1, 2, 3}, []float32{2, 4, 6}), 1e-5)
	assert.InDelta(t, 0.0, cosineSimilarity([]float32{1, 0, 0}, []float32{0, 1, 0}), 1e-5)
	assert.InDelta(t, -1.0, cosineSimilarity([]float32{1, 0, 0}, []float32{-1, 0, 0}), 1e-5)
	assert.Equal(t, float32(0), cosineSimilarity([]float32{0, 0, 0}, []float32{1, 0, 0}))
}
