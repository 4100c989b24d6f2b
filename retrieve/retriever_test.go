package retrieve

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/proflens/ai/mock"
	"github.com/poiesic/proflens/core"
	"github.com/poiesic/proflens/index"
	"github.com/poiesic/proflens/index/badger"
)

func newTestIndex(t *testing.T) *badger.Index {
	t.Helper()
	idx, err := badger.NewMemoryIndex(3)
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })
	return idx
}

func seedProfiles(t *testing.T, idx *badger.Index, entries map[string][]float32) {
	t.Helper()
	for name, vector := range entries {
		profile := core.NewProfileRecord(name, "4.0", []string{"Helpful"}, nil)
		err := idx.Upsert(context.Background(), index.Entry{
			Id:       profile.Id,
			Vector:   vector,
			Metadata: *profile,
		})
		require.NoError(t, err)
	}
}

func TestNewRetriever_RequiresCollaborators(t *testing.T) {
	idx := newTestIndex(t)

	_, err := NewRetriever(nil, idx)
	assert.ErrorIs(t, err, ErrEmbedderRequired)

	_, err = NewRetriever(&mock.MockEmbedder{Dimensions: 3}, nil)
	assert.ErrorIs(t, err, ErrIndexRequired)
}

func TestNewRetriever_InvalidLimit(t *testing.T) {
	_, err := NewRetriever(&mock.MockEmbedder{Dimensions: 3}, newTestIndex(t), WithLimit(0))
	assert.ErrorIs(t, err, ErrInvalidLimit)
}

func TestRetrieve_TopKOrdering(t *testing.T) {
	idx := newTestIndex(t)
	seedProfiles(t, idx, map[string][]float32{
		"Exact":      {1, 0, 0},
		"Close":      {0.9, 0.1, 0},
		"Far":        {0.1, 0.9, 0},
		"Orthogonal": {0, 0, 1},
	})

	embedder := &mock.MockEmbedder{
		EmbedTextFunc: func(ctx context.Context, text string) ([]float32, error) {
			return []float32{1, 0, 0}, nil
		},
	}

	retriever, err := NewRetriever(embedder, idx)
	require.NoError(t, err)

	matches, err := retriever.Retrieve(context.Background(), "who teaches calculus best?")
	require.NoError(t, err)
	require.Len(t, matches, DefaultLimit)

	assert.Equal(t, "Exact", matches[0].Profile.Name)
	assert.Equal(t, "Close", matches[1].Profile.Name)
	assert.Equal(t, "Far", matches[2].Profile.Name)
	assert.Greater(t, matches[0].Score, matches[1].Score)
	assert.Greater(t, matches[1].Score, matches[2].Score)
}

func TestRetrieve_FewerThanLimit(t *testing.T) {
	idx := newTestIndex(t)
	seedProfiles(t, idx, map[string][]float32{
		"Only": {1, 0, 0},
	})

	embedder := &mock.MockEmbedder{
		EmbedTextFunc: func(ctx context.Context, text string) ([]float32, error) {
			return []float32{1, 0, 0}, nil
		},
	}

	retriever, err := NewRetriever(embedder, idx)
	require.NoError(t, err)

	matches, err := retriever.Retrieve(context.Background(), "anyone?")
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestRetrieve_EmptyIndex(t *testing.T) {
	embedder := &mock.MockEmbedder{Dimensions: 3}

	retriever, err := NewRetriever(embedder, newTestIndex(t))
	require.NoError(t, err)

	matches, err := retriever.Retrieve(context.Background(), "anyone?")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestRetrieve_RejectsBlankQueryWithoutBackendCalls(t *testing.T) {
	embedder := &mock.MockEmbedder{Dimensions: 3}

	retriever, err := NewRetriever(embedder, newTestIndex(t))
	require.NoError(t, err)

	for _, query := range []string{"", "   ", "\n\t"} {
		_, err := retriever.Retrieve(context.Background(), query)
		assert.ErrorIs(t, err, core.ErrEmptyQuery)
	}

	assert.Equal(t, 0, embedder.CallCount(), "blank queries must not reach the embedder")
}

func TestRetrieve_PropagatesEmbedderFailure(t *testing.T) {
	want := errors.New("provider down")
	embedder := &mock.MockEmbedder{
		EmbedTextFunc: func(ctx context.Context, text string) ([]float32, error) {
			return nil, want
		},
	}

	retriever, err := NewRetriever(embedder, newTestIndex(t))
	require.NoError(t, err)

	_, err = retriever.Retrieve(context.Background(), "who?")
	assert.ErrorIs(t, err, want)
}
