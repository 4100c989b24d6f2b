package ai

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// produceStream runs a producer goroutine following the NewStream contract.
func produceStream(ctx context.Context, fragments []string, finalErr error) *Stream {
	sctx, cancel := context.WithCancel(ctx)

	out := make(chan string)
	result := make(chan error, 1)

	go func() {
		defer close(out)
		for _, fragment := range fragments {
			select {
			case out <- fragment:
			case <-sctx.Done():
				result <- sctx.Err()
				return
			}
		}
		result <- finalErr
	}()

	return NewStream(out, result, cancel)
}

func TestStream_CleanTermination(t *testing.T) {
	stream := produceStream(context.Background(), []string{"Hello", " ", "world"}, nil)
	defer stream.Close()

	var got []string
	for {
		fragment, err := stream.Recv()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, fragment)
	}

	assert.Equal(t, []string{"Hello", " ", "world"}, got)

	// Terminal result is sticky
	_, err := stream.Recv()
	assert.Equal(t, io.EOF, err)
}

func TestStream_AbortedAfterPartialOutput(t *testing.T) {
	stream := produceStream(context.Background(), []string{"Hel"}, errors.New("connection reset"))
	defer stream.Close()

	fragment, err := stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, "Hel", fragment)

	_, err = stream.Recv()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStreamAborted)
	assert.NotEqual(t, io.EOF, err, "abort must never look like a clean close")

	// Sticky abort
	_, err = stream.Recv()
	assert.ErrorIs(t, err, ErrStreamAborted)
}

func TestStream_CloseCancelsProducer(t *testing.T) {
	sctx, cancel := context.WithCancel(context.Background())

	out := make(chan string)
	result := make(chan error, 1)

	// Producer that emits one fragment and then blocks until cancelled,
	// standing in for a model call that is still generating.
	go func() {
		defer close(out)
		out <- "a"
		<-sctx.Done()
		result <- sctx.Err()
	}()

	stream := NewStream(out, result, cancel)

	fragment, err := stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, "a", fragment)

	require.NoError(t, stream.Close())

	_, err = stream.Recv()
	assert.ErrorIs(t, err, ErrStreamAborted)
}

func TestStream_EmptyCompletion(t *testing.T) {
	stream := produceStream(context.Background(), nil, nil)
	defer stream.Close()

	_, err := stream.Recv()
	assert.Equal(t, io.EOF, err)
}
