package ai

import (
	"fmt"
	"io"
)

// Stream is a pull-based, consume-once sequence of generated text
// fragments. Fragments arrive in model emission order; the sequence is
// finite but its length is not known in advance.
//
// Recv returns io.EOF after the final fragment of a completed
// generation. If the generation fails or is cancelled after partial
// output, Recv returns an error wrapping ErrStreamAborted instead, so
// the caller can distinguish a complete answer from a truncated one.
//
// A Stream is not safe for concurrent use by multiple goroutines.
type Stream struct {
	fragments <-chan string
	result    <-chan error
	cancel    func()
	err       error
}

// NewStream assembles a Stream from producer channels.
//
// The producer must send fragments on the fragments channel, then send
// exactly one final error (nil for clean termination) on the result
// channel, then close the fragments channel. The result channel must be
// buffered so the producer never blocks on an abandoned consumer.
// cancel is invoked by Close to stop the producer.
func NewStream(fragments <-chan string, result <-chan error, cancel func()) *Stream {
	return &Stream{
		fragments: fragments,
		result:    result,
		cancel:    cancel,
	}
}

// Recv returns the next text fragment. It blocks until a fragment is
// available, the stream completes (io.EOF), or the stream aborts
// (an error wrapping ErrStreamAborted). After a terminal result, every
// subsequent call returns the same terminal error.
func (s *Stream) Recv() (string, error) {
	if s.err != nil {
		return "", s.err
	}

	fragment, ok := <-s.fragments
	if ok {
		return fragment, nil
	}

	if err := <-s.result; err != nil {
		s.err = fmt.Errorf("%w: %v", ErrStreamAborted, err)
	} else {
		s.err = io.EOF
	}
	return "", s.err
}

// Close cancels the underlying generation and releases its resources.
// It is safe to call Close at any point, including after Recv returned
// a terminal result, and safe to call more than once.
func (s *Stream) Close() error {
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}
