package mock

import (
	"context"
	"sync"

	"github.com/poiesic/proflens/ai"
)

// MockChatModel is a test double for ai.ChatModel.
// By default it streams the configured Fragments in order and then
// terminates with Err (nil for a clean close).
// Safe for concurrent use, matching the ai.ChatModel contract.
type MockChatModel struct {
	// StreamChatFunc is called by StreamChat if set.
	// If nil, uses the Fragments/Err scripted behavior.
	StreamChatFunc func(ctx context.Context, messages []ai.Message) (*ai.Stream, error)

	// Fragments are streamed in order before termination.
	Fragments []string

	// Err terminates the stream after all fragments were delivered.
	// nil produces a clean termination.
	Err error

	mu        sync.Mutex
	callCount int
	lastInput []ai.Message
}

// NewMockChatModel creates a mock chat model that streams the given
// fragments and then closes cleanly.
// Note: Returns concrete type to allow test assertions.
func NewMockChatModel(fragments ...string) *MockChatModel {
	return &MockChatModel{Fragments: fragments}
}

// StreamChat streams the scripted fragments. Context cancellation (or
// closing the returned stream) aborts delivery like a real backend.
func (m *MockChatModel) StreamChat(ctx context.Context, messages []ai.Message) (*ai.Stream, error) {
	m.mu.Lock()
	m.callCount++
	m.lastInput = messages
	fn := m.StreamChatFunc
	scripted := make([]string, len(m.Fragments))
	copy(scripted, m.Fragments)
	finalErr := m.Err
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, messages)
	}

	if len(messages) == 0 {
		return nil, ai.ErrEmptyInput
	}

	sctx, cancel := context.WithCancel(ctx)

	fragments := make(chan string)
	result := make(chan error, 1)

	go func() {
		defer close(fragments)
		for _, fragment := range scripted {
			select {
			case fragments <- fragment:
			case <-sctx.Done():
				result <- sctx.Err()
				return
			}
		}
		result <- finalErr
	}()

	return ai.NewStream(fragments, result, cancel), nil
}

// CallCount returns the number of times StreamChat was called.
func (m *MockChatModel) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// LastInput returns the messages passed to the most recent StreamChat call.
func (m *MockChatModel) LastInput() []ai.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastInput
}

// Reset clears recorded calls and injected behavior.
func (m *MockChatModel) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.lastInput = nil
	m.StreamChatFunc = nil
}
