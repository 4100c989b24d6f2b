package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Empty input (after trimming) fails with ErrEmptyInput; backend
	// failures are reported as ErrProviderUnavailable.
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

// Role identifies who a generation message is attributed to.
type Role int

const (
	// RoleSystem carries the fixed assistant instruction.
	RoleSystem Role = iota + 1
	// RoleUser carries user turns, including the context-augmented latest turn.
	RoleUser
	// RoleAssistant carries prior generated turns.
	RoleAssistant
)

// Message is a single role-tagged entry of a generation request.
type Message struct {
	Role Role
	Text string
}

// ChatModel invokes a language model in streaming mode.
// Implementations must be thread-safe for concurrent use.
type ChatModel interface {
	// StreamChat starts a generation for the given ordered messages and
	// returns a pull-based stream of text fragments. The stream must be
	// consumed or closed by the caller; closing it cancels the underlying
	// model call.
	StreamChat(ctx context.Context, messages []Message) (*Stream, error)
}

// AIProvider aggregates AI services for convenient initialization and
// lifecycle management. A provider creates and manages Embedder and
// ChatModel instances, ensuring they share configuration appropriately.
type AIProvider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// ChatModel returns the streaming generation service.
	// The returned ChatModel is safe for concurrent use.
	ChatModel() ChatModel

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
