package assistant

import (
	"context"
	"log/slog"

	"github.com/poiesic/proflens/ai"
	"github.com/poiesic/proflens/core"
)

// Retriever finds the profiles most relevant to a query.
type Retriever interface {
	Retrieve(ctx context.Context, query string) ([]core.RetrievalMatch, error)
}

// Assembler builds model input from a conversation and retrieved
// profiles.
type Assembler interface {
	Assemble(conversation []core.Message, matches []core.RetrievalMatch) ([]ai.Message, error)
}

// Service runs the query path end to end: validate the conversation,
// retrieve context for the latest user turn, assemble the prompt, and
// start a generation stream.
type Service struct {
	retriever Retriever
	assembler Assembler
	chat      ai.ChatModel
	logger    *slog.Logger
}

// Option configures a Service.
type Option func(*Service) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewService creates a new assistant service.
func NewService(retriever Retriever, assembler Assembler, chat ai.ChatModel, opts ...Option) (*Service, error) {
	if retriever == nil {
		return nil, ErrRetrieverRequired
	}
	if assembler == nil {
		return nil, ErrAssemblerRequired
	}
	if chat == nil {
		return nil, ErrChatModelRequired
	}

	s := &Service{
		retriever: retriever,
		assembler: assembler,
		chat:      chat,
		logger:    slog.Default().With("component", "assistant"),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Ask answers the latest user turn of a conversation.
//
// The returned stream delivers the answer incrementally; the caller
// owns it and must drain or close it. Errors before the stream starts
// (validation, retrieval, assembly, model call) are returned directly,
// so a non-nil stream means generation has begun.
func (s *Service) Ask(ctx context.Context, conversation []core.Message) (*ai.Stream, error) {
	if err := core.ValidateConversation(conversation); err != nil {
		return nil, err
	}

	latest, ok := core.LatestMessage(conversation)
	if !ok {
		return nil, core.ErrEmptyConversation
	}

	matches, err := s.retriever.Retrieve(ctx, latest.Text)
	if err != nil {
		s.logger.Error("error retrieving context", "err", err)
		return nil, err
	}

	messages, err := s.assembler.Assemble(conversation, matches)
	if err != nil {
		return nil, err
	}

	stream, err := s.chat.StreamChat(ctx, messages)
	if err != nil {
		s.logger.Error("error starting generation", "err", err)
		return nil, err
	}

	s.logger.Debug("generation started", "turns", len(conversation), "matches", len(matches))
	return stream, nil
}
