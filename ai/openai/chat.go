package openai

import (
	"context"
	"log/slog"

	"github.com/poiesic/proflens/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// ChatModel implements ai.ChatModel using OpenAI-compatible chat APIs.
// It adapts the backend's push-style streaming callback into the
// pull-based ai.Stream.
type ChatModel struct {
	client llms.Model
	logger *slog.Logger
}

// newChatModel is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newChatModel(config *ai.Config) (*ChatModel, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(clientOptions(config, openai.WithModel(config.ChatModel))...)
	if err != nil {
		return nil, err
	}

	return &ChatModel{
		client: client,
		logger: slog.Default().With("component", "openai-chat"),
	}, nil
}

// NewChatModel creates a new streaming chat model using the provided
// configuration.
//
// Returns ai.ChatModel interface to enforce abstraction.
func NewChatModel(config *ai.Config) (ai.ChatModel, error) {
	return newChatModel(config)
}

// StreamChat starts a streaming generation for the given messages.
//
// The model call runs in a producer goroutine; fragments are handed to
// the returned stream as the backend emits them. Closing the stream
// cancels the model call promptly, so an abandoned consumer never
// leaves an orphaned generation running.
func (c *ChatModel) StreamChat(ctx context.Context, messages []ai.Message) (*ai.Stream, error) {
	if len(messages) == 0 {
		return nil, ai.ErrEmptyInput
	}

	content := make([]llms.MessageContent, 0, len(messages))
	for _, message := range messages {
		content = append(content, llms.MessageContent{
			Role:  chatRole(message.Role),
			Parts: []llms.ContentPart{llms.TextPart(message.Text)},
		})
	}

	sctx, cancel := context.WithCancel(ctx)

	fragments := make(chan string)
	result := make(chan error, 1)

	go func() {
		defer close(fragments)

		_, err := c.client.GenerateContent(sctx, content,
			llms.WithStreamingFunc(func(ctx context.Context, chunk []byte) error {
				if len(chunk) == 0 {
					return nil
				}
				select {
				case fragments <- string(chunk):
					return nil
				case <-sctx.Done():
					return sctx.Err()
				}
			}))
		if err != nil {
			c.logger.Error("generation failed", "err", err)
		}
		result <- err
	}()

	return ai.NewStream(fragments, result, cancel), nil
}

// chatRole maps ai roles onto the backend's message types.
func chatRole(role ai.Role) llms.ChatMessageType {
	switch role {
	case ai.RoleSystem:
		return llms.ChatMessageTypeSystem
	case ai.RoleAssistant:
		return llms.ChatMessageTypeAI
	default:
		return llms.ChatMessageTypeHuman
	}
}
