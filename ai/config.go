// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ai

import (
	"errors"
	"strings"
)

// Config holds configuration for AI service providers.
type Config struct {
	// Host is the base URL for an OpenAI-compatible API.
	// Leave empty to use the hosted OpenAI endpoint.
	// Example: "http://localhost:11434/v1" for a local server
	Host string

	// APIKey is the credential for the AI backend.
	// Required when Host is empty (hosted OpenAI); optional for local
	// OpenAI-compatible services that don't require authentication.
	APIKey string

	// EmbeddingModel is the model identifier to use for text embeddings.
	// Example: "text-embedding-3-small"
	EmbeddingModel string

	// ChatModel is the model identifier to use for answer generation.
	// Example: "gpt-4o-mini"
	ChatModel string

	// EmbeddingDimensions is the expected dimension of embedding vectors.
	// It must match the dimension the vector index was created with; a
	// mismatch is a fatal configuration error, never a silent truncation.
	EmbeddingDimensions int
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithHost sets the base URL for an OpenAI-compatible API.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithAPIKey sets the backend credential.
func WithAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithChatModel sets the generation model identifier.
func WithChatModel(model string) ConfigOption {
	return func(c *Config) {
		c.ChatModel = model
	}
}

// WithEmbeddingDimensions sets the expected embedding dimension.
func WithEmbeddingDimensions(dimensions int) ConfigOption {
	return func(c *Config) {
		c.EmbeddingDimensions = dimensions
	}
}

// DefaultConfig returns a Config with the models and dimension the
// review dataset was indexed with.
func DefaultConfig() *Config {
	return &Config{
		EmbeddingModel:      "text-embedding-3-small",
		ChatModel:           "gpt-4o-mini",
		EmbeddingDimensions: 1536,
	}
}

// NewConfig creates a Config with the default values and applies the
// provided options. This is the recommended way to create a Config with
// custom settings.
//
// Example:
//
//	cfg := ai.NewConfig(
//	    ai.WithAPIKey(key),
//	    ai.WithChatModel("gpt-4o"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// It automatically adds the /v1 suffix to a custom host if missing,
// which is required by most OpenAI-compatible APIs (Ollama, LocalAI,
// vLLM, etc).
func (c *Config) Normalize() {
	if c.Host != "" && !strings.HasSuffix(c.Host, "/v1") {
		c.Host = strings.TrimSuffix(c.Host, "/")
		c.Host = c.Host + "/v1"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.APIKey == "" && c.Host == "" {
		return errors.New("ai config: APIKey is required for the hosted endpoint")
	}
	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	if c.ChatModel == "" {
		return errors.New("ai config: ChatModel is required")
	}
	if c.EmbeddingDimensions <= 0 {
		return errors.New("ai config: EmbeddingDimensions must be positive")
	}
	return nil
}
