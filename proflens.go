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


package proflens

import (
	"log/slog"

	"github.com/poiesic/proflens/ai"
	"github.com/poiesic/proflens/ai/openai"
	"github.com/poiesic/proflens/assistant"
	"github.com/poiesic/proflens/index"
	"github.com/poiesic/proflens/ingest"
	"github.com/poiesic/proflens/prompt"
	"github.com/poiesic/proflens/retrieve"
)

// Pipeline wires the full ingestion and query paths over one AI
// provider and one vector index. It is the entry point for embedding
// proflens as a library.
type Pipeline struct {
	provider  ai.AIProvider
	index     index.Provider
	ingestor  *ingest.Ingestor
	retriever *retrieve.Retriever
	assistant *assistant.Service
	logger    *slog.Logger
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*pipelineOptions)

type pipelineOptions struct {
	aiConfig *ai.Config
	limit    int
}

// WithAIConfig sets the AI provider configuration.
// Default is ai.DefaultConfig().
func WithAIConfig(config *ai.Config) PipelineOption {
	return func(o *pipelineOptions) {
		o.aiConfig = config
	}
}

// WithRetrievalLimit sets how many profiles each query retrieves.
// Default is retrieve.DefaultLimit.
func WithRetrievalLimit(limit int) PipelineOption {
	return func(o *pipelineOptions) {
		o.limit = limit
	}
}

// NewPipeline creates a pipeline over the given vector index.
// The index is owned by the pipeline once passed in and is closed by
// Close.
func NewPipeline(idx index.Provider, opts ...PipelineOption) (*Pipeline, error) {
	options := &pipelineOptions{
		aiConfig: ai.DefaultConfig(),
		limit:    retrieve.DefaultLimit,
	}
	for _, opt := range opts {
		opt(options)
	}

	provider, err := openai.NewProvider(options.aiConfig)
	if err != nil {
		return nil, err
	}

	return newPipeline(provider, idx, options.limit)
}

// NewPipelineWithProvider creates a pipeline over an existing provider,
// typically a test double. The provider and index are closed by Close.
func NewPipelineWithProvider(provider ai.AIProvider, idx index.Provider, opts ...PipelineOption) (*Pipeline, error) {
	options := &pipelineOptions{
		limit: retrieve.DefaultLimit,
	}
	for _, opt := range opts {
		opt(options)
	}

	return newPipeline(provider, idx, options.limit)
}

func newPipeline(provider ai.AIProvider, idx index.Provider, limit int) (*Pipeline, error) {
	ingestor, err := ingest.NewIngestor(provider.Embedder(), idx)
	if err != nil {
		provider.Close()
		return nil, err
	}

	retriever, err := retrieve.NewRetriever(provider.Embedder(), idx, retrieve.WithLimit(limit))
	if err != nil {
		provider.Close()
		return nil, err
	}

	service, err := assistant.NewService(retriever, prompt.NewAssembler(), provider.ChatModel())
	if err != nil {
		provider.Close()
		return nil, err
	}

	return &Pipeline{
		provider:  provider,
		index:     idx,
		ingestor:  ingestor,
		retriever: retriever,
		assistant: service,
		logger:    slog.Default(),
	}, nil
}

// Ingestor returns the ingestion path.
func (p *Pipeline) Ingestor() *ingest.Ingestor {
	return p.ingestor
}

// Retriever returns the retrieval stage.
func (p *Pipeline) Retriever() *retrieve.Retriever {
	return p.retriever
}

// Assistant returns the query path.
func (p *Pipeline) Assistant() *assistant.Service {
	return p.assistant
}

// Index returns the vector index.
func (p *Pipeline) Index() index.Provider {
	return p.index
}

// Close releases the provider and the index.
func (p *Pipeline) Close() error {
	if err := p.provider.Close(); err != nil {
		p.logger.Error("error closing AI provider", "err", err)
	}
	if err := p.index.Close(); err != nil {
		p.logger.Error("error closing vector index", "err", err)
		return err
	}
	return nil
}
