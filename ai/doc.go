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


// Package ai provides abstractions for the AI services used in Proflens.
//
// This package defines interfaces for text embedding and streaming answer
// generation. It follows the dependency inversion principle, allowing the
// ingestion and query pipelines to depend on abstractions rather than
// concrete implementations.
//
// # Design Principles
//
// The package is designed around three key interfaces:
//
//   - Embedder: Generates vector embeddings from text
//   - ChatModel: Invokes a language model in streaming mode
//   - AIProvider: Aggregates AI services for convenient initialization
//
// Generation output is exposed as a pull-based Stream rather than push
// callbacks: the consumer drives the pace, cancellation is first-class
// via Stream.Close, and clean termination (io.EOF) is distinguishable
// from an aborted stream (ErrStreamAborted).
//
// # Implementation Packages
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewProvider, openai.NewEmbedder, etc.) return
// INTERFACE types to enforce abstraction and prevent accidental coupling to
// concrete implementations.
//
//	provider, err := openai.NewProvider(config)  // returns ai.AIProvider
//
// Test utility constructors (mock.NewMockEmbedder, mock.NewMockChatModel)
// return CONCRETE types to enable test assertions and behavior injection
// via the mock's public fields and methods.
package ai
