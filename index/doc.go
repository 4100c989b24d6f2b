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


// Package index defines the vector index abstraction used by the
// ingestion and query pipelines.
//
// A Provider is a namespaced nearest-neighbor store keyed by record
// identifier. All operations of one Provider instance are scoped to a
// single logical namespace dedicated to the review dataset.
//
// # Implementation Packages
//
//   - index/pinecone: hosted Pinecone index, the production backend
//   - index/badger: local BadgerDB-backed index for tests and offline use
//
// Both backends must use the same similarity measure, since vectors
// written at ingestion time are compared directly at query time.
package index
