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


// Package badger implements index.Provider on a local BadgerDB store.
//
// Queries perform a full scan with cosine scoring, which keeps the
// implementation simple and exact. That is fine for the intended uses
// (offline development, CI, small datasets); the hosted Pinecone
// backend serves production-scale retrieval.
package badger
