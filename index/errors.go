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


package index

import "errors"

var (
	// ErrUnavailable indicates a transient backend failure while
	// talking to the vector index.
	ErrUnavailable = errors.New("vector index unavailable")

	// ErrDimensionMismatch indicates a vector whose dimension disagrees
	// with the dimension the index was configured with. This is a
	// configuration error, never silently truncated.
	ErrDimensionMismatch = errors.New("vector dimension does not match index configuration")

	// ErrEmptyID indicates an entry without an identifier.
	ErrEmptyID = errors.New("entry id cannot be empty")

	// ErrInvalidLimit indicates a non-positive result limit.
	ErrInvalidLimit = errors.New("result limit must be positive")
)
