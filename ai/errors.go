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

import "errors"

var (
	// ErrEmptyInput indicates the input text was empty after trimming.
	// The pipeline never embeds or generates from an empty string.
	ErrEmptyInput = errors.New("input text cannot be empty")

	// ErrProviderUnavailable indicates a transient backend failure
	// (network or auth) while calling the AI provider.
	ErrProviderUnavailable = errors.New("ai provider unavailable")

	// ErrStreamAborted indicates a generation stream terminated after
	// partial output, either through failure or cancellation. Fragments
	// already delivered are not retracted, but the answer is incomplete.
	ErrStreamAborted = errors.New("generation stream aborted")
)
