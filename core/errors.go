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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidRecord indicates a ProfileRecord failed validation.
	ErrInvalidRecord = errors.New("invalid profile record")

	// ErrEmptyID indicates the record Id field is empty.
	ErrEmptyID = errors.New("record id cannot be empty")

	// ErrEmptyName indicates the instructor display name is empty.
	ErrEmptyName = errors.New("instructor name cannot be empty")

	// ErrNoTags indicates the record carries no tags, leaving nothing to embed.
	ErrNoTags = errors.New("record has no tags")

	// ErrEmptyQuery indicates a query string is empty after trimming.
	ErrEmptyQuery = errors.New("query cannot be empty")

	// ErrEmptyConversation indicates a conversation contains no messages.
	ErrEmptyConversation = errors.New("conversation cannot be empty")

	// ErrInvalidSender indicates an invalid Sender value.
	ErrInvalidSender = errors.New("invalid sender")

	// ErrNotUserTurn indicates a conversation does not end with a user message.
	ErrNotUserTurn = errors.New("conversation must end with a user message")
)
