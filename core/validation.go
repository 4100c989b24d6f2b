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

import (
	"fmt"
	"strings"
)

// ValidateProfileRecord validates a ProfileRecord according to domain rules.
//
// Validation rules:
//   - Id must not be empty
//   - Name must not be empty
//   - Tags must not be empty (the tag summary is the embedded text,
//     so a record without tags cannot be indexed)
//
// NOT validated:
//   - Rating (source data is not guaranteed numeric; kept opaque)
//   - Reviews (a profile without reviews is unusual but indexable)
func ValidateProfileRecord(record *ProfileRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidRecord)
	}

	if strings.TrimSpace(record.Id) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptyID)
	}

	if strings.TrimSpace(record.Name) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptyName)
	}

	if strings.TrimSpace(record.TagSummary()) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrNoTags)
	}

	return nil
}

// ValidateSender validates that a Sender has a valid value.
func ValidateSender(sender Sender) error {
	if sender != SenderUser && sender != SenderAssistant {
		return fmt.Errorf("%w: value %d", ErrInvalidSender, sender)
	}
	return nil
}

// ValidateConversation validates a conversation for the query path.
//
// Validation rules:
//   - The conversation must contain at least one message
//   - Every message must carry a valid sender
//   - The final message must come from the user and have non-empty text
func ValidateConversation(conversation []Message) error {
	if len(conversation) == 0 {
		return ErrEmptyConversation
	}

	for i, message := range conversation {
		if err := ValidateSender(message.Sender); err != nil {
			return fmt.Errorf("message %d: %w", i, err)
		}
	}

	latest := conversation[len(conversation)-1]
	if latest.Sender != SenderUser {
		return ErrNotUserTurn
	}
	if strings.TrimSpace(latest.Text) == "" {
		return ErrEmptyQuery
	}

	return nil
}
