package core

import (
	"errors"
	"testing"
)

func TestValidateProfileRecord(t *testing.T) {
	tests := []struct {
		name    string
		record  *ProfileRecord
		wantErr error
	}{
		{
			name:   "valid record",
			record: NewProfileRecord("Ada Lovelace", "4.8", []string{"Caring"}, []string{"Great class."}),
		},
		{
			name:    "nil record",
			record:  nil,
			wantErr: ErrInvalidRecord,
		},
		{
			name:    "empty id",
			record:  &ProfileRecord{Name: "Ada Lovelace", Tags: []string{"Caring"}},
			wantErr: ErrEmptyID,
		},
		{
			name:    "empty name",
			record:  &ProfileRecord{Id: "x", Tags: []string{"Caring"}},
			wantErr: ErrEmptyName,
		},
		{
			name:    "no tags",
			record:  &ProfileRecord{Id: "Ada Lovelace", Name: "Ada Lovelace"},
			wantErr: ErrNoTags,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProfileRecord(tt.record)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateProfileRecord() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateProfileRecord() = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidRecord) {
				t.Errorf("ValidateProfileRecord() = %v, want wrapped %v", err, ErrInvalidRecord)
			}
		})
	}
}

func TestValidateSender(t *testing.T) {
	if err := ValidateSender(SenderUser); err != nil {
		t.Errorf("ValidateSender(SenderUser) = %v", err)
	}
	if err := ValidateSender(SenderAssistant); err != nil {
		t.Errorf("ValidateSender(SenderAssistant) = %v", err)
	}
	if err := ValidateSender(Sender(0)); !errors.Is(err, ErrInvalidSender) {
		t.Errorf("ValidateSender(0) = %v, want %v", err, ErrInvalidSender)
	}
}

func TestValidateConversation(t *testing.T) {
	tests := []struct {
		name         string
		conversation []Message
		wantErr      error
	}{
		{
			name: "valid single turn",
			conversation: []Message{
				{Text: "who teaches calculus?", Sender: SenderUser},
			},
		},
		{
			name: "valid multi turn",
			conversation: []Message{
				{Text: "who teaches calculus?", Sender: SenderUser},
				{Text: "Professor Lovelace does.", Sender: SenderAssistant},
				{Text: "is she a tough grader?", Sender: SenderUser},
			},
		},
		{
			name:    "empty conversation",
			wantErr: ErrEmptyConversation,
		},
		{
			name: "invalid sender",
			conversation: []Message{
				{Text: "hello", Sender: Sender(7)},
			},
			wantErr: ErrInvalidSender,
		},
		{
			name: "ends with assistant turn",
			conversation: []Message{
				{Text: "hello", Sender: SenderUser},
				{Text: "hi there", Sender: SenderAssistant},
			},
			wantErr: ErrNotUserTurn,
		},
		{
			name: "blank latest text",
			conversation: []Message{
				{Text: "   ", Sender: SenderUser},
			},
			wantErr: ErrEmptyQuery,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConversation(tt.conversation)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateConversation() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateConversation() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
