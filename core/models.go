package core

import "strings"

// ProfileRecord is the unit of knowledge about one instructor.
// It is produced by the scraping collaborator and stored as vector-index
// metadata alongside the embedding of its tag summary.
type ProfileRecord struct {
	Id      string   // Index key, derived from the display name
	Name    string   // Display name
	Rating  string   // Overall rating; source data is not guaranteed numeric, so kept opaque
	Tags    []string // Short descriptors, deduplicated, first-seen order
	Reviews []string // Free-text review bodies in page order
}

// NewProfileRecord builds a ProfileRecord from raw scraped fields.
// Tags are normalized (deduplicated, first-seen order) and the Id is
// derived from the display name.
func NewProfileRecord(name, rating string, tags, reviews []string) *ProfileRecord {
	return &ProfileRecord{
		Id:      IDFromName(name),
		Name:    strings.TrimSpace(name),
		Rating:  strings.TrimSpace(rating),
		Tags:    NormalizeTags(tags),
		Reviews: reviews,
	}
}

// IDFromName derives a stable record identifier from an instructor's
// display name. Identical names always produce identical IDs, so
// re-ingesting the same instructor overwrites rather than duplicates.
func IDFromName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// NormalizeTags removes duplicate and blank tags while preserving
// first-seen order.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	normalized := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		normalized = append(normalized, tag)
	}
	return normalized
}

// TagSummary renders the tags as a comma-joined string. This is the
// representative text embedded for the record at ingestion time.
func (p *ProfileRecord) TagSummary() string {
	return strings.Join(p.Tags, ", ")
}

// Sender identifies the source of a conversation message.
type Sender int

const (
	// SenderUser represents the human asking questions.
	SenderUser Sender = iota + 1
	// SenderAssistant represents the generated answers.
	SenderAssistant
)

// Message is a single turn in a conversation. An ordered slice of
// messages forms the conversation, which is owned by the caller and
// treated as immutable input per request.
type Message struct {
	Text   string
	Sender Sender
}

// LatestMessage returns the final message of a conversation.
// The second return value is false for an empty conversation.
func LatestMessage(conversation []Message) (Message, bool) {
	if len(conversation) == 0 {
		return Message{}, false
	}
	return conversation[len(conversation)-1], true
}

// RetrievalMatch is a single nearest-neighbor hit from the vector index.
type RetrievalMatch struct {
	Profile ProfileRecord
	Score   float32
}
