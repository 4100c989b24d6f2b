package prompt

import (
	"strings"

	"github.com/poiesic/proflens/ai"
	"github.com/poiesic/proflens/core"
)

// systemInstruction frames every conversation. It never varies per
// request; retrieved context rides on the latest user turn instead.
const systemInstruction = `
You are an AI assistant specializing in helping students find the best professors for their courses. Your knowledge is based on a comprehensive database of professor reviews and ratings. For each query, you will use RAG (Retrieval-Augmented Generation) to provide information on the most relevant professors.

Your responsibilities include:

1. Interpreting student queries about professors, courses, or teaching styles.
2. Presenting the information in a clear, concise, and helpful manner.
3. Providing additional context or explanations when necessary.
4. Answering follow-up questions about the professors or courses.

Remember to:
- Be objective and balanced in your presentations.
- Respect privacy by not sharing personal information about professors beyond what's publicly available in reviews.
- Encourage students to consider multiple factors when choosing a professor, not just ratings.
- Remind students that experiences can vary and to use the information as a guide, not an absolute truth.

If a query is unclear or too broad, ask for clarification or to submit a url of a Rate My Professor Link for the most accurate and helpful information.

Your goal is to help students make informed decisions about their course selections based on professor reviews and ratings.`

// Assembler builds model input from a conversation and retrieved
// profiles.
//
// History policy: the full conversation is preserved in order. Retrieved
// context is appended only to the latest user turn, so earlier turns
// keep the exact text the model saw when it answered them.
type Assembler struct{}

// NewAssembler creates a new assembler.
func NewAssembler() *Assembler {
	return &Assembler{}
}

// Assemble produces the message sequence for one generation request:
// the system instruction, every prior turn in order, and the latest
// user turn with the retrieved context blocks appended.
//
// Assembly is deterministic: identical inputs yield identical output,
// and match order is preserved as ranked by the retriever.
func (a *Assembler) Assemble(conversation []core.Message, matches []core.RetrievalMatch) ([]ai.Message, error) {
	if err := core.ValidateConversation(conversation); err != nil {
		return nil, err
	}

	messages := make([]ai.Message, 0, len(conversation)+1)
	messages = append(messages, ai.Message{Role: ai.RoleSystem, Text: systemInstruction})

	for _, turn := range conversation[:len(conversation)-1] {
		messages = append(messages, ai.Message{
			Role: roleFor(turn.Sender),
			Text: turn.Text,
		})
	}

	latest := conversation[len(conversation)-1]
	messages = append(messages, ai.Message{
		Role: ai.RoleUser,
		Text: latest.Text + ContextBlocks(matches),
	})

	return messages, nil
}

// ContextBlocks renders retrieval matches as the text appended to the
// latest user turn. An empty match list yields an empty string.
func ContextBlocks(matches []core.RetrievalMatch) string {
	var b strings.Builder
	for _, match := range matches {
		b.WriteString("\n\nProfessor: ")
		b.WriteString(match.Profile.Name)
		b.WriteString("\nStars: ")
		b.WriteString(match.Profile.Rating)
		b.WriteString("\nNotable_Features: ")
		b.WriteString(match.Profile.TagSummary())
		b.WriteString("\nReviews: ")
		b.WriteString(strings.Join(match.Profile.Reviews, " "))
	}
	return b.String()
}

func roleFor(sender core.Sender) ai.Role {
	if sender == core.SenderAssistant {
		return ai.RoleAssistant
	}
	return ai.RoleUser
}
