package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/proflens/ai"
	"github.com/poiesic/proflens/core"
)

func sampleMatches() []core.RetrievalMatch {
	return []core.RetrievalMatch{
		{
			Profile: *core.NewProfileRecord("Ada Lovelace", "4.8",
				[]string{"Caring", "Tough grader"},
				[]string{"Great lectures.", "Hard exams."}),
			Score: 0.91,
		},
		{
			Profile: *core.NewProfileRecord("Grace Hopper", "4.9",
				[]string{"Legend"},
				[]string{"Amazing."}),
			Score: 0.87,
		},
	}
}

func TestAssemble_ShapeAndOrdering(t *testing.T) {
	conversation := []core.Message{
		{Text: "Who is good for calculus?", Sender: core.SenderUser},
		{Text: "Ada Lovelace has strong reviews.", Sender: core.SenderAssistant},
		{Text: "What about statistics?", Sender: core.SenderUser},
	}

	messages, err := NewAssembler().Assemble(conversation, sampleMatches())
	require.NoError(t, err)
	require.Len(t, messages, 4)

	assert.Equal(t, ai.RoleSystem, messages[0].Role)
	assert.Contains(t, messages[0].Text, "best professors for their courses")

	assert.Equal(t, ai.RoleUser, messages[1].Role)
	assert.Equal(t, "Who is good for calculus?", messages[1].Text)

	assert.Equal(t, ai.RoleAssistant, messages[2].Role)
	assert.Equal(t, "Ada Lovelace has strong reviews.", messages[2].Text)

	assert.Equal(t, ai.RoleUser, messages[3].Role)
	assert.True(t, strings.HasPrefix(messages[3].Text, "What about statistics?"),
		"latest turn text must come before the context blocks")
	assert.Contains(t, messages[3].Text, "Professor: Ada Lovelace")
	assert.Contains(t, messages[3].Text, "Stars: 4.8")
	assert.Contains(t, messages[3].Text, "Notable_Features: Caring, Tough grader")
	assert.Contains(t, messages[3].Text, "Reviews: Great lectures. Hard exams.")

	// Match order is preserved
	first := strings.Index(messages[3].Text, "Ada Lovelace")
	second := strings.Index(messages[3].Text, "Grace Hopper")
	assert.Less(t, first, second)
}

func TestAssemble_Deterministic(t *testing.T) {
	conversation := []core.Message{
		{Text: "Who is good for calculus?", Sender: core.SenderUser},
	}
	matches := sampleMatches()

	assembler := NewAssembler()

	first, err := assembler.Assemble(conversation, matches)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := assembler.Assemble(conversation, matches)
		require.NoError(t, err)
		assert.Equal(t, first, again, "assembly must be byte-identical across calls")
	}
}

func TestAssemble_NoMatches(t *testing.T) {
	conversation := []core.Message{
		{Text: "Hello?", Sender: core.SenderUser},
	}

	messages, err := NewAssembler().Assemble(conversation, nil)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "Hello?", messages[1].Text, "no context blocks when nothing was retrieved")
}

func TestAssemble_InvalidConversation(t *testing.T) {
	tests := []struct {
		name         string
		conversation []core.Message
		want         error
	}{
		{"empty", nil, core.ErrEmptyConversation},
		{"latest not user", []core.Message{
			{Text: "Hi", Sender: core.SenderUser},
			{Text: "Hello!", Sender: core.SenderAssistant},
		}, core.ErrNotUserTurn},
		{"blank latest", []core.Message{
			{Text: "   ", Sender: core.SenderUser},
		}, core.ErrEmptyQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAssembler().Assemble(tt.conversation, nil)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestContextBlocks_Empty(t *testing.T) {
	assert.Empty(t, ContextBlocks(nil))
}
