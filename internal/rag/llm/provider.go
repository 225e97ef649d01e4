package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/akandula/DocChatAPI/internal/domain/chatModel"
)

// Provider turns retrieved chunks plus the running conversation into one
// answer. Implementations must not mutate history.
type Provider interface {
	Generate(ctx context.Context, question string, matches []chatModel.Match, history []chatModel.ConversationTurn) (string, error)
}

// BuildPrompt assembles the user-side prompt shared by every provider:
// retrieved context first, then the prior turns, then the question itself.
func BuildPrompt(question string, matches []chatModel.Match, history []chatModel.ConversationTurn) string {
	var sb strings.Builder

	sb.WriteString("Context:\n")
	for _, m := range matches {
		sb.WriteString(m.Text)
		sb.WriteString("\n")
	}

	if len(history) > 0 {
		sb.WriteString("\nConversation so far:\n")
		for _, turn := range history {
			switch turn.Role {
			case chatModel.RoleAssistant:
				sb.WriteString("Assistant: ")
			default:
				sb.WriteString("User: ")
			}
			sb.WriteString(turn.Content)
			sb.WriteString("\n")
		}
	}

	fmt.Fprintf(&sb, "\nUser Question: %s", question)
	return sb.String()
}
