// Package history builds the bounded provider context for a chat turn.
package history

import (
	"context"

	"github.com/google/uuid"

	"promptia-be/internal/constant"
	"promptia-be/internal/repository/contract"
	"promptia-be/pkg/llm"
)

// Loader assembles the conversation window sent to the provider.
type Loader struct {
	messages contract.ChatMessageRepository
}

func NewLoader(messages contract.ChatMessageRepository) *Loader {
	return &Loader{messages: messages}
}

// Build returns the provider history for the next turn. The user's
// current message must already be persisted; it arrives as the newest
// row of the window.
//
// A caller-supplied system instruction replaces stored context entirely:
// the provider sees only the current message, so the instruction cannot
// be diluted by prior conversation.
func (l *Loader) Build(ctx context.Context, sessionId uuid.UUID, systemPrompt, userMessage string) ([]llm.Message, error) {
	if systemPrompt != "" {
		return []llm.Message{{Role: llm.RoleUser, Content: userMessage}}, nil
	}

	recent, err := l.messages.ListRecent(ctx, sessionId, constant.HistoryWindowSize)
	if err != nil {
		return nil, err
	}

	window := make([]llm.Message, 0, len(recent))
	for _, msg := range recent {
		window = append(window, llm.Message{
			Role:    toProviderRole(msg.Role),
			Content: msg.Content,
		})
	}
	return window, nil
}

func toProviderRole(role string) string {
	if role == constant.ChatMessageRoleUser {
		return llm.RoleUser
	}
	return llm.RoleModel
}
