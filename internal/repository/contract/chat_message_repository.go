package contract

import (
	"context"

	"promptia-be/internal/entity"

	"github.com/google/uuid"
)

type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	// ListBySession returns messages ordered by created_at ascending; this is
	// the canonical conversation order.
	ListBySession(ctx context.Context, sessionId uuid.UUID) ([]*entity.ChatMessage, error)
	// ListRecent returns at most limit messages, the tail of the session,
	// still in ascending created_at order.
	ListRecent(ctx context.Context, sessionId uuid.UUID, limit int) ([]*entity.ChatMessage, error)
	CountBySession(ctx context.Context, sessionId uuid.UUID) (int64, error)
}
