package contract

import (
	"context"
	"time"

	"promptia-be/internal/entity"

	"github.com/google/uuid"
)

type ChatSessionRepository interface {
	Create(ctx context.Context, session *entity.ChatSession) error
	// FindById returns (nil, nil) when the session does not exist; ownership
	// is checked by the caller so that "not found" and "not yours" stay
	// distinguishable.
	FindById(ctx context.Context, id uuid.UUID) (*entity.ChatSession, error)
	// ListByUser orders by updated_at descending (most recently active first).
	ListByUser(ctx context.Context, userId uuid.UUID) ([]*entity.ChatSession, error)
	UpdateTitle(ctx context.Context, id uuid.UUID, title string) error
	// Touch refreshes updated_at; called on every message append.
	Touch(ctx context.Context, id uuid.UUID, at time.Time) error
}
