package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"promptia-be/internal/entity"
	"promptia-be/internal/repository/contract"

	"github.com/google/uuid"
)

// ChatMessageRepository is an in-memory contract.ChatMessageRepository used
// by tests. Messages are append-only, matching the real store.
type ChatMessageRepository struct {
	mu       sync.RWMutex
	messages []entity.ChatMessage
}

func NewChatMessageRepository() *ChatMessageRepository {
	return &ChatMessageRepository{}
}

var _ contract.ChatMessageRepository = (*ChatMessageRepository)(nil)

func (r *ChatMessageRepository) Create(_ context.Context, message *entity.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if message.Id == uuid.Nil {
		message.Id = uuid.New()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}
	r.messages = append(r.messages, *message)
	return nil
}

func (r *ChatMessageRepository) ListBySession(_ context.Context, sessionId uuid.UUID) ([]*entity.ChatMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessionMessages(sessionId), nil
}

func (r *ChatMessageRepository) ListRecent(_ context.Context, sessionId uuid.UUID, limit int) ([]*entity.ChatMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := r.sessionMessages(sessionId)
	if len(all) > limit {
		all = all[len(all)-limit:]
	}
	return all, nil
}

func (r *ChatMessageRepository) CountBySession(_ context.Context, sessionId uuid.UUID) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var count int64
	for _, m := range r.messages {
		if m.ChatSessionId == sessionId {
			count++
		}
	}
	return count, nil
}

func (r *ChatMessageRepository) sessionMessages(sessionId uuid.UUID) []*entity.ChatMessage {
	var out []*entity.ChatMessage
	for i := range r.messages {
		if r.messages[i].ChatSessionId == sessionId {
			copied := r.messages[i]
			out = append(out, &copied)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
