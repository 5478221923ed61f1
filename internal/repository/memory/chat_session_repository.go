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

// ChatSessionRepository is an in-memory contract.ChatSessionRepository used
// by tests.
type ChatSessionRepository struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]entity.ChatSession
}

func NewChatSessionRepository() *ChatSessionRepository {
	return &ChatSessionRepository{sessions: make(map[uuid.UUID]entity.ChatSession)}
}

var _ contract.ChatSessionRepository = (*ChatSessionRepository)(nil)

func (r *ChatSessionRepository) Create(_ context.Context, session *entity.ChatSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if session.Id == uuid.Nil {
		session.Id = uuid.New()
	}
	now := time.Now()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	if session.UpdatedAt.IsZero() {
		session.UpdatedAt = now
	}
	r.sessions[session.Id] = *session
	return nil
}

func (r *ChatSessionRepository) FindById(_ context.Context, id uuid.UUID) (*entity.ChatSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.sessions[id]; ok {
		copied := s
		return &copied, nil
	}
	return nil, nil
}

func (r *ChatSessionRepository) ListByUser(_ context.Context, userId uuid.UUID) ([]*entity.ChatSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*entity.ChatSession
	for _, s := range r.sessions {
		if s.UserId == userId {
			copied := s
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (r *ChatSessionRepository) UpdateTitle(_ context.Context, id uuid.UUID, title string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		s.Title = title
		s.UpdatedAt = time.Now()
		r.sessions[id] = s
	}
	return nil
}

func (r *ChatSessionRepository) Touch(_ context.Context, id uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		s.UpdatedAt = at
		r.sessions[id] = s
	}
	return nil
}
