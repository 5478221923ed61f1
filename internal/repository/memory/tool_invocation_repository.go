package memory

import (
	"context"
	"sync"
	"time"

	"promptia-be/internal/entity"
	"promptia-be/internal/repository/contract"

	"github.com/google/uuid"
)

// ToolInvocationRepository is an in-memory contract.ToolInvocationRepository
// used by tests.
type ToolInvocationRepository struct {
	mu          sync.RWMutex
	invocations []entity.ToolInvocation
}

func NewToolInvocationRepository() *ToolInvocationRepository {
	return &ToolInvocationRepository{}
}

var _ contract.ToolInvocationRepository = (*ToolInvocationRepository)(nil)

func (r *ToolInvocationRepository) Create(_ context.Context, invocation *entity.ToolInvocation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if invocation.Id == uuid.Nil {
		invocation.Id = uuid.New()
	}
	if invocation.CreatedAt.IsZero() {
		invocation.CreatedAt = time.Now()
	}
	r.invocations = append(r.invocations, *invocation)
	return nil
}

func (r *ToolInvocationRepository) ListBySession(_ context.Context, sessionId uuid.UUID) ([]*entity.ToolInvocation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*entity.ToolInvocation
	for i := range r.invocations {
		if r.invocations[i].ChatSessionId == sessionId {
			copied := r.invocations[i]
			out = append(out, &copied)
		}
	}
	return out, nil
}
