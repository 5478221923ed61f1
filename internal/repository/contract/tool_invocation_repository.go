package contract

import (
	"context"

	"promptia-be/internal/entity"

	"github.com/google/uuid"
)

type ToolInvocationRepository interface {
	Create(ctx context.Context, invocation *entity.ToolInvocation) error
	ListBySession(ctx context.Context, sessionId uuid.UUID) ([]*entity.ToolInvocation, error)
}
