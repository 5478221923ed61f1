package implementation

import (
	"context"

	"promptia-be/internal/entity"
	"promptia-be/internal/mapper"
	"promptia-be/internal/model"
	"promptia-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ToolInvocationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewToolInvocationRepository(db *gorm.DB) contract.ToolInvocationRepository {
	return &ToolInvocationRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *ToolInvocationRepositoryImpl) Create(ctx context.Context, invocation *entity.ToolInvocation) error {
	m := r.mapper.ToolInvocationToModel(invocation)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	invocation.Id = m.Id
	invocation.CreatedAt = m.CreatedAt
	return nil
}

func (r *ToolInvocationRepositoryImpl) ListBySession(ctx context.Context, sessionId uuid.UUID) ([]*entity.ToolInvocation, error) {
	var models []*model.ToolInvocation
	err := r.db.WithContext(ctx).
		Where("chat_session_id = ?", sessionId).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	invocations := make([]*entity.ToolInvocation, len(models))
	for i, m := range models {
		invocations[i] = r.mapper.ToolInvocationToEntity(m)
	}
	return invocations, nil
}
