package mapper

import (
	"encoding/json"

	"promptia-be/internal/entity"
	"promptia-be/internal/model"

	"gorm.io/datatypes"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

// Session mappers

func (m *ChatMapper) ChatSessionToEntity(s *model.ChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}
	return &entity.ChatSession{
		Id:        s.Id,
		UserId:    s.UserId,
		Title:     s.Title,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func (m *ChatMapper) ChatSessionToModel(s *entity.ChatSession) *model.ChatSession {
	if s == nil {
		return nil
	}
	return &model.ChatSession{
		Id:        s.Id,
		UserId:    s.UserId,
		Title:     s.Title,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// Message mappers

func (m *ChatMapper) ChatMessageToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}
	return &entity.ChatMessage{
		Id:            msg.Id,
		ChatSessionId: msg.ChatSessionId,
		Role:          msg.Role,
		Content:       msg.Content,
		CreatedAt:     msg.CreatedAt,
	}
}

func (m *ChatMapper) ChatMessageToModel(msg *entity.ChatMessage) *model.ChatMessage {
	if msg == nil {
		return nil
	}
	return &model.ChatMessage{
		Id:            msg.Id,
		ChatSessionId: msg.ChatSessionId,
		Role:          msg.Role,
		Content:       msg.Content,
		CreatedAt:     msg.CreatedAt,
	}
}

func (m *ChatMapper) ChatMessagesToEntities(models []*model.ChatMessage) []*entity.ChatMessage {
	entities := make([]*entity.ChatMessage, len(models))
	for i, msg := range models {
		entities[i] = m.ChatMessageToEntity(msg)
	}
	return entities
}

// Tool invocation mappers

func (m *ChatMapper) ToolInvocationToModel(t *entity.ToolInvocation) *model.ToolInvocation {
	if t == nil {
		return nil
	}
	args, _ := json.Marshal(t.Args)
	result, _ := json.Marshal(t.Result)
	return &model.ToolInvocation{
		Id:            t.Id,
		ChatSessionId: t.ChatSessionId,
		ToolName:      t.ToolName,
		Args:          datatypes.JSON(args),
		Result:        datatypes.JSON(result),
		CreatedAt:     t.CreatedAt,
	}
}

func (m *ChatMapper) ToolInvocationToEntity(t *model.ToolInvocation) *entity.ToolInvocation {
	if t == nil {
		return nil
	}
	var args, result map[string]any
	_ = json.Unmarshal(t.Args, &args)
	_ = json.Unmarshal(t.Result, &result)
	return &entity.ToolInvocation{
		Id:            t.Id,
		ChatSessionId: t.ChatSessionId,
		ToolName:      t.ToolName,
		Args:          args,
		Result:        result,
		CreatedAt:     t.CreatedAt,
	}
}
