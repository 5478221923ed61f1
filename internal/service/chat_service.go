package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"promptia-be/internal/constant"
	"promptia-be/internal/dto"
	"promptia-be/internal/entity"
	"promptia-be/internal/pkg/logger"
	"promptia-be/internal/pkg/serverutils"
	"promptia-be/internal/repository/contract"
	"promptia-be/pkg/chat"
	"promptia-be/pkg/chat/history"
	"promptia-be/pkg/events"
	"promptia-be/pkg/llm"
	pktNats "promptia-be/pkg/nats"
)

type IChatService interface {
	// StreamTurn runs one turn and forwards output to sink. A nil error
	// with no emitted events never happens: either events reached the
	// sink, or the returned error describes why none could.
	StreamTurn(ctx context.Context, userId uuid.UUID, req *dto.ChatRequest, sink chat.Sink) error

	// Turn runs one turn without streaming and returns the full response.
	Turn(ctx context.Context, userId uuid.UUID, req *dto.ChatRequest) (*dto.ChatResponse, error)
}

type chatService struct {
	sessions       contract.ChatSessionRepository
	messages       contract.ChatMessageRepository
	invocations    contract.ToolInvocationRepository
	loader         *history.Loader
	engine         *chat.TurnEngine
	titlePublisher IPublisherService
	eventPublisher *pktNats.Publisher
	log            logger.ILogger
}

func NewChatService(
	sessions contract.ChatSessionRepository,
	messages contract.ChatMessageRepository,
	invocations contract.ToolInvocationRepository,
	loader *history.Loader,
	engine *chat.TurnEngine,
	titlePublisher IPublisherService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IChatService {
	return &chatService{
		sessions:       sessions,
		messages:       messages,
		invocations:    invocations,
		loader:         loader,
		engine:         engine,
		titlePublisher: titlePublisher,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

func (s *chatService) StreamTurn(ctx context.Context, userId uuid.UUID, req *dto.ChatRequest, sink chat.Sink) error {
	sessionId, err := uuid.Parse(req.SessionId)
	if err != nil {
		return serverutils.ValidationError("Identificador inválido", nil)
	}

	if _, err := ownedSession(ctx, s.sessions, sessionId, userId); err != nil {
		return err
	}

	// The user's side of the exchange is durable before the provider is
	// involved, so a failed turn still shows the input in history.
	if err := s.persistMessage(ctx, sessionId, constant.ChatMessageRoleUser, req.Message); err != nil {
		return err
	}

	systemPrompt := ""
	if req.SystemPrompt != nil {
		systemPrompt = *req.SystemPrompt
	}

	window, err := s.loader.Build(ctx, sessionId, systemPrompt, req.Message)
	if err != nil {
		return err
	}

	var options []llm.Option
	if systemPrompt != "" {
		options = append(options, llm.WithSystemInstruction(systemPrompt))
	}
	if req.Temperature != nil {
		options = append(options, llm.WithTemperature(*req.Temperature))
	}

	result, err := s.engine.Run(ctx, window, sink, options...)
	if err != nil {
		if errors.Is(err, chat.ErrClientGone) {
			// Nothing else will reach the client; the partial turn is
			// discarded rather than persisted.
			return nil
		}
		if result != nil && result.Streamed {
			// The failure already went out in-band on the open stream.
			return nil
		}
		return serverutils.UpstreamFailure(chat.UpstreamErrorMessage)
	}

	s.completeTurn(ctx, sessionId, userId, result)
	return nil
}

func (s *chatService) Turn(ctx context.Context, userId uuid.UUID, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	sink := chat.NullSink{}

	sessionId, err := uuid.Parse(req.SessionId)
	if err != nil {
		return nil, serverutils.ValidationError("Identificador inválido", nil)
	}

	if _, err := ownedSession(ctx, s.sessions, sessionId, userId); err != nil {
		return nil, err
	}

	if err := s.persistMessage(ctx, sessionId, constant.ChatMessageRoleUser, req.Message); err != nil {
		return nil, err
	}

	systemPrompt := ""
	if req.SystemPrompt != nil {
		systemPrompt = *req.SystemPrompt
	}

	window, err := s.loader.Build(ctx, sessionId, systemPrompt, req.Message)
	if err != nil {
		return nil, err
	}

	var options []llm.Option
	if systemPrompt != "" {
		options = append(options, llm.WithSystemInstruction(systemPrompt))
	}
	if req.Temperature != nil {
		options = append(options, llm.WithTemperature(*req.Temperature))
	}

	result, err := s.engine.Run(ctx, window, sink, options...)
	if err != nil {
		return nil, serverutils.UpstreamFailure(chat.UpstreamErrorMessage)
	}

	s.completeTurn(ctx, sessionId, userId, result)
	return &dto.ChatResponse{Response: result.Text}, nil
}

func (s *chatService) persistMessage(ctx context.Context, sessionId uuid.UUID, role, content string) error {
	msg := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: sessionId,
		Role:          role,
		Content:       content,
		CreatedAt:     time.Now(),
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return err
	}
	return s.sessions.Touch(ctx, sessionId, msg.CreatedAt)
}

// completeTurn persists the agent message and runs the post-turn side
// effects. Side effects are best effort: the turn already succeeded from
// the client's point of view.
func (s *chatService) completeTurn(ctx context.Context, sessionId, userId uuid.UUID, result *chat.TurnResult) {
	if err := s.persistMessage(ctx, sessionId, constant.ChatMessageRoleAgent, result.Text); err != nil {
		s.log.Error("chat", "Failed to persist agent message", map[string]interface{}{
			"sessionId": sessionId.String(),
			"error":     err.Error(),
		})
		return
	}

	if result.ToolUsed != "" {
		s.recordInvocation(ctx, sessionId, result)
	}

	s.maybeRequestTitle(ctx, sessionId)

	if s.eventPublisher != nil {
		evt := events.NewTurnCompleted(sessionId.String(), userId.String(), result.ToolUsed)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.log.Warn("chat", "Failed to publish turn event", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
}

func (s *chatService) recordInvocation(ctx context.Context, sessionId uuid.UUID, result *chat.TurnResult) {
	invocation := &entity.ToolInvocation{
		Id:            uuid.New(),
		ChatSessionId: sessionId,
		ToolName:      result.ToolUsed,
		Args:          result.ToolArgs,
		Result:        result.ToolOutput,
		CreatedAt:     time.Now(),
	}
	if err := s.invocations.Create(ctx, invocation); err != nil {
		s.log.Warn("chat", "Failed to record tool invocation", map[string]interface{}{
			"sessionId": sessionId.String(),
			"tool":      result.ToolUsed,
			"error":     err.Error(),
		})
	}
}

// maybeRequestTitle queues title generation when the session just
// finished its very first exchange and still carries a default title.
func (s *chatService) maybeRequestTitle(ctx context.Context, sessionId uuid.UUID) {
	count, err := s.messages.CountBySession(ctx, sessionId)
	if err != nil || count != 2 {
		return
	}

	session, err := s.sessions.FindById(ctx, sessionId)
	if err != nil || session == nil || !constant.IsSentinelTitle(session.Title) {
		return
	}

	payload, err := json.Marshal(dto.GenerateTitleMessage{SessionId: sessionId.String()})
	if err != nil {
		return
	}
	if err := s.titlePublisher.Publish(ctx, payload); err != nil {
		s.log.Warn("chat", "Failed to queue title generation", map[string]interface{}{
			"sessionId": sessionId.String(),
			"error":     err.Error(),
		})
	}
}
