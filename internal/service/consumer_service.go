package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"

	"promptia-be/internal/constant"
	"promptia-be/internal/dto"
	"promptia-be/internal/pkg/logger"
	"promptia-be/internal/repository/contract"
	"promptia-be/pkg/chat/title"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService processes queued title-generation requests off the
// in-process event bus, keeping the side exchange with the provider out
// of the chat turn's critical path.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	sessions  contract.ChatSessionRepository
	messages  contract.ChatMessageRepository
	generator *title.Generator
	log       logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	sessions contract.ChatSessionRepository,
	messages contract.ChatMessageRepository,
	generator *title.Generator,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		sessions:  sessions,
		messages:  messages,
		generator: generator,
		log:       log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.GenerateTitleMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.log.Error("title", "Failed to unmarshal title message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // invalid payloads are never retriable
		return
	}

	sessionId, err := uuid.Parse(payload.SessionId)
	if err != nil {
		cs.log.Error("title", "Invalid session id in title message", map[string]interface{}{
			"sessionId": payload.SessionId,
		})
		msg.Ack()
		return
	}

	cs.generateTitle(ctx, sessionId)
	msg.Ack()
}

// generateTitle re-checks the trigger condition before writing: between
// publish and consume the user may have renamed the session or sent more
// messages, and a stale rename must not clobber either.
func (cs *consumerService) generateTitle(ctx context.Context, sessionId uuid.UUID) {
	session, err := cs.sessions.FindById(ctx, sessionId)
	if err != nil || session == nil {
		return
	}
	if !constant.IsSentinelTitle(session.Title) {
		return
	}

	firstMessages, err := cs.messages.ListBySession(ctx, sessionId)
	if err != nil || len(firstMessages) == 0 {
		return
	}
	if len(firstMessages) > constant.TitlePromptMessageLimit {
		firstMessages = firstMessages[:constant.TitlePromptMessageLimit]
	}

	newTitle := cs.generator.Generate(ctx, firstMessages)

	// Last look before the write; renames in flight win over us.
	session, err = cs.sessions.FindById(ctx, sessionId)
	if err != nil || session == nil || !constant.IsSentinelTitle(session.Title) {
		return
	}

	if err := cs.sessions.UpdateTitle(ctx, sessionId, newTitle); err != nil {
		cs.log.Warn("title", "Failed to store generated title", map[string]interface{}{
			"sessionId": sessionId.String(),
			"error":     err.Error(),
		})
		return
	}

	cs.log.Info("title", "Session renamed", map[string]interface{}{
		"sessionId": sessionId.String(),
		"title":     newTitle,
	})
}
