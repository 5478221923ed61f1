package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promptia-be/internal/constant"
	"promptia-be/internal/entity"
	"promptia-be/internal/pkg/logger"
	"promptia-be/internal/repository/memory"
	"promptia-be/pkg/chat/title"
)

type titleFixture struct {
	consumer  *consumerService
	sessions  *memory.ChatSessionRepository
	messages  *memory.ChatMessageRepository
	sessionId uuid.UUID
}

func newTitleFixture(t *testing.T, provider *scriptedProvider, sessionTitle string) *titleFixture {
	t.Helper()

	sessions := memory.NewChatSessionRepository()
	messages := memory.NewChatMessageRepository()
	sessionId := uuid.New()

	require.NoError(t, sessions.Create(context.Background(), &entity.ChatSession{
		Id:     sessionId,
		UserId: uuid.New(),
		Title:  sessionTitle,
	}))
	for _, m := range []struct{ role, content string }{
		{constant.ChatMessageRoleUser, "dame una receta de empanadas"},
		{constant.ChatMessageRoleAgent, "claro, aquí va"},
	} {
		require.NoError(t, messages.Create(context.Background(), &entity.ChatMessage{
			Id:            uuid.New(),
			ChatSessionId: sessionId,
			Role:          m.role,
			Content:       m.content,
		}))
	}

	generator := title.NewGenerator(provider, "", logger.NewNopLogger())
	consumer := NewConsumerService(nil, "titles", sessions, messages, generator, logger.NewNopLogger()).(*consumerService)

	return &titleFixture{consumer: consumer, sessions: sessions, messages: messages, sessionId: sessionId}
}

func TestGenerateTitleRenamesSentinelSession(t *testing.T) {
	provider := &scriptedProvider{generateResponse: "Receta de empanadas"}
	f := newTitleFixture(t, provider, "New Chat")

	f.consumer.generateTitle(context.Background(), f.sessionId)

	session, err := f.sessions.FindById(context.Background(), f.sessionId)
	require.NoError(t, err)
	assert.Equal(t, "Receta de empanadas", session.Title)
}

func TestGenerateTitlePreservesUserRename(t *testing.T) {
	provider := &scriptedProvider{generateResponse: "Receta de empanadas"}
	f := newTitleFixture(t, provider, "Mi título elegido")

	f.consumer.generateTitle(context.Background(), f.sessionId)

	session, err := f.sessions.FindById(context.Background(), f.sessionId)
	require.NoError(t, err)
	assert.Equal(t, "Mi título elegido", session.Title, "a user rename must never be clobbered")
}

func TestGenerateTitleFallsBackOnProviderFailure(t *testing.T) {
	provider := &scriptedProvider{} // Generate fails
	f := newTitleFixture(t, provider, "New Chat")

	f.consumer.generateTitle(context.Background(), f.sessionId)

	session, err := f.sessions.FindById(context.Background(), f.sessionId)
	require.NoError(t, err)
	assert.Equal(t, constant.FallbackSessionTitle, session.Title)
}

func TestGenerateTitleIsIdempotentAfterRename(t *testing.T) {
	provider := &scriptedProvider{generateResponse: "Primer título"}
	f := newTitleFixture(t, provider, "New Chat")

	f.consumer.generateTitle(context.Background(), f.sessionId)
	provider.generateResponse = "Segundo título"
	f.consumer.generateTitle(context.Background(), f.sessionId)

	session, err := f.sessions.FindById(context.Background(), f.sessionId)
	require.NoError(t, err)
	assert.Equal(t, "Primer título", session.Title)
}

func TestGenerateTitleMissingSessionIsSilent(t *testing.T) {
	provider := &scriptedProvider{generateResponse: "Título"}
	f := newTitleFixture(t, provider, "New Chat")

	f.consumer.generateTitle(context.Background(), uuid.New())

	session, err := f.sessions.FindById(context.Background(), f.sessionId)
	require.NoError(t, err)
	assert.Equal(t, "New Chat", session.Title)
}
