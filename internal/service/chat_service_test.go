package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promptia-be/internal/constant"
	"promptia-be/internal/dto"
	"promptia-be/internal/entity"
	"promptia-be/internal/pkg/logger"
	"promptia-be/internal/pkg/serverutils"
	"promptia-be/internal/repository/memory"
	"promptia-be/pkg/chat"
	"promptia-be/pkg/chat/history"
	"promptia-be/pkg/llm"
	"promptia-be/pkg/llm/tools"
)

type scriptedProvider struct {
	steps            []providerStep
	calls            int
	generateResponse string
}

type providerStep struct {
	deltas []llm.Delta
	err    error
}

func (p *scriptedProvider) StreamChat(_ context.Context, _ []llm.Message, onDelta func(llm.Delta) error, _ ...llm.Option) error {
	step := p.steps[p.calls]
	p.calls++
	for _, delta := range step.deltas {
		if err := onDelta(delta); err != nil {
			return err
		}
	}
	return step.err
}

func (p *scriptedProvider) Chat(context.Context, []llm.Message, ...llm.Option) (string, error) {
	return "", errors.New("not scripted")
}

func (p *scriptedProvider) Generate(context.Context, string, ...llm.Option) (string, error) {
	if p.generateResponse == "" {
		return "", errors.New("not scripted")
	}
	return p.generateResponse, nil
}

func (p *scriptedProvider) GenerateAudio(context.Context, string, ...llm.Option) ([]byte, error) {
	return nil, errors.New("not scripted")
}

type capturePublisher struct {
	payloads [][]byte
}

func (p *capturePublisher) Publish(_ context.Context, payload []byte) error {
	p.payloads = append(p.payloads, payload)
	return nil
}

type chatFixture struct {
	service     IChatService
	sessions    *memory.ChatSessionRepository
	messages    *memory.ChatMessageRepository
	invocations *memory.ToolInvocationRepository
	publisher   *capturePublisher
	userId      uuid.UUID
	sessionId   uuid.UUID
}

func newChatFixture(t *testing.T, provider llm.Provider, sessionTitle string) *chatFixture {
	t.Helper()

	sessions := memory.NewChatSessionRepository()
	messages := memory.NewChatMessageRepository()
	invocations := memory.NewToolInvocationRepository()
	publisher := &capturePublisher{}

	engine := chat.NewTurnEngine(provider, tools.DefaultRegistry(), logger.NewNopLogger())
	svc := NewChatService(
		sessions,
		messages,
		invocations,
		history.NewLoader(messages),
		engine,
		publisher,
		nil,
		logger.NewNopLogger(),
	)

	userId := uuid.New()
	sessionId := uuid.New()
	require.NoError(t, sessions.Create(context.Background(), &entity.ChatSession{
		Id:     sessionId,
		UserId: userId,
		Title:  sessionTitle,
	}))

	return &chatFixture{
		service:     svc,
		sessions:    sessions,
		messages:    messages,
		invocations: invocations,
		publisher:   publisher,
		userId:      userId,
		sessionId:   sessionId,
	}
}

func textProvider(chunks ...string) *scriptedProvider {
	deltas := make([]llm.Delta, len(chunks))
	for i, c := range chunks {
		deltas[i] = llm.Delta{Text: c}
	}
	return &scriptedProvider{steps: []providerStep{{deltas: deltas}}}
}

func (f *chatFixture) request(message string) *dto.ChatRequest {
	return &dto.ChatRequest{SessionId: f.sessionId.String(), Message: message}
}

func TestTurnPersistsBothSidesInOrder(t *testing.T) {
	f := newChatFixture(t, textProvider("Hola, ", "¿cómo estás?"), "Mi sesión")

	res, err := f.service.Turn(context.Background(), f.userId, f.request("hola"))
	require.NoError(t, err)
	assert.Equal(t, "Hola, ¿cómo estás?", res.Response)

	stored, err := f.messages.ListBySession(context.Background(), f.sessionId)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, constant.ChatMessageRoleUser, stored[0].Role)
	assert.Equal(t, "hola", stored[0].Content)
	assert.Equal(t, constant.ChatMessageRoleAgent, stored[1].Role)
	assert.Equal(t, "Hola, ¿cómo estás?", stored[1].Content)
}

func TestTurnTouchesSession(t *testing.T) {
	f := newChatFixture(t, textProvider("respuesta"), "Mi sesión")

	before, err := f.sessions.FindById(context.Background(), f.sessionId)
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)

	_, err = f.service.Turn(context.Background(), f.userId, f.request("hola"))
	require.NoError(t, err)

	after, err := f.sessions.FindById(context.Background(), f.sessionId)
	require.NoError(t, err)
	assert.True(t, after.UpdatedAt.After(before.UpdatedAt))
}

func TestTurnRejectsMalformedSessionId(t *testing.T) {
	f := newChatFixture(t, textProvider("x"), "Mi sesión")

	_, err := f.service.Turn(context.Background(), f.userId, &dto.ChatRequest{SessionId: "not-a-uuid", Message: "hola"})
	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
	assert.Equal(t, "Identificador inválido", appErr.Message)
}

func TestTurnSessionNotFound(t *testing.T) {
	f := newChatFixture(t, textProvider("x"), "Mi sesión")

	_, err := f.service.Turn(context.Background(), f.userId, &dto.ChatRequest{SessionId: uuid.NewString(), Message: "hola"})
	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
}

func TestTurnForbiddenForNonOwner(t *testing.T) {
	f := newChatFixture(t, textProvider("x"), "Mi sesión")

	_, err := f.service.Turn(context.Background(), uuid.New(), f.request("hola"))
	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 403, appErr.Code)

	count, err := f.messages.CountBySession(context.Background(), f.sessionId)
	require.NoError(t, err)
	assert.Zero(t, count, "rejected turns leave no trace")
}

func TestFailedTurnKeepsUserMessage(t *testing.T) {
	provider := &scriptedProvider{steps: []providerStep{{err: errors.New("boom")}}}
	f := newChatFixture(t, provider, "Mi sesión")

	_, err := f.service.Turn(context.Background(), f.userId, f.request("hola"))
	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 502, appErr.Code)

	stored, err := f.messages.ListBySession(context.Background(), f.sessionId)
	require.NoError(t, err)
	require.Len(t, stored, 1, "user input survives a failed turn; no agent message is written")
	assert.Equal(t, constant.ChatMessageRoleUser, stored[0].Role)
}

func TestFirstExchangeQueuesTitleGeneration(t *testing.T) {
	f := newChatFixture(t, textProvider("respuesta"), "New Chat")

	_, err := f.service.Turn(context.Background(), f.userId, f.request("hola"))
	require.NoError(t, err)

	require.Len(t, f.publisher.payloads, 1)
	var msg dto.GenerateTitleMessage
	require.NoError(t, json.Unmarshal(f.publisher.payloads[0], &msg))
	assert.Equal(t, f.sessionId.String(), msg.SessionId)
}

func TestRenamedSessionSkipsTitleGeneration(t *testing.T) {
	f := newChatFixture(t, textProvider("respuesta"), "Recetas de cocina")

	_, err := f.service.Turn(context.Background(), f.userId, f.request("hola"))
	require.NoError(t, err)
	assert.Empty(t, f.publisher.payloads)
}

func TestLaterExchangesSkipTitleGeneration(t *testing.T) {
	provider := &scriptedProvider{steps: []providerStep{
		{deltas: []llm.Delta{{Text: "uno"}}},
		{deltas: []llm.Delta{{Text: "dos"}}},
	}}
	f := newChatFixture(t, provider, "New Chat")

	_, err := f.service.Turn(context.Background(), f.userId, f.request("hola"))
	require.NoError(t, err)
	_, err = f.service.Turn(context.Background(), f.userId, f.request("sigo aquí"))
	require.NoError(t, err)

	assert.Len(t, f.publisher.payloads, 1, "only the first exchange triggers a title")
}

func TestToolTurnRecordsInvocation(t *testing.T) {
	provider := &scriptedProvider{steps: []providerStep{
		{deltas: []llm.Delta{{Call: &llm.ToolCall{Name: "get_weather", Args: map[string]any{"location": "Rosario"}}}}},
		{deltas: []llm.Delta{{Text: "Hace calor en Rosario."}}},
	}}
	f := newChatFixture(t, provider, "Mi sesión")

	res, err := f.service.Turn(context.Background(), f.userId, f.request("clima en Rosario"))
	require.NoError(t, err)
	assert.Equal(t, "Hace calor en Rosario.", res.Response)

	invocations, err := f.invocations.ListBySession(context.Background(), f.sessionId)
	require.NoError(t, err)
	require.Len(t, invocations, 1)
	assert.Equal(t, "get_weather", invocations[0].ToolName)
	assert.Equal(t, "Rosario", invocations[0].Args["location"])
	assert.Equal(t, "Rosario", invocations[0].Result["location"])
}

func TestStreamTurnDeliversFramedEvents(t *testing.T) {
	f := newChatFixture(t, textProvider("Hola ", "mundo"), "Mi sesión")

	done := make(chan struct{})
	sink := chat.NewChannelSink(done, 16)

	go func() {
		defer sink.Close()
		err := f.service.StreamTurn(context.Background(), f.userId, f.request("hola"), sink)
		assert.NoError(t, err)
	}()

	var events []chat.Event
	for ev := range sink.Events() {
		events = append(events, ev)
	}
	close(done)

	require.Len(t, events, 3)
	assert.Equal(t, "Hola ", events[0].Text)
	assert.Equal(t, "mundo", events[1].Text)
	assert.True(t, events[2].Done)
}
