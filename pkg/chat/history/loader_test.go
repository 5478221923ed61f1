package history

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promptia-be/internal/constant"
	"promptia-be/internal/entity"
	"promptia-be/internal/repository/memory"
	"promptia-be/pkg/llm"
)

func seedMessages(t *testing.T, repo *memory.ChatMessageRepository, sessionId uuid.UUID, count int) {
	t.Helper()
	base := time.Now().Add(-time.Hour)
	for i := 0; i < count; i++ {
		role := constant.ChatMessageRoleUser
		if i%2 == 1 {
			role = constant.ChatMessageRoleAgent
		}
		err := repo.Create(context.Background(), &entity.ChatMessage{
			Id:            uuid.New(),
			ChatSessionId: sessionId,
			Role:          role,
			Content:       fmt.Sprintf("mensaje %d", i),
			CreatedAt:     base.Add(time.Duration(i) * time.Second),
		})
		require.NoError(t, err)
	}
}

func TestBuildKeepsNewestWindow(t *testing.T) {
	repo := memory.NewChatMessageRepository()
	sessionId := uuid.New()
	seedMessages(t, repo, sessionId, 25)

	window, err := NewLoader(repo).Build(context.Background(), sessionId, "", "mensaje 24")
	require.NoError(t, err)

	require.Len(t, window, constant.HistoryWindowSize)
	assert.Equal(t, "mensaje 5", window[0].Content, "oldest messages fall out of the window")
	assert.Equal(t, "mensaje 24", window[len(window)-1].Content, "newest message closes the window")
}

func TestBuildShortSession(t *testing.T) {
	repo := memory.NewChatMessageRepository()
	sessionId := uuid.New()
	seedMessages(t, repo, sessionId, 3)

	window, err := NewLoader(repo).Build(context.Background(), sessionId, "", "mensaje 2")
	require.NoError(t, err)
	assert.Len(t, window, 3)
}

func TestBuildMapsRoles(t *testing.T) {
	repo := memory.NewChatMessageRepository()
	sessionId := uuid.New()
	seedMessages(t, repo, sessionId, 4)

	window, err := NewLoader(repo).Build(context.Background(), sessionId, "", "mensaje 3")
	require.NoError(t, err)

	assert.Equal(t, llm.RoleUser, window[0].Role)
	assert.Equal(t, llm.RoleModel, window[1].Role)
	assert.Equal(t, llm.RoleUser, window[2].Role)
	assert.Equal(t, llm.RoleModel, window[3].Role)
}

func TestSystemPromptSuppressesHistory(t *testing.T) {
	repo := memory.NewChatMessageRepository()
	sessionId := uuid.New()
	seedMessages(t, repo, sessionId, 10)

	window, err := NewLoader(repo).Build(context.Background(), sessionId, "Eres un pirata.", "hola")
	require.NoError(t, err)

	require.Len(t, window, 1)
	assert.Equal(t, llm.RoleUser, window[0].Role)
	assert.Equal(t, "hola", window[0].Content)
}
