package entity

import (
	"time"

	"github.com/google/uuid"
)

// ToolInvocation is an audit record of one tool executed during a chat turn.
type ToolInvocation struct {
	Id            uuid.UUID
	ChatSessionId uuid.UUID
	ToolName      string
	Args          map[string]any
	Result        map[string]any
	CreatedAt     time.Time
}
