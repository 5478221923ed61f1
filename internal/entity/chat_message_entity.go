package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is immutable once created. There is no update or delete path
// anywhere in the codebase, and the repositories expose none.
type ChatMessage struct {
	Id            uuid.UUID
	ChatSessionId uuid.UUID
	Role          string
	Content       string
	CreatedAt     time.Time
}
