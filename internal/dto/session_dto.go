package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	Title string `json:"title" validate:"required,min=1,max=100"`
}

type UpdateSessionRequest struct {
	Title *string `json:"title,omitempty" validate:"omitempty,min=1,max=100"`
}

type SessionDTO struct {
	Id        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	UserId    uuid.UUID `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type MessageDTO struct {
	Id        uuid.UUID `json:"id"`
	SessionId uuid.UUID `json:"sessionId"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type SessionListResponse struct {
	Sessions []SessionDTO `json:"sessions"`
}

// SessionDetailResponse embeds the ordered message history.
type SessionDetailResponse struct {
	SessionDTO
	Messages []MessageDTO `json:"messages"`
}
