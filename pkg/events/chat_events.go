package events

import "time"

const (
	TypeUserRegistered = "USER_REGISTERED"
	TypeUserLogin      = "USER_LOGIN"
	TypeTurnCompleted  = "TURN_COMPLETED"
)

// NewUserRegistered is emitted after a successful registration.
func NewUserRegistered(userId, email string) Event {
	return BaseEvent{
		Type: TypeUserRegistered,
		Data: map[string]interface{}{
			"user_id": userId,
			"email":   email,
		},
		OccurredAt: time.Now(),
	}
}

// NewUserLogin is emitted after a successful login.
func NewUserLogin(userId, email string) Event {
	return BaseEvent{
		Type: TypeUserLogin,
		Data: map[string]interface{}{
			"user_id": userId,
			"email":   email,
		},
		OccurredAt: time.Now(),
	}
}

// NewTurnCompleted is emitted after a chat turn has streamed to completion
// and the agent message has been persisted.
func NewTurnCompleted(sessionId, userId string, toolUsed string) Event {
	return BaseEvent{
		Type: TypeTurnCompleted,
		Data: map[string]interface{}{
			"session_id": sessionId,
			"user_id":    userId,
			"tool_used":  toolUsed,
		},
		OccurredAt: time.Now(),
	}
}
