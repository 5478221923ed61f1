package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ToolInvocation struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatSessionId uuid.UUID      `gorm:"type:uuid;not null;index"`
	ToolName      string         `gorm:"type:varchar(100);not null"`
	Args          datatypes.JSON `gorm:"type:jsonb"`
	Result        datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt     time.Time      `gorm:"autoCreateTime"`
}

func (ToolInvocation) TableName() string {
	return "tool_invocations"
}
