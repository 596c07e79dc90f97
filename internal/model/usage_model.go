package model

import (
	"time"

	"github.com/google/uuid"
)

type UsageLog struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId        uuid.UUID `gorm:"type:uuid;not null;index"`
	ChatSessionId uuid.UUID `gorm:"type:uuid;index"`
	Endpoint      string    `gorm:"type:text;not null;default:'/ask'"`
	Model         string    `gorm:"type:text;not null"`
	InputTokens   int       `gorm:"not null"`
	OutputTokens  int       `gorm:"not null"`
	TotalTokens   int       `gorm:"not null"`
	Cost          float64   `gorm:"type:numeric(12,6);not null"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (UsageLog) TableName() string {
	return "llm_usage_logs"
}

type UserUsage struct {
	UserId      uuid.UUID `gorm:"type:uuid;primaryKey"`
	TotalTokens int64     `gorm:"not null;default:0"`
	TotalCost   float64   `gorm:"type:numeric(14,6);not null;default:0"`
	LastUsed    time.Time `gorm:"not null"`
}

func (UserUsage) TableName() string {
	return "user_usage"
}
