package entity

import (
	"time"

	"github.com/google/uuid"
)

// UsageLog is an immutable audit row, one per answered request.
type UsageLog struct {
	Id            uuid.UUID
	UserId        uuid.UUID
	ChatSessionId uuid.UUID
	Endpoint      string
	Model         string
	InputTokens   int
	OutputTokens  int
	TotalTokens   int
	Cost          float64
	CreatedAt     time.Time
}

// UserUsage is a running per-user total, incremented on every answered
// request and never recomputed from the logs.
type UserUsage struct {
	UserId      uuid.UUID
	TotalTokens int64
	TotalCost   float64
	LastUsed    time.Time
}
