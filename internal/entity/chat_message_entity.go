package entity

import (
	"time"

	"github.com/google/uuid"
)

// Citation points at the passage an answer was grounded on.
type Citation struct {
	DocumentId uuid.UUID `json:"document_id"`
	ChunkIndex int       `json:"chunk_index"`
}

// ChatMessage is append-only; messages are never edited or deleted.
type ChatMessage struct {
	Id            uuid.UUID
	ChatSessionId uuid.UUID
	UserId        uuid.UUID
	Role          string
	Content       string
	Sources       []Citation
	CreatedAt     time.Time
}
