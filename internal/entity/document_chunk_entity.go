package entity

import (
	"time"

	"github.com/google/uuid"
)

// DocumentChunk is the unit of embedding and citation. Indices within a
// document are dense and contiguous starting at 0; the Embedded flag only
// ever transitions false -> true, after the vector upsert succeeded.
type DocumentChunk struct {
	Id         uuid.UUID
	DocumentId uuid.UUID
	ChunkIndex int
	Text       string
	Embedded   bool
	CreatedAt  time.Time
}
