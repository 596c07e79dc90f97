package model

import (
	"time"

	"github.com/google/uuid"
)

type DocumentChunk struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentId uuid.UUID `gorm:"type:uuid;not null;index:idx_chunks_doc_index,priority:1"`
	ChunkIndex int       `gorm:"not null;index:idx_chunks_doc_index,priority:2"` // 0-based, contiguous per document
	Text       string    `gorm:"type:text;not null"`
	Embedded   bool      `gorm:"not null;default:false;index"` // scanned by the ingestion worker
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (DocumentChunk) TableName() string {
	return "document_chunks"
}
