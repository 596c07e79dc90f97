package entity

import (
	"time"

	"github.com/google/uuid"
)

type DocumentStatus string

const (
	DocumentStatusUploaded  DocumentStatus = "uploaded"
	DocumentStatusProcessed DocumentStatus = "processed"
)

type Document struct {
	Id               uuid.UUID
	FileName         string
	OriginalFileName string
	FileType         string
	UploadedBy       uuid.UUID
	Status           DocumentStatus
	IsActive         bool
	ChunkCount       int
	UploadedAt       time.Time
	UpdatedAt        *time.Time
}
