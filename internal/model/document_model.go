package model

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	Id               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FileName         string    `gorm:"type:text;not null"`
	OriginalFileName string    `gorm:"type:text;not null"`
	FileType         string    `gorm:"type:text"`
	UploadedBy       uuid.UUID `gorm:"type:uuid;not null;index"` // Ownership for data isolation
	Status           string    `gorm:"type:text;not null;default:'uploaded'"`
	IsActive         bool      `gorm:"not null;default:true"`
	ChunkCount       int       `gorm:"not null;default:0"`
	UploadedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
}

func (Document) TableName() string {
	return "documents"
}
