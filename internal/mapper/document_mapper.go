package mapper

import (
	"time"

	"knowledge-assistant-be/internal/entity"
	"knowledge-assistant-be/internal/model"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}

	var updatedAt *time.Time
	if !d.UpdatedAt.IsZero() {
		t := d.UpdatedAt
		updatedAt = &t
	}

	return &entity.Document{
		Id:               d.Id,
		FileName:         d.FileName,
		OriginalFileName: d.OriginalFileName,
		FileType:         d.FileType,
		UploadedBy:       d.UploadedBy,
		Status:           entity.DocumentStatus(d.Status),
		IsActive:         d.IsActive,
		ChunkCount:       d.ChunkCount,
		UploadedAt:       d.UploadedAt,
		UpdatedAt:        updatedAt,
	}
}

func (m *DocumentMapper) ToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}

	var updatedAt time.Time
	if d.UpdatedAt != nil {
		updatedAt = *d.UpdatedAt
	}

	return &model.Document{
		Id:               d.Id,
		FileName:         d.FileName,
		OriginalFileName: d.OriginalFileName,
		FileType:         d.FileType,
		UploadedBy:       d.UploadedBy,
		Status:           string(d.Status),
		IsActive:         d.IsActive,
		ChunkCount:       d.ChunkCount,
		UploadedAt:       d.UploadedAt,
		UpdatedAt:        updatedAt,
	}
}

func (m *DocumentMapper) ToEntities(documents []*model.Document) []*entity.Document {
	entities := make([]*entity.Document, len(documents))
	for i, d := range documents {
		entities[i] = m.ToEntity(d)
	}
	return entities
}
