package dto

import (
	"time"

	"knowledge-assistant-be/internal/entity"

	"github.com/google/uuid"
)

// UploadDocumentRequest carries already-extracted text; raw file storage
// and PDF/TXT parsing live outside this service.
type UploadDocumentRequest struct {
	FileName string `json:"file_name" validate:"required"`
	FileType string `json:"file_type" validate:"required,oneof=txt pdf"`
	Text     string `json:"text" validate:"required"`
}

type UploadDocumentResponse struct {
	DocumentId uuid.UUID `json:"document_id"`
	ChunkCount int       `json:"chunk_count"`
}

type DocumentResponse struct {
	Id               uuid.UUID `json:"id"`
	OriginalFileName string    `json:"original_filename"`
	FileType         string    `json:"file_type"`
	Status           string    `json:"status"`
	ChunkCount       int       `json:"chunk_count"`
	UploadedAt       time.Time `json:"uploaded_at"`
}

type SetDocumentActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

type SearchRequest struct {
	Query string `json:"query" validate:"required"`
	TopK  int    `json:"top_k" validate:"omitempty,min=1,max=20"`
}

// RetrievedChunkResponse is one scored passage, ordered best-first.
type RetrievedChunkResponse struct {
	ChunkId      uuid.UUID `json:"chunk_id"`
	Score        float64   `json:"score"`
	Text         string    `json:"text"`
	DocumentId   uuid.UUID `json:"document_id"`
	DocumentName string    `json:"document_name"`
	ChunkIndex   int       `json:"chunk_index"`
}

type SearchResponse struct {
	Results []RetrievedChunkResponse `json:"results"`
}

type AskRequest struct {
	Query     string     `json:"query" validate:"required"`
	TopK      int        `json:"top_k" validate:"omitempty,min=1,max=20"`
	SessionId *uuid.UUID `json:"session_id" validate:"omitempty"`
}

type AskResponse struct {
	SessionId uuid.UUID         `json:"session_id"`
	Answer    string            `json:"answer"`
	Sources   []entity.Citation `json:"sources"`
}
