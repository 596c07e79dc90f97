package service

import (
	"context"
	"strings"
	"time"

	"knowledge-assistant-be/internal/apperr"
	"knowledge-assistant-be/internal/constant"
	"knowledge-assistant-be/internal/dto"
	"knowledge-assistant-be/internal/entity"
	"knowledge-assistant-be/internal/pkg/logger"
	"knowledge-assistant-be/internal/repository/specification"
	"knowledge-assistant-be/internal/repository/unitofwork"
	"knowledge-assistant-be/pkg/rag/chunker"

	"github.com/google/uuid"
)

type IDocumentService interface {
	Upload(ctx context.Context, userId uuid.UUID, req *dto.UploadDocumentRequest) (*dto.UploadDocumentResponse, error)
	List(ctx context.Context, userId uuid.UUID, isAdmin bool) ([]*dto.DocumentResponse, error)
	SetActive(ctx context.Context, userId uuid.UUID, documentId uuid.UUID, isActive bool) error
}

type documentService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewDocumentService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IDocumentService {
	return &documentService{
		uowFactory: uowFactory,
		logger:     log,
	}
}

// Upload registers a document and splits its text into chunks in one
// transaction. Chunks are created with embedded=false; the ingestion
// worker picks them up on its next cycle.
func (s *documentService) Upload(ctx context.Context, userId uuid.UUID, req *dto.UploadDocumentRequest) (*dto.UploadDocumentResponse, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, apperr.Validation("document text is empty")
	}

	now := time.Now()
	document := entity.Document{
		Id:               uuid.New(),
		FileName:         uuid.NewString() + "." + req.FileType,
		OriginalFileName: req.FileName,
		FileType:         req.FileType,
		UploadedBy:       userId,
		Status:           entity.DocumentStatusUploaded,
		IsActive:         true,
		UploadedAt:       now,
	}

	pieces := chunker.Split(req.Text, constant.ChunkSize, constant.ChunkOverlap)
	chunks := make([]*entity.DocumentChunk, len(pieces))
	for i, text := range pieces {
		chunks[i] = &entity.DocumentChunk{
			Id:         uuid.New(),
			DocumentId: document.Id,
			ChunkIndex: i,
			Text:       text,
			Embedded:   false,
			CreatedAt:  now,
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	if err := uow.DocumentRepository().Create(ctx, &document); err != nil {
		uow.Rollback()
		return nil, err
	}

	if len(chunks) > 0 {
		if err := uow.DocumentChunkRepository().CreateBulk(ctx, chunks); err != nil {
			uow.Rollback()
			return nil, err
		}
	}

	document.Status = entity.DocumentStatusProcessed
	document.ChunkCount = len(chunks)
	document.UpdatedAt = &now
	if err := uow.DocumentRepository().Update(ctx, &document); err != nil {
		uow.Rollback()
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("DOCUMENT_SERVICE", "Document uploaded", map[string]interface{}{
		"document_id": document.Id,
		"chunk_count": len(chunks),
	})

	return &dto.UploadDocumentResponse{
		DocumentId: document.Id,
		ChunkCount: len(chunks),
	}, nil
}

// List returns the caller's active documents; admins see every active
// document.
func (s *documentService) List(ctx context.Context, userId uuid.UUID, isAdmin bool) ([]*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.ActiveOnly{},
		specification.OrderBy{Field: "uploaded_at", Desc: true},
	}
	if !isAdmin {
		specs = append(specs, specification.UploadedBy{UserID: userId})
	}

	documents, err := uow.DocumentRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.DocumentResponse, len(documents))
	for i, doc := range documents {
		responses[i] = &dto.DocumentResponse{
			Id:               doc.Id,
			OriginalFileName: doc.OriginalFileName,
			FileType:         doc.FileType,
			Status:           string(doc.Status),
			ChunkCount:       doc.ChunkCount,
			UploadedAt:       doc.UploadedAt,
		}
	}
	return responses, nil
}

// SetActive flips the visibility toggle. Documents of other users are
// reported as not found, never as forbidden.
func (s *documentService) SetActive(ctx context.Context, userId uuid.UUID, documentId uuid.UUID, isActive bool) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	document, err := uow.DocumentRepository().FindOne(ctx,
		specification.ByID{ID: documentId},
		specification.UploadedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if document == nil {
		return apperr.NotFound("document not found")
	}

	now := time.Now()
	document.IsActive = isActive
	document.UpdatedAt = &now
	return uow.DocumentRepository().Update(ctx, document)
}
