package contract

import (
	"context"

	"knowledge-assistant-be/internal/entity"
	"knowledge-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

type DocumentChunkRepository interface {
	CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DocumentChunk, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentChunk, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// FindByDocumentAndIndex is the neighbor lookup used for contextual
	// embedding input. Returns nil when the index does not exist.
	FindByDocumentAndIndex(ctx context.Context, documentId uuid.UUID, chunkIndex int) (*entity.DocumentChunk, error)

	// MarkEmbedded flips embedded=true for the given chunk ids. The only
	// permitted chunk mutation; called after the vector upsert succeeded.
	MarkEmbedded(ctx context.Context, ids []uuid.UUID) error
}
