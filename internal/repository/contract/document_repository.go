package contract

import (
	"context"

	"knowledge-assistant-be/internal/entity"
	"knowledge-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

type DocumentRepository interface {
	Create(ctx context.Context, document *entity.Document) error
	Update(ctx context.Context, document *entity.Document) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// FindIdsByOwner returns the ids of every document uploaded by the given
	// user. This is the system of record for ownership filtering.
	FindIdsByOwner(ctx context.Context, userId uuid.UUID) ([]uuid.UUID, error)

	// FindNamesByIds resolves original file names for a set of documents.
	FindNamesByIds(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
}
