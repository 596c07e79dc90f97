package memory

import (
	"context"
	"sort"
	"time"

	"knowledge-assistant-be/internal/entity"
	"knowledge-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

type documentChunkRepository struct {
	store *Store
}

func chunkMatches(c entity.DocumentChunk, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if c.Id != s.ID {
				return false
			}
		case specification.ByIDs:
			if _, ok := idSet(s.IDs)[c.Id]; !ok {
				return false
			}
		case specification.ByDocumentID:
			if c.DocumentId != s.DocumentID {
				return false
			}
		case specification.ByDocumentIDs:
			if _, ok := idSet(s.DocumentIDs)[c.DocumentId]; !ok {
				return false
			}
		case specification.EmbeddedIs:
			if c.Embedded != s.Embedded {
				return false
			}
		}
	}
	return true
}

func (r *documentChunkRepository) collect(specs []specification.Specification) []*entity.DocumentChunk {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []*entity.DocumentChunk
	for _, c := range r.store.chunks {
		if chunkMatches(c, specs) {
			copied := c
			out = append(out, &copied)
		}
	}

	opts := collectOpts(specs)
	switch opts.orderField {
	case "chunk_index":
		sortSlice(out, func(a, b *entity.DocumentChunk) bool { return a.ChunkIndex < b.ChunkIndex }, opts.orderDesc)
	default:
		// Deterministic scan order: document then index
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].DocumentId != out[j].DocumentId {
				return out[i].DocumentId.String() < out[j].DocumentId.String()
			}
			return out[i].ChunkIndex < out[j].ChunkIndex
		})
	}
	start, end := opts.window(len(out))
	return out[start:end]
}

func (r *documentChunkRepository) CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, c := range chunks {
		if c.Id == uuid.Nil {
			c.Id = uuid.New()
		}
		if c.CreatedAt.IsZero() {
			c.CreatedAt = time.Now()
		}
		r.store.chunks[c.Id] = *c
	}
	return nil
}

func (r *documentChunkRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DocumentChunk, error) {
	matches := r.collect(specs)
	if len(matches) == 0 {
		return nil, nil
	}
	return matches[0], nil
}

func (r *documentChunkRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentChunk, error) {
	return r.collect(specs), nil
}

func (r *documentChunkRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.collect(specs))), nil
}

func (r *documentChunkRepository) FindByDocumentAndIndex(ctx context.Context, documentId uuid.UUID, chunkIndex int) (*entity.DocumentChunk, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, c := range r.store.chunks {
		if c.DocumentId == documentId && c.ChunkIndex == chunkIndex {
			copied := c
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *documentChunkRepository) MarkEmbedded(ctx context.Context, ids []uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, id := range ids {
		if c, ok := r.store.chunks[id]; ok {
			c.Embedded = true
			r.store.chunks[id] = c
		}
	}
	return nil
}
