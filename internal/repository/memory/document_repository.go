package memory

import (
	"context"
	"time"

	"knowledge-assistant-be/internal/entity"
	"knowledge-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

type documentRepository struct {
	store *Store
}

func documentMatches(d entity.Document, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if d.Id != s.ID {
				return false
			}
		case specification.ByIDs:
			if _, ok := idSet(s.IDs)[d.Id]; !ok {
				return false
			}
		case specification.UploadedBy:
			if d.UploadedBy != s.UserID {
				return false
			}
		case specification.ActiveOnly:
			if !d.IsActive {
				return false
			}
		}
	}
	return true
}

func (r *documentRepository) collect(specs []specification.Specification) []*entity.Document {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []*entity.Document
	for _, d := range r.store.documents {
		if documentMatches(d, specs) {
			copied := d
			out = append(out, &copied)
		}
	}

	opts := collectOpts(specs)
	sortSlice(out, byCreatedAt(func(d *entity.Document) time.Time { return d.UploadedAt }), opts.orderDesc)
	start, end := opts.window(len(out))
	return out[start:end]
}

func (r *documentRepository) Create(ctx context.Context, document *entity.Document) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if document.Id == uuid.Nil {
		document.Id = uuid.New()
	}
	if document.UploadedAt.IsZero() {
		document.UploadedAt = time.Now()
	}
	r.store.documents[document.Id] = *document
	return nil
}

func (r *documentRepository) Update(ctx context.Context, document *entity.Document) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.documents[document.Id] = *document
	return nil
}

func (r *documentRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error) {
	matches := r.collect(specs)
	if len(matches) == 0 {
		return nil, nil
	}
	return matches[0], nil
}

func (r *documentRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error) {
	return r.collect(specs), nil
}

func (r *documentRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.collect(specs))), nil
}

func (r *documentRepository) FindIdsByOwner(ctx context.Context, userId uuid.UUID) ([]uuid.UUID, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var ids []uuid.UUID
	for _, d := range r.store.documents {
		if d.UploadedBy == userId {
			ids = append(ids, d.Id)
		}
	}
	return ids, nil
}

func (r *documentRepository) FindNamesByIds(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	names := make(map[uuid.UUID]string, len(ids))
	for _, id := range ids {
		if d, ok := r.store.documents[id]; ok {
			names[id] = d.OriginalFileName
		}
	}
	return names, nil
}
