package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"knowledge-assistant-be/internal/entity"
	"knowledge-assistant-be/internal/repository/specification"
	"knowledge-assistant-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// Store is an in-memory metadata store implementing the same repository
// contracts as the GORM implementations. It lets service logic run against
// injected fakes instead of Postgres. Not transactional: Begin/Commit/
// Rollback are accepted and ignored.
type Store struct {
	mu        sync.Mutex
	documents map[uuid.UUID]entity.Document
	chunks    map[uuid.UUID]entity.DocumentChunk
	sessions  map[uuid.UUID]entity.ChatSession
	messages  map[uuid.UUID]entity.ChatMessage
	usageLogs map[uuid.UUID]entity.UsageLog
	userUsage map[uuid.UUID]entity.UserUsage
	seq       int64
}

func NewStore() *Store {
	return &Store{
		documents: make(map[uuid.UUID]entity.Document),
		chunks:    make(map[uuid.UUID]entity.DocumentChunk),
		sessions:  make(map[uuid.UUID]entity.ChatSession),
		messages:  make(map[uuid.UUID]entity.ChatMessage),
		usageLogs: make(map[uuid.UUID]entity.UsageLog),
		userUsage: make(map[uuid.UUID]entity.UserUsage),
	}
}

type Factory struct {
	store *Store
}

func NewFactory(store *Store) unitofwork.RepositoryFactory {
	return &Factory{store: store}
}

func (f *Factory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &unitOfWork{store: f.store}
}

// query options collected from the generic specifications
type queryOpts struct {
	orderField string
	orderDesc  bool
	limit      int
	offset     int
}

func collectOpts(specs []specification.Specification) queryOpts {
	opts := queryOpts{limit: -1}
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.OrderBy:
			opts.orderField = s.Field
			opts.orderDesc = s.Desc
		case specification.Pagination:
			opts.limit = s.Limit
			opts.offset = s.Offset
		}
	}
	return opts
}

func (o queryOpts) window(n int) (int, int) {
	start := o.offset
	if start > n {
		start = n
	}
	end := n
	if o.limit >= 0 && start+o.limit < end {
		end = start + o.limit
	}
	return start, end
}

func idSet(ids []uuid.UUID) map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func sortSlice[T any](items []T, less func(a, b T) bool, desc bool) {
	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return less(items[j], items[i])
		}
		return less(items[i], items[j])
	})
}

func byCreatedAt[T any](createdAt func(T) time.Time) func(a, b T) bool {
	return func(a, b T) bool {
		return createdAt(a).Before(createdAt(b))
	}
}
