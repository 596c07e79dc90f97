package memory

import (
	"context"
	"time"

	"knowledge-assistant-be/internal/entity"
	"knowledge-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

type usageLogRepository struct {
	store *Store
}

func usageLogMatches(l entity.UsageLog, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch sp := spec.(type) {
		case specification.UserOwnedBy:
			if l.UserId != sp.UserID {
				return false
			}
		case specification.ByChatSessionID:
			if l.ChatSessionId != sp.ChatSessionID {
				return false
			}
		}
	}
	return true
}

func (r *usageLogRepository) collect(specs []specification.Specification) []*entity.UsageLog {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []*entity.UsageLog
	for _, l := range r.store.usageLogs {
		if usageLogMatches(l, specs) {
			copied := l
			out = append(out, &copied)
		}
	}

	opts := collectOpts(specs)
	sortSlice(out, byCreatedAt(func(l *entity.UsageLog) time.Time { return l.CreatedAt }), opts.orderDesc)
	start, end := opts.window(len(out))
	return out[start:end]
}

func (r *usageLogRepository) Create(ctx context.Context, log *entity.UsageLog) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if log.Id == uuid.Nil {
		log.Id = uuid.New()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}
	r.store.usageLogs[log.Id] = *log
	return nil
}

func (r *usageLogRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UsageLog, error) {
	return r.collect(specs), nil
}

func (r *usageLogRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.collect(specs))), nil
}

type userUsageRepository struct {
	store *Store
}

func (r *userUsageRepository) Increment(ctx context.Context, userId uuid.UUID, tokens int, cost float64, now time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	usage, ok := r.store.userUsage[userId]
	if !ok {
		usage = entity.UserUsage{UserId: userId}
	}
	usage.TotalTokens += int64(tokens)
	usage.TotalCost += cost
	usage.LastUsed = now
	r.store.userUsage[userId] = usage
	return nil
}

func (r *userUsageRepository) FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.UserUsage, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if usage, ok := r.store.userUsage[userId]; ok {
		copied := usage
		return &copied, nil
	}
	return nil, nil
}
