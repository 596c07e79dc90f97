package contract

import (
	"context"
	"time"

	"knowledge-assistant-be/internal/entity"
	"knowledge-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UsageLogRepository interface {
	Create(ctx context.Context, log *entity.UsageLog) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UsageLog, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type UserUsageRepository interface {
	// Increment atomically adds to the user's running totals and refreshes
	// last_used, inserting the row on first use.
	Increment(ctx context.Context, userId uuid.UUID, tokens int, cost float64, now time.Time) error
	FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.UserUsage, error)
}
