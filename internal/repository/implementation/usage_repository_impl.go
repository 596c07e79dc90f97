package implementation

import (
	"context"
	"errors"
	"time"

	"knowledge-assistant-be/internal/entity"
	"knowledge-assistant-be/internal/mapper"
	"knowledge-assistant-be/internal/model"
	"knowledge-assistant-be/internal/repository/contract"
	"knowledge-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UsageLogRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UsageMapper
}

func NewUsageLogRepository(db *gorm.DB) contract.UsageLogRepository {
	return &UsageLogRepositoryImpl{
		db:     db,
		mapper: mapper.NewUsageMapper(),
	}
}

func (r *UsageLogRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *UsageLogRepositoryImpl) Create(ctx context.Context, log *entity.UsageLog) error {
	m := r.mapper.LogToModel(log)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*log = *r.mapper.LogToEntity(m)
	return nil
}

func (r *UsageLogRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UsageLog, error) {
	var models []*model.UsageLog
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	logs := make([]*entity.UsageLog, len(models))
	for i, m := range models {
		logs[i] = r.mapper.LogToEntity(m)
	}
	return logs, nil
}

func (r *UsageLogRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.UsageLog{}).Count(&count).Error
	return count, err
}

type UserUsageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UsageMapper
}

func NewUserUsageRepository(db *gorm.DB) contract.UserUsageRepository {
	return &UserUsageRepositoryImpl{
		db:     db,
		mapper: mapper.NewUsageMapper(),
	}
}

func (r *UserUsageRepositoryImpl) Increment(ctx context.Context, userId uuid.UUID, tokens int, cost float64, now time.Time) error {
	// Single-statement upsert so concurrent requests cannot lose increments
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"total_tokens": gorm.Expr("user_usage.total_tokens + ?", int64(tokens)),
				"total_cost":   gorm.Expr("user_usage.total_cost + ?", cost),
				"last_used":    now,
			}),
		}).
		Create(&model.UserUsage{
			UserId:      userId,
			TotalTokens: int64(tokens),
			TotalCost:   cost,
			LastUsed:    now,
		}).Error
}

func (r *UserUsageRepositoryImpl) FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.UserUsage, error) {
	var m model.UserUsage
	err := r.db.WithContext(ctx).Where("user_id = ?", userId).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.AggregateToEntity(&m), nil
}
