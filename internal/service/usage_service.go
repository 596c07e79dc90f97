package service

import (
	"context"
	"math"
	"time"

	"knowledge-assistant-be/internal/constant"
	"knowledge-assistant-be/internal/entity"
	"knowledge-assistant-be/internal/repository/unitofwork"
	"knowledge-assistant-be/pkg/llm"

	"github.com/google/uuid"
)

type IUsageService interface {
	// Record writes the immutable usage log and bumps the per-user
	// aggregate for one answered request.
	Record(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, endpoint, model string, usage *llm.Usage) error
}

type usageService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewUsageService(uowFactory unitofwork.RepositoryFactory) IUsageService {
	return &usageService{
		uowFactory: uowFactory,
	}
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

func (s *usageService) Record(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, endpoint, model string, usage *llm.Usage) error {
	if usage == nil {
		return nil
	}

	cost := round6(
		float64(usage.InputTokens)*constant.DefaultInputTokenPrice +
			float64(usage.OutputTokens)*constant.DefaultOutputTokenPrice,
	)

	now := time.Now()
	uow := s.uowFactory.NewUnitOfWork(ctx)

	log := entity.UsageLog{
		Id:            uuid.New(),
		UserId:        userId,
		ChatSessionId: sessionId,
		Endpoint:      endpoint,
		Model:         model,
		InputTokens:   usage.InputTokens,
		OutputTokens:  usage.OutputTokens,
		TotalTokens:   usage.TotalTokens,
		Cost:          cost,
		CreatedAt:     now,
	}
	if err := uow.UsageLogRepository().Create(ctx, &log); err != nil {
		return err
	}

	return uow.UserUsageRepository().Increment(ctx, userId, usage.TotalTokens, cost, now)
}
