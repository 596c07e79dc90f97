package mapper

import (
	"knowledge-assistant-be/internal/entity"
	"knowledge-assistant-be/internal/model"
)

type UsageMapper struct{}

func NewUsageMapper() *UsageMapper {
	return &UsageMapper{}
}

func (m *UsageMapper) LogToEntity(l *model.UsageLog) *entity.UsageLog {
	if l == nil {
		return nil
	}
	return &entity.UsageLog{
		Id:            l.Id,
		UserId:        l.UserId,
		ChatSessionId: l.ChatSessionId,
		Endpoint:      l.Endpoint,
		Model:         l.Model,
		InputTokens:   l.InputTokens,
		OutputTokens:  l.OutputTokens,
		TotalTokens:   l.TotalTokens,
		Cost:          l.Cost,
		CreatedAt:     l.CreatedAt,
	}
}

func (m *UsageMapper) LogToModel(l *entity.UsageLog) *model.UsageLog {
	if l == nil {
		return nil
	}
	return &model.UsageLog{
		Id:            l.Id,
		UserId:        l.UserId,
		ChatSessionId: l.ChatSessionId,
		Endpoint:      l.Endpoint,
		Model:         l.Model,
		InputTokens:   l.InputTokens,
		OutputTokens:  l.OutputTokens,
		TotalTokens:   l.TotalTokens,
		Cost:          l.Cost,
		CreatedAt:     l.CreatedAt,
	}
}

func (m *UsageMapper) AggregateToEntity(u *model.UserUsage) *entity.UserUsage {
	if u == nil {
		return nil
	}
	return &entity.UserUsage{
		UserId:      u.UserId,
		TotalTokens: u.TotalTokens,
		TotalCost:   u.TotalCost,
		LastUsed:    u.LastUsed,
	}
}
