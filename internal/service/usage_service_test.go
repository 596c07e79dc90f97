package service

import (
	"context"
	"testing"

	"knowledge-assistant-be/pkg/llm"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsageRecord_WritesLogAndAggregate(t *testing.T) {
	_, factory := newMemoryFactory()
	svc := NewUsageService(factory)
	userId := uuid.New()
	sessionId := uuid.New()

	err := svc.Record(context.Background(), userId, sessionId, "ask", "llama-3.1-8b-instant",
		&llm.Usage{InputTokens: 100, OutputTokens: 200, TotalTokens: 300})
	require.NoError(t, err)

	uow := factory.NewUnitOfWork(context.Background())
	logs, err := uow.UsageLogRepository().FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, userId, logs[0].UserId)
	assert.Equal(t, sessionId, logs[0].ChatSessionId)
	assert.Equal(t, "ask", logs[0].Endpoint)
	assert.Equal(t, 100, logs[0].InputTokens)
	assert.Equal(t, 200, logs[0].OutputTokens)
	// 100 * 0.0001/1K + 200 * 0.0002/1K
	assert.InDelta(t, 0.00005, logs[0].Cost, 1e-9)

	aggregate, err := uow.UserUsageRepository().FindByUserId(context.Background(), userId)
	require.NoError(t, err)
	require.NotNil(t, aggregate)
	assert.Equal(t, int64(300), aggregate.TotalTokens)
	assert.InDelta(t, 0.00005, aggregate.TotalCost, 1e-9)
	assert.False(t, aggregate.LastUsed.IsZero())
}

func TestUsageRecord_AccumulatesAcrossRequests(t *testing.T) {
	_, factory := newMemoryFactory()
	svc := NewUsageService(factory)
	userId := uuid.New()

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.Record(context.Background(), userId, uuid.New(), "ask", "llama-3.1-8b-instant",
			&llm.Usage{InputTokens: 10, OutputTokens: 10, TotalTokens: 20}))
	}

	uow := factory.NewUnitOfWork(context.Background())
	logs, err := uow.UsageLogRepository().FindAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, logs, 3)

	aggregate, err := uow.UserUsageRepository().FindByUserId(context.Background(), userId)
	require.NoError(t, err)
	assert.Equal(t, int64(60), aggregate.TotalTokens)
}

func TestUsageRecord_NilUsageIsNoop(t *testing.T) {
	_, factory := newMemoryFactory()
	svc := NewUsageService(factory)

	require.NoError(t, svc.Record(context.Background(), uuid.New(), uuid.New(), "ask", "llama-3.1-8b-instant", nil))

	uow := factory.NewUnitOfWork(context.Background())
	logs, err := uow.UsageLogRepository().FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, logs)
}
