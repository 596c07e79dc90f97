package service

import (
	"context"
	"testing"
	"time"

	"knowledge-assistant-be/internal/apperr"
	"knowledge-assistant-be/internal/constant"
	"knowledge-assistant-be/internal/dto"
	"knowledge-assistant-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSession_FirstSessionAllowed(t *testing.T) {
	_, factory := newMemoryFactory()
	svc := NewSessionService(factory)

	res, err := svc.Create(context.Background(), uuid.New(), &dto.CreateSessionRequest{})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, res.SessionId)
}

func TestCreateSession_GateBlocksWhileLastSessionEmpty(t *testing.T) {
	_, factory := newMemoryFactory()
	svc := NewSessionService(factory)
	userId := uuid.New()

	first, err := svc.Create(context.Background(), userId, &dto.CreateSessionRequest{})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), userId, &dto.CreateSessionRequest{})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	// A user message in the latest session reopens the gate
	uow := factory.NewUnitOfWork(context.Background())
	require.NoError(t, uow.ChatMessageRepository().Create(context.Background(), &entity.ChatMessage{
		ChatSessionId: first.SessionId,
		UserId:        userId,
		Role:          constant.ChatMessageRoleUser,
		Content:       "hello documents",
	}))

	_, err = svc.Create(context.Background(), userId, &dto.CreateSessionRequest{})
	assert.NoError(t, err)
}

func TestCreateSession_AssistantOnlySessionStaysBlocked(t *testing.T) {
	_, factory := newMemoryFactory()
	svc := NewSessionService(factory)
	userId := uuid.New()

	first, err := svc.Create(context.Background(), userId, &dto.CreateSessionRequest{})
	require.NoError(t, err)

	uow := factory.NewUnitOfWork(context.Background())
	require.NoError(t, uow.ChatMessageRepository().Create(context.Background(), &entity.ChatMessage{
		ChatSessionId: first.SessionId,
		UserId:        userId,
		Role:          constant.ChatMessageRoleAssistant,
		Content:       constant.SmallTalkReply,
	}))

	_, err = svc.Create(context.Background(), userId, &dto.CreateSessionRequest{})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestCreateSession_CustomTitleAndDefault(t *testing.T) {
	_, factory := newMemoryFactory()
	svc := NewSessionService(factory)

	res, err := svc.Create(context.Background(), uuid.New(), &dto.CreateSessionRequest{Title: "Research"})
	require.NoError(t, err)

	uow := factory.NewUnitOfWork(context.Background())
	sessions, err := uow.ChatSessionRepository().FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "Research", sessions[0].Title)
	assert.Equal(t, res.SessionId, sessions[0].Id)

	res2, err := svc.Create(context.Background(), uuid.New(), &dto.CreateSessionRequest{})
	require.NoError(t, err)
	uow2 := factory.NewUnitOfWork(context.Background())
	created, err := uow2.ChatSessionRepository().FindAll(context.Background())
	require.NoError(t, err)
	for _, s := range created {
		if s.Id == res2.SessionId {
			assert.Equal(t, constant.DefaultSessionTitle, s.Title)
		}
	}
}

func TestListSessions_MostRecentlyUpdatedFirst(t *testing.T) {
	_, factory := newMemoryFactory()
	svc := NewSessionService(factory)
	userId := uuid.New()

	uow := factory.NewUnitOfWork(context.Background())
	older := entity.ChatSession{Id: uuid.New(), UserId: userId, Title: "older",
		CreatedAt: time.Now().Add(-2 * time.Hour), UpdatedAt: time.Now().Add(-2 * time.Hour)}
	newer := entity.ChatSession{Id: uuid.New(), UserId: userId, Title: "newer",
		CreatedAt: time.Now().Add(-3 * time.Hour), UpdatedAt: time.Now()}
	foreign := entity.ChatSession{Id: uuid.New(), UserId: uuid.New(), Title: "foreign",
		CreatedAt: time.Now(), UpdatedAt: time.Now()}
	require.NoError(t, uow.ChatSessionRepository().Create(context.Background(), &older))
	require.NoError(t, uow.ChatSessionRepository().Create(context.Background(), &newer))
	require.NoError(t, uow.ChatSessionRepository().Create(context.Background(), &foreign))

	sessions, err := svc.List(context.Background(), userId)

	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "newer", sessions[0].Title)
	assert.Equal(t, "older", sessions[1].Title)
}

func TestHistory_ReturnsMessagesOldestFirst(t *testing.T) {
	_, factory := newMemoryFactory()
	svc := NewSessionService(factory)
	userId := uuid.New()

	res, err := svc.Create(context.Background(), userId, &dto.CreateSessionRequest{})
	require.NoError(t, err)

	uow := factory.NewUnitOfWork(context.Background())
	for _, content := range []string{"first", "second", "third"} {
		require.NoError(t, uow.ChatMessageRepository().Create(context.Background(), &entity.ChatMessage{
			ChatSessionId: res.SessionId,
			UserId:        userId,
			Role:          constant.ChatMessageRoleUser,
			Content:       content,
		}))
	}

	history, err := svc.History(context.Background(), userId, res.SessionId)

	require.NoError(t, err)
	assert.Equal(t, res.SessionId, history.SessionId)
	require.Len(t, history.Messages, 3)
	assert.Equal(t, "first", history.Messages[0].Content)
	assert.Equal(t, "third", history.Messages[2].Content)
	assert.NotNil(t, history.Messages[0].Sources)
}

func TestHistory_ForeignAndMissingSessionsLookTheSame(t *testing.T) {
	_, factory := newMemoryFactory()
	svc := NewSessionService(factory)
	owner := uuid.New()

	res, err := svc.Create(context.Background(), owner, &dto.CreateSessionRequest{})
	require.NoError(t, err)

	_, foreignErr := svc.History(context.Background(), uuid.New(), res.SessionId)
	_, missingErr := svc.History(context.Background(), owner, uuid.New())

	require.Error(t, foreignErr)
	require.Error(t, missingErr)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(foreignErr))
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(missingErr))
	assert.Equal(t, foreignErr.Error(), missingErr.Error())
}
