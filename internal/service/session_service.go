package service

import (
	"context"
	"time"

	"knowledge-assistant-be/internal/apperr"
	"knowledge-assistant-be/internal/constant"
	"knowledge-assistant-be/internal/dto"
	"knowledge-assistant-be/internal/entity"
	"knowledge-assistant-be/internal/repository/specification"
	"knowledge-assistant-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type ISessionService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error)
	List(ctx context.Context, userId uuid.UUID) ([]*dto.SessionResponse, error)
	History(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.ChatHistoryResponse, error)
}

type sessionService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewSessionService(uowFactory unitofwork.RepositoryFactory) ISessionService {
	return &sessionService{
		uowFactory: uowFactory,
	}
}

// canCreate implements the "no new empty session" gate: creation is
// allowed only when the user has no sessions yet or their most recent
// session already carries a user message.
func (s *sessionService) canCreate(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (bool, error) {
	last, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return false, err
	}
	if last == nil {
		return true, nil
	}

	userMessages, err := uow.ChatMessageRepository().Count(ctx,
		specification.ByChatSessionID{ChatSessionID: last.Id},
		specification.ByRole{Role: constant.ChatMessageRoleUser},
	)
	if err != nil {
		return false, err
	}
	return userMessages > 0, nil
}

func (s *sessionService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	ok, err := s.canCreate(ctx, uow, userId)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.Conflict("previous chat session is still empty")
	}

	title := req.Title
	if title == "" {
		title = constant.DefaultSessionTitle
	}

	now := time.Now()
	session := entity.ChatSession{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uow.ChatSessionRepository().Create(ctx, &session); err != nil {
		return nil, err
	}

	return &dto.CreateSessionResponse{SessionId: session.Id}, nil
}

func (s *sessionService) List(ctx context.Context, userId uuid.UUID) ([]*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "updated_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.SessionResponse, len(sessions))
	for i, session := range sessions {
		responses[i] = &dto.SessionResponse{
			SessionId: session.Id,
			Title:     session.Title,
			CreatedAt: session.CreatedAt,
			UpdatedAt: session.UpdatedAt,
		}
	}
	return responses, nil
}

// History returns a session's messages oldest-first. A session that does
// not exist and a session owned by someone else produce the same not
// found error.
func (s *sessionService) History(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.ChatHistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperr.NotFound("chat session not found")
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ChatMessageResponse, len(messages))
	for i, msg := range messages {
		sources := msg.Sources
		if sources == nil {
			sources = []entity.Citation{}
		}
		responses[i] = dto.ChatMessageResponse{
			Id:        msg.Id,
			Role:      msg.Role,
			Content:   msg.Content,
			Sources:   sources,
			CreatedAt: msg.CreatedAt,
		}
	}

	return &dto.ChatHistoryResponse{
		SessionId: sessionId,
		Messages:  responses,
	}, nil
}
