package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"knowledge-assistant-be/internal/apperr"
	"knowledge-assistant-be/internal/constant"
	"knowledge-assistant-be/internal/dto"
	"knowledge-assistant-be/internal/entity"
	"knowledge-assistant-be/internal/pkg/logger"
	"knowledge-assistant-be/internal/repository/specification"
	"knowledge-assistant-be/internal/repository/unitofwork"
	"knowledge-assistant-be/pkg/llm"
	"knowledge-assistant-be/pkg/rag/prompt"
	"knowledge-assistant-be/pkg/rag/smalltalk"

	"github.com/google/uuid"
)

type IAskService interface {
	Ask(ctx context.Context, userId uuid.UUID, isAdmin bool, req *dto.AskRequest) (*dto.AskResponse, error)
}

type askService struct {
	uowFactory unitofwork.RepositoryFactory
	retrieval  IRetrievalService
	usage      IUsageService
	llm        llm.Provider
	model      string
	logger     logger.ILogger
}

func NewAskService(
	uowFactory unitofwork.RepositoryFactory,
	retrieval IRetrievalService,
	usage IUsageService,
	provider llm.Provider,
	model string,
	log logger.ILogger,
) IAskService {
	return &askService{
		uowFactory: uowFactory,
		retrieval:  retrieval,
		usage:      usage,
		llm:        provider,
		model:      model,
		logger:     log,
	}
}

// resolveSession loads the caller's session or creates one. Creation
// here bypasses the empty-session gate: a question is about to land in
// it, so it can never stay empty. Someone else's session id comes back
// as not found.
func (s *askService) resolveSession(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, sessionId *uuid.UUID) (*entity.ChatSession, error) {
	if sessionId != nil {
		session, err := uow.ChatSessionRepository().FindOne(ctx,
			specification.ByID{ID: *sessionId},
			specification.UserOwnedBy{UserID: userId},
		)
		if err != nil {
			return nil, err
		}
		if session == nil {
			return nil, apperr.NotFound("chat session not found")
		}
		return session, nil
	}

	now := time.Now()
	session := entity.ChatSession{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     constant.DefaultSessionTitle,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uow.ChatSessionRepository().Create(ctx, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// autoTitle derives a session title from its first user message while
// the title is still the default.
func autoTitle(query string) string {
	title := strings.TrimSpace(query)
	// Truncate on rune boundaries so a multi-byte query cannot leave an
	// invalid UTF-8 title behind
	if runes := []rune(title); len(runes) > constant.SessionTitleMaxLen {
		title = string(runes[:constant.SessionTitleMaxLen])
	}
	if title == "" {
		return constant.DefaultSessionTitle
	}
	return title
}

// recentHistory renders the last few messages oldest-first as
// "User:"/"Assistant:" lines for the prompt.
func (s *askService) recentHistory(ctx context.Context, uow unitofwork.UnitOfWork, sessionId uuid.UUID) (string, error) {
	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: constant.ChatHistoryLimit, Offset: 0},
	)
	if err != nil {
		return "", err
	}

	lines := make([]string, 0, len(messages))
	for i := len(messages) - 1; i >= 0; i-- {
		role := "Assistant"
		if messages[i].Role == constant.ChatMessageRoleUser {
			role = "User"
		}
		lines = append(lines, fmt.Sprintf("%s: %s", role, messages[i].Content))
	}
	return strings.Join(lines, "\n"), nil
}

func (s *askService) Ask(ctx context.Context, userId uuid.UUID, isAdmin bool, req *dto.AskRequest) (*dto.AskResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := s.resolveSession(ctx, uow, userId, req.SessionId)
	if err != nil {
		return nil, err
	}

	// Greetings get a canned reply without retrieval, generation, or a
	// stored user message; only the assistant reply lands in the session.
	if smalltalk.IsSmallTalk(req.Query) {
		reply := entity.ChatMessage{
			Id:            uuid.New(),
			ChatSessionId: session.Id,
			UserId:        userId,
			Role:          constant.ChatMessageRoleAssistant,
			Content:       constant.SmallTalkReply,
			Sources:       []entity.Citation{},
			CreatedAt:     time.Now(),
		}
		if err := uow.ChatMessageRepository().Create(ctx, &reply); err != nil {
			return nil, err
		}
		return &dto.AskResponse{
			SessionId: session.Id,
			Answer:    constant.SmallTalkReply,
			Sources:   []entity.Citation{},
		}, nil
	}

	userMessage := entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: session.Id,
		UserId:        userId,
		Role:          constant.ChatMessageRoleUser,
		Content:       req.Query,
		Sources:       []entity.Citation{},
		CreatedAt:     time.Now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, &userMessage); err != nil {
		return nil, err
	}

	if session.Title == constant.DefaultSessionTitle {
		session.Title = autoTitle(req.Query)
	}

	history, err := s.recentHistory(ctx, uow, session.Id)
	if err != nil {
		return nil, err
	}

	retrieved, err := s.retrieval.Retrieve(ctx, userId, isAdmin, req.Query, req.TopK)
	if err != nil {
		return nil, err
	}

	answer, sources, usage, err := s.generate(ctx, req.Query, history, retrieved)
	if err != nil {
		return nil, err
	}

	if usage != nil {
		// Metering failures never block the answer
		if err := s.usage.Record(ctx, userId, session.Id, "ask", usage.model, usage.tokens); err != nil {
			s.logger.Error("ASK_SERVICE", "Usage recording failed", map[string]interface{}{
				"session_id": session.Id,
				"error":      err.Error(),
			})
		}
	}

	assistantMessage := entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: session.Id,
		UserId:        userId,
		Role:          constant.ChatMessageRoleAssistant,
		Content:       answer,
		Sources:       sources,
		CreatedAt:     time.Now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, &assistantMessage); err != nil {
		return nil, err
	}

	session.UpdatedAt = time.Now()
	if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}

	return &dto.AskResponse{
		SessionId: session.Id,
		Answer:    answer,
		Sources:   sources,
	}, nil
}

type generationUsage struct {
	model  string
	tokens *llm.Usage
}

// generate builds the budgeted prompt and calls the model. With nothing
// retrieved it answers without a model call and reports no usage.
func (s *askService) generate(ctx context.Context, query, history string, retrieved []*dto.RetrievedChunkResponse) (string, []entity.Citation, *generationUsage, error) {
	if len(retrieved) == 0 {
		return constant.NoAnswerReply, []entity.Citation{}, nil, nil
	}

	builder := prompt.NewBuilder(constant.MaxCharsPerChunk, constant.MaxTotalContextChars)
	for _, chunk := range retrieved {
		if !builder.Add(fmt.Sprintf("Chunk %d", chunk.ChunkIndex), chunk.Text) {
			break
		}
	}

	answerPrompt := prompt.BuildAnswerPrompt(query, history, builder.Context())

	completion, err := s.llm.Complete(ctx, answerPrompt,
		llm.WithModel(s.model),
		llm.WithTemperature(constant.GenerationTemp),
		llm.WithMaxTokens(constant.MaxTokensToGenerate),
	)
	if err != nil {
		return "", nil, nil, apperr.Upstream("llm provider unavailable", err)
	}

	// Every retrieved passage is cited, including ones the context
	// budget cut, so the client can always resolve the evidence.
	sources := make([]entity.Citation, len(retrieved))
	for i, chunk := range retrieved {
		sources[i] = entity.Citation{
			DocumentId: chunk.DocumentId,
			ChunkIndex: chunk.ChunkIndex,
		}
	}

	usage := &generationUsage{model: completion.Model}
	if completion.Usage != nil {
		usage.tokens = completion.Usage
	} else {
		usage = nil
	}

	return strings.TrimSpace(completion.Text), sources, usage, nil
}
