package dto

import (
	"time"

	"knowledge-assistant-be/internal/entity"

	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	Title string `json:"title" validate:"omitempty,max=200"`
}

type CreateSessionResponse struct {
	SessionId uuid.UUID `json:"session_id"`
}

type SessionResponse struct {
	SessionId uuid.UUID `json:"session_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ChatMessageResponse struct {
	Id        uuid.UUID         `json:"id"`
	Role      string            `json:"role"`
	Content   string            `json:"content"`
	Sources   []entity.Citation `json:"sources"`
	CreatedAt time.Time         `json:"created_at"`
}

type ChatHistoryResponse struct {
	SessionId uuid.UUID             `json:"session_id"`
	Messages  []ChatMessageResponse `json:"messages"`
}
