package memory

import (
	"context"
	"time"

	"knowledge-assistant-be/internal/entity"
	"knowledge-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

type chatSessionRepository struct {
	store *Store
}

func sessionMatches(s entity.ChatSession, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch sp := spec.(type) {
		case specification.ByID:
			if s.Id != sp.ID {
				return false
			}
		case specification.UserOwnedBy:
			if s.UserId != sp.UserID {
				return false
			}
		}
	}
	return true
}

func (r *chatSessionRepository) collect(specs []specification.Specification) []*entity.ChatSession {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []*entity.ChatSession
	for _, s := range r.store.sessions {
		if sessionMatches(s, specs) {
			copied := s
			out = append(out, &copied)
		}
	}

	opts := collectOpts(specs)
	switch opts.orderField {
	case "updated_at":
		sortSlice(out, byCreatedAt(func(s *entity.ChatSession) time.Time { return s.UpdatedAt }), opts.orderDesc)
	default:
		sortSlice(out, byCreatedAt(func(s *entity.ChatSession) time.Time { return s.CreatedAt }), opts.orderDesc)
	}
	start, end := opts.window(len(out))
	return out[start:end]
}

func (r *chatSessionRepository) Create(ctx context.Context, session *entity.ChatSession) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if session.Id == uuid.Nil {
		session.Id = uuid.New()
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	r.store.sessions[session.Id] = *session
	return nil
}

func (r *chatSessionRepository) Update(ctx context.Context, session *entity.ChatSession) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.sessions[session.Id] = *session
	return nil
}

func (r *chatSessionRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	matches := r.collect(specs)
	if len(matches) == 0 {
		return nil, nil
	}
	return matches[0], nil
}

func (r *chatSessionRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	return r.collect(specs), nil
}

type chatMessageRepository struct {
	store *Store
}

func messageMatches(m entity.ChatMessage, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch sp := spec.(type) {
		case specification.ByChatSessionID:
			if m.ChatSessionId != sp.ChatSessionID {
				return false
			}
		case specification.UserOwnedBy:
			if m.UserId != sp.UserID {
				return false
			}
		case specification.ByRole:
			if m.Role != sp.Role {
				return false
			}
		}
	}
	return true
}

func (r *chatMessageRepository) collect(specs []specification.Specification) []*entity.ChatMessage {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []*entity.ChatMessage
	for _, m := range r.store.messages {
		if messageMatches(m, specs) {
			copied := m
			out = append(out, &copied)
		}
	}

	opts := collectOpts(specs)
	sortSlice(out, byCreatedAt(func(m *entity.ChatMessage) time.Time { return m.CreatedAt }), opts.orderDesc)
	start, end := opts.window(len(out))
	return out[start:end]
}

func (r *chatMessageRepository) Create(ctx context.Context, message *entity.ChatMessage) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if message.Id == uuid.Nil {
		message.Id = uuid.New()
	}
	if message.CreatedAt.IsZero() {
		// Monotonic timestamps so same-instant inserts keep their order
		r.store.seq++
		message.CreatedAt = time.Now().Add(time.Duration(r.store.seq) * time.Microsecond)
	}
	r.store.messages[message.Id] = *message
	return nil
}

func (r *chatMessageRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	return r.collect(specs), nil
}

func (r *chatMessageRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.collect(specs))), nil
}
