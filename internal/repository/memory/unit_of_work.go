package memory

import (
	"context"

	"knowledge-assistant-be/internal/repository/contract"
)

type unitOfWork struct {
	store *Store
}

func (u *unitOfWork) Begin(ctx context.Context) error { return nil }
func (u *unitOfWork) Commit() error                   { return nil }
func (u *unitOfWork) Rollback() error                 { return nil }

func (u *unitOfWork) DocumentRepository() contract.DocumentRepository {
	return &documentRepository{store: u.store}
}

func (u *unitOfWork) DocumentChunkRepository() contract.DocumentChunkRepository {
	return &documentChunkRepository{store: u.store}
}

func (u *unitOfWork) ChatSessionRepository() contract.ChatSessionRepository {
	return &chatSessionRepository{store: u.store}
}

func (u *unitOfWork) ChatMessageRepository() contract.ChatMessageRepository {
	return &chatMessageRepository{store: u.store}
}

func (u *unitOfWork) UsageLogRepository() contract.UsageLogRepository {
	return &usageLogRepository{store: u.store}
}

func (u *unitOfWork) UserUsageRepository() contract.UserUsageRepository {
	return &userUsageRepository{store: u.store}
}
