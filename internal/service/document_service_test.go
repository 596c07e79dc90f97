package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"knowledge-assistant-be/internal/apperr"
	"knowledge-assistant-be/internal/dto"
	"knowledge-assistant-be/internal/entity"
	"knowledge-assistant-be/internal/pkg/logger"
	"knowledge-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wordText(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("word%d", i)
	}
	return strings.Join(words, " ")
}

func TestDocumentUpload_SplitsIntoChunks(t *testing.T) {
	store, factory := newMemoryFactory()
	svc := NewDocumentService(factory, logger.NewNopLogger())
	userId := uuid.New()

	// 540 words: one full window plus a remainder sharing 60 words
	res, err := svc.Upload(context.Background(), userId, &dto.UploadDocumentRequest{
		FileName: "contract.txt",
		FileType: "txt",
		Text:     wordText(540),
	})

	require.NoError(t, err)
	assert.Equal(t, 2, res.ChunkCount)

	uow := factory.NewUnitOfWork(context.Background())
	doc, err := uow.DocumentRepository().FindOne(context.Background(), specification.ByID{ID: res.DocumentId})
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, entity.DocumentStatusProcessed, doc.Status)
	assert.Equal(t, 2, doc.ChunkCount)
	assert.True(t, doc.IsActive)
	assert.Equal(t, "contract.txt", doc.OriginalFileName)

	chunks, err := uow.DocumentChunkRepository().FindAll(context.Background(),
		specification.ByDocumentID{DocumentID: res.DocumentId},
		specification.OrderBy{Field: "chunk_index"},
	)
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	for i, chunk := range chunks {
		assert.Equal(t, i, chunk.ChunkIndex)
		assert.False(t, chunk.Embedded)
	}
	_ = store
}

func TestDocumentUpload_EmptyTextRejected(t *testing.T) {
	_, factory := newMemoryFactory()
	svc := NewDocumentService(factory, logger.NewNopLogger())

	_, err := svc.Upload(context.Background(), uuid.New(), &dto.UploadDocumentRequest{
		FileName: "empty.txt",
		FileType: "txt",
		Text:     "   \n ",
	})

	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestDocumentList_ScopedToOwnerAndActive(t *testing.T) {
	_, factory := newMemoryFactory()
	svc := NewDocumentService(factory, logger.NewNopLogger())
	owner := uuid.New()
	other := uuid.New()

	upload := func(userId uuid.UUID, name string) uuid.UUID {
		res, err := svc.Upload(context.Background(), userId, &dto.UploadDocumentRequest{
			FileName: name, FileType: "txt", Text: "some words here",
		})
		require.NoError(t, err)
		return res.DocumentId
	}

	mine := upload(owner, "mine.txt")
	hidden := upload(owner, "hidden.txt")
	theirs := upload(other, "theirs.txt")

	require.NoError(t, svc.SetActive(context.Background(), owner, hidden, false))

	docs, err := svc.List(context.Background(), owner, false)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, mine, docs[0].Id)

	// Admin sees every active document
	adminDocs, err := svc.List(context.Background(), uuid.New(), true)
	require.NoError(t, err)
	assert.Len(t, adminDocs, 2)
	_ = theirs
}

func TestDocumentSetActive_OtherUsersDocumentIsNotFound(t *testing.T) {
	_, factory := newMemoryFactory()
	svc := NewDocumentService(factory, logger.NewNopLogger())
	owner := uuid.New()

	res, err := svc.Upload(context.Background(), owner, &dto.UploadDocumentRequest{
		FileName: "a.txt", FileType: "txt", Text: "hello world",
	})
	require.NoError(t, err)

	err = svc.SetActive(context.Background(), uuid.New(), res.DocumentId, false)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
