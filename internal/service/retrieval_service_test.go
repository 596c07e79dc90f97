package service

import (
	"context"
	"testing"
	"time"

	"knowledge-assistant-be/internal/apperr"
	"knowledge-assistant-be/internal/constant"
	"knowledge-assistant-be/internal/entity"
	"knowledge-assistant-be/internal/pkg/logger"
	"knowledge-assistant-be/internal/repository/memory"
	"knowledge-assistant-be/pkg/vectorindex"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedDocumentWithChunks(t *testing.T, store *memory.Store, userId uuid.UUID, texts ...string) (uuid.UUID, []uuid.UUID) {
	t.Helper()
	factory := memory.NewFactory(store)
	uow := factory.NewUnitOfWork(context.Background())

	doc := entity.Document{
		Id:               uuid.New(),
		OriginalFileName: "notes.txt",
		FileType:         "txt",
		UploadedBy:       userId,
		Status:           entity.DocumentStatusProcessed,
		IsActive:         true,
		ChunkCount:       len(texts),
		UploadedAt:       time.Now(),
	}
	require.NoError(t, uow.DocumentRepository().Create(context.Background(), &doc))

	chunkIds := make([]uuid.UUID, len(texts))
	chunks := make([]*entity.DocumentChunk, len(texts))
	for i, text := range texts {
		chunks[i] = &entity.DocumentChunk{
			Id:         uuid.New(),
			DocumentId: doc.Id,
			ChunkIndex: i,
			Text:       text,
			Embedded:   true,
			CreatedAt:  time.Now(),
		}
		chunkIds[i] = chunks[i].Id
	}
	require.NoError(t, uow.DocumentChunkRepository().CreateBulk(context.Background(), chunks))
	return doc.Id, chunkIds
}

func TestRetrieve_OrdersByScoreAndAttachesNames(t *testing.T) {
	store, factory := newMemoryFactory()
	userId := uuid.New()
	docId, chunkIds := seedDocumentWithChunks(t, store, userId, "first passage", "second passage")

	index := &fakeIndex{matches: []vectorindex.Match{
		{Id: chunkIds[0], Score: 0.5, Metadata: vectorindex.Metadata{DocumentId: docId, ChunkIndex: 0}},
		{Id: chunkIds[1], Score: 0.9, Metadata: vectorindex.Metadata{DocumentId: docId, ChunkIndex: 1}},
	}}
	svc := NewRetrievalService(factory, &fakeEmbedder{}, index, logger.NewNopLogger())

	results, err := svc.Retrieve(context.Background(), userId, false, "what is in the notes?", 3)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, chunkIds[1], results[0].ChunkId)
	assert.Equal(t, 0.9, results[0].Score)
	assert.Equal(t, "notes.txt", results[0].DocumentName)
	assert.Equal(t, "second passage", results[0].Text)
	assert.Equal(t, chunkIds[0], results[1].ChunkId)
}

func TestRetrieve_DropsLowScoresKeepsThreshold(t *testing.T) {
	store, factory := newMemoryFactory()
	userId := uuid.New()
	docId, chunkIds := seedDocumentWithChunks(t, store, userId, "kept", "dropped")

	index := &fakeIndex{matches: []vectorindex.Match{
		{Id: chunkIds[0], Score: constant.SimilarityThreshold, Metadata: vectorindex.Metadata{DocumentId: docId, ChunkIndex: 0}},
		{Id: chunkIds[1], Score: 0.19, Metadata: vectorindex.Metadata{DocumentId: docId, ChunkIndex: 1}},
	}}
	svc := NewRetrievalService(factory, &fakeEmbedder{}, index, logger.NewNopLogger())

	results, err := svc.Retrieve(context.Background(), userId, false, "query", 3)

	require.NoError(t, err)
	// The threshold itself is kept; only strictly lower scores are dropped
	require.Len(t, results, 1)
	assert.Equal(t, chunkIds[0], results[0].ChunkId)
}

func TestRetrieve_OwnershipFiltersForeignChunks(t *testing.T) {
	store, factory := newMemoryFactory()
	owner := uuid.New()
	stranger := uuid.New()
	docId, chunkIds := seedDocumentWithChunks(t, store, owner, "private data")

	index := &fakeIndex{matches: []vectorindex.Match{
		{Id: chunkIds[0], Score: 0.95, Metadata: vectorindex.Metadata{DocumentId: docId, ChunkIndex: 0}},
	}}
	svc := NewRetrievalService(factory, &fakeEmbedder{}, index, logger.NewNopLogger())

	results, err := svc.Retrieve(context.Background(), stranger, false, "private data", 3)
	require.NoError(t, err)
	assert.Empty(t, results)

	// Admin bypasses the ownership filter
	adminResults, err := svc.Retrieve(context.Background(), stranger, true, "private data", 3)
	require.NoError(t, err)
	assert.Len(t, adminResults, 1)
}

func TestRetrieve_SkipsStaleIndexEntries(t *testing.T) {
	store, factory := newMemoryFactory()
	userId := uuid.New()
	docId, chunkIds := seedDocumentWithChunks(t, store, userId, "live chunk")

	index := &fakeIndex{matches: []vectorindex.Match{
		{Id: uuid.New(), Score: 0.99, Metadata: vectorindex.Metadata{DocumentId: docId, ChunkIndex: 7}},
		{Id: chunkIds[0], Score: 0.6, Metadata: vectorindex.Metadata{DocumentId: docId, ChunkIndex: 0}},
	}}
	svc := NewRetrievalService(factory, &fakeEmbedder{}, index, logger.NewNopLogger())

	results, err := svc.Retrieve(context.Background(), userId, false, "query", 3)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, chunkIds[0], results[0].ChunkId)
}

func TestRetrieve_MissingDocumentNameFallsBack(t *testing.T) {
	store, factory := newMemoryFactory()
	uow := memory.NewFactory(store).NewUnitOfWork(context.Background())

	// Chunk whose parent document row is gone
	orphan := &entity.DocumentChunk{
		Id:         uuid.New(),
		DocumentId: uuid.New(),
		ChunkIndex: 0,
		Text:       "orphaned",
		Embedded:   true,
		CreatedAt:  time.Now(),
	}
	require.NoError(t, uow.DocumentChunkRepository().CreateBulk(context.Background(), []*entity.DocumentChunk{orphan}))

	index := &fakeIndex{matches: []vectorindex.Match{
		{Id: orphan.Id, Score: 0.8, Metadata: vectorindex.Metadata{DocumentId: orphan.DocumentId, ChunkIndex: 0}},
	}}
	svc := NewRetrievalService(factory, &fakeEmbedder{}, index, logger.NewNopLogger())

	results, err := svc.Retrieve(context.Background(), uuid.New(), true, "query", 3)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, constant.UnknownDocumentName, results[0].DocumentName)
}

func TestRetrieve_EmbeddingFailureIsUpstream(t *testing.T) {
	_, factory := newMemoryFactory()
	svc := NewRetrievalService(factory, &fakeEmbedder{failOn: "query"}, &fakeIndex{}, logger.NewNopLogger())

	_, err := svc.Retrieve(context.Background(), uuid.New(), false, "query", 3)

	require.Error(t, err)
	assert.Equal(t, apperr.KindUpstream, apperr.KindOf(err))
}
