package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"knowledge-assistant-be/internal/entity"
	"knowledge-assistant-be/internal/pkg/logger"
	"knowledge-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCycle_EmbedsAndMarksChunks(t *testing.T) {
	store, factory := newMemoryFactory()
	userId := uuid.New()
	docId, chunkIds := seedDocumentWithChunks(t, store, userId, "alpha", "beta", "gamma")

	// Reset embedded flags so the worker has a backlog
	uow := factory.NewUnitOfWork(context.Background())
	for _, id := range chunkIds {
		chunk, err := uow.DocumentChunkRepository().FindOne(context.Background(), specification.ByID{ID: id})
		require.NoError(t, err)
		chunk.Embedded = false
		require.NoError(t, uow.DocumentChunkRepository().CreateBulk(context.Background(), []*entity.DocumentChunk{chunk}))
	}

	embedder := &fakeEmbedder{}
	index := &fakeIndex{}
	svc := NewIngestionService(factory, embedder, index, time.Second, 50, logger.NewNopLogger())

	require.NoError(t, svc.RunCycle(context.Background()))

	remaining, err := uow.DocumentChunkRepository().Count(context.Background(), specification.EmbeddedIs{Embedded: false})
	require.NoError(t, err)
	assert.Zero(t, remaining)

	require.Len(t, index.upserts, 1)
	require.Len(t, index.upserts[0], 3)
	for _, rec := range index.upserts[0] {
		assert.Equal(t, docId, rec.Metadata.DocumentId)
	}

	// The middle chunk was embedded with both neighbors joined in
	assert.Contains(t, embedder.inputs, "alpha\nbeta\ngamma")
}

func TestRunCycle_BatchesLargeBacklogs(t *testing.T) {
	store, factory := newMemoryFactory()
	userId := uuid.New()

	uow := factory.NewUnitOfWork(context.Background())
	doc := entity.Document{Id: uuid.New(), OriginalFileName: "big.txt", FileType: "txt",
		UploadedBy: userId, Status: entity.DocumentStatusProcessed, IsActive: true, UploadedAt: time.Now()}
	require.NoError(t, uow.DocumentRepository().Create(context.Background(), &doc))

	chunks := make([]*entity.DocumentChunk, 5)
	for i := range chunks {
		chunks[i] = &entity.DocumentChunk{Id: uuid.New(), DocumentId: doc.Id, ChunkIndex: i,
			Text: "chunk text", Embedded: false, CreatedAt: time.Now()}
	}
	require.NoError(t, uow.DocumentChunkRepository().CreateBulk(context.Background(), chunks))

	index := &fakeIndex{}
	svc := NewIngestionService(factory, &fakeEmbedder{}, index, time.Second, 2, logger.NewNopLogger())

	require.NoError(t, svc.RunCycle(context.Background()))

	// 5 chunks with batch size 2: two full batches plus the remainder
	require.Len(t, index.upserts, 3)
	assert.Len(t, index.upserts[0], 2)
	assert.Len(t, index.upserts[1], 2)
	assert.Len(t, index.upserts[2], 1)

	remaining, err := uow.DocumentChunkRepository().Count(context.Background(), specification.EmbeddedIs{Embedded: false})
	require.NoError(t, err)
	assert.Zero(t, remaining)
	_ = store
}

func TestRunCycle_EmbeddingFailureSkipsChunkForRetry(t *testing.T) {
	store, factory := newMemoryFactory()
	userId := uuid.New()

	uow := factory.NewUnitOfWork(context.Background())
	doc := entity.Document{Id: uuid.New(), OriginalFileName: "doc.txt", FileType: "txt",
		UploadedBy: userId, Status: entity.DocumentStatusProcessed, IsActive: true, UploadedAt: time.Now()}
	require.NoError(t, uow.DocumentRepository().Create(context.Background(), &doc))

	good := &entity.DocumentChunk{Id: uuid.New(), DocumentId: doc.Id, ChunkIndex: 0,
		Text: "good", Embedded: false, CreatedAt: time.Now()}
	bad := &entity.DocumentChunk{Id: uuid.New(), DocumentId: uuid.New(), ChunkIndex: 0,
		Text: "poison", Embedded: false, CreatedAt: time.Now()}
	require.NoError(t, uow.DocumentChunkRepository().CreateBulk(context.Background(), []*entity.DocumentChunk{good, bad}))

	index := &fakeIndex{}
	// Embedding the poison chunk fails; it has no neighbors so its input is its own text
	svc := NewIngestionService(factory, &fakeEmbedder{failOn: "poison"}, index, time.Second, 50, logger.NewNopLogger())

	require.NoError(t, svc.RunCycle(context.Background()))

	goodChunk, err := uow.DocumentChunkRepository().FindOne(context.Background(), specification.ByID{ID: good.Id})
	require.NoError(t, err)
	assert.True(t, goodChunk.Embedded)

	badChunk, err := uow.DocumentChunkRepository().FindOne(context.Background(), specification.ByID{ID: bad.Id})
	require.NoError(t, err)
	assert.False(t, badChunk.Embedded)
	_ = store
}

func TestRunCycle_UpsertFailureLeavesChunksPending(t *testing.T) {
	store, factory := newMemoryFactory()
	userId := uuid.New()

	uow := factory.NewUnitOfWork(context.Background())
	doc := entity.Document{Id: uuid.New(), OriginalFileName: "doc.txt", FileType: "txt",
		UploadedBy: userId, Status: entity.DocumentStatusProcessed, IsActive: true, UploadedAt: time.Now()}
	require.NoError(t, uow.DocumentRepository().Create(context.Background(), &doc))

	chunk := &entity.DocumentChunk{Id: uuid.New(), DocumentId: doc.Id, ChunkIndex: 0,
		Text: "text", Embedded: false, CreatedAt: time.Now()}
	require.NoError(t, uow.DocumentChunkRepository().CreateBulk(context.Background(), []*entity.DocumentChunk{chunk}))

	index := &fakeIndex{upsertErr: errors.New("index down")}
	svc := NewIngestionService(factory, &fakeEmbedder{}, index, time.Second, 50, logger.NewNopLogger())

	err := svc.RunCycle(context.Background())
	require.Error(t, err)

	stored, err := uow.DocumentChunkRepository().FindOne(context.Background(), specification.ByID{ID: chunk.Id})
	require.NoError(t, err)
	assert.False(t, stored.Embedded)
	_ = store
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	_, factory := newMemoryFactory()
	svc := NewIngestionService(factory, &fakeEmbedder{}, &fakeIndex{}, 10*time.Millisecond, 50, logger.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.Run(ctx)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancellation")
	}
}
