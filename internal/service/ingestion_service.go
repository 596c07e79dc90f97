package service

import (
	"context"
	"time"

	"knowledge-assistant-be/internal/constant"
	"knowledge-assistant-be/internal/pkg/logger"
	"knowledge-assistant-be/internal/repository/specification"
	"knowledge-assistant-be/internal/repository/unitofwork"
	"knowledge-assistant-be/pkg/embedding"
	"knowledge-assistant-be/pkg/rag/contextual"
	"knowledge-assistant-be/pkg/vectorindex"

	"github.com/google/uuid"
)

type IIngestionService interface {
	// Run polls for pending chunks until the context is cancelled.
	Run(ctx context.Context)
	// RunCycle processes the current backlog once.
	RunCycle(ctx context.Context) error
}

type ingestionService struct {
	uowFactory unitofwork.RepositoryFactory
	embedder   embedding.Provider
	index      vectorindex.Index
	interval   time.Duration
	batchSize  int
	logger     logger.ILogger
}

func NewIngestionService(
	uowFactory unitofwork.RepositoryFactory,
	embedder embedding.Provider,
	index vectorindex.Index,
	interval time.Duration,
	batchSize int,
	log logger.ILogger,
) IIngestionService {
	if interval <= 0 {
		interval = constant.DefaultIngestInterval
	}
	if batchSize <= 0 {
		batchSize = constant.EmbedBatchSize
	}
	return &ingestionService{
		uowFactory: uowFactory,
		embedder:   embedder,
		index:      index,
		interval:   interval,
		batchSize:  batchSize,
		logger:     log,
	}
}

func (s *ingestionService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("INGESTION", "Ingestion worker started", map[string]interface{}{
		"interval":   s.interval.String(),
		"batch_size": s.batchSize,
	})

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("INGESTION", "Ingestion worker stopped", nil)
			return
		case <-ticker.C:
			if err := s.RunCycle(ctx); err != nil {
				s.logger.Error("INGESTION", "Ingestion cycle failed", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
	}
}

// chunkNeighborSource adapts the chunk repository to the contextual
// builder's lookup interface.
type chunkNeighborSource struct {
	uow unitofwork.UnitOfWork
}

func (c *chunkNeighborSource) Neighbor(ctx context.Context, documentId uuid.UUID, chunkIndex int) (string, bool, error) {
	chunk, err := c.uow.DocumentChunkRepository().FindByDocumentAndIndex(ctx, documentId, chunkIndex)
	if err != nil {
		return "", false, err
	}
	if chunk == nil {
		return "", false, nil
	}
	return chunk.Text, true, nil
}

// RunCycle embeds every pending chunk with its neighbor context and
// upserts vectors in batches. Chunks are only marked embedded after
// their batch upsert succeeded, so a crash between the two leaves them
// pending and the idempotent upsert absorbs the replay. A chunk whose
// embedding fails is skipped and retried next cycle.
func (s *ingestionService) RunCycle(ctx context.Context) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	pending, err := uow.DocumentChunkRepository().FindAll(ctx,
		specification.EmbeddedIs{Embedded: false},
	)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		return nil
	}

	builder := contextual.NewBuilder(&chunkNeighborSource{uow: uow})

	var records []vectorindex.Record
	var embedded []uuid.UUID

	flush := func() error {
		if len(records) == 0 {
			return nil
		}
		if err := s.index.Upsert(ctx, records); err != nil {
			// Leave the batch pending; next cycle retries it
			return err
		}
		if err := uow.DocumentChunkRepository().MarkEmbedded(ctx, embedded); err != nil {
			return err
		}
		records = nil
		embedded = nil
		return nil
	}

	for _, chunk := range pending {
		if ctx.Err() != nil {
			return flush()
		}

		input, err := builder.Input(ctx, chunk.DocumentId, chunk.ChunkIndex, chunk.Text)
		if err != nil {
			return err
		}

		vector, err := s.embedder.Embed(ctx, input)
		if err != nil {
			s.logger.Warn("INGESTION", "Chunk embedding failed, will retry", map[string]interface{}{
				"chunk_id": chunk.Id,
				"error":    err.Error(),
			})
			continue
		}

		records = append(records, vectorindex.Record{
			Id:        chunk.Id,
			Embedding: vector,
			Metadata: vectorindex.Metadata{
				DocumentId: chunk.DocumentId,
				ChunkIndex: chunk.ChunkIndex,
			},
		})
		embedded = append(embedded, chunk.Id)

		if len(records) >= s.batchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}

	return flush()
}
