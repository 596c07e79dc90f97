package service

import (
	"context"
	"sort"

	"knowledge-assistant-be/internal/apperr"
	"knowledge-assistant-be/internal/constant"
	"knowledge-assistant-be/internal/dto"
	"knowledge-assistant-be/internal/entity"
	"knowledge-assistant-be/internal/pkg/logger"
	"knowledge-assistant-be/internal/repository/specification"
	"knowledge-assistant-be/internal/repository/unitofwork"
	"knowledge-assistant-be/pkg/embedding"
	"knowledge-assistant-be/pkg/vectorindex"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

type IRetrievalService interface {
	Retrieve(ctx context.Context, userId uuid.UUID, isAdmin bool, query string, topK int) ([]*dto.RetrievedChunkResponse, error)
}

type retrievalService struct {
	uowFactory unitofwork.RepositoryFactory
	embedder   embedding.Provider
	index      vectorindex.Index
	nameCache  *gocache.Cache
	logger     logger.ILogger
}

func NewRetrievalService(
	uowFactory unitofwork.RepositoryFactory,
	embedder embedding.Provider,
	index vectorindex.Index,
	log logger.ILogger,
) IRetrievalService {
	return &retrievalService{
		uowFactory: uowFactory,
		embedder:   embedder,
		index:      index,
		nameCache:  gocache.New(constant.DocumentNameCacheTTL, 2*constant.DocumentNameCacheTTL),
		logger:     log,
	}
}

// Retrieve embeds the query, asks the vector index for candidates, then
// re-checks everything against the metadata store: ownership (unless
// admin), staleness, and the similarity cutoff. The index is never
// trusted for authorization.
func (s *retrievalService) Retrieve(ctx context.Context, userId uuid.UUID, isAdmin bool, query string, topK int) ([]*dto.RetrievedChunkResponse, error) {
	if topK <= 0 {
		topK = constant.DefaultTopK
	}

	queryVector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, apperr.Upstream("embedding provider unavailable", err)
	}

	matches, err := s.index.Query(ctx, queryVector, topK)
	if err != nil {
		return nil, apperr.Upstream("vector index unavailable", err)
	}
	if len(matches) == 0 {
		return []*dto.RetrievedChunkResponse{}, nil
	}

	chunkIds := make([]uuid.UUID, len(matches))
	for i, match := range matches {
		chunkIds[i] = match.Id
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{specification.ByIDs{IDs: chunkIds}}
	if !isAdmin {
		allowedDocIds, err := uow.DocumentRepository().FindIdsByOwner(ctx, userId)
		if err != nil {
			return nil, err
		}
		if len(allowedDocIds) == 0 {
			return []*dto.RetrievedChunkResponse{}, nil
		}
		specs = append(specs, specification.ByDocumentIDs{DocumentIDs: allowedDocIds})
	}

	chunks, err := uow.DocumentChunkRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return []*dto.RetrievedChunkResponse{}, nil
	}

	chunkMap := make(map[uuid.UUID]*entity.DocumentChunk, len(chunks))
	docIdSet := make(map[uuid.UUID]struct{})
	for _, chunk := range chunks {
		chunkMap[chunk.Id] = chunk
		docIdSet[chunk.DocumentId] = struct{}{}
	}

	docIds := make([]uuid.UUID, 0, len(docIdSet))
	for id := range docIdSet {
		docIds = append(docIds, id)
	}
	names, err := s.documentNames(ctx, uow, docIds)
	if err != nil {
		return nil, err
	}

	results := make([]*dto.RetrievedChunkResponse, 0, len(matches))
	for _, match := range matches {
		if match.Score < constant.SimilarityThreshold {
			continue
		}
		// Stale index entries (deleted or re-ingested chunks) are skipped
		chunk, ok := chunkMap[match.Id]
		if !ok {
			continue
		}

		name, ok := names[chunk.DocumentId]
		if !ok {
			name = constant.UnknownDocumentName
		}

		results = append(results, &dto.RetrievedChunkResponse{
			ChunkId:      chunk.Id,
			Score:        match.Score,
			Text:         chunk.Text,
			DocumentId:   chunk.DocumentId,
			DocumentName: name,
			ChunkIndex:   chunk.ChunkIndex,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results, nil
}

// documentNames resolves original file names, serving repeats from the
// in-memory cache.
func (s *retrievalService) documentNames(ctx context.Context, uow unitofwork.UnitOfWork, docIds []uuid.UUID) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string, len(docIds))
	var missing []uuid.UUID

	for _, id := range docIds {
		if cached, ok := s.nameCache.Get(id.String()); ok {
			names[id] = cached.(string)
			continue
		}
		missing = append(missing, id)
	}

	if len(missing) > 0 {
		fetched, err := uow.DocumentRepository().FindNamesByIds(ctx, missing)
		if err != nil {
			return nil, err
		}
		for id, name := range fetched {
			names[id] = name
			s.nameCache.Set(id.String(), name, gocache.DefaultExpiration)
		}
	}

	return names, nil
}
