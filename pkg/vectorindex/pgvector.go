package vectorindex

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VectorRecord is the storage model backing the pgvector index.
type VectorRecord struct {
	Id         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Embedding  pgvector.Vector `gorm:"type:vector(768)"` // nomic-embed-text uses 768 dimensions
	DocumentId uuid.UUID       `gorm:"type:uuid;not null;index"`
	ChunkIndex int             `gorm:"default:0"`
	CreatedAt  time.Time       `gorm:"autoCreateTime"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime"`
}

func (VectorRecord) TableName() string {
	return "vector_records"
}

// PgVectorIndex implements Index on a Postgres table with the pgvector
// extension.
type PgVectorIndex struct {
	db *gorm.DB
}

var _ Index = &PgVectorIndex{}

func NewPgVectorIndex(db *gorm.DB) *PgVectorIndex {
	return &PgVectorIndex{db: db}
}

func (p *PgVectorIndex) Upsert(ctx context.Context, records []Record) error {
	if len(records) == 0 {
		return nil
	}

	models := make([]*VectorRecord, len(records))
	for i, rec := range records {
		models[i] = &VectorRecord{
			Id:         rec.Id,
			Embedding:  pgvector.NewVector(rec.Embedding),
			DocumentId: rec.Metadata.DocumentId,
			ChunkIndex: rec.Metadata.ChunkIndex,
		}
	}

	// Idempotent by primary key so a retried batch overwrites rather than fails
	return p.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&models).Error
}

// nearestQuery builds the scored similarity search, ordered by the
// aliased score so the database returns the nearest rows, not arbitrary
// ones.
func (p *PgVectorIndex) nearestQuery(ctx context.Context, queryVector pgvector.Vector, topK int) *gorm.DB {
	return p.db.WithContext(ctx).
		Table("vector_records").
		Select("vector_records.*, 1 - (embedding <=> ?) as score", queryVector).
		Order("score DESC").
		Limit(topK)
}

func (p *PgVectorIndex) Query(ctx context.Context, embedding []float32, topK int) ([]Match, error) {
	if topK <= 0 {
		topK = 5
	}

	// Cosine distance in pgvector is: 1 - cosine_similarity
	// So we compute: 1 - (embedding <=> query_vector) = cosine_similarity
	type result struct {
		VectorRecord
		Score float64
	}
	var results []result

	err := p.nearestQuery(ctx, pgvector.NewVector(embedding), topK).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	matches := make([]Match, len(results))
	for i, res := range results {
		matches[i] = Match{
			Id:    res.Id,
			Score: res.Score,
			Metadata: Metadata{
				DocumentId: res.DocumentId,
				ChunkIndex: res.ChunkIndex,
			},
		}
	}
	return matches, nil
}
