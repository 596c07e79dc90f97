package vectorindex

import (
	"context"

	"github.com/google/uuid"
)

// Metadata identifies the chunk a vector was computed from.
type Metadata struct {
	DocumentId uuid.UUID
	ChunkIndex int
}

// Record is a vector plus the metadata needed to resolve it back to a chunk.
type Record struct {
	Id        uuid.UUID
	Embedding []float32
	Metadata  Metadata
}

// Match is a query hit. Score is cosine similarity in [0, 1] for
// normalized vectors, higher is more similar.
type Match struct {
	Id       uuid.UUID
	Score    float64
	Metadata Metadata
}

// Index is a similarity index over chunk vectors. It is a performance
// structure only: callers must never treat its contents as an
// authorization source, ownership is always re-checked against the
// primary store.
type Index interface {
	Upsert(ctx context.Context, records []Record) error
	Query(ctx context.Context, embedding []float32, topK int) ([]Match, error)
}
