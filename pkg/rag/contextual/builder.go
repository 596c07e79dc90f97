package contextual

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// ChunkSource looks up the text of a neighboring chunk by position.
// The second return is false when no chunk exists at that index.
type ChunkSource interface {
	Neighbor(ctx context.Context, documentId uuid.UUID, chunkIndex int) (string, bool, error)
}

// Builder assembles the text a chunk is embedded with: the previous
// chunk, the chunk itself, and the next chunk joined by newlines. The
// widened window lets a vector carry meaning that crosses chunk
// boundaries while retrieval still cites the single center chunk.
type Builder struct {
	source ChunkSource
}

func NewBuilder(source ChunkSource) *Builder {
	return &Builder{source: source}
}

func (b *Builder) Input(ctx context.Context, documentId uuid.UUID, chunkIndex int, text string) (string, error) {
	parts := make([]string, 0, 3)

	if chunkIndex > 0 {
		prev, ok, err := b.source.Neighbor(ctx, documentId, chunkIndex-1)
		if err != nil {
			return "", err
		}
		if ok {
			parts = append(parts, prev)
		}
	}

	parts = append(parts, text)

	next, ok, err := b.source.Neighbor(ctx, documentId, chunkIndex+1)
	if err != nil {
		return "", err
	}
	if ok {
		parts = append(parts, next)
	}

	return strings.Join(parts, "\n"), nil
}
