package embedding

import "context"

// Provider generates a vector representation for a piece of text.
// Implementations must return unit-length vectors so cosine similarity
// can be computed as a plain dot product downstream.
type Provider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
