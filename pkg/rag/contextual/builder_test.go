package contextual

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapSource struct {
	chunks map[int]string
}

func (m *mapSource) Neighbor(_ context.Context, _ uuid.UUID, idx int) (string, bool, error) {
	text, ok := m.chunks[idx]
	return text, ok, nil
}

func TestInput_MiddleChunkGetsBothNeighbors(t *testing.T) {
	src := &mapSource{chunks: map[int]string{0: "alpha", 1: "beta", 2: "gamma"}}
	builder := NewBuilder(src)

	input, err := builder.Input(context.Background(), uuid.New(), 1, "beta")

	require.NoError(t, err)
	assert.Equal(t, "alpha\nbeta\ngamma", input)
}

func TestInput_FirstChunkSkipsPrevious(t *testing.T) {
	src := &mapSource{chunks: map[int]string{0: "alpha", 1: "beta"}}
	builder := NewBuilder(src)

	input, err := builder.Input(context.Background(), uuid.New(), 0, "alpha")

	require.NoError(t, err)
	assert.Equal(t, "alpha\nbeta", input)
}

func TestInput_LastChunkSkipsNext(t *testing.T) {
	src := &mapSource{chunks: map[int]string{0: "alpha", 1: "beta"}}
	builder := NewBuilder(src)

	input, err := builder.Input(context.Background(), uuid.New(), 1, "beta")

	require.NoError(t, err)
	assert.Equal(t, "alpha\nbeta", input)
}

func TestInput_SingleChunkDocument(t *testing.T) {
	src := &mapSource{chunks: map[int]string{0: "alone"}}
	builder := NewBuilder(src)

	input, err := builder.Input(context.Background(), uuid.New(), 0, "alone")

	require.NoError(t, err)
	assert.Equal(t, "alone", input)
}
