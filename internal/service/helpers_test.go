package service

import (
	"context"
	"errors"

	"knowledge-assistant-be/internal/repository/memory"
	"knowledge-assistant-be/internal/repository/unitofwork"
	"knowledge-assistant-be/pkg/llm"
	"knowledge-assistant-be/pkg/vectorindex"
)

func newMemoryFactory() (*memory.Store, unitofwork.RepositoryFactory) {
	store := memory.NewStore()
	return store, memory.NewFactory(store)
}

type fakeEmbedder struct {
	vec    []float32
	inputs []string
	failOn string
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if f.failOn != "" && text == f.failOn {
		return nil, errors.New("embedding failed")
	}
	f.inputs = append(f.inputs, text)
	if f.vec != nil {
		return f.vec, nil
	}
	return []float32{1, 0, 0}, nil
}

type fakeIndex struct {
	matches   []vectorindex.Match
	upserts   [][]vectorindex.Record
	queryErr  error
	upsertErr error
}

func (f *fakeIndex) Upsert(_ context.Context, records []vectorindex.Record) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	batch := make([]vectorindex.Record, len(records))
	copy(batch, records)
	f.upserts = append(f.upserts, batch)
	return nil
}

func (f *fakeIndex) Query(_ context.Context, _ []float32, _ int) ([]vectorindex.Match, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.matches, nil
}

type fakeLLM struct {
	completion *llm.Completion
	err        error
	prompts    []string
}

func (f *fakeLLM) Complete(_ context.Context, prompt string, _ ...llm.Option) (*llm.Completion, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return nil, f.err
	}
	return f.completion, nil
}
