package llm

import (
	"context"
)

// Usage reports the token accounting for a single completion.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Completion is the provider-agnostic result of a generation call.
// Usage is nil when the backend does not report token counts.
type Completion struct {
	Text  string
	Model string
	Usage *Usage
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// Provider defines the contract for any LLM backend
type Provider interface {
	// Complete sends a single prompt to the model and returns the response
	// together with token usage when the backend reports it.
	Complete(ctx context.Context, prompt string, options ...Option) (*Completion, error)
}
