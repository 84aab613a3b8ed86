package llm

import (
	"context"
	"errors"
)

// ErrEmptyResponse indicates the model answered without any text.
var ErrEmptyResponse = errors.New("text generation returned an empty response")

// Generator produces free text for a prompt. Implementations make exactly one upstream call per
// Generate invocation and never retry.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

// Generate calls f.
func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
